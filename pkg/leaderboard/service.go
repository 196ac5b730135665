// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package leaderboard

import (
	"context"
	"sort"

	"github.com/canonical/edumart/internal/apperr"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Standings returns every cohort of the caller's school, highest total first.
// Cohorts without students appear with zero points; ties keep cohort order.
func (s *Service) Standings(ctx context.Context, actor identity.Actor) ([]*types.LeaderboardEntry, error) {
	ctx, span := s.tracer.Start(ctx, "leaderboard.Service.Standings")
	defer span.End()

	totals, err := s.storage.CohortTotals(ctx, actor.TenantID)
	if err != nil {
		return nil, apperr.Internal(err, "Server error fetching leaderboard")
	}

	byCohort := make(map[string]*types.LeaderboardEntry, len(totals))
	for _, t := range totals {
		byCohort[t.Cohort] = t
	}

	standings := make([]*types.LeaderboardEntry, 0, len(types.Cohorts))
	for _, cohort := range types.Cohorts {
		if e, ok := byCohort[cohort]; ok {
			standings = append(standings, e)
			continue
		}
		standings = append(standings, &types.LeaderboardEntry{Cohort: cohort})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].TotalPoints > standings[j].TotalPoints
	})

	return standings, nil
}

func NewService(storage StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.storage = storage

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
