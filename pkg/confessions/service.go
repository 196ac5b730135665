// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package confessions

import (
	"context"
	"errors"

	"github.com/canonical/edumart/internal/apperr"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/storage"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	authz   AuthzInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) ListConfessions(ctx context.Context, actor identity.Actor) ([]*types.Confession, error) {
	ctx, span := s.tracer.Start(ctx, "confessions.Service.ListConfessions")
	defer span.End()

	confessions, err := s.storage.ListConfessions(ctx, actor.TenantID, actor.AccountID)
	if err != nil {
		return nil, apperr.Internal(err, "Server error fetching confessions")
	}

	return confessions, nil
}

// PostConfession publishes immediately. The author is never stored.
func (s *Service) PostConfession(ctx context.Context, actor identity.Actor, content string) (*types.Confession, error) {
	ctx, span := s.tracer.Start(ctx, "confessions.Service.PostConfession")
	defer span.End()

	c, err := s.storage.CreateConfession(ctx, &types.Confession{TenantID: actor.TenantID, Content: content})
	if err != nil {
		return nil, apperr.Internal(err, "Server error posting confession")
	}

	return c, nil
}

// Vote toggles the caller's vote: repeating the current direction retracts it,
// the opposite direction replaces it.
func (s *Service) Vote(ctx context.Context, actor identity.Actor, id string, direction types.VoteDirection) (*types.Confession, error) {
	ctx, span := s.tracer.Start(ctx, "confessions.Service.Vote")
	defer span.End()

	if direction != types.VoteUp && direction != types.VoteDown {
		return nil, apperr.Validation("vote must be up or down")
	}

	var voted *types.Confession
	err := s.storage.WithTx(ctx, func(ctx context.Context) error {
		c, err := s.storage.GetConfession(ctx, id, actor.AccountID)
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("Confession not found")
		}
		if err != nil {
			return apperr.Internal(err, "Server error fetching confession")
		}

		if err := s.authz.CheckTenant(ctx, actor, c.TenantID, "confession"); err != nil {
			return err
		}

		current, inserted, err := s.storage.CastConfessionVote(ctx, c.ID, actor.AccountID, direction)
		if err != nil {
			return apperr.Internal(err, "Server error voting")
		}

		switch {
		case inserted:
			// first vote, already recorded
		case current == direction:
			err = s.storage.DeleteConfessionVote(ctx, c.ID, actor.AccountID)
		default:
			err = s.storage.SetConfessionVote(ctx, c.ID, actor.AccountID, direction)
		}
		if err != nil {
			return apperr.Internal(err, "Server error voting")
		}

		voted, err = s.storage.GetConfession(ctx, c.ID, actor.AccountID)
		if err != nil {
			return apperr.Internal(err, "Server error fetching confession")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return voted, nil
}

func NewService(storage StorageInterface, authz AuthzInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.storage = storage
	s.authz = authz

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
