// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/canonical/edumart/internal/apperr"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/storage"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

// Service holds the school administrator's moderation tools. Callers must
// already be restricted to school accounts; the tenant is the actor's school.
type Service struct {
	storage  StorageInterface
	authz    AuthzInterface
	notifier NotifierInterface

	now func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) Stats(ctx context.Context, actor identity.Actor) (*types.AdminStats, error) {
	ctx, span := s.tracer.Start(ctx, "admin.Service.Stats")
	defer span.End()

	var (
		stats  types.AdminStats
		tenant = actor.TenantID
		now    = s.now()
		today  = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalStudents, err = s.storage.CountStudents(gctx, tenant)
		return err
	})
	g.Go(func() (err error) {
		stats.ActiveClubs, err = s.storage.CountClubs(gctx, tenant)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalItems, err = s.storage.CountListings(gctx, tenant)
		return err
	})
	g.Go(func() (err error) {
		stats.ConfessionsToday, err = s.storage.CountConfessionsSince(gctx, tenant, today)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, apperr.Internal(err, "Server error fetching stats")
	}

	return &stats, nil
}

func (s *Service) ListStudents(ctx context.Context, actor identity.Actor) ([]*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "admin.Service.ListStudents")
	defer span.End()

	students, err := s.storage.ListStudents(ctx, actor.TenantID)
	if err != nil {
		return nil, apperr.Internal(err, "Server error fetching students")
	}

	return students, nil
}

// ListClubs returns the school's clubs sorted by name with their members.
func (s *Service) ListClubs(ctx context.Context, actor identity.Actor) ([]*types.Club, error) {
	ctx, span := s.tracer.Start(ctx, "admin.Service.ListClubs")
	defer span.End()

	clubs, err := s.storage.ListClubsByName(ctx, actor.TenantID)
	if err != nil {
		return nil, apperr.Internal(err, "Server error fetching clubs")
	}

	members, err := s.storage.ListClubMembers(ctx, actor.TenantID)
	if err != nil {
		return nil, apperr.Internal(err, "Server error fetching clubs")
	}

	for _, c := range clubs {
		c.Members = members[c.ID]
		if c.Members == nil {
			c.Members = make([]types.Member, 0)
		}
	}

	return clubs, nil
}

// ToggleBan suspends an active student or reinstates a suspended one, and
// tells the student which happened.
func (s *Service) ToggleBan(ctx context.Context, actor identity.Actor, accountID string) (*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "admin.Service.ToggleBan")
	defer span.End()

	var student *types.Account
	err := s.storage.WithTx(ctx, func(ctx context.Context) error {
		a, err := s.storage.GetAccountByID(ctx, accountID)
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		if err != nil {
			return apperr.Internal(err, "Server error banning user")
		}

		if err := s.authz.CheckTenant(ctx, actor, a.TenantID, "account"); err != nil {
			return err
		}

		if a.Kind != types.KindStudent {
			return apperr.Validation("Only student accounts can be suspended")
		}

		a.Suspended, err = s.storage.ToggleSuspended(ctx, a.ID)
		if err != nil {
			return apperr.Internal(err, "Server error banning user")
		}

		msg := fmt.Sprintf("Your account has been %s by the school administrator.", banState(a.Suspended, "suspended", "unbanned"))
		if _, err := s.notifier.Notify(ctx, a.TenantID, a.ID, types.NotificationSystem, msg); err != nil {
			return err
		}

		student = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Security().AdminAction(actor.AccountID, banState(student.Suspended, "ban", "unban"), student.ID)

	return student, nil
}

// DeleteClub removes a club after telling its founder.
func (s *Service) DeleteClub(ctx context.Context, actor identity.Actor, clubID string) error {
	ctx, span := s.tracer.Start(ctx, "admin.Service.DeleteClub")
	defer span.End()

	err := s.storage.WithTx(ctx, func(ctx context.Context) error {
		c, err := s.storage.GetClub(ctx, clubID)
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("Club not found")
		}
		if err != nil {
			return apperr.Internal(err, "Server error deleting club")
		}

		if err := s.authz.CheckTenant(ctx, actor, c.TenantID, "club"); err != nil {
			return err
		}

		msg := fmt.Sprintf("Your club %q has been deleted by the school administrator.", c.Name)
		if _, err := s.notifier.Notify(ctx, c.TenantID, c.FounderID, types.NotificationClub, msg); err != nil {
			return err
		}

		if err := s.storage.DeleteClub(ctx, c.ID); err != nil {
			return apperr.Internal(err, "Server error deleting club")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Security().AdminAction(actor.AccountID, "delete_club", clubID)

	return nil
}

func banState(suspended bool, yes, no string) string {
	if suspended {
		return yes
	}
	return no
}

func NewService(
	storage StorageInterface,
	authz AuthzInterface,
	notifier NotifierInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.storage = storage
	s.authz = authz
	s.notifier = notifier
	s.now = time.Now

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
