// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package notifications

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
	storage   StorageInterface
	authz     AuthzInterface
	feedLimit uint64

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Notify sends a personal notification to one account.
func (s *Service) Notify(ctx context.Context, tenantID, recipientID string, kind types.NotificationKind, message string) (*types.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "notifications.Service.Notify")
	defer span.End()

	if recipientID == "" {
		return nil, apperr.Validation("recipient is required")
	}

	return s.create(ctx, &types.Notification{
		TenantID:    tenantID,
		RecipientID: recipientID,
		Kind:        kind,
		Message:     message,
	})
}

// Broadcast sends a notification to every account of the school.
func (s *Service) Broadcast(ctx context.Context, tenantID string, kind types.NotificationKind, message string) (*types.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "notifications.Service.Broadcast")
	defer span.End()

	return s.create(ctx, &types.Notification{
		TenantID: tenantID,
		Kind:     kind,
		Message:  message,
	})
}

func (s *Service) create(ctx context.Context, n *types.Notification) (*types.Notification, error) {
	created, err := s.storage.CreateNotification(ctx, n)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindDependency, "failed to create notification")
	}
	return created, nil
}

// ListFeed returns the newest personal and school-wide notifications of the
// account, with read state resolved for the caller.
func (s *Service) ListFeed(ctx context.Context, actor identity.Actor, accountID string) ([]*types.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "notifications.Service.ListFeed")
	defer span.End()

	if err := s.authz.CheckSelf(ctx, actor, accountID); err != nil {
		return nil, err
	}

	feed, err := s.storage.ListNotificationFeed(ctx, actor.AccountID, actor.TenantID, s.feedLimit)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list notifications")
	}

	return feed, nil
}

func (s *Service) MarkRead(ctx context.Context, actor identity.Actor, id string) error {
	ctx, span := s.tracer.Start(ctx, "notifications.Service.MarkRead")
	defer span.End()

	n, err := s.storage.GetNotification(ctx, id, actor.AccountID)
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound("Notification not found")
	}
	if err != nil {
		return apperr.Internal(err, "failed to load notification")
	}

	if err := s.authz.CheckTenant(ctx, actor, n.TenantID, "notification"); err != nil {
		return err
	}

	if n.IsBroadcast() {
		err = s.storage.AddBroadcastRead(ctx, n.ID, actor.AccountID)
	} else {
		if n.RecipientID != actor.AccountID {
			s.logger.Security().AuthzFailure(actor.AccountID, "notification "+n.ID)
			return apperr.Unauthorized("Unauthorized access to this notification")
		}
		err = s.storage.MarkPersonalRead(ctx, n.ID, actor.AccountID)
	}

	if err != nil {
		return apperr.Internal(err, "failed to mark notification as read")
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, actor identity.Actor, accountID string) error {
	ctx, span := s.tracer.Start(ctx, "notifications.Service.MarkAllRead")
	defer span.End()

	if err := s.authz.CheckSelf(ctx, actor, accountID); err != nil {
		return err
	}

	err := s.storage.WithTx(ctx, func(ctx context.Context) error {
		personal, err := s.storage.MarkAllPersonalRead(ctx, actor.AccountID)
		if err != nil {
			return err
		}

		broadcasts, err := s.storage.MarkAllBroadcastsRead(ctx, actor.AccountID, actor.TenantID)
		if err != nil {
			return err
		}

		s.logger.Debugf("marked %d personal and %d broadcast notifications read for %s", personal, broadcasts, actor.AccountID)
		return nil
	})
	if err != nil {
		return apperr.Internal(err, "failed to mark notifications as read")
	}

	return nil
}

func NewService(storage StorageInterface, authz AuthzInterface, feedLimit uint64, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.storage = storage
	s.authz = authz
	s.feedLimit = feedLimit

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
