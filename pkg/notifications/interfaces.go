// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package notifications

import (
	"context"

	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/types"
)

type ServiceInterface interface {
	ListFeed(ctx context.Context, actor identity.Actor, accountID string) ([]*types.Notification, error)
	MarkRead(ctx context.Context, actor identity.Actor, id string) error
	MarkAllRead(ctx context.Context, actor identity.Actor, accountID string) error
}

type StorageInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
	CreateNotification(ctx context.Context, n *types.Notification) (*types.Notification, error)
	GetNotification(ctx context.Context, id, accountID string) (*types.Notification, error)
	ListNotificationFeed(ctx context.Context, accountID, tenantID string, limit uint64) ([]*types.Notification, error)
	MarkPersonalRead(ctx context.Context, id, accountID string) error
	AddBroadcastRead(ctx context.Context, id, accountID string) error
	MarkAllPersonalRead(ctx context.Context, accountID string) (int64, error)
	MarkAllBroadcastsRead(ctx context.Context, accountID, tenantID string) (int64, error)
}

type AuthzInterface interface {
	CheckTenant(ctx context.Context, actor identity.Actor, tenantID, resource string) error
	CheckSelf(ctx context.Context, actor identity.Actor, accountID string) error
}
