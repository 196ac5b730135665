// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package admin

import (
	"context"
	"time"

	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/types"
)

type ServiceInterface interface {
	Stats(ctx context.Context, actor identity.Actor) (*types.AdminStats, error)
	ListStudents(ctx context.Context, actor identity.Actor) ([]*types.Account, error)
	ListClubs(ctx context.Context, actor identity.Actor) ([]*types.Club, error)
	ToggleBan(ctx context.Context, actor identity.Actor, accountID string) (*types.Account, error)
	DeleteClub(ctx context.Context, actor identity.Actor, clubID string) error
}

type StorageInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
	GetAccountByID(ctx context.Context, id string) (*types.Account, error)
	ListStudents(ctx context.Context, tenantID string) ([]*types.Account, error)
	ToggleSuspended(ctx context.Context, id string) (bool, error)
	GetClub(ctx context.Context, id string) (*types.Club, error)
	ListClubsByName(ctx context.Context, tenantID string) ([]*types.Club, error)
	ListClubMembers(ctx context.Context, tenantID string) (map[string][]types.Member, error)
	DeleteClub(ctx context.Context, id string) error
	CountStudents(ctx context.Context, tenantID string) (int, error)
	CountClubs(ctx context.Context, tenantID string) (int, error)
	CountListings(ctx context.Context, tenantID string) (int, error)
	CountConfessionsSince(ctx context.Context, tenantID string, since time.Time) (int, error)
}

type AuthzInterface interface {
	CheckTenant(ctx context.Context, actor identity.Actor, tenantID, resource string) error
}

type NotifierInterface interface {
	Notify(ctx context.Context, tenantID, recipientID string, kind types.NotificationKind, message string) (*types.Notification, error)
}
