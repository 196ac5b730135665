// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package clubs

import (
	"context"

	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/types"
	"github.com/canonical/edumart/pkg/ledger"
)

type ServiceInterface interface {
	ListClubs(ctx context.Context, actor identity.Actor) ([]*types.Club, error)
	GetClub(ctx context.Context, actor identity.Actor, id string) (*types.Club, error)
	CreateClub(ctx context.Context, actor identity.Actor, in *ClubInput) (*types.Club, error)
	JoinClub(ctx context.Context, actor identity.Actor, id string) (*types.Club, error)
	LeaveClub(ctx context.Context, actor identity.Actor, id string) (*types.Club, error)
	ListPosts(ctx context.Context, actor identity.Actor, clubID string) ([]*types.ClubPost, error)
	CreatePost(ctx context.Context, actor identity.Actor, clubID, content string) (*types.ClubPost, error)
}

type StorageInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
	GetAccountByID(ctx context.Context, id string) (*types.Account, error)
	CreateClub(ctx context.Context, c *types.Club) (*types.Club, error)
	GetClub(ctx context.Context, id string) (*types.Club, error)
	ListClubs(ctx context.Context, tenantID string) ([]*types.Club, error)
	ListMembersOfClub(ctx context.Context, clubID string) ([]types.Member, error)
	AddClubMember(ctx context.Context, clubID, accountID string) (bool, error)
	RemoveClubMember(ctx context.Context, clubID, accountID string) (bool, error)
	CreateClubPost(ctx context.Context, p *types.ClubPost) (*types.ClubPost, error)
	ListClubPosts(ctx context.Context, clubID string) ([]*types.ClubPost, error)
}

type AuthzInterface interface {
	CheckTenant(ctx context.Context, actor identity.Actor, tenantID, resource string) error
}

type LedgerInterface interface {
	Credit(ctx context.Context, accountID string, amount int, reason ledger.Reason) (int, error)
}

type NotifierInterface interface {
	Notify(ctx context.Context, tenantID, recipientID string, kind types.NotificationKind, message string) (*types.Notification, error)
}
