// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package market

import (
	"context"

	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/types"
	"github.com/canonical/edumart/pkg/ledger"
)

type ServiceInterface interface {
	ListListings(ctx context.Context, actor identity.Actor) ([]*types.Listing, error)
	GetListing(ctx context.Context, actor identity.Actor, id string) (*types.Listing, error)
	CreateListing(ctx context.Context, actor identity.Actor, in *ListingInput) (*types.Listing, error)
	UpdateListing(ctx context.Context, actor identity.Actor, id string, patch *ListingPatch) (*types.Listing, error)
	DeleteListing(ctx context.Context, actor identity.Actor, id string) error
}

type StorageInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
	CreateListing(ctx context.Context, l *types.Listing) (*types.Listing, error)
	GetListing(ctx context.Context, id string) (*types.Listing, error)
	ListListings(ctx context.Context, tenantID string) ([]*types.Listing, error)
	UpdateListing(ctx context.Context, l *types.Listing) (*types.Listing, error)
	DeleteListing(ctx context.Context, id string) error
}

type AuthzInterface interface {
	CheckTenant(ctx context.Context, actor identity.Actor, tenantID, resource string) error
	CheckOwner(ctx context.Context, actor identity.Actor, tenantID, ownerID, resource string) error
}

type LedgerInterface interface {
	Credit(ctx context.Context, accountID string, amount int, reason ledger.Reason) (int, error)
}

type NotifierInterface interface {
	Broadcast(ctx context.Context, tenantID string, kind types.NotificationKind, message string) (*types.Notification, error)
}
