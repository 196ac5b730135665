// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package confessions

import (
	"context"

	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/types"
)

type ServiceInterface interface {
	ListConfessions(ctx context.Context, actor identity.Actor) ([]*types.Confession, error)
	PostConfession(ctx context.Context, actor identity.Actor, content string) (*types.Confession, error)
	Vote(ctx context.Context, actor identity.Actor, id string, direction types.VoteDirection) (*types.Confession, error)
}

type StorageInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
	CreateConfession(ctx context.Context, c *types.Confession) (*types.Confession, error)
	GetConfession(ctx context.Context, id, viewerID string) (*types.Confession, error)
	ListConfessions(ctx context.Context, tenantID, viewerID string) ([]*types.Confession, error)
	CastConfessionVote(ctx context.Context, confessionID, accountID string, direction types.VoteDirection) (types.VoteDirection, bool, error)
	SetConfessionVote(ctx context.Context, confessionID, accountID string, direction types.VoteDirection) error
	DeleteConfessionVote(ctx context.Context, confessionID, accountID string) error
}

type AuthzInterface interface {
	CheckTenant(ctx context.Context, actor identity.Actor, tenantID, resource string) error
}
