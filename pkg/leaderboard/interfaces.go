// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package leaderboard

import (
	"context"

	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/types"
)

type ServiceInterface interface {
	Standings(ctx context.Context, actor identity.Actor) ([]*types.LeaderboardEntry, error)
}

type StorageInterface interface {
	CohortTotals(ctx context.Context, tenantID string) ([]*types.LeaderboardEntry, error)
}
