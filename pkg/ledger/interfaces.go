// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ledger

import (
	"context"

	"github.com/canonical/edumart/internal/types"
)

type StorageInterface interface {
	GetAccountByID(ctx context.Context, id string) (*types.Account, error)
	AdjustPoints(ctx context.Context, id string, delta int) (int, error)
	DebitPoints(ctx context.Context, id string, amount int) (int, error)
}
