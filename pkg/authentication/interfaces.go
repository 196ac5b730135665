// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/canonical/edumart/internal/types"
)

type TokenIssuerInterface interface {
	// IssueToken signs a token carrying the account's identity claims
	IssueToken(ctx context.Context, account *types.Account) (string, error)
}

type TokenVerifierInterface interface {
	// VerifyToken verifies a raw JWT string and returns its claims
	VerifyToken(ctx context.Context, rawToken string) (*Claims, error)
}

type AccountStorageInterface interface {
	GetAccountByID(ctx context.Context, id string) (*types.Account, error)
}
