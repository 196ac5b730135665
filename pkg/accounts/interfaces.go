// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

import (
	"context"

	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/types"
)

type ServiceInterface interface {
	RegisterSchool(ctx context.Context, in *SchoolRegistration) (*Session, error)
	RegisterStudent(ctx context.Context, in *StudentRegistration) (*Session, error)
	Login(ctx context.Context, in *Credentials) (*Session, error)
	Me(ctx context.Context, actor identity.Actor) (*types.Account, error)
}

type StorageInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
	CreateSchool(ctx context.Context, school *types.School) (*types.School, error)
	GetSchoolByID(ctx context.Context, id string) (*types.School, error)
	GetSchoolByJoinCode(ctx context.Context, code string) (*types.School, error)
	CreateAccount(ctx context.Context, a *types.Account) (*types.Account, error)
	GetAccountByID(ctx context.Context, id string) (*types.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*types.Account, error)
}

type TokenIssuerInterface interface {
	IssueToken(ctx context.Context, account *types.Account) (string, error)
}
