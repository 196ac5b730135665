// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package polls

import (
	"context"
	"time"

	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/types"
	"github.com/canonical/edumart/pkg/ledger"
)

type ServiceInterface interface {
	ListPolls(ctx context.Context, actor identity.Actor) ([]*types.Poll, error)
	GetPoll(ctx context.Context, actor identity.Actor, id string) (*types.Poll, error)
	CreatePoll(ctx context.Context, actor identity.Actor, in *PollInput) (*types.Poll, error)
	Vote(ctx context.Context, actor identity.Actor, id string, optionIndex int) (*types.Poll, error)
	EndPoll(ctx context.Context, actor identity.Actor, id string) (*types.Poll, error)
}

type StorageInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
	GetAccountByID(ctx context.Context, id string) (*types.Account, error)
	CreatePoll(ctx context.Context, p *types.Poll) (*types.Poll, error)
	GetPoll(ctx context.Context, id string) (*types.Poll, error)
	ListPolls(ctx context.Context, tenantID string) ([]*types.Poll, error)
	RecordPollVote(ctx context.Context, pollID, accountID string, position int) (bool, error)
	IncrementPollOption(ctx context.Context, pollID string, position int) error
	SetPollExpiry(ctx context.Context, id string, at time.Time) error
}

type AuthzInterface interface {
	CheckTenant(ctx context.Context, actor identity.Actor, tenantID, resource string) error
}

type LedgerInterface interface {
	Credit(ctx context.Context, accountID string, amount int, reason ledger.Reason) (int, error)
}

type NotifierInterface interface {
	Notify(ctx context.Context, tenantID, recipientID string, kind types.NotificationKind, message string) (*types.Notification, error)
	Broadcast(ctx context.Context, tenantID string, kind types.NotificationKind, message string) (*types.Notification, error)
}
