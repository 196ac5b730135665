// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package notes

import (
	"context"

	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/types"
	"github.com/canonical/edumart/pkg/ledger"
)

type ServiceInterface interface {
	ListNotes(ctx context.Context, actor identity.Actor) ([]*types.Note, error)
	UploadNote(ctx context.Context, actor identity.Actor, in *NoteInput) (*types.Note, error)
	UpdateNote(ctx context.Context, actor identity.Actor, id string, patch *NotePatch) (*types.Note, error)
	DeleteNote(ctx context.Context, actor identity.Actor, id string) error
	PurchaseNote(ctx context.Context, actor identity.Actor, id string) (*types.Purchase, error)
}

type StorageInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
	GetAccountByID(ctx context.Context, id string) (*types.Account, error)
	CreateNote(ctx context.Context, n *types.Note) (*types.Note, error)
	GetNote(ctx context.Context, id string) (*types.Note, error)
	ListNotes(ctx context.Context, tenantID string) ([]*types.Note, error)
	UpdateNote(ctx context.Context, n *types.Note) (*types.Note, error)
	DeleteNote(ctx context.Context, id string) error
	AddNotePurchase(ctx context.Context, noteID, accountID string, price int) (bool, error)
}

type AuthzInterface interface {
	CheckTenant(ctx context.Context, actor identity.Actor, tenantID, resource string) error
	CheckOwner(ctx context.Context, actor identity.Actor, tenantID, ownerID, resource string) error
}

type LedgerInterface interface {
	Transfer(ctx context.Context, fromID, toID string, amount int, reason ledger.Reason) (int, error)
}

type NotifierInterface interface {
	Broadcast(ctx context.Context, tenantID string, kind types.NotificationKind, message string) (*types.Notification, error)
}

type MessengerInterface interface {
	Deliver(ctx context.Context, tenantID, senderID, recipientID, content string) (*types.Message, error)
}
