// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package chat

import (
	"context"
	"time"

	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/types"
)

type ServiceInterface interface {
	OpenConversation(ctx context.Context, actor identity.Actor, participantA, participantB string) (*types.Conversation, error)
	ListConversations(ctx context.Context, actor identity.Actor, accountID string) ([]*types.Conversation, error)
	ListMessages(ctx context.Context, actor identity.Actor, conversationID string) ([]*types.Message, error)
	SendMessage(ctx context.Context, actor identity.Actor, conversationID, content string) (*types.Message, error)
	JoinRoom(ctx context.Context, actor identity.Actor, conversationID string) (*Room, error)
}

type StorageInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
	GetAccountByID(ctx context.Context, id string) (*types.Account, error)
	GetOrCreateConversation(ctx context.Context, tenantID, a, b string) (*types.Conversation, error)
	GetConversation(ctx context.Context, id string) (*types.Conversation, error)
	ListConversations(ctx context.Context, accountID string) ([]*types.Conversation, error)
	CreateMessage(ctx context.Context, m *types.Message) (*types.Message, error)
	TouchConversation(ctx context.Context, id, preview string, at time.Time) error
	ListMessages(ctx context.Context, conversationID string) ([]*types.Message, error)
}

type AuthzInterface interface {
	CheckTenant(ctx context.Context, actor identity.Actor, tenantID, resource string) error
	CheckSelf(ctx context.Context, actor identity.Actor, accountID string) error
}
