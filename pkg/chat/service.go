// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package chat

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/canonical/edumart/internal/apperr"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/pubsub"
	"github.com/canonical/edumart/internal/storage"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/internal/types"
)

const (
	maxMessageLength = 2000
	previewLength    = 100
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	authz   AuthzInterface
	broker  pubsub.BrokerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// OpenConversation returns the conversation between the two accounts,
// creating it on first contact. The caller must be one of them.
func (s *Service) OpenConversation(ctx context.Context, actor identity.Actor, participantA, participantB string) (*types.Conversation, error) {
	ctx, span := s.tracer.Start(ctx, "chat.Service.OpenConversation")
	defer span.End()

	peerID := participantB
	switch actor.AccountID {
	case participantA:
	case participantB:
		peerID = participantA
	default:
		return nil, apperr.Unauthorized("Unauthorized access to another account")
	}

	if peerID == actor.AccountID {
		return nil, apperr.Validation("You cannot start a conversation with yourself")
	}

	peer, err := s.storage.GetAccountByID(ctx, peerID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal(err, "failed to load user")
	}

	if err := s.authz.CheckTenant(ctx, actor, peer.TenantID, "user"); err != nil {
		return nil, err
	}

	conversation, err := s.storage.GetOrCreateConversation(ctx, actor.TenantID, actor.AccountID, peer.ID)
	if err != nil {
		return nil, apperr.Internal(err, "Server error creating conversation")
	}

	return conversation, nil
}

func (s *Service) ListConversations(ctx context.Context, actor identity.Actor, accountID string) ([]*types.Conversation, error) {
	ctx, span := s.tracer.Start(ctx, "chat.Service.ListConversations")
	defer span.End()

	if err := s.authz.CheckSelf(ctx, actor, accountID); err != nil {
		return nil, err
	}

	conversations, err := s.storage.ListConversations(ctx, actor.AccountID)
	if err != nil {
		return nil, apperr.Internal(err, "Server error fetching conversations")
	}

	return conversations, nil
}

func (s *Service) ListMessages(ctx context.Context, actor identity.Actor, conversationID string) ([]*types.Message, error) {
	ctx, span := s.tracer.Start(ctx, "chat.Service.ListMessages")
	defer span.End()

	if _, err := s.conversation(ctx, actor, conversationID); err != nil {
		return nil, err
	}

	messages, err := s.storage.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, apperr.Internal(err, "Server error fetching messages")
	}

	return messages, nil
}

// SendMessage appends a message from the caller and delivers it to the room.
func (s *Service) SendMessage(ctx context.Context, actor identity.Actor, conversationID, content string) (*types.Message, error) {
	ctx, span := s.tracer.Start(ctx, "chat.Service.SendMessage")
	defer span.End()

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validation("Message content is required")
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return nil, apperr.Validation("Message cannot exceed %d characters", maxMessageLength)
	}

	if _, err := s.conversation(ctx, actor, conversationID); err != nil {
		return nil, err
	}

	return s.append(ctx, conversationID, actor.AccountID, content)
}

// Deliver posts a message on behalf of senderID into its conversation with
// recipientID, opening the conversation if needed.
func (s *Service) Deliver(ctx context.Context, tenantID, senderID, recipientID, content string) (*types.Message, error) {
	ctx, span := s.tracer.Start(ctx, "chat.Service.Deliver")
	defer span.End()

	conversation, err := s.storage.GetOrCreateConversation(ctx, tenantID, senderID, recipientID)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindDependency, "failed to open conversation")
	}

	msg, err := s.append(ctx, conversation.ID, senderID, content)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindDependency, "failed to deliver message")
	}

	return msg, nil
}

// JoinRoom subscribes the caller to live messages of the conversation and
// then snapshots its history.
func (s *Service) JoinRoom(ctx context.Context, actor identity.Actor, conversationID string) (*Room, error) {
	ctx, span := s.tracer.Start(ctx, "chat.Service.JoinRoom")
	defer span.End()

	if _, err := s.conversation(ctx, actor, conversationID); err != nil {
		return nil, err
	}

	sub, err := s.broker.Subscribe(ctx, topic(conversationID))
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindDependency, "failed to join conversation")
	}

	history, err := s.storage.ListMessages(ctx, conversationID)
	if err != nil {
		_ = sub.Close()
		return nil, apperr.Internal(err, "Server error fetching messages")
	}

	return newRoom(conversationID, sub, history), nil
}

func (s *Service) conversation(ctx context.Context, actor identity.Actor, id string) (*types.Conversation, error) {
	conversation, err := s.storage.GetConversation(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.NotFound("Conversation not found")
	}
	if err != nil {
		return nil, apperr.Internal(err, "failed to load conversation")
	}

	if err := s.authz.CheckTenant(ctx, actor, conversation.TenantID, "conversation"); err != nil {
		return nil, err
	}

	if !conversation.HasParticipant(actor.AccountID) {
		s.logger.Security().AuthzFailure(actor.AccountID, "conversation "+id)
		return nil, apperr.Unauthorized("Unauthorized access to this conversation")
	}

	return conversation, nil
}

func (s *Service) append(ctx context.Context, conversationID, senderID, content string) (*types.Message, error) {
	var msg *types.Message

	err := s.storage.WithTx(ctx, func(ctx context.Context) error {
		created, err := s.storage.CreateMessage(ctx, &types.Message{
			ConversationID: conversationID,
			SenderID:       senderID,
			Content:        content,
		})
		if err != nil {
			return err
		}

		if err := s.storage.TouchConversation(ctx, conversationID, preview(content), created.CreatedAt); err != nil {
			return err
		}

		msg = created
		return nil
	})
	if err != nil {
		return nil, apperr.Internal(err, "Server error sending message")
	}

	s.publish(ctx, msg)
	return msg, nil
}

// publish is best effort: the message is stored and shows up in history
// even when live delivery fails.
func (s *Service) publish(ctx context.Context, msg *types.Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		s.logger.Warnf("failed to encode message %s: %v", msg.ID, err)
		return
	}

	if err := s.broker.Publish(ctx, topic(msg.ConversationID), payload); err != nil {
		s.logger.Warnf("failed to publish message %s: %v", msg.ID, err)
	}
}

func preview(content string) string {
	if utf8.RuneCountInString(content) <= previewLength {
		return content
	}
	return string([]rune(content)[:previewLength])
}

func NewService(storage StorageInterface, authz AuthzInterface, broker pubsub.BrokerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.storage = storage
	s.authz = authz
	s.broker = broker

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
