// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/edumart/internal/types"
)

var conversationColumns = []string{
	"c.id", "c.tenant_id", "c.participant_low", "lo.name", "c.participant_high", "hi.name",
	"c.last_message", "c.created_at", "c.updated_at",
}

func (s *Storage) conversationQuery(ctx context.Context) sq.SelectBuilder {
	return s.db.Statement(ctx).
		Select(conversationColumns...).
		From("conversations c").
		Join("accounts lo ON lo.id = c.participant_low").
		Join("accounts hi ON hi.id = c.participant_high")
}

func scanConversation(row scanner) (*types.Conversation, error) {
	var (
		c      types.Conversation
		lo, hi types.Member
	)
	err := row.Scan(&c.ID, &c.TenantID, &lo.ID, &lo.Name, &hi.ID, &hi.Name, &c.LastMessage, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.ParticipantIDs = []string{lo.ID, hi.ID}
	c.Participants = []types.Member{lo, hi}
	return &c, nil
}

// GetOrCreateConversation returns the single conversation between a and b,
// creating it on first use. Argument order does not matter.
func (s *Storage) GetOrCreateConversation(ctx context.Context, tenantID, a, b string) (*types.Conversation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetOrCreateConversation")
	defer span.End()

	low, high := orderedPair(a, b)

	id, err := newID("conversation")
	if err != nil {
		return nil, err
	}

	_, err = s.db.Statement(ctx).
		Insert("conversations").
		Columns("id", "tenant_id", "participant_low", "participant_high").
		Values(id, tenantID, low, high).
		Suffix("ON CONFLICT (participant_low, participant_high) DO NOTHING").
		ExecContext(ctx)

	if err != nil {
		return nil, mapWriteError(err, "insert conversation")
	}

	row := s.conversationQuery(ctx).
		Where(sq.Eq{"c.participant_low": low, "c.participant_high": high}).
		QueryRowContext(ctx)

	c, err := scanConversation(row)
	if err != nil {
		return nil, mapReadError(err, "get conversation")
	}
	return c, nil
}

func (s *Storage) GetConversation(ctx context.Context, id string) (*types.Conversation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetConversation")
	defer span.End()

	row := s.conversationQuery(ctx).
		Where(sq.Eq{"c.id": id}).
		QueryRowContext(ctx)

	c, err := scanConversation(row)
	if err != nil {
		return nil, mapReadError(err, "get conversation")
	}
	return c, nil
}

// ListConversations returns the account's conversations, most recently active first.
func (s *Storage) ListConversations(ctx context.Context, accountID string) ([]*types.Conversation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListConversations")
	defer span.End()

	rows, err := s.conversationQuery(ctx).
		Where(sq.Or{sq.Eq{"c.participant_low": accountID}, sq.Eq{"c.participant_high": accountID}}).
		OrderBy("c.updated_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	conversations := make([]*types.Conversation, 0)
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conversations = append(conversations, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return conversations, nil
}

func (s *Storage) CreateMessage(ctx context.Context, m *types.Message) (*types.Message, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateMessage")
	defer span.End()

	id, err := newID("message")
	if err != nil {
		return nil, err
	}

	created := *m
	err = s.db.Statement(ctx).
		Insert("messages").
		Columns("id", "conversation_id", "sender_id", "content").
		Values(id, m.ConversationID, m.SenderID, m.Content).
		Suffix("RETURNING id, created_at, (SELECT name FROM accounts WHERE id = sender_id)").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.CreatedAt, &created.SenderName)

	if err != nil {
		return nil, mapWriteError(err, "insert message")
	}
	return &created, nil
}

// TouchConversation records the latest message preview and activity time.
func (s *Storage) TouchConversation(ctx context.Context, id, preview string, at time.Time) error {
	ctx, span := s.tracer.Start(ctx, "storage.TouchConversation")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Update("conversations").
		Set("last_message", preview).
		Set("updated_at", at).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return mapWriteError(err, "update conversation")
	}
	return nil
}

// ListMessages returns the full history of a conversation, oldest first.
func (s *Storage) ListMessages(ctx context.Context, conversationID string) ([]*types.Message, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMessages")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("m.id", "m.conversation_id", "m.sender_id", "a.name", "m.content", "m.created_at").
		From("messages m").
		Join("accounts a ON a.id = m.sender_id").
		Where(sq.Eq{"m.conversation_id": conversationID}).
		OrderBy("m.created_at ASC", "m.id ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*types.Message, 0)
	for rows.Next() {
		var m types.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.SenderName, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return messages, nil
}
