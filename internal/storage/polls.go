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

var pollColumns = []string{
	"p.id", "p.tenant_id", "p.creator_id", "a.name", "p.question", "p.expires_at", "p.created_at",
	"(SELECT COALESCE(string_agg(pv.account_id::text, ',' ORDER BY pv.created_at), '') FROM poll_votes pv WHERE pv.poll_id = p.id)",
}

func scanPoll(row scanner) (*types.Poll, error) {
	var (
		p      types.Poll
		voters string
	)
	if err := row.Scan(&p.ID, &p.TenantID, &p.CreatorID, &p.CreatorName, &p.Question, &p.ExpiresAt, &p.CreatedAt, &voters); err != nil {
		return nil, err
	}
	p.VotedAccountIDs = splitIDs(voters)
	p.Options = []types.PollOption{}
	return &p, nil
}

// CreatePoll stores the poll and its options in the order given.
func (s *Storage) CreatePoll(ctx context.Context, p *types.Poll) (*types.Poll, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreatePoll")
	defer span.End()

	id, err := newID("poll")
	if err != nil {
		return nil, err
	}

	_, err = s.db.Statement(ctx).
		Insert("polls").
		Columns("id", "tenant_id", "creator_id", "question", "expires_at").
		Values(id, p.TenantID, p.CreatorID, p.Question, p.ExpiresAt).
		ExecContext(ctx)

	if err != nil {
		return nil, mapWriteError(err, "insert poll")
	}

	options := s.db.Statement(ctx).
		Insert("poll_options").
		Columns("poll_id", "position", "text")
	for i, o := range p.Options {
		options = options.Values(id, i, o.Text)
	}

	if _, err := options.ExecContext(ctx); err != nil {
		return nil, mapWriteError(err, "insert poll options")
	}

	return s.GetPoll(ctx, id)
}

func (s *Storage) GetPoll(ctx context.Context, id string) (*types.Poll, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetPoll")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(pollColumns...).
		From("polls p").
		Join("accounts a ON a.id = p.creator_id").
		Where(sq.Eq{"p.id": id}).
		QueryRowContext(ctx)

	p, err := scanPoll(row)
	if err != nil {
		return nil, mapReadError(err, "get poll")
	}

	options, err := s.pollOptions(ctx, sq.Eq{"o.poll_id": id})
	if err != nil {
		return nil, err
	}
	p.Options = append(p.Options, options[id]...)

	return p, nil
}

func (s *Storage) ListPolls(ctx context.Context, tenantID string) ([]*types.Poll, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListPolls")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(pollColumns...).
		From("polls p").
		Join("accounts a ON a.id = p.creator_id").
		Where(sq.Eq{"p.tenant_id": tenantID}).
		OrderBy("p.created_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	defer rows.Close()

	polls := make([]*types.Poll, 0)
	for rows.Next() {
		p, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	options, err := s.pollOptions(ctx, sq.Eq{"p.tenant_id": tenantID})
	if err != nil {
		return nil, err
	}

	for _, p := range polls {
		p.Options = append(p.Options, options[p.ID]...)
	}

	return polls, nil
}

// pollOptions returns options keyed by poll id, each slice ordered by position.
func (s *Storage) pollOptions(ctx context.Context, where sq.Sqlizer) (map[string][]types.PollOption, error) {
	rows, err := s.db.Statement(ctx).
		Select("o.poll_id", "o.position", "o.text", "o.vote_count").
		From("poll_options o").
		Join("polls p ON p.id = o.poll_id").
		Where(where).
		OrderBy("o.poll_id", "o.position ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list poll options: %w", err)
	}
	defer rows.Close()

	options := make(map[string][]types.PollOption)
	for rows.Next() {
		var pollID string
		var o types.PollOption
		if err := rows.Scan(&pollID, &o.Index, &o.Text, &o.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan poll option: %w", err)
		}
		options[pollID] = append(options[pollID], o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return options, nil
}

// RecordPollVote returns false when the account had already voted on the poll.
func (s *Storage) RecordPollVote(ctx context.Context, pollID, accountID string, position int) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.RecordPollVote")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Insert("poll_votes").
		Columns("poll_id", "account_id", "position").
		Values(pollID, accountID, position).
		Suffix("ON CONFLICT (poll_id, account_id) DO NOTHING").
		ExecContext(ctx)

	if err != nil {
		return false, mapWriteError(err, "insert poll vote")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows == 1, nil
}

func (s *Storage) IncrementPollOption(ctx context.Context, pollID string, position int) error {
	ctx, span := s.tracer.Start(ctx, "storage.IncrementPollOption")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("poll_options").
		Set("vote_count", sq.Expr("vote_count + 1")).
		Where(sq.Eq{"poll_id": pollID, "position": position}).
		ExecContext(ctx)

	if err != nil {
		return mapWriteError(err, "increment poll option")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPollExpiry moves the poll's expiry, which closes it when at is now.
func (s *Storage) SetPollExpiry(ctx context.Context, id string, at time.Time) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetPollExpiry")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("polls").
		Set("expires_at", at).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return mapWriteError(err, "update poll expiry")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
