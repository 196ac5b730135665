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

func directionValue(d types.VoteDirection) int {
	switch d {
	case types.VoteUp:
		return 1
	case types.VoteDown:
		return -1
	}
	return 0
}

func directionFromValue(v int) types.VoteDirection {
	switch v {
	case 1:
		return types.VoteUp
	case -1:
		return types.VoteDown
	}
	return types.VoteNone
}

// confessionQuery selects confessions with their tallies and the viewer's own vote.
func (s *Storage) confessionQuery(ctx context.Context, viewerID string) sq.SelectBuilder {
	return s.db.Statement(ctx).
		Select(
			"c.id", "c.tenant_id", "c.content", "c.created_at",
			"(SELECT COUNT(*) FROM confession_votes v WHERE v.confession_id = c.id AND v.direction = 1)",
			"(SELECT COUNT(*) FROM confession_votes v WHERE v.confession_id = c.id AND v.direction = -1)",
		).
		Column(sq.Expr("COALESCE((SELECT v.direction FROM confession_votes v WHERE v.confession_id = c.id AND v.account_id = ?), 0)", viewerID)).
		From("confessions c")
}

func scanConfession(row scanner) (*types.Confession, error) {
	var (
		c      types.Confession
		myVote int
	)
	if err := row.Scan(&c.ID, &c.TenantID, &c.Content, &c.CreatedAt, &c.Upvotes, &c.Downvotes, &myVote); err != nil {
		return nil, err
	}
	c.VoteScore = c.Upvotes - c.Downvotes
	c.MyVote = directionFromValue(myVote)
	return &c, nil
}

func (s *Storage) CreateConfession(ctx context.Context, c *types.Confession) (*types.Confession, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateConfession")
	defer span.End()

	id, err := newID("confession")
	if err != nil {
		return nil, err
	}

	created := types.Confession{TenantID: c.TenantID, Content: c.Content}
	err = s.db.Statement(ctx).
		Insert("confessions").
		Columns("id", "tenant_id", "content").
		Values(id, c.TenantID, c.Content).
		Suffix("RETURNING id, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.CreatedAt)

	if err != nil {
		return nil, mapWriteError(err, "insert confession")
	}
	return &created, nil
}

// GetConfession loads a confession as seen by viewerID.
func (s *Storage) GetConfession(ctx context.Context, id, viewerID string) (*types.Confession, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetConfession")
	defer span.End()

	row := s.confessionQuery(ctx, viewerID).
		Where(sq.Eq{"c.id": id}).
		QueryRowContext(ctx)

	c, err := scanConfession(row)
	if err != nil {
		return nil, mapReadError(err, "get confession")
	}
	return c, nil
}

func (s *Storage) ListConfessions(ctx context.Context, tenantID, viewerID string) ([]*types.Confession, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListConfessions")
	defer span.End()

	rows, err := s.confessionQuery(ctx, viewerID).
		Where(sq.Eq{"c.tenant_id": tenantID}).
		OrderBy("c.created_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list confessions: %w", err)
	}
	defer rows.Close()

	confessions := make([]*types.Confession, 0)
	for rows.Next() {
		c, err := scanConfession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan confession: %w", err)
		}
		confessions = append(confessions, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return confessions, nil
}

// CastConfessionVote records direction when the account has not voted on the
// confession yet. Otherwise the existing vote is left untouched, locked until
// the transaction ends and returned with inserted set to false.
func (s *Storage) CastConfessionVote(ctx context.Context, confessionID, accountID string, direction types.VoteDirection) (types.VoteDirection, bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CastConfessionVote")
	defer span.End()

	var (
		current  int
		inserted bool
	)
	err := s.db.Statement(ctx).
		Insert("confession_votes").
		Columns("confession_id", "account_id", "direction").
		Values(confessionID, accountID, directionValue(direction)).
		// the no-op update takes the row lock, xmax is 0 only on a fresh insert
		Suffix("ON CONFLICT (confession_id, account_id) DO UPDATE SET direction = confession_votes.direction RETURNING direction, xmax = 0").
		QueryRowContext(ctx).
		Scan(&current, &inserted)

	if err != nil {
		return types.VoteNone, false, mapWriteError(err, "cast confession vote")
	}
	return directionFromValue(current), inserted, nil
}

// SetConfessionVote stores direction as the account's only vote on the confession.
func (s *Storage) SetConfessionVote(ctx context.Context, confessionID, accountID string, direction types.VoteDirection) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetConfessionVote")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert("confession_votes").
		Columns("confession_id", "account_id", "direction").
		Values(confessionID, accountID, directionValue(direction)).
		Suffix("ON CONFLICT (confession_id, account_id) DO UPDATE SET direction = EXCLUDED.direction").
		ExecContext(ctx)

	if err != nil {
		return mapWriteError(err, "upsert confession vote")
	}
	return nil
}

func (s *Storage) DeleteConfessionVote(ctx context.Context, confessionID, accountID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteConfessionVote")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Delete("confession_votes").
		Where(sq.Eq{"confession_id": confessionID, "account_id": accountID}).
		ExecContext(ctx)

	if err != nil {
		return mapWriteError(err, "delete confession vote")
	}
	return nil
}

func (s *Storage) CountConfessionsSince(ctx context.Context, tenantID string, since time.Time) (int, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CountConfessionsSince")
	defer span.End()

	return s.count(ctx, "confessions", sq.And{
		sq.Eq{"tenant_id": tenantID},
		sq.GtOrEq{"created_at": since},
	})
}
