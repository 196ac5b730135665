// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/edumart/internal/types"
)

var clubColumns = []string{
	"c.id", "c.tenant_id", "c.founder_id", "a.name", "c.name", "c.description", "c.created_at",
	"(SELECT COALESCE(string_agg(cm.account_id::text, ',' ORDER BY cm.joined_at), '') FROM club_members cm WHERE cm.club_id = c.id)",
}

func scanClub(row scanner) (*types.Club, error) {
	var (
		c       types.Club
		members string
	)
	err := row.Scan(&c.ID, &c.TenantID, &c.FounderID, &c.FounderName, &c.Name, &c.Description, &c.CreatedAt, &members)
	if err != nil {
		return nil, err
	}
	c.MemberIDs = splitIDs(members)
	return &c, nil
}

func (s *Storage) CreateClub(ctx context.Context, c *types.Club) (*types.Club, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateClub")
	defer span.End()

	id, err := newID("club")
	if err != nil {
		return nil, err
	}

	_, err = s.db.Statement(ctx).
		Insert("clubs").
		Columns("id", "tenant_id", "founder_id", "name", "description").
		Values(id, c.TenantID, c.FounderID, c.Name, c.Description).
		ExecContext(ctx)

	if err != nil {
		return nil, mapWriteError(err, "insert club")
	}

	return s.GetClub(ctx, id)
}

func (s *Storage) GetClub(ctx context.Context, id string) (*types.Club, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetClub")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(clubColumns...).
		From("clubs c").
		Join("accounts a ON a.id = c.founder_id").
		Where(sq.Eq{"c.id": id}).
		QueryRowContext(ctx)

	c, err := scanClub(row)
	if err != nil {
		return nil, mapReadError(err, "get club")
	}
	return c, nil
}

// ListClubs returns the school's clubs, newest first.
func (s *Storage) ListClubs(ctx context.Context, tenantID string) ([]*types.Club, error) {
	return s.listClubs(ctx, tenantID, "c.created_at DESC")
}

// ListClubsByName returns the school's clubs in alphabetical order.
func (s *Storage) ListClubsByName(ctx context.Context, tenantID string) ([]*types.Club, error) {
	return s.listClubs(ctx, tenantID, "c.name ASC")
}

func (s *Storage) listClubs(ctx context.Context, tenantID, order string) ([]*types.Club, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListClubs")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(clubColumns...).
		From("clubs c").
		Join("accounts a ON a.id = c.founder_id").
		Where(sq.Eq{"c.tenant_id": tenantID}).
		OrderBy(order).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	defer rows.Close()

	clubs := make([]*types.Club, 0)
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan club: %w", err)
		}
		clubs = append(clubs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return clubs, nil
}

// ListMembersOfClub returns the members of one club in joining order.
func (s *Storage) ListMembersOfClub(ctx context.Context, clubID string) ([]types.Member, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembersOfClub")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("a.id", "a.name").
		From("club_members cm").
		Join("accounts a ON a.id = cm.account_id").
		Where(sq.Eq{"cm.club_id": clubID}).
		OrderBy("cm.joined_at ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list club members: %w", err)
	}
	defer rows.Close()

	members := make([]types.Member, 0)
	for rows.Next() {
		var m types.Member
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan club member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}

// ListClubMembers returns the members of every club in the school keyed by club id.
func (s *Storage) ListClubMembers(ctx context.Context, tenantID string) (map[string][]types.Member, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListClubMembers")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("cm.club_id", "a.id", "a.name").
		From("club_members cm").
		Join("clubs c ON c.id = cm.club_id").
		Join("accounts a ON a.id = cm.account_id").
		Where(sq.Eq{"c.tenant_id": tenantID}).
		OrderBy("cm.joined_at ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list club members: %w", err)
	}
	defer rows.Close()

	members := make(map[string][]types.Member)
	for rows.Next() {
		var clubID string
		var m types.Member
		if err := rows.Scan(&clubID, &m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan club member: %w", err)
		}
		members[clubID] = append(members[clubID], m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}

// AddClubMember returns false when the account was already a member.
func (s *Storage) AddClubMember(ctx context.Context, clubID, accountID string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddClubMember")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Insert("club_members").
		Columns("club_id", "account_id").
		Values(clubID, accountID).
		Suffix("ON CONFLICT (club_id, account_id) DO NOTHING").
		ExecContext(ctx)

	if err != nil {
		return false, mapWriteError(err, "insert club member")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows == 1, nil
}

// RemoveClubMember returns false when the account was not a member.
func (s *Storage) RemoveClubMember(ctx context.Context, clubID, accountID string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.RemoveClubMember")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("club_members").
		Where(sq.Eq{"club_id": clubID, "account_id": accountID}).
		ExecContext(ctx)

	if err != nil {
		return false, mapWriteError(err, "delete club member")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows == 1, nil
}

func (s *Storage) DeleteClub(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteClub")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Delete("clubs").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return mapWriteError(err, "delete club")
	}
	return nil
}

func (s *Storage) CountClubs(ctx context.Context, tenantID string) (int, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CountClubs")
	defer span.End()

	return s.count(ctx, "clubs", sq.Eq{"tenant_id": tenantID})
}

func (s *Storage) CreateClubPost(ctx context.Context, p *types.ClubPost) (*types.ClubPost, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateClubPost")
	defer span.End()

	id, err := newID("club post")
	if err != nil {
		return nil, err
	}

	created := *p
	err = s.db.Statement(ctx).
		Insert("club_posts").
		Columns("id", "club_id", "tenant_id", "author_id", "content").
		Values(id, p.ClubID, p.TenantID, p.AuthorID, p.Content).
		Suffix("RETURNING id, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.CreatedAt)

	if err != nil {
		return nil, mapWriteError(err, "insert club post")
	}
	return &created, nil
}

// ListClubPosts returns the club wall in chronological order.
func (s *Storage) ListClubPosts(ctx context.Context, clubID string) ([]*types.ClubPost, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListClubPosts")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("p.id", "p.club_id", "p.tenant_id", "p.author_id", "a.name", "p.content", "p.created_at").
		From("club_posts p").
		Join("accounts a ON a.id = p.author_id").
		Where(sq.Eq{"p.club_id": clubID}).
		OrderBy("p.created_at ASC", "p.id ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list club posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*types.ClubPost, 0)
	for rows.Next() {
		var p types.ClubPost
		if err := rows.Scan(&p.ID, &p.ClubID, &p.TenantID, &p.AuthorID, &p.AuthorName, &p.Content, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan club post: %w", err)
		}
		posts = append(posts, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return posts, nil
}
