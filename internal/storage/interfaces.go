// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"time"

	"github.com/canonical/edumart/internal/types"
)

type StorageInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error

	CreateSchool(ctx context.Context, school *types.School) (*types.School, error)
	GetSchoolByJoinCode(ctx context.Context, code string) (*types.School, error)
	GetSchoolByID(ctx context.Context, id string) (*types.School, error)
	CreateAccount(ctx context.Context, a *types.Account) (*types.Account, error)
	GetAccountByID(ctx context.Context, id string) (*types.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*types.Account, error)
	ListStudents(ctx context.Context, tenantID string) ([]*types.Account, error)
	ToggleSuspended(ctx context.Context, id string) (bool, error)
	AdjustPoints(ctx context.Context, id string, delta int) (int, error)
	DebitPoints(ctx context.Context, id string, amount int) (int, error)
	CohortTotals(ctx context.Context, tenantID string) ([]*types.LeaderboardEntry, error)
	CountStudents(ctx context.Context, tenantID string) (int, error)
	CreateListing(ctx context.Context, l *types.Listing) (*types.Listing, error)
	GetListing(ctx context.Context, id string) (*types.Listing, error)
	ListListings(ctx context.Context, tenantID string) ([]*types.Listing, error)
	UpdateListing(ctx context.Context, l *types.Listing) (*types.Listing, error)
	DeleteListing(ctx context.Context, id string) error
	CountListings(ctx context.Context, tenantID string) (int, error)
	CreateNote(ctx context.Context, n *types.Note) (*types.Note, error)
	GetNote(ctx context.Context, id string) (*types.Note, error)
	ListNotes(ctx context.Context, tenantID string) ([]*types.Note, error)
	UpdateNote(ctx context.Context, n *types.Note) (*types.Note, error)
	DeleteNote(ctx context.Context, id string) error
	AddNotePurchase(ctx context.Context, noteID, accountID string, price int) (bool, error)
	CreateClub(ctx context.Context, c *types.Club) (*types.Club, error)
	GetClub(ctx context.Context, id string) (*types.Club, error)
	ListClubs(ctx context.Context, tenantID string) ([]*types.Club, error)
	ListClubsByName(ctx context.Context, tenantID string) ([]*types.Club, error)
	ListClubMembers(ctx context.Context, tenantID string) (map[string][]types.Member, error)
	ListMembersOfClub(ctx context.Context, clubID string) ([]types.Member, error)
	AddClubMember(ctx context.Context, clubID, accountID string) (bool, error)
	RemoveClubMember(ctx context.Context, clubID, accountID string) (bool, error)
	DeleteClub(ctx context.Context, id string) error
	CountClubs(ctx context.Context, tenantID string) (int, error)
	CreateClubPost(ctx context.Context, p *types.ClubPost) (*types.ClubPost, error)
	ListClubPosts(ctx context.Context, clubID string) ([]*types.ClubPost, error)
	CreateConfession(ctx context.Context, c *types.Confession) (*types.Confession, error)
	GetConfession(ctx context.Context, id, viewerID string) (*types.Confession, error)
	ListConfessions(ctx context.Context, tenantID, viewerID string) ([]*types.Confession, error)
	CastConfessionVote(ctx context.Context, confessionID, accountID string, direction types.VoteDirection) (types.VoteDirection, bool, error)
	SetConfessionVote(ctx context.Context, confessionID, accountID string, direction types.VoteDirection) error
	DeleteConfessionVote(ctx context.Context, confessionID, accountID string) error
	CountConfessionsSince(ctx context.Context, tenantID string, since time.Time) (int, error)
	CreatePoll(ctx context.Context, p *types.Poll) (*types.Poll, error)
	GetPoll(ctx context.Context, id string) (*types.Poll, error)
	ListPolls(ctx context.Context, tenantID string) ([]*types.Poll, error)
	RecordPollVote(ctx context.Context, pollID, accountID string, position int) (bool, error)
	IncrementPollOption(ctx context.Context, pollID string, position int) error
	SetPollExpiry(ctx context.Context, id string, at time.Time) error
	CreateNotification(ctx context.Context, n *types.Notification) (*types.Notification, error)
	GetNotification(ctx context.Context, id, accountID string) (*types.Notification, error)
	ListNotificationFeed(ctx context.Context, accountID, tenantID string, limit uint64) ([]*types.Notification, error)
	MarkPersonalRead(ctx context.Context, id, accountID string) error
	AddBroadcastRead(ctx context.Context, id, accountID string) error
	MarkAllPersonalRead(ctx context.Context, accountID string) (int64, error)
	MarkAllBroadcastsRead(ctx context.Context, accountID, tenantID string) (int64, error)
	GetOrCreateConversation(ctx context.Context, tenantID, a, b string) (*types.Conversation, error)
	GetConversation(ctx context.Context, id string) (*types.Conversation, error)
	ListConversations(ctx context.Context, accountID string) ([]*types.Conversation, error)
	CreateMessage(ctx context.Context, m *types.Message) (*types.Message, error)
	TouchConversation(ctx context.Context, id, preview string, at time.Time) error
	ListMessages(ctx context.Context, conversationID string) ([]*types.Message, error)
}
