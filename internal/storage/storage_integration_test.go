// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/canonical/edumart/internal/db"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/internal/types"
	"github.com/canonical/edumart/migrations"
)

const postgresImage = "postgres:16-alpine"

var (
	pgOnce     sync.Once
	pgStorage  *Storage
	pgErr      error
	pgTeardown func()
)

func TestMain(m *testing.M) {
	code := m.Run()

	if pgTeardown != nil {
		pgTeardown()
	}

	os.Exit(code)
}

func startPostgres(ctx context.Context) (*Storage, func(), error) {
	ctr, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase("edumart"),
		postgres.WithUsername("edumart"),
		postgres.WithPassword("edumart"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start postgres: %w", err)
	}

	terminate := func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			fmt.Printf("failed to terminate postgres container: %v\n", err)
		}
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		terminate()
		return nil, nil, fmt.Errorf("failed to read postgres dsn: %w", err)
	}

	if err := migrateUp(ctx, dsn); err != nil {
		terminate()
		return nil, nil, err
	}

	client, err := db.NewDBClient(
		db.Config{
			DSN:             dsn,
			MaxConns:        16,
			MinConns:        1,
			MaxConnLifetime: time.Hour,
			MaxConnIdleTime: time.Minute,
			TxTimeout:       10 * time.Second,
		},
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor("test"),
		logging.NewNoopLogger(),
	)
	if err != nil {
		terminate()
		return nil, nil, err
	}

	s := NewStorage(client, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

	return s, func() {
		client.Close()
		terminate()
	}, nil
}

func migrateUp(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.EmbedMigrations, goose.WithLogger(goose.NopLogger()))
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// newPostgresStorage returns a Storage backed by a migrated postgres container
// shared by the whole package run.
func newPostgresStorage(t *testing.T) *Storage {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres storage tests in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	pgOnce.Do(func() {
		pgStorage, pgTeardown, pgErr = startPostgres(context.Background())
	})
	require.NoError(t, pgErr)

	return pgStorage
}

// school is one isolated tenant; every test seeds its own so tests never
// observe each other's rows.
type school struct {
	s  *Storage
	id string
}

func newSchool(t *testing.T) *school {
	t.Helper()

	s := newPostgresStorage(t)
	code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])

	created, err := s.CreateSchool(context.Background(), &types.School{Name: "Hillside " + code, JoinCode: code})
	require.NoError(t, err)

	return &school{s: s, id: created.ID}
}

func (sc *school) student(t *testing.T, name, cohort string, points int) *types.Account {
	t.Helper()

	a, err := sc.s.CreateAccount(context.Background(), &types.Account{
		TenantID:     sc.id,
		Name:         name,
		Email:        fmt.Sprintf("%s-%s@example.com", strings.ToLower(name), uuid.NewString()),
		PasswordHash: "x",
		Kind:         types.KindStudent,
		Points:       points,
		Cohort:       cohort,
	})
	require.NoError(t, err)
	return a
}

func (sc *school) note(t *testing.T, author *types.Account, price int) *types.Note {
	t.Helper()

	n, err := sc.s.CreateNote(context.Background(), &types.Note{
		TenantID:   sc.id,
		AuthorID:   author.ID,
		Title:      "Organic chemistry",
		Subject:    "Chemistry",
		ContentURL: "https://example.com/notes/chem.pdf",
		Price:      price,
	})
	require.NoError(t, err)
	return n
}

func (sc *school) points(t *testing.T, id string) int {
	t.Helper()

	a, err := sc.s.GetAccountByID(context.Background(), id)
	require.NoError(t, err)
	return a.Points
}

func TestPostgresNotePurchaseIsRecordedOnce(t *testing.T) {
	sc := newSchool(t)
	ctx := context.Background()

	author := sc.student(t, "Ana", "Red", 100)
	buyer := sc.student(t, "Ben", "Blue", 100)
	n := sc.note(t, author, 30)

	added, err := sc.s.AddNotePurchase(ctx, n.ID, buyer.ID, n.Price)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = sc.s.AddNotePurchase(ctx, n.ID, buyer.ID, n.Price)
	require.NoError(t, err)
	assert.False(t, added, "second purchase of the same note must be a no-op")

	a, err := sc.s.GetAccountByID(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{n.ID}, a.UnlockedNoteIDs)

	got, err := sc.s.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{buyer.ID}, got.PurchaserIDs)
}

func TestPostgresConcurrentNotePurchaseChargesOnce(t *testing.T) {
	sc := newSchool(t)
	ctx := context.Background()

	author := sc.student(t, "Ana", "Red", 100)
	buyer := sc.student(t, "Ben", "Blue", 100)
	n := sc.note(t, author, 30)

	errAlreadyOwned := errors.New("already owned")

	const attempts = 8
	results := make(chan error, attempts)
	start := make(chan struct{})

	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			results <- sc.s.WithTx(ctx, func(ctx context.Context) error {
				added, err := sc.s.AddNotePurchase(ctx, n.ID, buyer.ID, n.Price)
				if err != nil {
					return err
				}
				if !added {
					return errAlreadyOwned
				}
				if _, err := sc.s.DebitPoints(ctx, buyer.ID, n.Price); err != nil {
					return err
				}
				_, err = sc.s.AdjustPoints(ctx, author.ID, n.Price)
				return err
			})
		}()
	}

	close(start)
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, errAlreadyOwned)
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 70, sc.points(t, buyer.ID))
	assert.Equal(t, 130, sc.points(t, author.ID))

	got, err := sc.s.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.Len(t, got.PurchaserIDs, 1)
}

func TestPostgresDebitPoints(t *testing.T) {
	tests := []struct {
		name            string
		balance         int
		amount          int
		missing         bool
		expectedErr     error
		expectedBalance int
	}{
		{
			name:            "within balance",
			balance:         100,
			amount:          30,
			expectedBalance: 70,
		},
		{
			name:            "exact balance",
			balance:         30,
			amount:          30,
			expectedBalance: 0,
		},
		{
			name:            "insufficient balance",
			balance:         20,
			amount:          30,
			expectedErr:     ErrConditionFailed,
			expectedBalance: 20,
		},
		{
			name:        "unknown account",
			amount:      30,
			missing:     true,
			expectedErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newSchool(t)
			ctx := context.Background()

			id := uuid.NewString()
			if !tt.missing {
				id = sc.student(t, "Ana", "", tt.balance).ID
			}

			balance, err := sc.s.DebitPoints(ctx, id, tt.amount)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedBalance, balance)
			}

			if !tt.missing {
				assert.Equal(t, tt.expectedBalance, sc.points(t, id))
			}
		})
	}
}

func TestPostgresWithTxRollsBack(t *testing.T) {
	sc := newSchool(t)
	ctx := context.Background()

	a := sc.student(t, "Ana", "", 100)
	boom := errors.New("boom")

	err := sc.s.WithTx(ctx, func(ctx context.Context) error {
		if _, err := sc.s.AdjustPoints(ctx, a.ID, 50); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.Equal(t, 100, sc.points(t, a.ID))
}

func TestPostgresPollVoteIsRecordedOnce(t *testing.T) {
	sc := newSchool(t)
	ctx := context.Background()

	creator := sc.student(t, "Ana", "", 100)
	voter := sc.student(t, "Ben", "", 100)

	p, err := sc.s.CreatePoll(ctx, &types.Poll{
		TenantID:  sc.id,
		CreatorID: creator.ID,
		Question:  "Prom theme?",
		Options:   []types.PollOption{{Text: "Space"}, {Text: "Jungle"}},
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	require.Len(t, p.Options, 2)

	added, err := sc.s.RecordPollVote(ctx, p.ID, voter.ID, 1)
	require.NoError(t, err)
	require.True(t, added)
	require.NoError(t, sc.s.IncrementPollOption(ctx, p.ID, 1))

	added, err = sc.s.RecordPollVote(ctx, p.ID, voter.ID, 0)
	require.NoError(t, err)
	assert.False(t, added, "a second vote by the same account must be ignored")

	assert.ErrorIs(t, sc.s.IncrementPollOption(ctx, p.ID, 5), ErrNotFound)

	got, err := sc.s.GetPoll(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{voter.ID}, got.VotedAccountIDs)
	assert.Equal(t, "Space", got.Options[0].Text)
	assert.Equal(t, 0, got.Options[0].VoteCount)
	assert.Equal(t, 1, got.Options[1].VoteCount)
}

func TestPostgresConfessionVote(t *testing.T) {
	sc := newSchool(t)
	ctx := context.Background()

	voter := sc.student(t, "Ana", "", 100)

	c, err := sc.s.CreateConfession(ctx, &types.Confession{TenantID: sc.id, Content: "I never read the syllabus"})
	require.NoError(t, err)

	current, inserted, err := sc.s.CastConfessionVote(ctx, c.ID, voter.ID, types.VoteUp)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, types.VoteUp, current)

	current, inserted, err = sc.s.CastConfessionVote(ctx, c.ID, voter.ID, types.VoteDown)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, types.VoteUp, current, "an existing vote is returned unchanged")

	got, err := sc.s.GetConfession(ctx, c.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Upvotes)
	assert.Equal(t, 0, got.Downvotes)
	assert.Equal(t, types.VoteUp, got.MyVote)
}

func TestPostgresNotificationFeed(t *testing.T) {
	sc := newSchool(t)
	other := newSchool(t)
	ctx := context.Background()

	alice := sc.student(t, "Alice", "", 100)
	bob := sc.student(t, "Bob", "", 100)

	notify := func(tenantID, recipientID, message string) *types.Notification {
		n, err := sc.s.CreateNotification(ctx, &types.Notification{
			TenantID:    tenantID,
			RecipientID: recipientID,
			Message:     message,
			Kind:        types.NotificationSystem,
		})
		require.NoError(t, err)
		return n
	}

	personal := notify(sc.id, alice.ID, "Your note sold")
	broadcast := notify(sc.id, "", "Exams start Monday")
	notify(sc.id, bob.ID, "Welcome Bob")
	notify(other.id, "", "Another school")
	latest := notify(sc.id, "", "Library closes early")

	feed, err := sc.s.ListNotificationFeed(ctx, alice.ID, sc.id, 50)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, []string{latest.ID, broadcast.ID, personal.ID}, []string{feed[0].ID, feed[1].ID, feed[2].ID})
	for _, n := range feed {
		assert.False(t, n.Read, "%s should start unread", n.Message)
	}

	limited, err := sc.s.ListNotificationFeed(ctx, alice.ID, sc.id, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	require.NoError(t, sc.s.AddBroadcastRead(ctx, broadcast.ID, alice.ID))
	require.NoError(t, sc.s.AddBroadcastRead(ctx, broadcast.ID, alice.ID))
	require.NoError(t, sc.s.MarkPersonalRead(ctx, personal.ID, alice.ID))

	n, err := sc.s.GetNotification(ctx, broadcast.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, n.Read, "broadcast read by alice")

	n, err = sc.s.GetNotification(ctx, broadcast.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, n.Read, "a broadcast read by one student stays unread for the others")

	n, err = sc.s.GetNotification(ctx, personal.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, n.Read)
}

func TestPostgresMarkAllRead(t *testing.T) {
	sc := newSchool(t)
	other := newSchool(t)
	ctx := context.Background()

	alice := sc.student(t, "Alice", "", 100)

	for _, n := range []*types.Notification{
		{TenantID: sc.id, Message: "Exams start Monday", Kind: types.NotificationSystem},
		{TenantID: sc.id, Message: "Library closes early", Kind: types.NotificationSystem},
		{TenantID: sc.id, RecipientID: alice.ID, Message: "Your note sold", Kind: types.NotificationMarket},
		{TenantID: other.id, Message: "Another school", Kind: types.NotificationSystem},
	} {
		_, err := sc.s.CreateNotification(ctx, n)
		require.NoError(t, err)
	}

	feed, err := sc.s.ListNotificationFeed(ctx, alice.ID, sc.id, 50)
	require.NoError(t, err)
	require.NoError(t, sc.s.AddBroadcastRead(ctx, feed[len(feed)-1].ID, alice.ID))

	marked, err := sc.s.MarkAllBroadcastsRead(ctx, alice.ID, sc.id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), marked, "only the broadcast not yet read is acknowledged")

	marked, err = sc.s.MarkAllBroadcastsRead(ctx, alice.ID, sc.id)
	require.NoError(t, err)
	assert.Zero(t, marked)

	marked, err = sc.s.MarkAllPersonalRead(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), marked)

	feed, err = sc.s.ListNotificationFeed(ctx, alice.ID, sc.id, 50)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	for _, n := range feed {
		assert.True(t, n.Read, "%s should be read", n.Message)
	}
}

func TestPostgresConversationPairLookup(t *testing.T) {
	sc := newSchool(t)
	ctx := context.Background()

	alice := sc.student(t, "Alice", "", 100)
	bob := sc.student(t, "Bob", "", 100)

	first, err := sc.s.GetOrCreateConversation(ctx, sc.id, alice.ID, bob.ID)
	require.NoError(t, err)

	second, err := sc.s.GetOrCreateConversation(ctx, sc.id, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	third, err := sc.s.GetOrCreateConversation(ctx, sc.id, strings.ToUpper(alice.ID), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, third.ID)

	assert.True(t, first.HasParticipant(alice.ID))
	assert.True(t, first.HasParticipant(bob.ID))

	conversations, err := sc.s.ListConversations(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, first.ID, conversations[0].ID)
}

func TestPostgresCohortTotals(t *testing.T) {
	sc := newSchool(t)
	ctx := context.Background()

	sc.student(t, "Ana", "Red", 100)
	sc.student(t, "Ben", "Red", 50)
	sc.student(t, "Cai", "Blue", 30)
	sc.student(t, "Dee", "", 500)

	_, err := sc.s.CreateAccount(ctx, &types.Account{
		ID:           sc.id,
		TenantID:     sc.id,
		Name:         "Hillside",
		Email:        fmt.Sprintf("admin-%s@example.com", uuid.NewString()),
		PasswordHash: "x",
		Kind:         types.KindSchool,
	})
	require.NoError(t, err)

	entries, err := sc.s.CohortTotals(ctx, sc.id)
	require.NoError(t, err)

	totals := make(map[string]types.LeaderboardEntry)
	for _, e := range entries {
		totals[e.Cohort] = *e
	}

	assert.Len(t, totals, 2, "cohorts without students are absent")
	assert.Equal(t, types.LeaderboardEntry{Cohort: "Red", TotalPoints: 150, MemberCount: 2}, totals["Red"])
	assert.Equal(t, types.LeaderboardEntry{Cohort: "Blue", TotalPoints: 30, MemberCount: 1}, totals["Blue"])
}

func TestPostgresClubs(t *testing.T) {
	sc := newSchool(t)
	ctx := context.Background()

	founder := sc.student(t, "Ana", "", 100)
	member := sc.student(t, "Ben", "", 100)

	chess, err := sc.s.CreateClub(ctx, &types.Club{TenantID: sc.id, FounderID: founder.ID, Name: "Chess"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", chess.FounderName)
	assert.False(t, chess.CreatedAt.IsZero())

	drama, err := sc.s.CreateClub(ctx, &types.Club{TenantID: sc.id, FounderID: member.ID, Name: "Drama"})
	require.NoError(t, err)

	for _, m := range []struct{ club, account string }{
		{chess.ID, founder.ID},
		{chess.ID, member.ID},
		{drama.ID, member.ID},
	} {
		added, err := sc.s.AddClubMember(ctx, m.club, m.account)
		require.NoError(t, err)
		require.True(t, added)
	}

	added, err := sc.s.AddClubMember(ctx, chess.ID, member.ID)
	require.NoError(t, err)
	assert.False(t, added)

	members, err := sc.s.ListMembersOfClub(ctx, chess.ID)
	require.NoError(t, err)
	assert.Equal(t, []types.Member{{ID: founder.ID, Name: "Ana"}, {ID: member.ID, Name: "Ben"}}, members)

	members, err = sc.s.ListMembersOfClub(ctx, drama.ID)
	require.NoError(t, err)
	assert.Equal(t, []types.Member{{ID: member.ID, Name: "Ben"}}, members)
}
