// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package polls

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/canonical/edumart/internal/apperr"
	"github.com/canonical/edumart/internal/authorization"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/storage"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/internal/types"
	"github.com/canonical/edumart/pkg/ledger"
)

//go:generate mockgen -build_flags=--mod=mod -package polls -destination ./mock_interfaces.go -source=./interfaces.go

var (
	creator  = identity.Actor{AccountID: "acc-1", TenantID: "school-1", Kind: types.KindStudent}
	voter    = identity.Actor{AccountID: "acc-2", TenantID: "school-1", Kind: types.KindStudent}
	outsider = identity.Actor{AccountID: "acc-9", TenantID: "school-2", Kind: types.KindStudent}

	now = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
)

type mocks struct {
	storage  *MockStorageInterface
	ledger   *MockLedgerInterface
	notifier *MockNotifierInterface
}

func newService(ctrl *gomock.Controller) (*Service, *mocks) {
	m := &mocks{
		storage:  NewMockStorageInterface(ctrl),
		ledger:   NewMockLedgerInterface(ctrl),
		notifier: NewMockNotifierInterface(ctrl),
	}

	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("test")
	logger := logging.NewNoopLogger()

	authz := authorization.NewAuthorizer(tracer, monitor, logger)
	svc := NewService(m.storage, authz, m.ledger, m.notifier, tracer, monitor, logger)
	svc.now = func() time.Time { return now }
	return svc, m
}

func runTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func poll(expiresAt time.Time, votesA int, voters ...string) *types.Poll {
	return &types.Poll{
		ID:        "p-1",
		TenantID:  "school-1",
		CreatorID: "acc-1",
		Question:  "Best lunch?",
		Options: []types.PollOption{
			{Index: 0, Text: "A", VoteCount: votesA},
			{Index: 1, Text: "B"},
		},
		VotedAccountIDs: voters,
		ExpiresAt:       expiresAt,
	}
}

func TestService_CreatePoll(t *testing.T) {
	tests := []struct {
		name       string
		input      *PollInput
		setupMocks func(*mocks)
		wantKind   apperr.Kind
	}{
		{
			name:  "poll opens for the requested hours and is announced",
			input: &PollInput{Question: "Best lunch?", Options: []string{"A", "B"}, DurationHours: 24},
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.storage.EXPECT().CreatePoll(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, p *types.Poll) (*types.Poll, error) {
						if !p.ExpiresAt.Equal(now.Add(24 * time.Hour)) {
							t.Errorf("unexpected expiry %v", p.ExpiresAt)
						}
						if len(p.Options) != 2 || p.Options[1].Index != 1 || p.Options[1].Text != "B" {
							t.Errorf("unexpected options %+v", p.Options)
						}
						return poll(p.ExpiresAt, 0), nil
					},
				)
				m.notifier.EXPECT().Broadcast(gomock.Any(), "school-1", types.NotificationPoll, `New Poll Created: "Best lunch?". Go vote now!`).Return(&types.Notification{}, nil)
			},
		},
		{
			name:       "one option is not a poll",
			input:      &PollInput{Question: "Best lunch?", Options: []string{"A"}, DurationHours: 24},
			setupMocks: func(*mocks) {},
			wantKind:   apperr.KindValidation,
		},
		{
			name:       "zero duration",
			input:      &PollInput{Question: "Best lunch?", Options: []string{"A", "B"}},
			setupMocks: func(*mocks) {},
			wantKind:   apperr.KindValidation,
		},
		{
			name:  "storage failure",
			input: &PollInput{Question: "Best lunch?", Options: []string{"A", "B"}, DurationHours: 1},
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.storage.EXPECT().CreatePoll(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("boom"))
			},
			wantKind: apperr.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newService(ctrl)
			tt.setupMocks(m)

			_, err := svc.CreatePoll(context.Background(), creator, tt.input)
			if tt.wantKind != "" {
				if !apperr.IsKind(err, tt.wantKind) {
					t.Fatalf("expected %s error, got %v", tt.wantKind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestService_Vote(t *testing.T) {
	open := now.Add(time.Hour)
	closed := now.Add(-time.Minute)

	tests := []struct {
		name       string
		actor      identity.Actor
		option     int
		setupMocks func(*mocks)
		wantKind   apperr.Kind
		wantMsg    string
	}{
		{
			name:   "vote counts, rewards and notifies the creator",
			actor:  voter,
			option: 0,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.storage.EXPECT().GetPoll(gomock.Any(), "p-1").Return(poll(open, 0), nil)
				m.storage.EXPECT().RecordPollVote(gomock.Any(), "p-1", "acc-2", 0).Return(true, nil)
				m.storage.EXPECT().IncrementPollOption(gomock.Any(), "p-1", 0).Return(nil)
				m.ledger.EXPECT().Credit(gomock.Any(), "acc-2", 1, ledger.ReasonPollVote).Return(101, nil)
				m.storage.EXPECT().GetAccountByID(gomock.Any(), "acc-2").Return(&types.Account{ID: "acc-2", Name: "Ben"}, nil)
				m.notifier.EXPECT().Notify(gomock.Any(), "school-1", "acc-1", types.NotificationPoll, `Ben voted on your poll: "Best lunch?"`).Return(&types.Notification{}, nil)
				m.storage.EXPECT().GetPoll(gomock.Any(), "p-1").Return(poll(open, 1, "acc-2"), nil)
			},
		},
		{
			name:   "creator voting is not notified",
			actor:  creator,
			option: 1,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.storage.EXPECT().GetPoll(gomock.Any(), "p-1").Return(poll(open, 0), nil)
				m.storage.EXPECT().RecordPollVote(gomock.Any(), "p-1", "acc-1", 1).Return(true, nil)
				m.storage.EXPECT().IncrementPollOption(gomock.Any(), "p-1", 1).Return(nil)
				m.ledger.EXPECT().Credit(gomock.Any(), "acc-1", 1, ledger.ReasonPollVote).Return(101, nil)
				m.storage.EXPECT().GetPoll(gomock.Any(), "p-1").Return(poll(open, 0, "acc-1"), nil)
			},
		},
		{
			name:   "second vote is rejected",
			actor:  voter,
			option: 1,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.storage.EXPECT().GetPoll(gomock.Any(), "p-1").Return(poll(open, 1, "acc-2"), nil)
				m.storage.EXPECT().RecordPollVote(gomock.Any(), "p-1", "acc-2", 1).Return(false, nil)
			},
			wantKind: apperr.KindConflict,
			wantMsg:  "You have already voted in this poll",
		},
		{
			name:   "expired",
			actor:  voter,
			option: 0,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.storage.EXPECT().GetPoll(gomock.Any(), "p-1").Return(poll(closed, 0), nil)
			},
			wantKind: apperr.KindConflict,
			wantMsg:  "This poll has expired",
		},
		{
			name:   "expiry instant is closed",
			actor:  voter,
			option: 0,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.storage.EXPECT().GetPoll(gomock.Any(), "p-1").Return(poll(now, 0), nil)
			},
			wantKind: apperr.KindConflict,
		},
		{
			name:   "option out of range",
			actor:  voter,
			option: 2,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.storage.EXPECT().GetPoll(gomock.Any(), "p-1").Return(poll(open, 0), nil)
			},
			wantKind: apperr.KindValidation,
		},
		{
			name:   "another school",
			actor:  outsider,
			option: 0,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.storage.EXPECT().GetPoll(gomock.Any(), "p-1").Return(poll(open, 0), nil)
			},
			wantKind: apperr.KindUnauthorized,
		},
		{
			name:   "missing",
			actor:  voter,
			option: 0,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.storage.EXPECT().GetPoll(gomock.Any(), "p-1").Return(nil, storage.ErrNotFound)
			},
			wantKind: apperr.KindNotFound,
			wantMsg:  "Poll not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newService(ctrl)
			tt.setupMocks(m)

			p, err := svc.Vote(context.Background(), tt.actor, "p-1", tt.option)
			if tt.wantKind != "" {
				if !apperr.IsKind(err, tt.wantKind) {
					t.Fatalf("expected %s error, got %v", tt.wantKind, err)
				}
				if tt.wantMsg != "" && apperr.MessageOf(err) != tt.wantMsg {
					t.Errorf("expected message %q, got %q", tt.wantMsg, apperr.MessageOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(p.VotedAccountIDs) != 1 || p.VotedAccountIDs[0] != tt.actor.AccountID {
				t.Errorf("unexpected voters %v", p.VotedAccountIDs)
			}
		})
	}
}

func TestService_EndPoll(t *testing.T) {
	tests := []struct {
		name       string
		actor      identity.Actor
		setupMocks func(*mocks)
		wantKind   apperr.Kind
	}{
		{
			name:  "creator ends the poll now",
			actor: creator,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetPoll(gomock.Any(), "p-1").Return(poll(now.Add(time.Hour), 0), nil)
				m.storage.EXPECT().SetPollExpiry(gomock.Any(), "p-1", now).Return(nil)
			},
		},
		{
			name:  "only the creator",
			actor: voter,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetPoll(gomock.Any(), "p-1").Return(poll(now.Add(time.Hour), 0), nil)
			},
			wantKind: apperr.KindUnauthorized,
		},
		{
			name:  "already closed",
			actor: creator,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetPoll(gomock.Any(), "p-1").Return(poll(now.Add(-time.Hour), 0), nil)
			},
			wantKind: apperr.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newService(ctrl)
			tt.setupMocks(m)

			p, err := svc.EndPoll(context.Background(), tt.actor, "p-1")
			if tt.wantKind != "" {
				if !apperr.IsKind(err, tt.wantKind) {
					t.Fatalf("expected %s error, got %v", tt.wantKind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.IsOpen(now) {
				t.Error("poll should be closed")
			}
		})
	}
}
