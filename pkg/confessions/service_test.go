// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package confessions

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/edumart/internal/apperr"
	"github.com/canonical/edumart/internal/authorization"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/storage"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package confessions -destination ./mock_interfaces.go -source=./interfaces.go

var (
	voter    = identity.Actor{AccountID: "acc-1", TenantID: "school-1", Kind: types.KindStudent}
	outsider = identity.Actor{AccountID: "acc-9", TenantID: "school-2", Kind: types.KindStudent}
)

func newService(ctrl *gomock.Controller) (*Service, *MockStorageInterface) {
	mockStorage := NewMockStorageInterface(ctrl)

	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("test")
	logger := logging.NewNoopLogger()

	authz := authorization.NewAuthorizer(tracer, monitor, logger)
	return NewService(mockStorage, authz, tracer, monitor, logger), mockStorage
}

func runTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func confession(up, down int, mine types.VoteDirection) *types.Confession {
	return &types.Confession{
		ID:        "cf-1",
		TenantID:  "school-1",
		Content:   "I never read the syllabus",
		Upvotes:   up,
		Downvotes: down,
		VoteScore: up - down,
		MyVote:    mine,
	}
}

func TestService_Vote(t *testing.T) {
	tests := []struct {
		name       string
		actor      identity.Actor
		direction  types.VoteDirection
		setupMocks func(*MockStorageInterface)
		wantVote   types.VoteDirection
		wantScore  int
		wantKind   apperr.Kind
	}{
		{
			name:      "first upvote",
			actor:     voter,
			direction: types.VoteUp,
			setupMocks: func(m *MockStorageInterface) {
				m.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.EXPECT().GetConfession(gomock.Any(), "cf-1", "acc-1").Return(confession(0, 0, types.VoteNone), nil)
				m.EXPECT().CastConfessionVote(gomock.Any(), "cf-1", "acc-1", types.VoteUp).Return(types.VoteUp, true, nil)
				m.EXPECT().GetConfession(gomock.Any(), "cf-1", "acc-1").Return(confession(1, 0, types.VoteUp), nil)
			},
			wantVote:  types.VoteUp,
			wantScore: 1,
		},
		{
			name:      "same direction retracts",
			actor:     voter,
			direction: types.VoteUp,
			setupMocks: func(m *MockStorageInterface) {
				m.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.EXPECT().GetConfession(gomock.Any(), "cf-1", "acc-1").Return(confession(1, 0, types.VoteUp), nil)
				m.EXPECT().CastConfessionVote(gomock.Any(), "cf-1", "acc-1", types.VoteUp).Return(types.VoteUp, false, nil)
				m.EXPECT().DeleteConfessionVote(gomock.Any(), "cf-1", "acc-1").Return(nil)
				m.EXPECT().GetConfession(gomock.Any(), "cf-1", "acc-1").Return(confession(0, 0, types.VoteNone), nil)
			},
			wantVote:  types.VoteNone,
			wantScore: 0,
		},
		{
			name:      "opposite direction replaces",
			actor:     voter,
			direction: types.VoteDown,
			setupMocks: func(m *MockStorageInterface) {
				m.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.EXPECT().GetConfession(gomock.Any(), "cf-1", "acc-1").Return(confession(1, 0, types.VoteUp), nil)
				m.EXPECT().CastConfessionVote(gomock.Any(), "cf-1", "acc-1", types.VoteDown).Return(types.VoteUp, false, nil)
				m.EXPECT().SetConfessionVote(gomock.Any(), "cf-1", "acc-1", types.VoteDown).Return(nil)
				m.EXPECT().GetConfession(gomock.Any(), "cf-1", "acc-1").Return(confession(0, 1, types.VoteDown), nil)
			},
			wantVote:  types.VoteDown,
			wantScore: -1,
		},
		{
			name:      "first downvote after a retraction",
			actor:     voter,
			direction: types.VoteDown,
			setupMocks: func(m *MockStorageInterface) {
				m.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.EXPECT().GetConfession(gomock.Any(), "cf-1", "acc-1").Return(confession(0, 0, types.VoteNone), nil)
				m.EXPECT().CastConfessionVote(gomock.Any(), "cf-1", "acc-1", types.VoteDown).Return(types.VoteDown, true, nil)
				m.EXPECT().GetConfession(gomock.Any(), "cf-1", "acc-1").Return(confession(0, 1, types.VoteDown), nil)
			},
			wantVote:  types.VoteDown,
			wantScore: -1,
		},
		{
			name:       "invalid direction",
			actor:      voter,
			direction:  "sideways",
			setupMocks: func(*MockStorageInterface) {},
			wantKind:   apperr.KindValidation,
		},
		{
			name:      "another school",
			actor:     outsider,
			direction: types.VoteUp,
			setupMocks: func(m *MockStorageInterface) {
				m.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.EXPECT().GetConfession(gomock.Any(), "cf-1", "acc-9").Return(confession(0, 0, types.VoteNone), nil)
			},
			wantKind: apperr.KindUnauthorized,
		},
		{
			name:      "missing",
			actor:     voter,
			direction: types.VoteUp,
			setupMocks: func(m *MockStorageInterface) {
				m.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.EXPECT().GetConfession(gomock.Any(), "cf-1", "acc-1").Return(nil, storage.ErrNotFound)
			},
			wantKind: apperr.KindNotFound,
		},
		{
			name:      "storage failure",
			actor:     voter,
			direction: types.VoteUp,
			setupMocks: func(m *MockStorageInterface) {
				m.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.EXPECT().GetConfession(gomock.Any(), "cf-1", "acc-1").Return(confession(0, 0, types.VoteNone), nil)
				m.EXPECT().CastConfessionVote(gomock.Any(), "cf-1", "acc-1", types.VoteUp).Return(types.VoteNone, false, fmt.Errorf("boom"))
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

			c, err := svc.Vote(context.Background(), tt.actor, "cf-1", tt.direction)
			if tt.wantKind != "" {
				if !apperr.IsKind(err, tt.wantKind) {
					t.Fatalf("expected %s error, got %v", tt.wantKind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.MyVote != tt.wantVote || c.VoteScore != tt.wantScore {
				t.Errorf("expected vote %q score %d, got %q %d", tt.wantVote, tt.wantScore, c.MyVote, c.VoteScore)
			}
			if c.VoteScore != c.Upvotes-c.Downvotes {
				t.Errorf("score %d does not match tallies %d/%d", c.VoteScore, c.Upvotes, c.Downvotes)
			}
		})
	}
}

func TestService_PostConfession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)
	m.EXPECT().CreateConfession(gomock.Any(), &types.Confession{TenantID: "school-1", Content: "secret"}).Return(confession(0, 0, types.VoteNone), nil)
	m.EXPECT().CreateConfession(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("boom"))

	if _, err := svc.PostConfession(context.Background(), voter, "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.PostConfession(context.Background(), voter, "secret"); !apperr.IsKind(err, apperr.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestService_ListConfessions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newService(ctrl)
	m.EXPECT().ListConfessions(gomock.Any(), "school-1", "acc-1").Return([]*types.Confession{confession(2, 1, types.VoteUp)}, nil)

	list, err := svc.ListConfessions(context.Background(), voter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].MyVote != types.VoteUp {
		t.Errorf("unexpected confessions %+v", list)
	}
}
