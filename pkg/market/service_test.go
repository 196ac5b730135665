// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package market

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
	"github.com/canonical/edumart/pkg/ledger"
)

//go:generate mockgen -build_flags=--mod=mod -package market -destination ./mock_interfaces.go -source=./interfaces.go

var (
	seller = identity.Actor{AccountID: "acc-1", TenantID: "school-1", Kind: types.KindStudent}
	buyer  = identity.Actor{AccountID: "acc-2", TenantID: "school-1", Kind: types.KindStudent}
	rival  = identity.Actor{AccountID: "acc-3", TenantID: "school-2", Kind: types.KindStudent}
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
	return NewService(m.storage, authz, m.ledger, m.notifier, tracer, monitor, logger), m
}

func runTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func listing() *types.Listing {
	return &types.Listing{ID: "l-1", TenantID: "school-1", OwnerID: "acc-1", Title: "Calculator", Price: 20}
}

func TestService_CreateListing(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*mocks)
		wantKind   apperr.Kind
	}{
		{
			name: "listing credits the owner ten points and announces it",
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.storage.EXPECT().CreateListing(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, l *types.Listing) (*types.Listing, error) {
						if l.OwnerID != "acc-1" || l.TenantID != "school-1" || l.Price != 20 {
							t.Errorf("unexpected listing %+v", l)
						}
						created := *l
						created.ID = "l-1"
						return &created, nil
					},
				)
				m.ledger.EXPECT().Credit(gomock.Any(), "acc-1", 10, ledger.ReasonItemListed).Return(110, nil)
				m.notifier.EXPECT().Broadcast(gomock.Any(), "school-1", types.NotificationMarket, `New on the Mart: "Calculator" for 20 points`).Return(&types.Notification{}, nil)
			},
		},
		{
			name: "ledger failure aborts the listing",
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.storage.EXPECT().CreateListing(gomock.Any(), gomock.Any()).Return(listing(), nil)
				m.ledger.EXPECT().Credit(gomock.Any(), "acc-1", 10, ledger.ReasonItemListed).Return(0, apperr.Internal(fmt.Errorf("boom"), "failed to credit points"))
			},
			wantKind: apperr.KindInternal,
		},
		{
			name: "storage failure",
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				m.storage.EXPECT().CreateListing(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("boom"))
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

			l, err := svc.CreateListing(context.Background(), seller, &ListingInput{Title: "Calculator", Price: 20})
			if tt.wantKind != "" {
				if !apperr.IsKind(err, tt.wantKind) {
					t.Fatalf("expected %s error, got %v", tt.wantKind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if l.ID != "l-1" || l.OwnerID != "acc-1" || l.TenantID != "school-1" || l.Title != "Calculator" {
				t.Errorf("unexpected listing %+v", l)
			}
		})
	}
}

func TestService_GetListing(t *testing.T) {
	tests := []struct {
		name     string
		actor    identity.Actor
		stored   *types.Listing
		err      error
		wantKind apperr.Kind
	}{
		{name: "same school", actor: buyer, stored: listing()},
		{name: "another school is unauthorized, not missing", actor: rival, stored: listing(), wantKind: apperr.KindUnauthorized},
		{name: "missing", actor: buyer, err: storage.ErrNotFound, wantKind: apperr.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newService(ctrl)
			m.storage.EXPECT().GetListing(gomock.Any(), "l-1").Return(tt.stored, tt.err)

			_, err := svc.GetListing(context.Background(), tt.actor, "l-1")
			if tt.wantKind == "" && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantKind != "" && !apperr.IsKind(err, tt.wantKind) {
				t.Fatalf("expected %s error, got %v", tt.wantKind, err)
			}
		})
	}
}

func TestService_UpdateListing(t *testing.T) {
	title := "Graphing calculator"
	price := 35
	negative := -1

	tests := []struct {
		name       string
		actor      identity.Actor
		patch      *ListingPatch
		setupMocks func(*mocks)
		wantKind   apperr.Kind
	}{
		{
			name:  "owner edits",
			actor: seller,
			patch: &ListingPatch{Title: &title, Price: &price},
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetListing(gomock.Any(), "l-1").Return(listing(), nil)
				m.storage.EXPECT().UpdateListing(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, l *types.Listing) (*types.Listing, error) {
						if l.Title != title || l.Price != price || l.OwnerID != "acc-1" {
							t.Errorf("unexpected update %+v", l)
						}
						return l, nil
					},
				)
			},
		},
		{
			name:  "non owner is refused",
			actor: buyer,
			patch: &ListingPatch{Title: &title},
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetListing(gomock.Any(), "l-1").Return(listing(), nil)
			},
			wantKind: apperr.KindUnauthorized,
		},
		{
			name:  "negative price",
			actor: seller,
			patch: &ListingPatch{Price: &negative},
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetListing(gomock.Any(), "l-1").Return(listing(), nil)
			},
			wantKind: apperr.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newService(ctrl)
			tt.setupMocks(m)

			_, err := svc.UpdateListing(context.Background(), tt.actor, "l-1", tt.patch)
			if tt.wantKind == "" && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantKind != "" && !apperr.IsKind(err, tt.wantKind) {
				t.Fatalf("expected %s error, got %v", tt.wantKind, err)
			}
		})
	}
}

func TestService_DeleteListing(t *testing.T) {
	tests := []struct {
		name       string
		actor      identity.Actor
		setupMocks func(*mocks)
		wantKind   apperr.Kind
	}{
		{
			name:  "owner deletes",
			actor: seller,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetListing(gomock.Any(), "l-1").Return(listing(), nil)
				m.storage.EXPECT().DeleteListing(gomock.Any(), "l-1").Return(nil)
			},
		},
		{
			name:  "other school cannot delete",
			actor: rival,
			setupMocks: func(m *mocks) {
				m.storage.EXPECT().GetListing(gomock.Any(), "l-1").Return(listing(), nil)
			},
			wantKind: apperr.KindUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newService(ctrl)
			tt.setupMocks(m)

			err := svc.DeleteListing(context.Background(), tt.actor, "l-1")
			if tt.wantKind == "" && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantKind != "" && !apperr.IsKind(err, tt.wantKind) {
				t.Fatalf("expected %s error, got %v", tt.wantKind, err)
			}
		})
	}
}
