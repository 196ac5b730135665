// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/edumart/internal/apperr"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package leaderboard -destination ./mock_interfaces.go -source=./interfaces.go

var student = identity.Actor{AccountID: "acc-1", TenantID: "school-1", Kind: types.KindStudent}

func TestService_Standings(t *testing.T) {
	tests := []struct {
		name      string
		totals    []*types.LeaderboardEntry
		err       error
		wantOrder []string
		wantKind  apperr.Kind
	}{
		{
			name:      "empty school lists every cohort at zero",
			totals:    []*types.LeaderboardEntry{},
			wantOrder: []string{"Red", "Blue", "Green", "Yellow"},
		},
		{
			name: "highest total first, ties keep cohort order",
			totals: []*types.LeaderboardEntry{
				{Cohort: "Green", TotalPoints: 300, MemberCount: 3},
				{Cohort: "Blue", TotalPoints: 100, MemberCount: 1},
				{Cohort: "Yellow", TotalPoints: 100, MemberCount: 1},
			},
			wantOrder: []string{"Green", "Blue", "Yellow", "Red"},
		},
		{
			name:     "storage failure",
			err:      fmt.Errorf("boom"),
			wantKind: apperr.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockStorage.EXPECT().CohortTotals(gomock.Any(), "school-1").Return(tt.totals, tt.err)

			svc := NewService(mockStorage, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

			standings, err := svc.Standings(context.Background(), student)
			if tt.wantKind != "" {
				if !apperr.IsKind(err, tt.wantKind) {
					t.Fatalf("expected %s error, got %v", tt.wantKind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			order := make([]string, 0, len(standings))
			for _, e := range standings {
				order = append(order, e.Cohort)
			}
			if !reflect.DeepEqual(order, tt.wantOrder) {
				t.Errorf("expected order %v, got %v", tt.wantOrder, order)
			}
		})
	}
}

func TestAPI_Standings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockServiceInterface(ctrl)
	mockService.EXPECT().Standings(gomock.Any(), student).Return([]*types.LeaderboardEntry{{Cohort: "Red", TotalPoints: 10, MemberCount: 1}}, nil)

	mux := chi.NewMux()
	mux.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(identity.WithActor(r.Context(), student)))
		})
	})
	NewAPI(mockService, logging.NewNoopLogger()).RegisterEndpoints(mux)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/stats/leaderboard", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var body struct {
		Data []types.LeaderboardEntry `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].Cohort != "Red" {
		t.Errorf("unexpected body %+v", body)
	}
}
