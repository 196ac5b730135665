// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/internal/types"
	"github.com/canonical/edumart/pkg/accounts"
	"github.com/canonical/edumart/pkg/admin"
	"github.com/canonical/edumart/pkg/leaderboard"
)

// headerAuthenticator trusts the X-Test-Kind header so routing can be tested
// without tokens.
type headerAuthenticator struct{}

func (headerAuthenticator) Authenticate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			kind := r.Header.Get("X-Test-Kind")
			if kind == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			actor := identity.Actor{AccountID: "acc-1", TenantID: "school-1", Kind: types.AccountKind(kind)}
			next.ServeHTTP(w, r.WithContext(identity.WithActor(r.Context(), actor)))
		})
	}
}

func TestNewRouter(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		kind           string
		setupMocks     func(*accounts.MockServiceInterface, *leaderboard.MockServiceInterface, *admin.MockServiceInterface)
		expectedStatus int
	}{
		{
			name:           "status is public",
			method:         http.MethodGet,
			path:           "/api/v0/status",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "login validates before authentication",
			method:         http.MethodPost,
			path:           "/api/auth/login",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "leaderboard needs a token",
			method:         http.MethodGet,
			path:           "/api/stats/leaderboard",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "leaderboard for a student",
			method: http.MethodGet,
			path:   "/api/stats/leaderboard",
			kind:   string(types.KindStudent),
			setupMocks: func(_ *accounts.MockServiceInterface, lb *leaderboard.MockServiceInterface, _ *admin.MockServiceInterface) {
				lb.EXPECT().Standings(gomock.Any(), gomock.Any()).Return([]*types.LeaderboardEntry{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "admin stats refused to a student",
			method:         http.MethodGet,
			path:           "/api/admin/stats",
			kind:           string(types.KindStudent),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "admin stats for the school",
			method: http.MethodGet,
			path:   "/api/admin/stats",
			kind:   string(types.KindSchool),
			setupMocks: func(_ *accounts.MockServiceInterface, _ *leaderboard.MockServiceInterface, a *admin.MockServiceInterface) {
				a.EXPECT().Stats(gomock.Any(), gomock.Any()).Return(&types.AdminStats{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAccounts := accounts.NewMockServiceInterface(ctrl)
			mockLeaderboard := leaderboard.NewMockServiceInterface(ctrl)
			mockAdmin := admin.NewMockServiceInterface(ctrl)
			if tt.setupMocks != nil {
				tt.setupMocks(mockAccounts, mockLeaderboard, mockAdmin)
			}

			router := NewRouter(
				&Services{Accounts: mockAccounts, Leaderboard: mockLeaderboard, Admin: mockAdmin},
				nil,
				headerAuthenticator{},
				nil,
				nil,
				tracing.NewNoopTracer(),
				monitoring.NewNoopMonitor("test"),
				logging.NewNoopLogger(),
			)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.kind != "" {
				req.Header.Set("X-Test-Kind", tt.kind)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, rr.Code, rr.Body.String())
			}
		})
	}
}
