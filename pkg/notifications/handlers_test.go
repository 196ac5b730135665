// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package notifications

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/edumart/internal/apperr"
	httptypes "github.com/canonical/edumart/internal/http/types"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/types"
)

func newRouter(svc ServiceInterface, actor *identity.Actor) *chi.Mux {
	mux := chi.NewMux()
	if actor != nil {
		mux.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(identity.WithActor(r.Context(), *actor)))
			})
		})
	}
	NewAPI(svc, logging.NewNoopLogger()).RegisterEndpoints(mux)
	return mux
}

func TestAPI_Endpoints(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		actor          *identity.Actor
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:   "list feed",
			method: http.MethodGet,
			path:   "/notifications/acc-1",
			actor:  &student,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().ListFeed(gomock.Any(), student, "acc-1").Return([]*types.Notification{{ID: "n-1"}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "list another account's feed",
			method: http.MethodGet,
			path:   "/notifications/acc-2",
			actor:  &student,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().ListFeed(gomock.Any(), student, "acc-2").Return(nil, apperr.Unauthorized("Unauthorized access to another account"))
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "Unauthorized access to another account",
		},
		{
			name:   "mark read",
			method: http.MethodPut,
			path:   "/notifications/n-1/read",
			actor:  &student,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().MarkRead(gomock.Any(), student, "n-1").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Notification marked as read",
		},
		{
			name:   "mark all read",
			method: http.MethodPut,
			path:   "/notifications/mark-all-read/acc-1",
			actor:  &student,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().MarkAllRead(gomock.Any(), student, "acc-1").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "All notifications marked as read",
		},
		{
			name:           "anonymous caller",
			method:         http.MethodGet,
			path:           "/notifications/acc-1",
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			tt.setupMocks(mockService)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()

			newRouter(mockService, tt.actor).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, rr.Code, rr.Body.String())
			}

			if tt.expectedMsg != "" {
				var body httptypes.ErrorResponse
				if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if body.Message != tt.expectedMsg {
					t.Errorf("expected message %q, got %q", tt.expectedMsg, body.Message)
				}
			}
		})
	}
}
