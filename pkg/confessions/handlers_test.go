// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package confessions

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	httptypes "github.com/canonical/edumart/internal/http/types"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/types"
)

func newRouter(svc ServiceInterface, actor identity.Actor) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(identity.WithActor(r.Context(), actor)))
		})
	})
	NewAPI(svc, logging.NewNoopLogger()).RegisterEndpoints(mux)
	return mux
}

func TestAPI_Endpoints(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:   "list",
			method: http.MethodGet,
			path:   "/confessions",
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().ListConfessions(gomock.Any(), voter).Return([]*types.Confession{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "post",
			method: http.MethodPost,
			path:   "/confessions",
			body:   `{"content":"I never read the syllabus"}`,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().PostConfession(gomock.Any(), voter, "I never read the syllabus").Return(confession(0, 0, types.VoteNone), nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Confession posted!",
		},
		{
			name:           "post blank",
			method:         http.MethodPost,
			path:           "/confessions",
			body:           `{"content":""}`,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "vote",
			method: http.MethodPost,
			path:   "/confessions/cf-1/vote",
			body:   `{"direction":"down"}`,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().Vote(gomock.Any(), voter, "cf-1", types.VoteDown).Return(confession(0, 1, types.VoteDown), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "vote up",
			method: http.MethodPost,
			path:   "/confessions/cf-1/vote",
			body:   `{"direction":"up"}`,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().Vote(gomock.Any(), voter, "cf-1", types.VoteUp).Return(confession(1, 0, types.VoteUp), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "vote without direction",
			method:         http.MethodPost,
			path:           "/confessions/cf-1/vote",
			body:           `{"type":"up"}`,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "vote sideways",
			method:         http.MethodPost,
			path:           "/confessions/cf-1/vote",
			body:           `{"direction":"sideways"}`,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			tt.setupMocks(mockService)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			newRouter(mockService, voter).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, rr.Code, rr.Body.String())
			}

			if tt.expectedMsg != "" {
				var body httptypes.Response
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
