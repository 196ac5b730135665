// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/edumart/internal/apperr"
	httptypes "github.com/canonical/edumart/internal/http/types"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/types"
	"github.com/canonical/edumart/pkg/authentication"
)

func TestAPI_Endpoints(t *testing.T) {
	student := identity.Actor{AccountID: "acc-1", TenantID: "school-1", Kind: types.KindStudent}

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		actor          *identity.Actor
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:   "register school",
			method: http.MethodPost,
			path:   "/auth/register-school",
			body:   `{"name":"Hillside High","email":"office@hillside.edu","password":"secret123"}`,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().RegisterSchool(gomock.Any(), &SchoolRegistration{Name: "Hillside High", Email: "office@hillside.edu", Password: "secret123"}).
					Return(&Session{Token: "t", User: &types.Account{ID: "school-1"}, School: &types.School{ID: "school-1"}}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "register school with a short password",
			method:         http.MethodPost,
			path:           "/auth/register-school",
			body:           `{"name":"Hillside High","email":"office@hillside.edu","password":"abc"}`,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "register student with a bad code",
			method: http.MethodPost,
			path:   "/auth/register-student",
			body:   `{"name":"Ana","email":"ana@hillside.edu","password":"secret123","schoolCode":"SCH-00"}`,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().RegisterStudent(gomock.Any(), gomock.Any()).Return(nil, apperr.Validation("Invalid school code"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid school code",
		},
		{
			name:           "register student in an unknown house",
			method:         http.MethodPost,
			path:           "/auth/register-student",
			body:           `{"name":"Ana","email":"ana@hillside.edu","password":"secret123","schoolCode":"SCH-42","house":"Purple"}`,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "login",
			method: http.MethodPost,
			path:   "/auth/login",
			body:   `{"email":"ana@hillside.edu","password":"secret123","role":"student"}`,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().Login(gomock.Any(), &Credentials{Email: "ana@hillside.edu", Password: "secret123", Role: types.KindStudent}).
					Return(&Session{Token: "t", User: &types.Account{ID: "acc-1"}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "login with bad credentials",
			method: http.MethodPost,
			path:   "/auth/login",
			body:   `{"email":"ana@hillside.edu","password":"nope"}`,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Invalid credentials",
		},
		{
			name:   "login while suspended",
			method: http.MethodPost,
			path:   "/auth/login",
			body:   `{"email":"ana@hillside.edu","password":"secret123"}`,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, apperr.Suspended(authentication.SuspendedMessage))
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    authentication.SuspendedMessage,
		},
		{
			name:   "me",
			method: http.MethodGet,
			path:   "/auth/me",
			actor:  &student,
			setupMocks: func(m *MockServiceInterface) {
				m.EXPECT().Me(gomock.Any(), student).Return(&types.Account{ID: "acc-1"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "me without identity",
			method:         http.MethodGet,
			path:           "/auth/me",
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

			api := NewAPI(mockService, logging.NewNoopLogger())
			mux := chi.NewMux()
			api.RegisterEndpoints(mux)
			mux.Group(func(r chi.Router) {
				r.Use(func(next http.Handler) http.Handler {
					return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
						if tt.actor != nil {
							req = req.WithContext(identity.WithActor(req.Context(), *tt.actor))
						}
						next.ServeHTTP(w, req)
					})
				})
				api.RegisterAuthenticatedEndpoints(r)
			})

			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))

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
