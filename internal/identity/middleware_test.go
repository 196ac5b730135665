// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/internal/types"
)

func TestActorFromContext(t *testing.T) {
	if _, ok := ActorFromContext(context.Background()); ok {
		t.Error("expected no actor in empty context")
	}

	want := Actor{AccountID: "acc-1", TenantID: "school-1", Kind: types.KindStudent, Cohort: "Red"}
	got, ok := ActorFromContext(WithActor(context.Background(), want))
	if !ok || got != want {
		t.Errorf("expected %+v, got %+v (ok=%v)", want, got, ok)
	}

	if !(Actor{Kind: types.KindSchool}).IsSchool() {
		t.Error("expected school actor to report IsSchool")
	}
}

func TestMiddleware_RequireKind(t *testing.T) {
	tests := []struct {
		name           string
		actor          *Actor
		expectedStatus int
	}{
		{
			name:           "anonymous",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "student rejected",
			actor:          &Actor{AccountID: "acc-1", TenantID: "school-1", Kind: types.KindStudent},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "school allowed",
			actor:          &Actor{AccountID: "school-1", TenantID: "school-1", Kind: types.KindSchool},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMiddleware(tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
			if tt.actor != nil {
				req = req.WithContext(WithActor(req.Context(), *tt.actor))
			}
			w := httptest.NewRecorder()

			m.RequireKind(types.KindSchool)(next).ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}
