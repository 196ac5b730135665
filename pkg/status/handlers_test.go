// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/internal/version"
)

type pinger func(context.Context) error

func (p pinger) Ping(ctx context.Context) error { return p(ctx) }

func TestAPI_Status(t *testing.T) {
	tests := []struct {
		name           string
		deps           map[string]PingerInterface
		expectedStatus int
		expectedState  string
	}{
		{
			name:           "no dependencies",
			expectedStatus: http.StatusOK,
			expectedState:  "ok",
		},
		{
			name:           "database reachable",
			deps:           map[string]PingerInterface{"database": pinger(func(context.Context) error { return nil })},
			expectedStatus: http.StatusOK,
			expectedState:  "ok",
		},
		{
			name:           "database down",
			deps:           map[string]PingerInterface{"database": pinger(func(context.Context) error { return errors.New("refused") })},
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := chi.NewMux()
			NewAPI(tt.deps, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger()).RegisterEndpoints(mux)

			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v0/status", nil))

			if rr.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rr.Code)
			}

			var body struct {
				Data Status `json:"data"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Data.Status != tt.expectedState {
				t.Errorf("expected %q, got %q", tt.expectedState, body.Data.Status)
			}
		})
	}
}

func TestAPI_Version(t *testing.T) {
	mux := chi.NewMux()
	NewAPI(nil, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger()).RegisterEndpoints(mux)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v0/version", nil))

	var body struct {
		Data Status `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Data.Version != version.Version {
		t.Errorf("expected version %q, got %q", version.Version, body.Data.Version)
	}
}
