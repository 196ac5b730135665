// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring/prometheus"
)

func TestAPI_Metrics(t *testing.T) {
	monitor := prometheus.NewMonitor("edumart-metrics-test", logging.NewNoopLogger())
	if err := monitor.AddPointsMetric(map[string]string{"reason": "poll_vote", "direction": "credit"}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mux := chi.NewMux()
	NewAPI(logging.NewNoopLogger()).RegisterEndpoints(mux)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v0/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "points_moved_total") {
		t.Errorf("expected the points counter in output")
	}
}
