// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/edumart/internal/http/types"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/internal/version"
)

const pingTimeout = 2 * time.Second

type Status struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks,omitempty"`
	Version string            `json:"version,omitempty"`
}

type API struct {
	deps map[string]PingerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/status", a.alive)
	mux.Get("/api/v0/version", a.version)
}

func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.alive")
	defer span.End()

	out := Status{Status: "ok", Checks: make(map[string]string, len(a.deps))}
	code := http.StatusOK

	for name, dep := range a.deps {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := dep.Ping(pingCtx)
		cancel()

		available := 1.0
		out.Checks[name] = "ok"
		if err != nil {
			a.logger.Errorf("dependency %s unavailable: %v", name, err)
			available = 0
			out.Checks[name] = "unavailable"
			out.Status = "degraded"
			code = http.StatusServiceUnavailable
		}

		if err := a.monitor.SetDependencyAvailability(map[string]string{"component": name}, available); err != nil {
			a.logger.Debugf("error setting dependency availability: %v", err)
		}
	}

	httptypes.WriteData(w, code, "", out)
}

func (a *API) version(w http.ResponseWriter, r *http.Request) {
	httptypes.WriteData(w, http.StatusOK, "", Status{Status: "ok", Version: version.Version})
}

// NewAPI builds the status endpoints; deps are pinged on every status call.
func NewAPI(deps map[string]PingerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.deps = deps
	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
