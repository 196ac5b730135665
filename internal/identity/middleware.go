// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"net/http"

	"github.com/canonical/edumart/internal/apperr"
	httptypes "github.com/canonical/edumart/internal/http/types"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/internal/types"
)

type Middleware struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewMiddleware(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// RequireKind only lets through actors of the given account kind.
func (m *Middleware) RequireKind(kind types.AccountKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "identity.Middleware.RequireKind")
			defer span.End()

			actor, ok := ActorFromContext(ctx)
			if !ok {
				httptypes.WriteUnauthenticated(w, "missing identity")
				return
			}

			if actor.Kind != kind {
				m.logger.Security().AuthzFailure(actor.AccountID, r.URL.Path)
				httptypes.WriteError(w, apperr.Unauthorized("This action requires a %s account", kind))
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromRequest returns the request's actor, answering 401 itself when there is none.
func FromRequest(w http.ResponseWriter, r *http.Request) (Actor, bool) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		httptypes.WriteUnauthenticated(w, "missing identity")
	}
	return actor, ok
}
