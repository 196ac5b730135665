// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/tracing"
	"github.com/canonical/edumart/internal/types"
	"github.com/canonical/edumart/pkg/accounts"
	"github.com/canonical/edumart/pkg/admin"
	"github.com/canonical/edumart/pkg/chat"
	"github.com/canonical/edumart/pkg/clubs"
	"github.com/canonical/edumart/pkg/confessions"
	"github.com/canonical/edumart/pkg/leaderboard"
	"github.com/canonical/edumart/pkg/market"
	"github.com/canonical/edumart/pkg/metrics"
	"github.com/canonical/edumart/pkg/notes"
	"github.com/canonical/edumart/pkg/notifications"
	"github.com/canonical/edumart/pkg/polls"
	"github.com/canonical/edumart/pkg/status"
)

// Services groups the domain services exposed over HTTP.
type Services struct {
	Accounts      accounts.ServiceInterface
	Market        market.ServiceInterface
	Notes         notes.ServiceInterface
	Clubs         clubs.ServiceInterface
	Confessions   confessions.ServiceInterface
	Polls         polls.ServiceInterface
	Notifications notifications.ServiceInterface
	Chat          chat.ServiceInterface
	Leaderboard   leaderboard.ServiceInterface
	Admin         admin.ServiceInterface
}

type AuthenticatorInterface interface {
	Authenticate() func(http.Handler) http.Handler
}

func NewRouter(
	services *Services,
	hub *chat.Hub,
	authn AuthenticatorInterface,
	allowedOrigins []string,
	deps map[string]status.PingerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(allowedOrigins),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(deps, tracer, monitor, logger).RegisterEndpoints(router)

	accountsAPI := accounts.NewAPI(services.Accounts, logger)
	kinds := identity.NewMiddleware(tracer, monitor, logger)

	router.Route("/api", func(r chi.Router) {
		accountsAPI.RegisterEndpoints(r)

		r.Group(func(r chi.Router) {
			r.Use(authn.Authenticate())

			accountsAPI.RegisterAuthenticatedEndpoints(r)
			market.NewAPI(services.Market, logger).RegisterEndpoints(r)
			notes.NewAPI(services.Notes, logger).RegisterEndpoints(r)
			clubs.NewAPI(services.Clubs, logger).RegisterEndpoints(r)
			confessions.NewAPI(services.Confessions, logger).RegisterEndpoints(r)
			polls.NewAPI(services.Polls, logger).RegisterEndpoints(r)
			notifications.NewAPI(services.Notifications, logger).RegisterEndpoints(r)
			chat.NewAPI(services.Chat, hub, logger).RegisterEndpoints(r)
			leaderboard.NewAPI(services.Leaderboard, logger).RegisterEndpoints(r)

			r.Group(func(r chi.Router) {
				r.Use(kinds.RequireKind(types.KindSchool))
				admin.NewAPI(services.Admin, logger).RegisterEndpoints(r)
			})
		})
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
