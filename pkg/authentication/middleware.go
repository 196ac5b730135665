// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"errors"
	"net/http"
	"strings"

	"github.com/canonical/edumart/internal/apperr"
	httptypes "github.com/canonical/edumart/internal/http/types"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/storage"
	"github.com/canonical/edumart/internal/tracing"
)

const SuspendedMessage = "Your account has been suspended by the school administrator."

type Middleware struct {
	verifier TokenVerifierInterface
	accounts AccountStorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Authenticate resolves the caller from a bearer token, or from the token
// query parameter for websocket upgrades, and rejects suspended accounts.
func (m *Middleware) Authenticate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authentication.Middleware.Authenticate")
			defer span.End()

			token, found := m.getToken(r)
			if !found {
				httptypes.WriteUnauthenticated(w, "missing authorization header")
				return
			}

			claims, err := m.verifier.VerifyToken(ctx, token)
			if err != nil {
				m.logger.Debugf("JWT verification failed: %v", err)
				httptypes.WriteUnauthenticated(w, "invalid token")
				return
			}

			account, err := m.accounts.GetAccountByID(ctx, claims.Subject)
			if errors.Is(err, storage.ErrNotFound) {
				httptypes.WriteUnauthenticated(w, "invalid token")
				return
			}
			if err != nil {
				m.logger.Errorf("failed to load account %s: %v", claims.Subject, err)
				httptypes.WriteError(w, err)
				return
			}

			if account.Suspended {
				m.logger.Security().AuthzFailure(account.ID, "suspended_account")
				httptypes.WriteError(w, apperr.Suspended(SuspendedMessage))
				return
			}

			ctx = identity.WithActor(ctx, identity.Actor{
				AccountID: account.ID,
				TenantID:  account.TenantID,
				Kind:      account.Kind,
				Cohort:    account.Cohort,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (m *Middleware) getToken(r *http.Request) (string, bool) {
	if bearer := r.Header.Get("Authorization"); bearer != "" {
		// Only support "Bearer <token>" format (RFC 6750)
		if !strings.HasPrefix(bearer, "Bearer ") {
			return "", false
		}
		return strings.TrimPrefix(bearer, "Bearer "), true
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token, true
	}

	return "", false
}

func NewMiddleware(verifier TokenVerifierInterface, accounts AccountStorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		verifier: verifier,
		accounts: accounts,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
