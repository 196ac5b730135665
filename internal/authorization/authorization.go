// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"github.com/canonical/edumart/internal/apperr"
	"github.com/canonical/edumart/internal/identity"
	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/tracing"
)

var _ AuthorizerInterface = (*Authorizer)(nil)

// Authorizer enforces school isolation and ownership. A cross-school access is
// refused as unauthorized, never as not found.
type Authorizer struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// CheckTenant allows the actor to reach a resource of its own school only.
func (a *Authorizer) CheckTenant(ctx context.Context, actor identity.Actor, tenantID, resource string) error {
	_, span := a.tracer.Start(ctx, "authorization.Authorizer.CheckTenant")
	defer span.End()

	if actor.TenantID == "" || actor.TenantID != tenantID {
		a.logger.Security().AuthzFailure(actor.AccountID, resource)
		return apperr.Unauthorized("Unauthorized access to this %s", resource)
	}
	return nil
}

// CheckOwner allows the actor to modify a resource it owns within its own school.
func (a *Authorizer) CheckOwner(ctx context.Context, actor identity.Actor, tenantID, ownerID, resource string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.CheckOwner")
	defer span.End()

	if err := a.CheckTenant(ctx, actor, tenantID, resource); err != nil {
		return err
	}

	if actor.AccountID != ownerID {
		a.logger.Security().AuthzFailure(actor.AccountID, resource)
		return apperr.Unauthorized("Unauthorized to modify this %s", resource)
	}
	return nil
}

// CheckSelf allows an account-addressed call only for the caller's own account.
func (a *Authorizer) CheckSelf(ctx context.Context, actor identity.Actor, accountID string) error {
	_, span := a.tracer.Start(ctx, "authorization.Authorizer.CheckSelf")
	defer span.End()

	if actor.AccountID != accountID {
		a.logger.Security().AuthzFailure(actor.AccountID, "account "+accountID)
		return apperr.Unauthorized("Unauthorized access to another account")
	}
	return nil
}

func NewAuthorizer(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	a := new(Authorizer)

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
