// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"

	"github.com/canonical/edumart/internal/types"
)

// Actor is the verified caller of an operation. TenantID always comes from the
// caller's token, never from request input.
type Actor struct {
	AccountID string
	TenantID  string
	Kind      types.AccountKind
	Cohort    string
}

func (a Actor) IsSchool() bool {
	return a.Kind == types.KindSchool
}

type contextKey struct{}

var actorContextKey = contextKey{}

// WithActor returns a new context carrying the actor.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, a)
}

// ActorFromContext retrieves the actor, reporting false when the request is anonymous.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorContextKey).(Actor)
	return a, ok && a.AccountID != ""
}
