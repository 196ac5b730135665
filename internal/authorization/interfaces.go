// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"github.com/canonical/edumart/internal/identity"
)

type AuthorizerInterface interface {
	CheckTenant(ctx context.Context, actor identity.Actor, tenantID, resource string) error
	CheckOwner(ctx context.Context, actor identity.Actor, tenantID, ownerID, resource string) error
	CheckSelf(ctx context.Context, actor identity.Actor, accountID string) error
}
