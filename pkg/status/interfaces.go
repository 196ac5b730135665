// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import "context"

// PingerInterface is satisfied by any dependency that can report liveness.
type PingerInterface interface {
	Ping(context.Context) error
}
