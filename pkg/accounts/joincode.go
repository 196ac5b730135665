// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	joinCodePrefix = "SCH"
	// widenEvery collisions the numeric part of the code gains two digits.
	widenEvery      = 20
	maxCodeAttempts = 3 * widenEvery
)

// joinCode returns a candidate code for the given attempt: two digits at
// first, then four, then six.
func joinCode(attempt int) string {
	switch {
	case attempt < widenEvery:
		return fmt.Sprintf("%s-%d", joinCodePrefix, 10+rand.IntN(90))
	case attempt < 2*widenEvery:
		return fmt.Sprintf("%s-%d", joinCodePrefix, 1000+rand.IntN(9000))
	default:
		return fmt.Sprintf("%s-%d", joinCodePrefix, 100000+rand.IntN(900000))
	}
}

func normalizeJoinCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
