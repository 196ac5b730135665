// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package pubsub

import "context"

// BrokerInterface delivers payloads to every live subscriber of a topic.
// Nothing published before Subscribe returns is replayed.
type BrokerInterface interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	Subscribe(ctx context.Context, topic string) (SubscriptionInterface, error)
	Close() error
}

type SubscriptionInterface interface {
	// Messages is closed once the subscription ends.
	Messages() <-chan []byte
	Close() error
}
