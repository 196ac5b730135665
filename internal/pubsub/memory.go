// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package pubsub

import (
	"context"
	"errors"
	"sync"

	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/tracing"
)

const subscriberBuffer = 64

var ErrBrokerClosed = errors.New("broker closed")

var _ BrokerInterface = (*MemoryBroker)(nil)

// MemoryBroker fans out in-process; rooms are not shared between replicas.
type MemoryBroker struct {
	mu     sync.RWMutex
	topics map[string]map[*memorySubscription]struct{}
	closed bool

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

type memorySubscription struct {
	broker *MemoryBroker
	topic  string
	ch     chan []byte
	once   sync.Once
}

func (s *memorySubscription) Messages() <-chan []byte {
	return s.ch
}

func (s *memorySubscription) Close() error {
	s.once.Do(func() {
		s.broker.remove(s)
	})
	return nil
}

func (b *MemoryBroker) Publish(ctx context.Context, topic string, payload []byte) error {
	_, span := b.tracer.Start(ctx, "pubsub.MemoryBroker.Publish")
	defer span.End()

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBrokerClosed
	}

	for sub := range b.topics[topic] {
		select {
		case sub.ch <- payload:
		default:
			b.logger.Warnf("dropping message on %s: subscriber buffer full", topic)
		}
	}
	return nil
}

// Subscribe registers the subscriber before returning, so every Publish that
// starts afterwards reaches it.
func (b *MemoryBroker) Subscribe(ctx context.Context, topic string) (SubscriptionInterface, error) {
	_, span := b.tracer.Start(ctx, "pubsub.MemoryBroker.Subscribe")
	defer span.End()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBrokerClosed
	}

	sub := &memorySubscription{
		broker: b,
		topic:  topic,
		ch:     make(chan []byte, subscriberBuffer),
	}

	if b.topics[topic] == nil {
		b.topics[topic] = make(map[*memorySubscription]struct{})
	}
	b.topics[topic][sub] = struct{}{}

	return sub, nil
}

func (b *MemoryBroker) remove(sub *memorySubscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.topics[sub.topic]
	if !ok {
		return
	}
	if _, ok := subs[sub]; !ok {
		return
	}

	delete(subs, sub)
	if len(subs) == 0 {
		delete(b.topics, sub.topic)
	}
	close(sub.ch)
}

// Close ends every open subscription.
func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for topic, subs := range b.topics {
		for sub := range subs {
			close(sub.ch)
		}
		delete(b.topics, topic)
	}
	return nil
}

func NewMemoryBroker(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *MemoryBroker {
	b := new(MemoryBroker)

	b.topics = make(map[string]map[*memorySubscription]struct{})

	b.tracer = tracer
	b.monitor = monitor
	b.logger = logger

	return b
}
