// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package pubsub

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/canonical/edumart/internal/logging"
	"github.com/canonical/edumart/internal/monitoring"
	"github.com/canonical/edumart/internal/tracing"
)

var _ BrokerInterface = (*RedisBroker)(nil)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces channels as <prefix>:<topic>.
	Prefix string
}

// RedisBroker fans out through Redis PUBLISH/SUBSCRIBE so replicas share rooms.
type RedisBroker struct {
	client redis.UniversalClient
	prefix string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

type redisSubscription struct {
	ps   *redis.PubSub
	ch   chan []byte
	done chan struct{}
	once sync.Once
}

func (s *redisSubscription) Messages() <-chan []byte {
	return s.ch
}

func (s *redisSubscription) Close() error {
	var err error
	s.once.Do(func() {
		err = s.ps.Close()
		<-s.done
	})
	return err
}

func (b *RedisBroker) channel(topic string) string {
	if b.prefix == "" {
		return topic
	}
	return b.prefix + ":" + topic
}

func (b *RedisBroker) Publish(ctx context.Context, topic string, payload []byte) error {
	ctx, span := b.tracer.Start(ctx, "pubsub.RedisBroker.Publish")
	defer span.End()

	if err := b.client.Publish(ctx, b.channel(topic), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe waits for Redis to confirm the subscription before returning.
func (b *RedisBroker) Subscribe(ctx context.Context, topic string) (SubscriptionInterface, error) {
	ctx, span := b.tracer.Start(ctx, "pubsub.RedisBroker.Subscribe")
	defer span.End()

	ps := b.client.Subscribe(ctx, b.channel(topic))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	sub := &redisSubscription{
		ps:   ps,
		ch:   make(chan []byte, subscriberBuffer),
		done: make(chan struct{}),
	}

	go func() {
		defer close(sub.done)
		defer close(sub.ch)

		for msg := range ps.Channel() {
			select {
			case sub.ch <- []byte(msg.Payload):
			default:
				b.logger.Warnf("dropping message on %s: subscriber buffer full", topic)
			}
		}
	}()

	return sub, nil
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}

func NewRedisBroker(cfg RedisConfig, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*RedisBroker, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{cfg.Addr},
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = monitor.SetDependencyAvailability(map[string]string{"component": "redis"}, 0)
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	_ = monitor.SetDependencyAvailability(map[string]string{"component": "redis"}, 1)

	b := new(RedisBroker)
	b.client = client
	b.prefix = cfg.Prefix

	b.tracer = tracer
	b.monitor = monitor
	b.logger = logger

	return b, nil
}
