// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package events

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tigana/internal/metrics"
)

// Handler observes each decoded event.
type Handler func(Event)

// Consumer drains one topic and counts events by kind.
type Consumer struct {
	sub     message.Subscriber
	topic   string
	logger  zerolog.Logger
	handler Handler

	mu     sync.Mutex
	counts map[string]int64

	total     atomic.Int64
	malformed atomic.Int64
}

// NewConsumer subscribes to topic on sub when Run is called.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewConsumer(sub message.Subscriber, topic string, logger zerolog.Logger) *Consumer {
	if topic == "" {
		topic = Topic
	}
	return &Consumer{
		sub:    sub,
		topic:  topic,
		logger: logger.With().Str("component", "event-consumer").Logger(),
		counts: make(map[string]int64),
	}
}

// OnEvent sets a handler called after each event is counted. Call before Run.
func (c *Consumer) OnEvent(h Handler) {
	c.handler = h
}

// Run consumes until ctx is done or the subscription closes.
func (c *Consumer) Run(ctx context.Context) error {
	messages, err := c.sub.Subscribe(ctx, c.topic)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", c.topic, err)
	}
	c.logger.Info().Str("topic", c.topic).Msg("Event consumer started")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Int64("consumed", c.total.Load()).Msg("Event consumer stopped")
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			c.handle(msg)
		}
	}
}

func (c *Consumer) handle(msg *message.Message) {
	// Malformed payloads are acked; redelivery would never succeed.
	defer msg.Ack()

	ev, err := Unmarshal(msg.Payload)
	if err != nil {
		c.malformed.Add(1)
		c.logger.Warn().Err(err).Str("message_id", msg.UUID).Msg("Malformed behavior event")
		return
	}

	c.total.Add(1)
	c.mu.Lock()
	c.counts[ev.Kind]++
	c.mu.Unlock()
	metrics.EventsConsumed.WithLabelValues(ev.Kind).Inc()

	if c.handler != nil {
		c.handler(ev)
	}
}

// Stats is a snapshot of consumer counters.
type Stats struct {
	Total     int64            `json:"total"`
	Malformed int64            `json:"malformed"`
	ByKind    map[string]int64 `json:"by_kind"`
}

// Stats returns the counts so far.
func (c *Consumer) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	byKind := make(map[string]int64, len(c.counts))
	for k, v := range c.counts {
		byKind[k] = v
	}
	return Stats{
		Total:     c.total.Load(),
		Malformed: c.malformed.Load(),
		ByKind:    byKind,
	}
}

// Topic returns the consumed topic.
func (c *Consumer) Topic() string {
	return c.topic
}
