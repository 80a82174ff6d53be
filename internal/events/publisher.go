// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tigana/internal/metrics"
)

// ErrPublisherClosed is returned by Publish after Close.
var ErrPublisherClosed = errors.New("publisher is closed")

// NewPubSub returns the in-process transport shared by publisher and
// consumer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPubSub(cfg Config, logger zerolog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: cfg.Buffer},
		NewLoggerAdapter(logger.With().Str("component", "watermill").Logger()),
	)
}

// Publisher sends behavior events to one topic.
type Publisher struct {
	pub    message.Publisher
	topic  string
	logger zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// NewPublisher publishes to topic on pub.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPublisher(pub message.Publisher, topic string, logger zerolog.Logger) *Publisher {
	if topic == "" {
		topic = Topic
	}
	return &Publisher{
		pub:    pub,
		topic:  topic,
		logger: logger.With().Str("component", "event-publisher").Logger(),
	}
}

// Publish sends ev. Failures are logged and counted before being returned,
// so callers on the mutation path may ignore the error.
//
//nolint:gocritic // hugeParam: events are small value records
func (p *Publisher) Publish(ctx context.Context, ev Event) error {
	err := p.publish(ctx, &ev)
	if err != nil {
		metrics.EventsPublishFailures.Inc()
		p.logger.Warn().Err(err).
			Str("kind", ev.Kind).
			Str("session_id", ev.SessionID).
			Msg("behavior event dropped")
	}
	return err
}

func (p *Publisher) publish(ctx context.Context, ev *Event) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	data, err := ev.Marshal()
	if err != nil {
		return err
	}
	msg := message.NewMessage(ev.ID, data)
	msg.Metadata.Set("kind", ev.Kind)
	msg.Metadata.Set("source", string(ev.Source))
	msg.Metadata.Set("session_id", ev.SessionID)
	msg.SetContext(ctx)

	if err := p.pub.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Kind, err)
	}
	return nil
}

// Topic returns the destination topic.
func (p *Publisher) Topic() string {
	return p.topic
}

// Close stops publishing. The underlying transport is left open.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
