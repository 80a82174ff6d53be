// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package services

import (
	"context"
	"errors"
	"fmt"
)

// Runner is a blocking loop that stops when its context ends. Satisfied by
// *events.Consumer.
type Runner interface {
	Run(ctx context.Context) error
}

// EventConsumerService supervises the behavior event consumer. A
// subscription failure is returned so suture restarts the consumer.
type EventConsumerService struct {
	runner Runner
	name   string
}

// NewEventConsumerService wraps runner.
func NewEventConsumerService(runner Runner) *EventConsumerService {
	return &EventConsumerService{runner: runner, name: "event-consumer"}
}

// Serve implements suture.Service.
func (s *EventConsumerService) Serve(ctx context.Context) error {
	err := s.runner.Run(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return fmt.Errorf("event consumer failed: %w", err)
}

// String implements fmt.Stringer for suture's logs.
func (s *EventConsumerService) String() string {
	return s.name
}
