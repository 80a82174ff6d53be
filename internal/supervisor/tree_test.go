// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package supervisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

// stubService runs until canceled, failing the first fails calls.
type stubService struct {
	name   string
	fails  int32
	starts atomic.Int32
	stops  atomic.Int32
}

func (s *stubService) Serve(ctx context.Context) error {
	n := s.starts.Add(1)
	defer s.stops.Add(1)
	if n <= s.fails {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *stubService) String() string { return s.name }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestNewTree_Defaults(t *testing.T) {
	t.Parallel()

	tree := NewTree(quietLogger(), TreeConfig{})
	if got := tree.Config(); got != DefaultTreeConfig() {
		t.Errorf("Config() = %+v, want %+v", got, DefaultTreeConfig())
	}

	custom := TreeConfig{FailureThreshold: 2, FailureDecay: 1, FailureBackoff: time.Second, ShutdownTimeout: time.Second}
	if got := NewTree(quietLogger(), custom).Config(); got != custom {
		t.Errorf("Config() = %+v, want %+v", got, custom)
	}
}

func TestTree_RunsEveryLayer(t *testing.T) {
	t.Parallel()

	tree := NewTree(quietLogger(), TreeConfig{FailureBackoff: 10 * time.Millisecond, ShutdownTimeout: time.Second})
	data := &stubService{name: "data"}
	events := &stubService{name: "events"}
	api := &stubService{name: "api"}
	tree.AddDataService(data)
	tree.AddEventService(events)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	done := tree.ServeBackground(ctx)

	waitUntil(t, 2*time.Second, func() bool {
		return data.starts.Load() == 1 && events.starts.Load() == 1 && api.starts.Load() == 1
	})

	cancel()
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("tree stopped with %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("tree did not stop")
	}

	for _, s := range []*stubService{data, events, api} {
		if s.stops.Load() != 1 {
			t.Errorf("%s stopped %d times, want 1", s.name, s.stops.Load())
		}
	}
	if report, err := tree.UnstoppedServiceReport(); err != nil || len(report) != 0 {
		t.Errorf("UnstoppedServiceReport() = %v, %v", report, err)
	}
}

func TestTree_RestartsFailedService(t *testing.T) {
	t.Parallel()

	tree := NewTree(quietLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})
	flaky := &stubService{name: "flaky", fails: 2}
	steady := &stubService{name: "steady"}
	tree.AddEventService(flaky)
	tree.AddAPIService(steady)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := tree.ServeBackground(ctx)

	waitUntil(t, 3*time.Second, func() bool { return flaky.starts.Load() >= 3 })
	if steady.starts.Load() != 1 {
		t.Errorf("steady restarted: %d starts", steady.starts.Load())
	}

	cancel()
	<-done
}
