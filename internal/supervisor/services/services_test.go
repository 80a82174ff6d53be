// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

var (
	_ suture.Service = (*HTTPServerService)(nil)
	_ suture.Service = (*StorageGCService)(nil)
	_ suture.Service = (*EventConsumerService)(nil)
)

type fakeHTTPServer struct {
	listenErr error
	shutErr   error
	started   chan struct{}
	stop      chan struct{}
	shutdowns atomic.Int32
}

func newFakeHTTPServer() *fakeHTTPServer {
	return &fakeHTTPServer{started: make(chan struct{}, 1), stop: make(chan struct{})}
}

func (f *fakeHTTPServer) ListenAndServe() error {
	f.started <- struct{}{}
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeHTTPServer) Shutdown(context.Context) error {
	f.shutdowns.Add(1)
	close(f.stop)
	return f.shutErr
}

func TestHTTPServerService_GracefulShutdown(t *testing.T) {
	t.Parallel()

	srv := newFakeHTTPServer()
	svc := NewHTTPServerService(srv, time.Second)
	if svc.String() != "http-server" {
		t.Errorf("String() = %q", svc.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	<-srv.started
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
	if srv.shutdowns.Load() != 1 {
		t.Errorf("Shutdown called %d times", srv.shutdowns.Load())
	}
}

func TestHTTPServerService_ListenFailure(t *testing.T) {
	t.Parallel()

	srv := newFakeHTTPServer()
	srv.listenErr = errors.New("address already in use")
	err := NewHTTPServerService(srv, 0).Serve(context.Background())
	if err == nil || !errors.Is(err, srv.listenErr) {
		t.Errorf("Serve() = %v, want wrapped listen error", err)
	}
}

func TestHTTPServerService_ShutdownFailure(t *testing.T) {
	t.Parallel()

	srv := newFakeHTTPServer()
	srv.shutErr = errors.New("connections still open")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewHTTPServerService(srv, time.Second).Serve(ctx) }()

	<-srv.started
	cancel()
	if err := <-done; !errors.Is(err, srv.shutErr) {
		t.Errorf("Serve() = %v, want wrapped shutdown error", err)
	}
}

type countingCollector struct {
	calls atomic.Int32
	err   error
}

func (c *countingCollector) RunGC() error {
	c.calls.Add(1)
	return c.err
}

func TestStorageGCService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{"healthy", nil},
		{"failing passes keep running", errors.New("value log busy")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := &countingCollector{err: tt.err}
			svc := NewStorageGCService(c, 5*time.Millisecond, zerolog.Nop())

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- svc.Serve(ctx) }()

			deadline := time.Now().Add(2 * time.Second)
			for c.calls.Load() < 3 && time.Now().Before(deadline) {
				time.Sleep(2 * time.Millisecond)
			}
			cancel()

			if err := <-done; !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() = %v, want context.Canceled", err)
			}
			if c.calls.Load() < 3 {
				t.Errorf("RunGC called %d times, want >= 3", c.calls.Load())
			}
		})
	}
}

func TestStorageGCService_DefaultInterval(t *testing.T) {
	t.Parallel()

	svc := NewStorageGCService(&countingCollector{}, 0, zerolog.Nop())
	if svc.interval != 10*time.Minute {
		t.Errorf("interval = %v, want 10m", svc.interval)
	}
	if svc.String() != "storage-gc" {
		t.Errorf("String() = %q", svc.String())
	}
}

type runnerFunc func(ctx context.Context) error

func (f runnerFunc) Run(ctx context.Context) error { return f(ctx) }

func TestEventConsumerService(t *testing.T) {
	t.Parallel()

	boom := errors.New("subscribe failed")
	tests := []struct {
		name    string
		run     runnerFunc
		wantErr error
	}{
		{"clean stop", func(context.Context) error { return nil }, nil},
		{"canceled", func(ctx context.Context) error { return context.Canceled }, context.Canceled},
		{"failure is wrapped", func(context.Context) error { return boom }, boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := NewEventConsumerService(tt.run)
			err := svc.Serve(context.Background())
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Serve() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Serve() = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if got := NewEventConsumerService(nil).String(); got != "event-consumer" {
		t.Errorf("String() = %q", got)
	}
}
