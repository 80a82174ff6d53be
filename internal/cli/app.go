// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tigana/internal/api"
	"github.com/tomtom215/tigana/internal/catalog"
	"github.com/tomtom215/tigana/internal/config"
	"github.com/tomtom215/tigana/internal/events"
	"github.com/tomtom215/tigana/internal/faq"
	"github.com/tomtom215/tigana/internal/promo"
	"github.com/tomtom215/tigana/internal/recommend"
	"github.com/tomtom215/tigana/internal/session"
	"github.com/tomtom215/tigana/internal/storage"
)

// app is the wired object graph shared by serve and the offline commands.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	products *catalog.Store
	store    storage.Store
	sessions *session.Manager
	engine   *recommend.Engine
	promos   *promo.Book
	faq      *faq.Responder

	// Set only when events are enabled and requested.
	pubsub    *gochannel.GoChannel
	publisher *events.Publisher
	consumer  *events.Consumer
}

type appOptions struct {
	// withEvents wires the behavior stream. Offline commands leave it off
	// so nothing is published from a one-shot run.
	withEvents bool
}

// newApp builds every component from cfg in dependency order. On error,
// anything already opened is closed.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger, opts appOptions) (_ *app, err error) {
	a := &app{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	if a.products, err = loadCatalog(cfg.Catalog.Path); err != nil {
		return nil, err
	}
	logger.Info().Int("products", a.products.Len()).Str("path", cfg.Catalog.Path).Msg("Catalog loaded")

	if a.store, err = storage.Open(ctx, cfg.Storage, logger); err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	var publisher session.Publisher
	if opts.withEvents && cfg.Events.Enabled {
		a.pubsub = events.NewPubSub(cfg.Events, logger)
		a.publisher = events.NewPublisher(a.pubsub, cfg.Events.Topic, logger)
		a.consumer = events.NewConsumer(a.pubsub, cfg.Events.Topic, logger)
		publisher = a.publisher
	}

	a.sessions, err = session.NewManager(cfg.Session, cfg.Favorites, a.store, a.products, publisher, logger)
	if err != nil {
		return nil, fmt.Errorf("create session manager: %w", err)
	}

	a.engine, err = recommend.NewEngine(cfg.Recommend.Clone(), a.products, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	a.promos, err = promo.NewBook(cfg.Promo.Offers, time.Now(), logger)
	if err != nil {
		return nil, fmt.Errorf("create promo book: %w", err)
	}

	a.faq = faq.New(logger)
	return a, nil
}

// loadCatalog reads path, or the built-in catalog when path is empty.
func loadCatalog(path string) (*catalog.Store, error) {
	if path == "" {
		return catalog.Default()
	}
	products, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return products, nil
}

// handler builds the REST router over the app's components.
func (a *app) handler() (http.Handler, error) {
	h, err := api.NewHandler(api.Dependencies{
		Catalog:  a.products,
		Sessions: a.sessions,
		Engine:   a.engine,
		FAQ:      a.faq,
		Promos:   a.promos,
		Shipping: a.cfg.Shipping,
		Store:    a.store,
	}, a.logger)
	if err != nil {
		return nil, err
	}

	sec := a.cfg.Security
	mw := api.NewMiddleware(&api.MiddlewareConfig{
		CORSAllowedOrigins: sec.CORSOrigins,
		CORSMaxAge:         86400,
		RateLimitRequests:  sec.RateLimitReqs,
		RateLimitWindow:    sec.RateLimitWindow,
		RateLimitDisabled:  sec.RateLimitDisabled,
		TrackingRate:       sec.TrackingRate,
		TrackingBurst:      sec.TrackingBurst,
		MaxBodyBytes:       sec.MaxBodyBytes,
	})
	return api.NewRouter(h, mw), nil
}

// gcInterval reports whether the store needs a GC loop and how often.
// Only badger reclaims space; the breaker wrapper forwards to it.
func (a *app) gcInterval() (time.Duration, bool) {
	s := a.store
	if b, ok := s.(*storage.BreakerStore); ok {
		s = b.Unwrap()
	}
	if b, ok := s.(*storage.BadgerStore); ok {
		return b.GCInterval(), true
	}
	return 0, false
}

// Close releases the event stream and the store.
func (a *app) Close() error {
	var errs []error
	if a.publisher != nil {
		errs = append(errs, a.publisher.Close())
	}
	if a.pubsub != nil {
		errs = append(errs, a.pubsub.Close())
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	return errors.Join(errs...)
}
