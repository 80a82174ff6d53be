// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tigana/internal/cart"
	"github.com/tomtom215/tigana/internal/catalog"
	"github.com/tomtom215/tigana/internal/faq"
	"github.com/tomtom215/tigana/internal/promo"
	"github.com/tomtom215/tigana/internal/recommend"
	"github.com/tomtom215/tigana/internal/session"
	"github.com/tomtom215/tigana/internal/storage"
)

// healthProbeKey is read on every health check. It is never written, so a
// healthy store answers ErrNotFound.
const healthProbeKey = "health:probe"

// Dependencies are the components the handlers serve.
type Dependencies struct {
	Catalog  *catalog.Store
	Sessions *session.Manager
	Engine   *recommend.Engine
	FAQ      *faq.Responder
	Promos   *promo.Book
	Shipping cart.ShippingPolicy

	// Store is probed by /health. Optional.
	Store storage.Store

	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Handler serves the storefront REST API.
type Handler struct {
	deps      Dependencies
	logger    zerolog.Logger
	startTime time.Time
}

// NewHandler checks deps and builds a Handler.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(deps Dependencies, logger zerolog.Logger) (*Handler, error) {
	switch {
	case deps.Catalog == nil:
		return nil, errors.New("api: catalog is required")
	case deps.Sessions == nil:
		return nil, errors.New("api: session manager is required")
	case deps.Engine == nil:
		return nil, errors.New("api: recommendation engine is required")
	case deps.FAQ == nil:
		return nil, errors.New("api: faq responder is required")
	case deps.Promos == nil:
		return nil, errors.New("api: promo book is required")
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return &Handler{
		deps:      deps,
		logger:    logger.With().Str("component", "api").Logger(),
		startTime: deps.Clock(),
	}, nil
}

// openSession resolves the {sid} parameter to a hydrated session. It writes
// the error response and returns nil on failure.
func (h *Handler) openSession(w http.ResponseWriter, r *http.Request) *session.Session {
	s, err := h.deps.Sessions.Open(r.Context(), chi.URLParam(r, "sid"))
	if err != nil {
		respondDomainError(NewResponseWriter(w, r), r, err)
		return nil
	}
	return s
}

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status       string  `json:"status"`
	Products     int     `json:"products"`
	OpenSessions int     `json:"open_sessions"`
	Storage      string  `json:"storage"`
	UptimeSec    float64 `json:"uptime_seconds"`
}

// Health reports catalog size, open sessions and storage reachability.
// An unreachable store degrades the service but the catalog still serves.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:       "ok",
		Products:     h.deps.Catalog.Len(),
		OpenSessions: h.deps.Sessions.Len(),
		Storage:      "none",
		UptimeSec:    h.deps.Clock().Sub(h.startTime).Seconds(),
	}

	if h.deps.Store != nil {
		status.Storage = "ok"
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if _, err := h.deps.Store.Get(ctx, healthProbeKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
			h.logger.Warn().Err(err).Msg("Storage health probe failed")
			status.Status = "degraded"
			status.Storage = "unavailable"
		}
	}

	rw := NewResponseWriter(w, r)
	if status.Status != "ok" {
		rw.writeEnvelope(http.StatusServiceUnavailable, APIResponse{
			Success: false,
			Data:    status,
			Error:   &APIError{Code: ErrCodeServiceUnavailable, Message: "storage unavailable"},
			Meta:    rw.meta(nil),
		})
		return
	}
	rw.Success(status)
}
