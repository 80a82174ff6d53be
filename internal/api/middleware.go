// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package api

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"golang.org/x/time/rate"

	"github.com/tomtom215/tigana/internal/cache"
	"github.com/tomtom215/tigana/internal/logging"
	"github.com/tomtom215/tigana/internal/metrics"
)

type ctxKey int

const startTimeKey ctxKey = iota

// MiddlewareConfig configures the router's middleware chain.
type MiddlewareConfig struct {
	// CORS configuration
	CORSAllowedOrigins []string
	CORSMaxAge         int // seconds

	// Per-IP rate limiting across the whole API
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool

	// Per-session throttle on tracking endpoints
	TrackingRate  float64
	TrackingBurst int

	// MaxBodyBytes caps JSON request bodies
	MaxBodyBytes int64
}

// DefaultMiddlewareConfig returns the settings used when none are given.
func DefaultMiddlewareConfig() *MiddlewareConfig {
	return &MiddlewareConfig{
		CORSAllowedOrigins: []string{"*"},
		CORSMaxAge:         86400,
		RateLimitRequests:  100,
		RateLimitWindow:    time.Minute,
		TrackingRate:       5,
		TrackingBurst:      20,
		MaxBodyBytes:       1 << 20,
	}
}

// Middleware builds the chi middleware used by the router.
type Middleware struct {
	config   *MiddlewareConfig
	cors     func(http.Handler) http.Handler
	tracking *trackingLimiter
}

// NewMiddleware creates the middleware factory for config.
func NewMiddleware(config *MiddlewareConfig) *Middleware {
	if config == nil {
		config = DefaultMiddlewareConfig()
	}

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   config.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           config.CORSMaxAge,
	})

	return &Middleware{
		config:   config,
		cors:     corsHandler,
		tracking: newTrackingLimiter(config.TrackingRate, config.TrackingBurst),
	}
}

// CORS returns the go-chi/cors handler.
func (m *Middleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit limits requests per client IP with go-chi/httprate. It is a
// no-op when disabled.
func (m *Middleware) RateLimit() func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled || m.config.RateLimitRequests <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		m.config.RateLimitRequests,
		m.config.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			WriteError(w, r, http.StatusTooManyRequests, ErrCodeTooManyRequests, "Rate limit exceeded")
		}),
	)
}

// TrackingThrottle limits behavior tracking calls per session. The session
// id comes from the {sid} route parameter.
func (m *Middleware) TrackingThrottle() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.tracking != nil && !m.tracking.allow(chi.URLParam(r, "sid")) {
				w.Header().Set("Retry-After", "1")
				WriteError(w, r, http.StatusTooManyRequests, ErrCodeTooManyRequests, "Too many tracking events for this session")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LimitBody caps the request body at MaxBodyBytes.
func (m *Middleware) LimitBody() func(http.Handler) http.Handler {
	limit := m.config.MaxBodyBytes
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestIDWithLogging wraps chi's RequestID middleware and puts the
// request ID into the logging context.
func RequestIDWithLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		chiRequestID := chimiddleware.RequestID(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(chimiddleware.RequestIDHeader)
			if requestID == "" {
				requestID = logging.GenerateRequestID()
				r.Header.Set(chimiddleware.RequestIDHeader, requestID)
			}
			w.Header().Set(chimiddleware.RequestIDHeader, requestID)

			ctx := logging.ContextWithRequestID(r.Context(), requestID)
			ctx = context.WithValue(ctx, startTimeKey, time.Now())
			chiRequestID.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionContext adds the {sid} route parameter to the logging context.
func SessionContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sid := chi.URLParam(r, "sid"); sid != "" {
			r = r.WithContext(logging.ContextWithSessionID(r.Context(), sid))
		}
		next.ServeHTTP(w, r)
	})
}

// SecurityHeaders sets the headers every JSON response carries.
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PrometheusMetrics records request count and latency. The endpoint label
// is the matched route pattern so ids in paths do not explode cardinality.
func PrometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		endpoint := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				endpoint = pattern
			}
		}
		metrics.RecordAPIRequest(r.Method, endpoint, strconv.Itoa(status), time.Since(start))
	})
}

// RequestLogger logs one line per request through zerolog.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logging.Ctx(r.Context()).Debug().
			Str("method", r.Method).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func startTime(r *http.Request) time.Time {
	if t, ok := r.Context().Value(startTimeKey).(time.Time); ok {
		return t
	}
	return time.Now()
}

// trackingLimiter hands out one token bucket per session. Buckets live in
// a bounded LRU so idle sessions do not accumulate.
type trackingLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters *cache.LRU[*rate.Limiter]
}

func newTrackingLimiter(perSecond float64, burst int) *trackingLimiter {
	if perSecond <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &trackingLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: cache.NewLRU[*rate.Limiter](10000, 30*time.Minute),
	}
}

func (t *trackingLimiter) allow(sessionID string) bool {
	t.mu.Lock()
	l, ok := t.limiters.Get(sessionID)
	if !ok {
		l = rate.NewLimiter(t.limit, t.burst)
		t.limiters.Add(sessionID, l)
	}
	t.mu.Unlock()
	return l.Allow()
}
