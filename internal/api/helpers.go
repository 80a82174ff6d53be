// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tigana/internal/catalog"
	"github.com/tomtom215/tigana/internal/logging"
	"github.com/tomtom215/tigana/internal/promo"
	"github.com/tomtom215/tigana/internal/session"
	"github.com/tomtom215/tigana/internal/validation"
)

// sanitizeLogValue escapes control characters so request data cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// decodeJSON reads the request body into dst and validates it. It writes
// the error response itself and returns false on any failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	rw := NewResponseWriter(w, r)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			rw.Error(http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge,
				fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit))
			return false
		}
		rw.BadRequest("Failed to read request body")
		return false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		rw.BadRequest("Request body is required")
		return false
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		rw.BadRequest("Invalid JSON body")
		return false
	}
	return validateRequest(rw, dst)
}

// validateRequest runs struct validation and writes VALIDATION_ERROR on
// failure.
func validateRequest(rw *ResponseWriter, v interface{}) bool {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return true
	}
	apiErr := verr.ToAPIError()
	rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeValidationFailed, apiErr.Message, apiErr.Details)
	return false
}

// floatQuery parses an optional float query parameter. A missing value is
// nil; a malformed one is an error.
func floatQuery(r *http.Request, key string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	return &v, nil
}

// respondDomainError maps package sentinel errors to API errors.
func respondDomainError(rw *ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		rw.NotFound(ErrCodeProductNotFound, "Product not found")
	case errors.Is(err, session.ErrInvalidID):
		rw.Error(http.StatusBadRequest, ErrCodeInvalidSession, "Invalid session id")
	case errors.Is(err, session.ErrUnknownCategory):
		rw.NotFound(ErrCodeNotFound, "Unknown category")
	case errors.Is(err, session.ErrInvalidPriceRange):
		rw.Error(http.StatusBadRequest, ErrCodeValidationFailed, "Invalid price range")
	case errors.Is(err, promo.ErrUnknownCode):
		rw.NotFound(ErrCodePromoUnknown, "Unknown promo code")
	case errors.Is(err, promo.ErrExpired):
		rw.Error(http.StatusUnprocessableEntity, ErrCodePromoExpired, "Promo code has expired")
	case errors.Is(err, promo.ErrNotEligible):
		rw.Error(http.StatusUnprocessableEntity, ErrCodePromoNotEligible, "Order is not eligible for this promo code")
	default:
		logging.Ctx(r.Context()).Error().Str("error", sanitizeLogValue(err.Error())).Msg("API error")
		rw.InternalError("An internal error occurred")
	}
}
