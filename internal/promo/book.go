// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

// Package promo validates and prices promotional codes. Each code carries a
// CEL eligibility rule evaluated over the order:
//
//	subtotal     double     cart subtotal before shipping
//	first_order  bool       whether the shopper has no purchase history
//	now          timestamp  evaluation time
//	valid_until  timestamp  end of the code's validity window
package promo

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tigana/internal/validation"
)

// Discount is the result of applying a code to an order.
type Discount struct {
	Code        string  `json:"code"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type compiled struct {
	offer   Offer
	program cel.Program
}

// Book holds the compiled offers. It is immutable and safe for concurrent use.
type Book struct {
	order  []string
	offers map[string]compiled
	logger zerolog.Logger
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("subtotal", cel.DoubleType),
		cel.Variable("first_order", cel.BoolType),
		cel.Variable("now", cel.TimestampType),
		cel.Variable("valid_until", cel.TimestampType),
	)
}

// NewBook compiles offers whose validity windows start at issuedAt.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBook(offers []Offer, issuedAt time.Time, logger zerolog.Logger) (*Book, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL env: %w", err)
	}

	b := &Book{
		offers: make(map[string]compiled, len(offers)),
		logger: logger.With().Str("component", "promo").Logger(),
	}
	for i := range offers {
		o := offers[i]
		if err := validation.ValidateStruct(&o); err != nil {
			return nil, fmt.Errorf("offer %q: %w", o.Code, err)
		}
		o.Code = strings.ToUpper(strings.TrimSpace(o.Code))
		if _, dup := b.offers[o.Code]; dup {
			return nil, fmt.Errorf("offer %q: duplicate code", o.Code)
		}
		o.ValidUntil = issuedAt.Add(o.ValidFor)

		ast, issues := env.Compile(o.Expression())
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("offer %q: CEL compile error: %w", o.Code, issues.Err())
		}
		if !ast.OutputType().IsExactType(cel.BoolType) {
			return nil, fmt.Errorf("offer %q: rule must return bool, got %s", o.Code, ast.OutputType())
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("offer %q: CEL program error: %w", o.Code, err)
		}

		b.offers[o.Code] = compiled{offer: o, program: prg}
		b.order = append(b.order, o.Code)
	}
	return b, nil
}

// Active returns the offers still valid at now, in declaration order.
func (b *Book) Active(now time.Time) []Offer {
	out := make([]Offer, 0, len(b.order))
	for _, code := range b.order {
		o := b.offers[code].offer
		if !now.After(o.ValidUntil) {
			out = append(out, o)
		}
	}
	return out
}

// Lookup finds an offer by code, ignoring case and surrounding space.
func (b *Book) Lookup(code string) (Offer, bool) {
	c, ok := b.offers[normalize(code)]
	return c.offer, ok
}

// Apply checks code against an order and returns the discount it grants.
func (b *Book) Apply(code string, subtotal float64, firstOrder bool, now time.Time) (Discount, error) {
	c, ok := b.offers[normalize(code)]
	if !ok {
		return Discount{}, fmt.Errorf("%w: %q", ErrUnknownCode, code)
	}
	if now.After(c.offer.ValidUntil) {
		return Discount{}, fmt.Errorf("%w: %s ended %s", ErrExpired, c.offer.Code, c.offer.ValidUntil.Format(time.RFC3339))
	}

	out, _, err := c.program.Eval(map[string]any{
		"subtotal":    subtotal,
		"first_order": firstOrder,
		"now":         now,
		"valid_until": c.offer.ValidUntil,
	})
	if err != nil {
		b.logger.Error().Err(err).Str("code", c.offer.Code).Msg("promo rule evaluation failed")
		return Discount{}, fmt.Errorf("CEL eval error: %w", err)
	}
	eligible, isBool := out.Value().(bool)
	if !isBool {
		return Discount{}, errors.New("promo rule result not boolean")
	}
	if !eligible {
		return Discount{}, fmt.Errorf("%w: %s", ErrNotEligible, c.offer.Code)
	}

	return Discount{
		Code:        c.offer.Code,
		Amount:      c.offer.Amount(subtotal),
		Description: c.offer.Description,
	}, nil
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func hasFraction(v float64) bool {
	return v != math.Trunc(v)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
