// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package promo

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var issued = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestBook(t *testing.T) *Book {
	t.Helper()
	b, err := NewBook(DefaultOffers(), issued, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewBook() error = %v", err)
	}
	return b
}

func TestApply(t *testing.T) {
	t.Parallel()

	b := newTestBook(t)
	now := issued.Add(24 * time.Hour)

	tests := []struct {
		name       string
		code       string
		subtotal   float64
		firstOrder bool
		want       float64
		wantErr    error
	}{
		{"welcome on first order", "WELCOME20", 40, true, 8, nil},
		{"welcome lower case", "  welcome20 ", 40, true, 8, nil},
		{"welcome repeat customer", "WELCOME20", 40, false, 0, ErrNotEligible},
		{"welcome below minimum", "WELCOME20", 24.99, true, 0, ErrNotEligible},
		{"welcome at minimum", "WELCOME20", 25, true, 5, nil},
		{"bulk", "BULK15", 100, false, 15, nil},
		{"bulk below minimum", "BULK15", 74.99, false, 0, ErrNotEligible},
		{"seasonal", "SEASONAL10", 60, false, 6, nil},
		{"freeship fixed", "FREESHIP", 35, false, 8.99, nil},
		{"unknown", "NOPE", 100, true, 0, ErrUnknownCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := b.Apply(tt.code, tt.subtotal, tt.firstOrder, now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Apply() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if got.Amount != tt.want {
				t.Errorf("Apply() amount = %v, want %v", got.Amount, tt.want)
			}
		})
	}
}

func TestApply_Expiry(t *testing.T) {
	t.Parallel()

	b := newTestBook(t)

	if _, err := b.Apply("SEASONAL10", 60, false, issued.Add(15*day)); err != nil {
		t.Errorf("last valid instant rejected: %v", err)
	}
	_, err := b.Apply("SEASONAL10", 60, false, issued.Add(15*day+time.Second))
	if !errors.Is(err, ErrExpired) {
		t.Errorf("Apply() after window error = %v, want ErrExpired", err)
	}
	if _, err := b.Apply("BULK15", 80, false, issued.Add(59*day)); err != nil {
		t.Errorf("BULK15 should still be valid on day 59: %v", err)
	}
}

func TestActive(t *testing.T) {
	t.Parallel()

	b := newTestBook(t)
	codes := func(offers []Offer) []string {
		out := make([]string, len(offers))
		for i, o := range offers {
			out[i] = o.Code
		}
		return out
	}

	if got := codes(b.Active(issued)); len(got) != 4 || got[0] != "WELCOME20" || got[3] != "FREESHIP" {
		t.Errorf("Active(issued) = %v", got)
	}
	if got := codes(b.Active(issued.Add(40 * day))); len(got) != 2 || got[0] != "BULK15" || got[1] != "FREESHIP" {
		t.Errorf("Active(day 40) = %v, want [BULK15 FREESHIP]", got)
	}
	if got := b.Active(issued.Add(90 * day)); len(got) != 0 {
		t.Errorf("Active(day 90) = %v, want none", codes(got))
	}
}

func TestCustomRule(t *testing.T) {
	t.Parallel()

	offers := []Offer{{
		Code:     "LASTWEEK",
		Kind:     KindFixed,
		Value:    5,
		ValidFor: 30 * day,
		Rule:     `valid_until - now <= duration("168h") && subtotal > 10.0`,
	}}
	b, err := NewBook(offers, issued, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewBook() error = %v", err)
	}

	if _, err := b.Apply("lastweek", 20, false, issued.Add(10*day)); !errors.Is(err, ErrNotEligible) {
		t.Errorf("early use error = %v, want ErrNotEligible", err)
	}
	d, err := b.Apply("lastweek", 20, false, issued.Add(25*day))
	if err != nil || d.Amount != 5 {
		t.Errorf("late use = %+v, %v", d, err)
	}
	if d, _ := b.Apply("LASTWEEK", 20, false, issued.Add(25*day)); d.Code != "LASTWEEK" {
		t.Errorf("code = %q", d.Code)
	}
}

func TestNewBook_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		offers []Offer
	}{
		{"bad expression", []Offer{{Code: "X", Kind: KindFixed, Value: 1, ValidFor: day, Rule: "subtotal >>"}}},
		{"non-bool rule", []Offer{{Code: "X", Kind: KindFixed, Value: 1, ValidFor: day, Rule: "subtotal * 2.0"}}},
		{"unknown kind", []Offer{{Code: "X", Kind: "bogo", Value: 1, ValidFor: day}}},
		{"zero value", []Offer{{Code: "X", Kind: KindFixed, ValidFor: day}}},
		{"duplicate", []Offer{
			{Code: "X", Kind: KindFixed, Value: 1, ValidFor: day},
			{Code: "x", Kind: KindFixed, Value: 1, ValidFor: day},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewBook(tt.offers, issued, zerolog.Nop()); err == nil {
				t.Error("NewBook() = nil error")
			}
		})
	}
}

func TestOffer_Expression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		offer Offer
		want  string
	}{
		{Offer{MinOrder: 25, FirstOrderOnly: true}, "subtotal >= 25.0 && first_order"},
		{Offer{MinOrder: 35}, "subtotal >= 35.0"},
		{Offer{MinOrder: 12.5}, "subtotal >= 12.5"},
		{Offer{Rule: "true"}, "true"},
	}
	for _, tt := range tests {
		if got := tt.offer.Expression(); got != tt.want {
			t.Errorf("Expression() = %q, want %q", got, tt.want)
		}
	}
}

func TestOffer_AmountCapsAtSubtotal(t *testing.T) {
	t.Parallel()

	o := Offer{Kind: KindFixed, Value: 8.99}
	if got := o.Amount(5); got != 5 {
		t.Errorf("Amount(5) = %v, want 5", got)
	}
}
