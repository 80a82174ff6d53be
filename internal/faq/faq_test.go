// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package faq

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRespond_Routing(t *testing.T) {
	t.Parallel()

	r := New(zerolog.Nop())
	tests := []struct {
		name      string
		input     string
		route     Route
		msgPrefix string
	}{
		{"exact hello", "Hello", RouteExact, "Hello! Welcome to Aali Tigana!"},
		{"exact hi with padding", "  HI  ", RouteExact, "Hi there!"},
		{"exact best sellers", "show me best sellers", RouteExact, "Our best sellers"},
		{"exact default key", "default", RouteExact, "I'm here to help"},
		{"figs sub-branch", "What about figs?", RouteProducts, "Our Turkish dried figs"},
		{"dates sub-branch", "I love dates", RouteProducts, "Dates are nature's candy!"},
		{"popular beats dates", "the most popular dates", RouteProducts, "Our best sellers"},
		{"generic products", "apricots please", RouteProducts, "We have an amazing selection"},
		{"ship contains hi", "Where do you ship to?", RouteGreetings, "Hello! Welcome"},
		{"health keyword", "natural please", RouteHealth, "Perfect choice!"},
		{"shipping keyword", "tracking", RouteShipping, "We offer multiple shipping options"},
		{"payment keyword", "do you take paypal", RoutePayment, "We accept all major credit cards"},
		{"offers keyword", "any coupon", RouteOffers, "We have amazing deals"},
		{"help keyword", "I have a problem", RouteHelp, "I'm happy to help!"},
		{"recommend intent", "can you suggest a treat", RouteRecommend, "Great! To give you the best"},
		{"price intent", "what does it cost", RoutePrice, "Our prices reflect"},
		{"quality intent", "is it fresh", RouteQuality, "Quality is our top priority!"},
		{"unmatched", "xyz", RouteDefault, "I'm here to help"},
		{"empty", "   ", RouteDefault, "I'm here to help"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := r.Respond(tt.input)
			if got.Route != tt.route {
				t.Errorf("Respond(%q).Route = %s, want %s", tt.input, got.Route, tt.route)
			}
			if !strings.HasPrefix(got.Message, tt.msgPrefix) {
				t.Errorf("Respond(%q).Message = %q, want prefix %q", tt.input, got.Message, tt.msgPrefix)
			}
			if len(got.QuickReplies) != 4 {
				t.Errorf("Respond(%q) has %d quick replies, want 4", tt.input, len(got.QuickReplies))
			}
		})
	}
}

func TestRespond_ExactQuickReplies(t *testing.T) {
	t.Parallel()

	got := New(zerolog.Nop()).Respond("payment options")
	want := []string{"Credit cards accepted", "PayPal checkout", "Cash on delivery", "Payment security"}
	if strings.Join(got.QuickReplies, "|") != strings.Join(want, "|") {
		t.Errorf("QuickReplies = %v, want %v", got.QuickReplies, want)
	}
}

func TestRespond_ReturnsCopies(t *testing.T) {
	t.Parallel()

	r := New(zerolog.Nop())
	first := r.Respond("hello")
	first.QuickReplies[0] = "mutated"

	second := r.Respond("hello")
	if second.QuickReplies[0] != "Show me best sellers" {
		t.Errorf("canned table was mutated: %q", second.QuickReplies[0])
	}
}

func TestTopicsAreOrdered(t *testing.T) {
	t.Parallel()

	want := []Route{RouteGreetings, RouteProducts, RouteHealth, RouteShipping, RoutePayment, RouteOffers, RouteHelp}
	if len(topics) != len(want) {
		t.Fatalf("got %d topics, want %d", len(topics), len(want))
	}
	for i, topic := range topics {
		if topic.route != want[i] {
			t.Errorf("topic %d = %s, want %s", i, topic.route, want[i])
		}
	}
}
