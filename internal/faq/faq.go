// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

// Package faq answers free-text shopper questions from a fixed table of
// canned replies. Routing is exact match first, then keyword topics in
// priority order, then a few intent checks, then a default answer.
package faq

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tigana/internal/cache"
)

// Reply is a canned answer plus suggested follow-up prompts.
type Reply struct {
	Message      string   `json:"message"`
	QuickReplies []string `json:"quick_replies"`
}

// Route records which rule produced an answer.
type Route string

const (
	RouteExact     Route = "exact"
	RouteGreetings Route = "greetings"
	RouteProducts  Route = "products"
	RouteHealth    Route = "health"
	RouteShipping  Route = "shipping"
	RoutePayment   Route = "payment"
	RouteOffers    Route = "offers"
	RouteHelp      Route = "help"
	RouteRecommend Route = "intent_recommend"
	RouteTrack     Route = "intent_track"
	RouteOrganic   Route = "intent_organic"
	RoutePrice     Route = "intent_price"
	RouteQuality   Route = "intent_quality"
	RouteDefault   Route = "default"
)

// Answer is a reply and the route that selected it.
type Answer struct {
	Reply
	Route Route `json:"route"`
}

// Responder maps questions to answers. It is immutable and safe for
// concurrent use.
type Responder struct {
	topics *cache.Matcher[Route]
	logger zerolog.Logger
}

// New builds a Responder over the built-in answer table.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(logger zerolog.Logger) *Responder {
	var patterns []cache.Pattern[Route]
	for _, t := range topics {
		for _, kw := range t.keywords {
			patterns = append(patterns, cache.Pattern[Route]{Text: kw, Value: t.route})
		}
	}
	return &Responder{
		topics: cache.NewMatcher(patterns...),
		logger: logger.With().Str("component", "faq").Logger(),
	}
}

// Respond answers text. Matching is on the lower-cased, trimmed input and
// keywords match as plain substrings, so "shipping" also hits "hi".
func (r *Responder) Respond(text string) Answer {
	msg := strings.ToLower(strings.TrimSpace(text))
	answer := r.route(msg)
	answer.QuickReplies = append([]string(nil), answer.QuickReplies...)

	r.logger.Debug().
		Str("route", string(answer.Route)).
		Int("length", len(msg)).
		Msg("faq answered")
	return answer
}

func (r *Responder) route(msg string) Answer {
	if reply, ok := canned[msg]; ok {
		return Answer{Reply: reply, Route: RouteExact}
	}

	if match, ok := r.topics.Lowest(msg); ok {
		return topicAnswer(match.Value, msg)
	}

	switch {
	case containsAny(msg, "recommend", "suggest", "choose"):
		return Answer{Reply: canned["help me choose"], Route: RouteRecommend}
	case strings.Contains(msg, "track") && strings.Contains(msg, "order"):
		return Answer{Reply: canned["track my order"], Route: RouteTrack}
	case containsAny(msg, "organic", "natural"):
		return Answer{Reply: organicReply, Route: RouteOrganic}
	case containsAny(msg, "price", "cost", "expensive"):
		return Answer{Reply: priceReply, Route: RoutePrice}
	case containsAny(msg, "fresh", "quality"):
		return Answer{Reply: qualityReply, Route: RouteQuality}
	}
	return Answer{Reply: defaultReply, Route: RouteDefault}
}

func topicAnswer(route Route, msg string) Answer {
	var reply Reply
	switch route {
	case RouteGreetings:
		reply = canned["hello"]
	case RouteProducts:
		switch {
		case containsAny(msg, "best", "popular"):
			reply = canned["show me best sellers"]
		case strings.Contains(msg, "dates"):
			reply = canned["tell me about dates"]
		case strings.Contains(msg, "figs"):
			reply = canned["what about figs"]
		default:
			reply = productsReply
		}
	case RouteHealth:
		reply = canned["i need healthy snacks"]
	case RouteShipping:
		reply = canned["tell me about shipping"]
	case RoutePayment:
		reply = canned["payment options"]
	case RouteOffers:
		reply = canned["special offers"]
	case RouteHelp:
		reply = helpReply
	default:
		reply = defaultReply
	}
	return Answer{Reply: reply, Route: route}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
