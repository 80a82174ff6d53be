// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

// Package tracker accumulates a session's browsing behavior and preferences
// and derives the profile the recommendation engine scores against.
//
// Every tracking call succeeds. Mutations are applied under one lock and
// then reported to listeners together with snapshots of the records that
// changed, which is how the session layer persists them.
package tracker

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tigana/internal/catalog"
)

// EventKind names a tracking mutation.
type EventKind string

const (
	EventProductViewed     EventKind = "product_viewed"
	EventSearched          EventKind = "searched"
	EventCartAdded         EventKind = "cart_added"
	EventTimeTracked       EventKind = "time_tracked"
	EventWishlistAdded     EventKind = "wishlist_added"
	EventWishlistRemoved   EventKind = "wishlist_removed"
	EventFavoriteToggled   EventKind = "favorite_toggled"
	EventPriceRangeUpdated EventKind = "price_range_updated"
	EventDietaryUpdated    EventKind = "dietary_updated"
	EventPurchaseRecorded  EventKind = "purchase_recorded"
)

// Event describes one mutation. Fields not relevant to Kind are empty.
type Event struct {
	Kind      EventKind
	ProductID string
	Category  catalog.Category
	Query     string
	Seconds   float64
}

// Change reports which records an event touched, with copies of them.
type Change struct {
	Event              Event
	BehaviorChanged    bool
	PreferencesChanged bool
	Behavior           Behavior
	Preferences        Preferences
}

// Listener receives every change. It runs under the tracker lock and must
// not call back into the Tracker.
type Listener func(Change)

// Tracker owns one session's Behavior and Preferences.
type Tracker struct {
	mu        sync.Mutex
	cfg       Config
	products  ProductLookup
	behavior  Behavior
	prefs     Preferences
	listeners []Listener
	logger    zerolog.Logger
}

// New returns a tracker with empty records. products is only consulted by
// AttributionPerCategory and may be nil otherwise.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(cfg Config, products ProductLookup, logger zerolog.Logger) *Tracker {
	return &Tracker{
		cfg:      cfg,
		products: products,
		prefs:    DefaultPreferences(),
		logger:   logger.With().Str("component", "tracker").Logger(),
	}
}

// OnChange registers l.
func (t *Tracker) OnChange(l Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, l)
}

// Load replaces both records with hydrated copies without notifying.
// Nil slices in p are normalized so later JSON encodes them as [].
//
//nolint:gocritic // hugeParam: records are copied on purpose
func (t *Tracker) Load(b Behavior, p Preferences) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.behavior = b.Clone()
	t.prefs = p.Clone()
}

// Behavior returns a copy of the behavior record.
func (t *Tracker) Behavior() Behavior {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.behavior.Clone()
}

// Preferences returns a copy of the preference record.
func (t *Tracker) Preferences() Preferences {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.prefs.Clone()
}

// TrackProductView counts a view of p and moves it to the front of the
// recently viewed list.
//
//nolint:gocritic // hugeParam: products are passed by value like every catalog read
func (t *Tracker) TrackProductView(p catalog.Product) {
	t.mutate(Event{Kind: EventProductViewed, ProductID: p.ID, Category: p.Category}, true, true, func() {
		t.behavior.ProductViews.Add(p.ID, 1)
		t.behavior.CategoryViews.Add(string(p.Category), 1)
		t.prefs.ViewedProducts = moveToFront(t.prefs.ViewedProducts, p.ID, t.cfg.ViewedLimit)
	})
}

// TrackSearch records query in both search histories. Queries that are
// blank after trimming are ignored; otherwise the query is stored as given.
func (t *Tracker) TrackSearch(query string) {
	if strings.TrimSpace(query) == "" {
		return
	}
	t.mutate(Event{Kind: EventSearched, Query: query}, true, true, func() {
		t.behavior.SearchQueries = prepend(t.behavior.SearchQueries, query, t.cfg.SearchQueryLimit)
		t.prefs.SearchHistory = moveToFront(t.prefs.SearchHistory, query, t.cfg.SearchHistoryLimit)
	})
}

// TrackCartAddition counts one cart addition of p.
//
//nolint:gocritic // hugeParam: products are passed by value like every catalog read
func (t *Tracker) TrackCartAddition(p catalog.Product) {
	t.mutate(Event{Kind: EventCartAdded, ProductID: p.ID, Category: p.Category}, true, false, func() {
		t.behavior.CartAdditions.Add(p.ID, 1)
	})
}

// TrackTimeOnProduct accumulates dwell time for productID.
func (t *Tracker) TrackTimeOnProduct(productID string, seconds float64) {
	t.mutate(Event{Kind: EventTimeTracked, ProductID: productID, Seconds: seconds}, true, false, func() {
		t.behavior.TimeSpentOnProducts.Add(productID, seconds)
	})
}

// AddToWishlist adds productID, moving an existing entry to the end.
func (t *Tracker) AddToWishlist(productID string) {
	t.mutate(Event{Kind: EventWishlistAdded, ProductID: productID}, false, true, func() {
		list := make([]string, 0, len(t.prefs.Wishlist)+1)
		for _, id := range t.prefs.Wishlist {
			if id != productID {
				list = append(list, id)
			}
		}
		t.prefs.Wishlist = append(list, productID)
	})
}

// RemoveFromWishlist removes productID if present.
func (t *Tracker) RemoveFromWishlist(productID string) {
	t.mutate(Event{Kind: EventWishlistRemoved, ProductID: productID}, false, true, func() {
		list := make([]string, 0, len(t.prefs.Wishlist))
		for _, id := range t.prefs.Wishlist {
			if id != productID {
				list = append(list, id)
			}
		}
		t.prefs.Wishlist = list
	})
}

// UpdateFavoriteCategories toggles c in the explicit favorites.
func (t *Tracker) UpdateFavoriteCategories(c catalog.Category) {
	t.mutate(Event{Kind: EventFavoriteToggled, Category: c}, false, true, func() {
		out := make([]catalog.Category, 0, len(t.prefs.FavoriteCategories)+1)
		found := false
		for _, have := range t.prefs.FavoriteCategories {
			if have == c {
				found = true
				continue
			}
			out = append(out, have)
		}
		if !found {
			out = append(out, c)
		}
		t.prefs.FavoriteCategories = out
	})
}

// UpdatePriceRange replaces the preferred price window.
func (t *Tracker) UpdatePriceRange(r catalog.PriceRange) {
	t.mutate(Event{Kind: EventPriceRangeUpdated}, false, true, func() {
		t.prefs.PriceRange = r
	})
}

// UpdateDietaryRestrictions replaces the dietary restriction list.
func (t *Tracker) UpdateDietaryRestrictions(restrictions []string) {
	t.mutate(Event{Kind: EventDietaryUpdated}, false, true, func() {
		t.prefs.DietaryRestrictions = cloneStrings(restrictions)
	})
}

// AddToPurchaseHistory prepends productID to the purchase history.
func (t *Tracker) AddToPurchaseHistory(productID string) {
	t.mutate(Event{Kind: EventPurchaseRecorded, ProductID: productID}, false, true, func() {
		t.prefs.PurchaseHistory = prepend(t.prefs.PurchaseHistory, productID, 0)
	})
}

// CategoryScores returns every scored category, best first.
func (t *Tracker) CategoryScores() []CategoryScore {
	t.mu.Lock()
	defer t.mu.Unlock()
	return scoreCategories(&t.behavior, t.cfg.CartAttribution, t.products)
}

// FavoriteCategories returns the top categories derived from behavior.
func (t *Tracker) FavoriteCategories() []catalog.Category {
	scores := t.CategoryScores()
	n := t.cfg.FavoriteCount
	if len(scores) < n {
		n = len(scores)
	}
	out := make([]catalog.Category, n)
	for i := 0; i < n; i++ {
		out[i] = scores[i].Category
	}
	return out
}

// Profile bundles the derived favorites, the full viewed list, the price
// window and the most recent search terms.
func (t *Tracker) Profile() Profile {
	favorites := t.FavoriteCategories()

	t.mu.Lock()
	defer t.mu.Unlock()
	terms := t.prefs.SearchHistory
	if len(terms) > t.cfg.ProfileSearchTerms {
		terms = terms[:t.cfg.ProfileSearchTerms]
	}
	return Profile{
		FavoriteCategories: favorites,
		ViewedProducts:     cloneStrings(t.prefs.ViewedProducts),
		PriceRange:         t.prefs.PriceRange,
		SearchHistory:      cloneStrings(terms),
	}
}

func (t *Tracker) mutate(ev Event, behavior, prefs bool, apply func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	apply()
	t.logger.Debug().
		Str("event", string(ev.Kind)).
		Str("product_id", ev.ProductID).
		Msg("Tracked")

	if len(t.listeners) == 0 {
		return
	}
	change := Change{Event: ev, BehaviorChanged: behavior, PreferencesChanged: prefs}
	if behavior {
		change.Behavior = t.behavior.Clone()
	}
	if prefs {
		change.Preferences = t.prefs.Clone()
	}
	for _, l := range t.listeners {
		l(change)
	}
}
