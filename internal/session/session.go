// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tigana/internal/cart"
	"github.com/tomtom215/tigana/internal/catalog"
	"github.com/tomtom215/tigana/internal/promo"
	"github.com/tomtom215/tigana/internal/tracker"
	"github.com/tomtom215/tigana/internal/validation"
)

// Session is one shopper's cart and tracker. Every operation holds the
// session lock, so calls from one client apply in order.
type Session struct {
	id       string
	products *catalog.Store
	logger   zerolog.Logger

	mu        sync.Mutex
	cart      *cart.Cart
	tracker   *tracker.Tracker
	promoCode string
	openedAt  time.Time
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// OpenedAt returns when the session was hydrated.
func (s *Session) OpenedAt() time.Time { return s.openedAt }

// AddToCart adds quantity of productID and counts the addition as behavior.
func (s *Session) AddToCart(productID string, quantity int) (cart.State, error) {
	p, err := s.products.MustByID(productID)
	if err != nil {
		return cart.State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.cart.AddToCart(p, quantity)
	if quantity > 0 {
		s.tracker.TrackCartAddition(p)
	}
	return state, nil
}

// RemoveFromCart drops productID's line.
func (s *Session) RemoveFromCart(productID string) cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.RemoveFromCart(productID)
}

// UpdateQuantity sets productID's quantity; <= 0 removes the line.
func (s *Session) UpdateQuantity(productID string, quantity int) cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.UpdateQuantity(productID, quantity)
}

// ClearCart empties the cart and forgets any applied promotion.
func (s *Session) ClearCart() cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.promoCode = ""
	return s.cart.Clear()
}

// Cart returns the current cart snapshot.
func (s *Session) Cart() cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.State()
}

// ViewProduct records a product page view and returns the product.
func (s *Session) ViewProduct(productID string) (catalog.Product, error) {
	p, err := s.products.MustByID(productID)
	if err != nil {
		return catalog.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.TrackProductView(p)
	return p, nil
}

// TrackSearch records a search query. Blank queries are ignored.
func (s *Session) TrackSearch(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.TrackSearch(query)
}

// TrackTime accumulates dwell seconds on productID.
func (s *Session) TrackTime(productID string, seconds float64) error {
	if _, err := s.products.MustByID(productID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.TrackTimeOnProduct(productID, seconds)
	return nil
}

// AddToWishlist adds productID to the wishlist.
func (s *Session) AddToWishlist(productID string) error {
	if _, err := s.products.MustByID(productID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.AddToWishlist(productID)
	return nil
}

// RemoveFromWishlist removes productID from the wishlist.
func (s *Session) RemoveFromWishlist(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.RemoveFromWishlist(productID)
}

// ToggleFavorite flips c in the explicit favorite categories.
func (s *Session) ToggleFavorite(c catalog.Category) error {
	if !validation.IsCategory(string(c)) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.UpdateFavoriteCategories(c)
	return nil
}

// UpdatePriceRange replaces the preferred price window.
func (s *Session) UpdatePriceRange(r catalog.PriceRange) error {
	if r[0] < 0 || r[1] < r[0] {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidPriceRange, r[0], r[1])
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.UpdatePriceRange(r)
	return nil
}

// UpdateDietaryRestrictions replaces the dietary restriction list.
func (s *Session) UpdateDietaryRestrictions(restrictions []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.UpdateDietaryRestrictions(restrictions)
}

// RecordPurchase prepends productID to the purchase history.
func (s *Session) RecordPurchase(productID string) error {
	if _, err := s.products.MustByID(productID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.AddToPurchaseHistory(productID)
	return nil
}

// Profile returns the recommendation input for this session.
func (s *Session) Profile() tracker.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Profile()
}

// Preferences returns a copy of the preference record.
func (s *Session) Preferences() tracker.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Preferences()
}

// Behavior returns a copy of the behavior record.
func (s *Session) Behavior() tracker.Behavior {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Behavior()
}

// CategoryScores returns every scored category, best first.
func (s *Session) CategoryScores() []tracker.CategoryScore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.CategoryScores()
}

// ApplyPromo checks code against the current cart and remembers it on
// success. A session without purchases counts as a first order.
func (s *Session) ApplyPromo(book *promo.Book, code string, now time.Time) (promo.Discount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := book.Apply(code, s.cart.Total(), s.firstOrder(), now)
	if err != nil {
		return promo.Discount{}, err
	}
	s.promoCode = d.Code
	return d, nil
}

// RemovePromo forgets the applied promotion.
func (s *Session) RemovePromo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.promoCode = ""
}

// Summary prices the cart under policy. The applied promotion is
// re-checked against the current cart; one that no longer applies is
// dropped and the returned discount is nil.
func (s *Session) Summary(book *promo.Book, policy cart.ShippingPolicy, now time.Time) (cart.Summary, *promo.Discount) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.cart.State()
	if s.promoCode == "" || book == nil {
		return cart.Summarize(state, policy, 0), nil
	}

	d, err := book.Apply(s.promoCode, state.TotalPrice(), s.firstOrder(), now)
	if err != nil {
		if errors.Is(err, promo.ErrNotEligible) || errors.Is(err, promo.ErrExpired) || errors.Is(err, promo.ErrUnknownCode) {
			s.logger.Info().Err(err).Str("code", s.promoCode).Msg("Applied promotion no longer valid")
		} else {
			s.logger.Warn().Err(err).Str("code", s.promoCode).Msg("Promotion re-check failed")
		}
		s.promoCode = ""
		return cart.Summarize(state, policy, 0), nil
	}
	return cart.Summarize(state, policy, d.Amount), &d
}

// PromoCode returns the applied promotion code or "".
func (s *Session) PromoCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.promoCode
}

func (s *Session) firstOrder() bool {
	return len(s.tracker.Preferences().PurchaseHistory) == 0
}
