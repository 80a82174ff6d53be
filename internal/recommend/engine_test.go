// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package recommend

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tigana/internal/catalog"
)

// fakeCatalog serves a fixed product slice.
type fakeCatalog []catalog.Product

func (f fakeCatalog) All() []catalog.Product {
	out := make([]catalog.Product, len(f))
	copy(out, f)
	return out
}

func (f fakeCatalog) ByID(id string) (catalog.Product, bool) {
	for _, p := range f {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

func newTestEngine(t *testing.T, cfg *Config) *Engine {
	t.Helper()
	store, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	e, err := NewEngine(cfg, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func recIDs(recs []Recommendation) string {
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.Product.ID
	}
	return strings.Join(ids, ",")
}

func TestNewEngine_RejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Limits.Personalized = 0
	if _, err := NewEngine(cfg, fakeCatalog{}, zerolog.Nop()); err == nil {
		t.Error("NewEngine() with zero limit should fail")
	}
	if _, err := NewEngine(nil, nil, zerolog.Nop()); err == nil {
		t.Error("NewEngine() without catalog should fail")
	}
}

func TestRecommend_SingleMedjoolScenario(t *testing.T) {
	t.Parallel()

	medjool := catalog.Product{
		ID:           "1",
		Name:         "Premium Medjool Dates",
		Category:     catalog.CategoryDates,
		Price:        18.99,
		Rating:       4.9,
		IsBestSeller: true,
		Discount:     24,
		Features:     []string{"Organic", "No Added Sugar"},
	}
	e, err := NewEngine(DefaultConfig(), fakeCatalog{medjool}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	input := Input{
		FavoriteCategories: []catalog.Category{catalog.CategoryDates},
		PriceRange:         catalog.PriceRange{0, 50},
	}

	scored := e.Explain(input)
	if len(scored) != 1 || scored[0].Score != 110 {
		t.Fatalf("Explain() = %+v, want single score 110", scored)
	}
	wantReasons := []string{
		"You love dates", ReasonPriceRange, ReasonBestSeller,
		ReasonHighRating, ReasonPremium, "24% off",
	}
	if strings.Join(scored[0].Reasons, "|") != strings.Join(wantReasons, "|") {
		t.Errorf("reasons = %v, want %v", scored[0].Reasons, wantReasons)
	}

	recs := e.Recommend(input)
	if len(recs) != 1 {
		t.Fatalf("Recommend() returned %d items, want 1", len(recs))
	}
	if recs[0].Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", recs[0].Confidence)
	}
	if want := "You love dates • Perfect price for you"; recs[0].Reason != want {
		t.Errorf("reason = %q, want %q", recs[0].Reason, want)
	}
}

func TestRecommend_DefaultCatalogOrdering(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	tests := []struct {
		name  string
		input Input
		want  string
	}{
		{
			name: "favorite dates, wide range",
			input: Input{
				FavoriteCategories: []catalog.Category{catalog.CategoryDates},
				PriceRange:         catalog.PriceRange{0, 100},
			},
			want: "1,3,9,2,5,4,6,8",
		},
		{
			name: "recently viewed suppressed",
			input: Input{
				FavoriteCategories: []catalog.Category{catalog.CategoryDates},
				ViewedProducts:     []string{"1", "3"},
				PriceRange:         catalog.PriceRange{0, 100},
			},
			want: "9,2,5,4,6,8,7,10",
		},
		{
			name:  "nothing in range drops weak products",
			input: Input{PriceRange: catalog.PriceRange{0, 0}},
			want:  "1,3,9,5,4",
		},
		{
			name: "search term lifts origin match",
			input: Input{
				PriceRange:    catalog.PriceRange{0, 0},
				SearchHistory: []string{"MOROCCO"},
			},
			want: "1,3,9,5,4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := recIDs(e.Recommend(tt.input)); got != tt.want {
				t.Errorf("Recommend() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRecommend_ReasonsAndConfidence(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	recs := e.Recommend(Input{
		PriceRange:    catalog.PriceRange{0, 0},
		SearchHistory: []string{"morocco"},
	})
	if len(recs) == 0 || recs[0].Product.ID != "1" {
		t.Fatalf("Recommend() = %s, want Medjool first", recIDs(recs))
	}
	if recs[0].Confidence != 0.75 {
		t.Errorf("confidence = %v, want 0.75", recs[0].Confidence)
	}
	if want := "Matches your searches • Popular choice"; recs[0].Reason != want {
		t.Errorf("reason = %q, want %q", recs[0].Reason, want)
	}

	last := recs[len(recs)-1]
	if last.Product.ID != "4" || last.Reason != "Highly rated • Premium quality" {
		t.Errorf("last = %s %q, want 4 with rating and premium reasons", last.Product.ID, last.Reason)
	}
}

func TestRecommend_ScoreFloor(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	inputs := []Input{
		{},
		{PriceRange: catalog.PriceRange{0, 0}},
		{PriceRange: catalog.PriceRange{12, 14}, SearchHistory: []string{"seedless"}},
		{FavoriteCategories: []catalog.Category{catalog.CategoryMixed}, PriceRange: catalog.PriceRange{0, 100}},
	}
	for _, in := range inputs {
		scored := map[string]float64{}
		for _, s := range e.Explain(in) {
			scored[s.Product.ID] = s.Score
		}
		for _, r := range e.Recommend(in) {
			if scored[r.Product.ID] < 20 {
				t.Errorf("product %s recommended with score %v", r.Product.ID, scored[r.Product.ID])
			}
			if r.Confidence < 0 || r.Confidence > 1 {
				t.Errorf("confidence %v out of range", r.Confidence)
			}
		}
	}
}

func TestRecommend_FallbackReason(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.MinScore = 0
	cfg.Memo.Enabled = false
	e := newTestEngine(t, cfg)

	for _, r := range e.Recommend(Input{PriceRange: catalog.PriceRange{0, 0}}) {
		if r.Product.ID == "2" {
			if r.Reason != ReasonFallback || r.Confidence != 0 {
				t.Errorf("product 2 = %q/%v, want fallback with zero confidence", r.Reason, r.Confidence)
			}
			return
		}
	}
	t.Error("product 2 missing with zero score floor")
}

func TestRecommend_SuppressionWindow(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	wide := catalog.PriceRange{0, 100}

	all := []string{"10", "9", "8", "7", "6", "5", "4", "3", "2", "1"}
	if recs := e.Recommend(Input{ViewedProducts: all, PriceRange: wide}); len(recs) != 0 {
		t.Errorf("all products recently viewed, got %s", recIDs(recs))
	}

	// Only the first ten viewed ids are suppressed.
	viewed := []string{"x1", "x2", "x3", "x4", "x5", "x6", "x7", "x8", "x9", "x10", "1"}
	recs := e.Recommend(Input{ViewedProducts: viewed, PriceRange: wide})
	if len(recs) == 0 || recs[0].Product.ID != "1" {
		t.Errorf("11th viewed product should not be suppressed, got %s", recIDs(recs))
	}
}

func TestRecommend_MemoDoesNotChangeOutput(t *testing.T) {
	t.Parallel()

	cached := newTestEngine(t, nil)
	cfg := DefaultConfig()
	cfg.Memo.Enabled = false
	plain := newTestEngine(t, cfg)

	input := Input{
		FavoriteCategories: []catalog.Category{catalog.CategoryFigs},
		PriceRange:         catalog.PriceRange{10, 20},
		SearchHistory:      []string{"apricot"},
	}

	first := cached.Recommend(input)
	first[0].Reason = "tampered"
	second := cached.Recommend(input)
	want := plain.Recommend(input)

	if recIDs(second) != recIDs(want) || second[0].Reason != want[0].Reason {
		t.Errorf("memoized = %s %q, want %s %q", recIDs(second), second[0].Reason, recIDs(want), want[0].Reason)
	}

	m := cached.GetMetrics()
	if m.Requests != 2 || m.MemoHits != 1 || m.MemoMisses != 1 {
		t.Errorf("metrics = %+v, want 2 requests, 1 hit, 1 miss", m)
	}
}

func TestRecommend_MemoSeparatesAmbiguousInputs(t *testing.T) {
	t.Parallel()

	priced := catalog.PriceRange{1000, 2000}
	tests := []struct {
		name string
		a, b Input
	}{
		{
			name: "separator byte inside a search term",
			a:    Input{PriceRange: priced, SearchHistory: []string{"apricot\x1ffig"}},
			b:    Input{PriceRange: priced, SearchHistory: []string{"apricot", "fig"}},
		},
		{
			name: "group byte inside a viewed id",
			a:    Input{PriceRange: priced, ViewedProducts: []string{"3\x1e"}},
			b:    Input{PriceRange: priced, ViewedProducts: []string{"3"}},
		},
		{
			name: "empty term versus no term",
			a:    Input{PriceRange: priced, SearchHistory: []string{""}},
			b:    Input{PriceRange: priced},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if memoKey(tt.a, 10) == memoKey(tt.b, 10) {
				t.Fatalf("memoKey(%q) == memoKey(%q)", tt.a.SearchHistory, tt.b.SearchHistory)
			}

			cached := newTestEngine(t, nil)
			cfg := DefaultConfig()
			cfg.Memo.Enabled = false
			plain := newTestEngine(t, cfg)

			_ = cached.Recommend(tt.a)
			if got, want := recIDs(cached.Recommend(tt.b)), recIDs(plain.Recommend(tt.b)); got != want {
				t.Errorf("memoized = %s, want %s", got, want)
			}
			if hits := cached.GetMetrics().MemoHits; hits != 0 {
				t.Errorf("memo hits = %d, want 0", hits)
			}
		})
	}
}

func TestRecommend_MemoKeyIgnoresViewsOutsideWindow(t *testing.T) {
	t.Parallel()

	base := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	a := Input{ViewedProducts: append(append([]string{}, base...), "1")}
	b := Input{ViewedProducts: append(append([]string{}, base...), "2")}
	if memoKey(a, 10) != memoKey(b, 10) {
		t.Error("views beyond the window should not change the memo key")
	}

	c := Input{ViewedProducts: []string{"1"}}
	d := Input{ViewedProducts: []string{"2"}}
	if memoKey(c, 10) == memoKey(d, 10) {
		t.Error("different recent views should change the memo key")
	}

	e := Input{FavoriteCategories: []catalog.Category{"dates"}}
	f := Input{SearchHistory: []string{"dates"}}
	if memoKey(e, 10) == memoKey(f, 10) {
		t.Error("fields should not collide in the memo key")
	}
}

func TestUpdateConfig_AppliesAndResetsMemo(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	input := Input{
		FavoriteCategories: []catalog.Category{catalog.CategoryDates},
		PriceRange:         catalog.PriceRange{0, 100},
	}
	if got := len(e.Recommend(input)); got != 8 {
		t.Fatalf("default limit returned %d", got)
	}

	cfg := e.GetConfig()
	cfg.Limits.Personalized = 2
	if err := e.UpdateConfig(cfg); err != nil {
		t.Fatalf("UpdateConfig() error = %v", err)
	}
	if got := recIDs(e.Recommend(input)); got != "1,3" {
		t.Errorf("Recommend() after update = %s, want 1,3", got)
	}

	bad := e.GetConfig()
	bad.MaxReasons = 0
	if err := e.UpdateConfig(bad); err == nil {
		t.Error("UpdateConfig() accepted invalid config")
	}
	if e.GetConfig().Limits.Personalized != 2 {
		t.Error("rejected update must not change config")
	}
}
