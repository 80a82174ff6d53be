// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package cache

import "strings"

// Pattern is a keyword plus the value reported when it matches.
type Pattern[T any] struct {
	Text  string
	Value T
}

// Match is one occurrence of a pattern in the searched text.
type Match[T any] struct {
	Pattern  string
	Value    T
	Order    int // index of the pattern in the constructor arguments
	Position int // byte offset of the match in the lower-cased text
}

// Matcher finds every occurrence of a fixed keyword set in one pass over
// the input using the Aho-Corasick automaton: O(n + m + z) for text length n,
// total pattern length m and z matches. Matching is case-insensitive.
//
// A Matcher is immutable after construction and safe for concurrent use.
//
//	m := NewMatcher(
//		Pattern[string]{Text: "ship", Value: "shipping"},
//		Pattern[string]{Text: "pay", Value: "payment"},
//	)
//	m.Search("when will it ship?") // one match, Value "shipping"
type Matcher[T any] struct {
	root     *acNode
	patterns []Pattern[T]
}

type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   []int // pattern indices ending here, failure outputs merged in
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

// NewMatcher builds the automaton. Empty patterns are skipped.
func NewMatcher[T any](patterns ...Pattern[T]) *Matcher[T] {
	m := &Matcher[T]{root: newACNode()}
	for _, p := range patterns {
		if p.Text == "" {
			continue
		}
		p.Text = strings.ToLower(p.Text)
		m.patterns = append(m.patterns, p)
		m.insert(len(m.patterns)-1, p.Text)
	}
	m.link()
	return m
}

func (m *Matcher[T]) insert(index int, text string) {
	node := m.root
	for _, ch := range text {
		next, ok := node.children[ch]
		if !ok {
			next = newACNode()
			node.children[ch] = next
		}
		node = next
	}
	node.output = append(node.output, index)
}

// link computes failure links breadth first.
func (m *Matcher[T]) link() {
	queue := make([]*acNode, 0, len(m.root.children))
	for _, child := range m.root.children {
		child.failure = m.root
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for ch, child := range current.children {
			queue = append(queue, child)
			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = m.root
				continue
			}
			child.failure = fail.children[ch]
			child.output = append(child.output, child.failure.output...)
		}
	}
}

// Len returns the number of patterns in the automaton.
func (m *Matcher[T]) Len() int {
	return len(m.patterns)
}

// Search returns every match in text, ordered by end position.
func (m *Matcher[T]) Search(text string) []Match[T] {
	var matches []Match[T]
	m.scan(text, func(idx, end int) bool {
		p := m.patterns[idx]
		matches = append(matches, Match[T]{
			Pattern:  p.Text,
			Value:    p.Value,
			Order:    idx,
			Position: end - len(p.Text),
		})
		return true
	})
	return matches
}

// Contains reports whether any pattern occurs in text.
func (m *Matcher[T]) Contains(text string) bool {
	found := false
	m.scan(text, func(int, int) bool {
		found = true
		return false
	})
	return found
}

// Lowest returns the match whose pattern was registered first, regardless
// of where in text it occurs.
func (m *Matcher[T]) Lowest(text string) (Match[T], bool) {
	best := -1
	bestEnd := 0
	m.scan(text, func(idx, end int) bool {
		if best < 0 || idx < best {
			best, bestEnd = idx, end
		}
		return best != 0
	})
	if best < 0 {
		return Match[T]{}, false
	}
	p := m.patterns[best]
	return Match[T]{Pattern: p.Text, Value: p.Value, Order: best, Position: bestEnd - len(p.Text)}, true
}

// scan walks the automaton over text, calling visit with a pattern index and
// the byte offset just past the match. Returning false stops the scan.
func (m *Matcher[T]) scan(text string, visit func(idx, end int) bool) {
	if len(m.patterns) == 0 {
		return
	}
	lower := strings.ToLower(text)
	node := m.root
	for i, ch := range lower {
		for node != m.root && node.children[ch] == nil {
			node = node.failure
		}
		if next, ok := node.children[ch]; ok {
			node = next
		}
		end := i + len(string(ch))
		for _, idx := range node.output {
			if !visit(idx, end) {
				return
			}
		}
	}
}
