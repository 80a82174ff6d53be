// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package tracker

import "github.com/goccy/go-json"

// Number is the value type a Counter can hold.
type Number interface {
	~int | ~float64
}

// Entry is one counter key and its value.
type Entry[V Number] struct {
	Key   string `json:"key"`
	Value V      `json:"value"`
}

// Counter is a string-keyed tally that remembers first-seen key order.
// Favorite category ranking breaks ties by that order, so it is kept across
// persistence by encoding the counter as an ordered entry list.
//
// The zero value is an empty counter ready to use.
type Counter[V Number] struct {
	entries []Entry[V]
	index   map[string]int
}

// Add increments key by delta and returns the new value.
func (c *Counter[V]) Add(key string, delta V) V {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	i, ok := c.index[key]
	if !ok {
		i = len(c.entries)
		c.index[key] = i
		c.entries = append(c.entries, Entry[V]{Key: key})
	}
	c.entries[i].Value += delta
	return c.entries[i].Value
}

// Get returns the value for key, or zero.
func (c *Counter[V]) Get(key string) V {
	if i, ok := c.index[key]; ok {
		return c.entries[i].Value
	}
	return 0
}

// Len returns the number of keys.
func (c *Counter[V]) Len() int { return len(c.entries) }

// Entries returns a copy of the entries in first-seen order.
func (c *Counter[V]) Entries() []Entry[V] {
	out := make([]Entry[V], len(c.entries))
	copy(out, c.entries)
	return out
}

// Total returns the sum of all values.
func (c *Counter[V]) Total() V {
	var sum V
	for _, e := range c.entries {
		sum += e.Value
	}
	return sum
}

// Clone returns an independent copy.
func (c *Counter[V]) Clone() Counter[V] {
	var out Counter[V]
	for _, e := range c.entries {
		out.Add(e.Key, e.Value)
	}
	return out
}

// MarshalJSON encodes the counter as an ordered entry list.
func (c Counter[V]) MarshalJSON() ([]byte, error) {
	if c.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.entries)
}

// UnmarshalJSON decodes an entry list, merging repeated keys.
func (c *Counter[V]) UnmarshalJSON(data []byte) error {
	var entries []Entry[V]
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*c = Counter[V]{}
	for _, e := range entries {
		c.Add(e.Key, e.Value)
	}
	return nil
}
