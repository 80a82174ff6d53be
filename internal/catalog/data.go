// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var embeddedCatalog []byte

type catalogFile struct {
	Products []Product `yaml:"products"`
}

// Default returns the Store built from the embedded catalog.
func Default() (*Store, error) {
	return Load(bytes.NewReader(embeddedCatalog))
}

// LoadFile reads a catalog YAML file from disk.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a catalog YAML document and validates every product.
// Unknown keys are rejected so typos in the data file fail loudly.
func Load(r io.Reader) (*Store, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc catalogFile
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return NewStore(nil)
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return NewStore(doc.Products)
}
