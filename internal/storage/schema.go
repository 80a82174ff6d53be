// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package storage

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var schemaFiles = map[RecordKind]string{
	RecordCart:        "schemas/cart.schema.json",
	RecordPreferences: "schemas/preferences.schema.json",
	RecordBehavior:    "schemas/behavior.schema.json",
}

var (
	schemasOnce sync.Once
	schemas     map[RecordKind]*jsonschema.Schema
	schemasErr  error
)

func compileSchemas() (map[RecordKind]*jsonschema.Schema, error) {
	schemasOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		out := make(map[RecordKind]*jsonschema.Schema, len(schemaFiles))
		for kind, file := range schemaFiles {
			raw, err := schemaFS.ReadFile(file)
			if err != nil {
				schemasErr = fmt.Errorf("read schema %s: %w", file, err)
				return
			}
			url := fmt.Sprintf("https://tigana.schemas.local/%s.schema.json", kind)
			if err := c.AddResource(url, bytes.NewReader(raw)); err != nil {
				schemasErr = fmt.Errorf("schema %s load failed: %w", kind, err)
				return
			}
			compiled, err := c.Compile(url)
			if err != nil {
				schemasErr = fmt.Errorf("schema %s compile failed: %w", kind, err)
				return
			}
			out[kind] = compiled
		}
		schemas = out
	})
	return schemas, schemasErr
}

// CheckRecord parses data as JSON and validates it against the schema of
// kind. Errors wrap ErrInvalidRecord.
func CheckRecord(kind RecordKind, data []byte) error {
	compiled, err := compileSchemas()
	if err != nil {
		return err
	}
	schema, ok := compiled[kind]
	if !ok {
		return fmt.Errorf("%w: no schema for %s", ErrInvalidRecord, kind)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %s is not JSON: %w", ErrInvalidRecord, kind, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidRecord, kind, err)
	}
	return nil
}
