/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package booking

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/unikorn-cloud/booking/pkg/compare"
)

// ErrSchemaNotFound is returned when a component schema is not defined.
var ErrSchemaNotFound = errors.New("schema not found")

//go:embed booking.yaml
var schemaDocument []byte

// Schema validates response bodies against the booking API's OpenAPI
// description.
type Schema struct {
	doc *openapi3.T
}

// LoadSchema parses and validates the embedded OpenAPI document.
func LoadSchema(ctx context.Context) (*Schema, error) {
	doc, err := openapi3.NewLoader().LoadFromData(schemaDocument)
	if err != nil {
		return nil, fmt.Errorf("loading openapi document: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validating openapi document: %w", err)
	}

	return &Schema{
		doc: doc,
	}, nil
}

// Document returns the parsed OpenAPI document.
func (s *Schema) Document() *openapi3.T {
	return s.doc
}

// Validate checks value against the named component schema.  The value may
// be raw JSON, a response or any type that encodes to JSON.
func (s *Schema) Validate(name string, value any) error {
	ref, ok := s.doc.Components.Schemas[name]
	if !ok || ref.Value == nil {
		return fmt.Errorf("%w: %s", ErrSchemaNotFound, name)
	}

	v, err := compare.ToValue(value)
	if err != nil {
		return err
	}

	if err := ref.Value.VisitJSON(v); err != nil {
		return fmt.Errorf("%s does not match schema: %w", name, err)
	}

	return nil
}

// ValidateBooking checks a GET or PUT response body.
func (s *Schema) ValidateBooking(value any) error {
	return s.Validate("booking", value)
}

// ValidateCreated checks a POST response body.
func (s *Schema) ValidateCreated(value any) error {
	return s.Validate("created", value)
}

// ValidateReferences checks a listing response body.
func (s *Schema) ValidateReferences(value any) error {
	return s.Validate("references", value)
}
