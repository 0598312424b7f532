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

// Package compare checks two JSON documents for structural equality after
// dropping ignored top-level keys and normalizing textual booleans.
package compare

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/spjmurray/go-util/pkg/set"
	"github.com/tidwall/pretty"
)

// ErrMismatch is matched by every *MismatchError.
var ErrMismatch = errors.New("json comparison failed")

// MismatchError reports a failed comparison with both normalized structures.
type MismatchError struct {
	// WantEqual is true for an equality check, false for an inequality check.
	WantEqual bool
	// Expected and Actual are the values as they were compared.
	Expected any
	Actual   any
	// Diff is the structural difference, empty for inequality failures.
	Diff string
}

func (e *MismatchError) Error() string {
	if !e.WantEqual {
		return fmt.Sprintf("JSONs do match.\nResponse 1: %s\nResponse 2: %s", render(e.Expected), render(e.Actual))
	}

	return fmt.Sprintf("JSONs do not match.\nResponse 1: %s\nResponse 2: %s\nDiff (-expected +actual):\n%s", render(e.Expected), render(e.Actual), e.Diff)
}

func (e *MismatchError) Unwrap() error {
	return ErrMismatch
}

// render pretty prints a value for failure output.
func render(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}

	return strings.TrimSpace(string(pretty.Pretty(data)))
}

// Valuer is implemented by HTTP responses that can decode themselves.
type Valuer interface {
	Value() (any, error)
}

// ToValue converts v into its generic JSON form: objects become
// map[string]any, arrays []any, numbers float64.  Raw JSON bytes are
// decoded, anything else is round tripped through the JSON encoder.
func ToValue(v any) (any, error) {
	var data []byte

	switch t := v.(type) {
	case Valuer:
		return t.Value()
	case json.RawMessage:
		data = t
	case []byte:
		data = t
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding value: %w", err)
		}

		data = encoded
	}

	var value any

	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("decoding value: %w", err)
	}

	return value, nil
}

// Normalize returns a copy of v where every string equal to "true" or
// "false", ignoring case, is replaced by the boolean.  Objects and arrays
// are walked, everything else is returned as is.
func Normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))

		for key, value := range t {
			out[key] = Normalize(value)
		}

		return out
	case []any:
		out := make([]any, len(t))

		for i, value := range t {
			out[i] = Normalize(value)
		}

		return out
	case string:
		switch strings.ToLower(t) {
		case "true":
			return true
		case "false":
			return false
		}
	}

	return v
}

// RemoveKeys returns a copy of v without the given keys.  Only the top level
// of an object is affected, nested objects keep their keys and non-objects
// are returned unchanged.
func RemoveKeys(v any, keys ...string) any {
	object, ok := v.(map[string]any)
	if !ok {
		return v
	}

	out := maps.Clone(object)

	for key := range set.New[string](keys...).All() {
		delete(out, key)
	}

	return out
}

// prepare lifts both values, strips the keys and normalizes.
func prepare(expected, actual any, keys []string) (any, any, error) {
	e, err := ToValue(expected)
	if err != nil {
		return nil, nil, fmt.Errorf("expected: %w", err)
	}

	a, err := ToValue(actual)
	if err != nil {
		return nil, nil, fmt.Errorf("actual: %w", err)
	}

	return Normalize(RemoveKeys(e, keys...)), Normalize(RemoveKeys(a, keys...)), nil
}

// EqualIgnoringKeys returns nil if expected and actual are structurally
// equal once keys are removed from the top level and both are normalized.
func EqualIgnoringKeys(expected, actual any, keys ...string) error {
	e, a, err := prepare(expected, actual, keys)
	if err != nil {
		return err
	}

	if !cmp.Equal(e, a) {
		return &MismatchError{
			WantEqual: true,
			Expected:  e,
			Actual:    a,
			Diff:      cmp.Diff(e, a),
		}
	}

	return nil
}

// NotEqual returns nil if expected and actual differ.  With keys the values
// go through the same removal and normalization as EqualIgnoringKeys.
// Without keys they are compared exactly as given, so "true" and true are
// considered different.
func NotEqual(expected, actual any, keys ...string) error {
	var (
		e, a any
		err  error
	)

	if len(keys) > 0 {
		if e, a, err = prepare(expected, actual, keys); err != nil {
			return err
		}
	} else {
		if e, err = ToValue(expected); err != nil {
			return fmt.Errorf("expected: %w", err)
		}

		if a, err = ToValue(actual); err != nil {
			return fmt.Errorf("actual: %w", err)
		}
	}

	if cmp.Equal(e, a) {
		return &MismatchError{
			Expected: e,
			Actual:   a,
		}
	}

	return nil
}
