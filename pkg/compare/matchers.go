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

package compare

import (
	"errors"
	"fmt"

	"github.com/onsi/gomega/types"
	"github.com/stretchr/testify/assert"
)

type comparison func(expected, actual any, keys ...string) error

// matcher adapts a comparison to gomega.
type matcher struct {
	compare  comparison
	expected any
	keys     []string
	mismatch error
	negated  string
}

func (m *matcher) Match(actual any) (bool, error) {
	err := m.compare(m.expected, actual, m.keys...)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, ErrMismatch) {
		m.mismatch = err

		return false, nil
	}

	return false, err
}

func (m *matcher) FailureMessage(_ any) string {
	return m.mismatch.Error()
}

func (m *matcher) NegatedFailureMessage(_ any) string {
	return fmt.Sprintf("%s (ignored keys: %v)", m.negated, m.keys)
}

// MatchIgnoringKeys succeeds when actual equals expected once the keys are
// removed and both sides are normalized.
//
//	Expect(response).To(compare.MatchIgnoringKeys(created.Booking, "bookingid"))
func MatchIgnoringKeys(expected any, keys ...string) types.GomegaMatcher {
	return &matcher{
		compare:  EqualIgnoringKeys,
		expected: expected,
		keys:     keys,
		negated:  "Expected JSON documents to differ but they match",
	}
}

// DifferIgnoringKeys succeeds when actual differs from expected, see NotEqual
// for how an empty key list is treated.
func DifferIgnoringKeys(expected any, keys ...string) types.GomegaMatcher {
	return &matcher{
		compare:  NotEqual,
		expected: expected,
		keys:     keys,
		negated:  "Expected JSON documents to match but they differ",
	}
}

// AssertEqualIgnoringKeys is the testify flavour of EqualIgnoringKeys.
func AssertEqualIgnoringKeys(t assert.TestingT, expected, actual any, keys ...string) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}

	return assert.NoError(t, EqualIgnoringKeys(expected, actual, keys...))
}

// AssertNotEqual is the testify flavour of NotEqual.
func AssertNotEqual(t assert.TestingT, expected, actual any, keys ...string) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}

	return assert.NoError(t, NotEqual(expected, actual, keys...))
}
