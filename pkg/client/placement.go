/*
Copyright 2024-2025 the Unikorn Authors.
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

package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrInvalidPlacement is returned when parsing an unknown placement.
var ErrInvalidPlacement = errors.New("invalid token placement")

// Placement describes how a token is attached to a request.
type Placement string

const (
	// PlacementCookie sends "Cookie: token=<token>".
	PlacementCookie Placement = "cookie"
	// PlacementBearer sends "Authorization: Bearer <token>".
	PlacementBearer Placement = "bearer"
	// PlacementBoth sends both credentials, only when explicitly requested.
	PlacementBoth Placement = "both"
)

// ParsePlacement converts a configuration value, the empty string selects
// the cookie placement the booking API expects.
func ParsePlacement(s string) (Placement, error) {
	switch Placement(strings.ToLower(s)) {
	case "", PlacementCookie:
		return PlacementCookie, nil
	case PlacementBearer:
		return PlacementBearer, nil
	case PlacementBoth:
		return PlacementBoth, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidPlacement, s)
}

// Apply sets the credential headers for the token.  An empty token is a
// no-op.
func (p Placement) Apply(header http.Header, token string) {
	if token == "" {
		return
	}

	switch p {
	case PlacementBearer:
		header.Set("Authorization", "Bearer "+token)
	case PlacementBoth:
		header.Set("Authorization", "Bearer "+token)
		header.Set("Cookie", CookieValue(token))
	default:
		header.Set("Cookie", CookieValue(token))
	}
}

// CookieName is the cookie the booking API reads the token from.
const CookieName = "token"

// CookieValue formats the token as the booking API's cookie.
func CookieValue(token string) string {
	return CookieName + "=" + token
}
