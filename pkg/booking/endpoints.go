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

package booking

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Auth returns the token endpoint, tolerating a missing leading slash.
func (e *Endpoints) Auth(endpoint string) string {
	return "/" + strings.TrimPrefix(endpoint, "/")
}

// Booking endpoints.
func (e *Endpoints) Bookings() string {
	return "/booking"
}

func (e *Endpoints) Booking(id int) string {
	return fmt.Sprintf("/booking/%s", url.PathEscape(strconv.Itoa(id)))
}

// Filter returns the listing filtered by guest name, empty names are left
// out of the query.
func (e *Endpoints) Filter(firstname, lastname string) string {
	query := url.Values{}

	if firstname != "" {
		query.Set("firstname", firstname)
	}

	if lastname != "" {
		query.Set("lastname", lastname)
	}

	if len(query) == 0 {
		return e.Bookings()
	}

	return e.Bookings() + "?" + query.Encode()
}
