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

package bookings

import (
	"cmp"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/unikorn-cloud/booking/pkg/booking"
)

// ErrNotFound is returned when a booking does not exist.
var ErrNotFound = errors.New("booking not found")

// Client wraps up booking related management handling.  Bookings live in
// memory for the lifetime of the process.
type Client struct {
	// lock guards everything below, handlers run concurrently.
	lock sync.RWMutex

	// lastID is the most recently allocated booking id.
	lastID int

	// bookings is keyed by booking id.
	bookings map[int]booking.Booking
}

// NewClient returns a new, empty client.
func NewClient() *Client {
	return &Client{
		bookings: map[int]booking.Booking{},
	}
}

// List returns references to all bookings matching the guest names, the
// newest first.  Empty names match everything.
func (c *Client) List(firstname, lastname string) []booking.Reference {
	c.lock.RLock()
	defer c.lock.RUnlock()

	ids := slices.SortedFunc(maps.Keys(c.bookings), func(a, b int) int {
		return cmp.Compare(b, a)
	})

	result := make([]booking.Reference, 0, len(ids))

	for _, id := range ids {
		b := c.bookings[id]

		if firstname != "" && b.Firstname != firstname {
			continue
		}

		if lastname != "" && b.Lastname != lastname {
			continue
		}

		result = append(result, booking.Reference{BookingID: id})
	}

	return result
}

// Get returns the booking.
func (c *Client) Get(id int) (*booking.Booking, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	b, ok := c.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &b, nil
}

// Create stores the booking under a newly allocated id.
func (c *Client) Create(b *booking.Booking) *booking.Created {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.lastID++

	c.bookings[c.lastID] = *b

	return &booking.Created{
		BookingID: c.lastID,
		Booking:   *b,
	}
}

// Update replaces an existing booking.
func (c *Client) Update(id int, b *booking.Booking) (*booking.Booking, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if _, ok := c.bookings[id]; !ok {
		return nil, ErrNotFound
	}

	c.bookings[id] = *b

	return b, nil
}

// Delete removes the booking.
func (c *Client) Delete(id int) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if _, ok := c.bookings[id]; !ok {
		return ErrNotFound
	}

	delete(c.bookings, id)

	return nil
}
