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
	"slices"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/oapi-codegen/runtime/types"

	"k8s.io/utils/ptr"
)

const (
	MinTotalPrice = 50
	MaxTotalPrice = 500

	// MaxCheckinAge is how many days in the past a checkin may be.
	MaxCheckinAge = 365

	MinNights = 1
	MaxNights = 15
)

// additionalNeeds are the extras a generated booking asks for.
//
//nolint:gochecknoglobals
var additionalNeeds = []string{
	"Breakfast",
	"Lunch",
	"Dinner",
	"Spa",
	"Shuttle service",
}

// AdditionalNeeds returns the extras a generated booking may ask for.
func AdditionalNeeds() []string {
	return slices.Clone(additionalNeeds)
}

// Generator creates random bookings.
type Generator struct {
	faker *gofakeit.Faker
	now   func() time.Time
}

// NewGenerator returns a generator, the same non-zero seed produces the same
// sequence of bookings for the same day.  Zero picks a random seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		faker: gofakeit.New(seed),
		now:   time.Now,
	}
}

// Generate returns a random booking from a randomly seeded generator.
func Generate() Booking {
	return NewGenerator(0).Booking()
}

// Booking returns a random booking relative to today.
func (g *Generator) Booking() Booking {
	return g.BookingAt(g.now())
}

// BookingAt returns a random booking whose checkin lies within the year
// before the given day, and never on it.
func (g *Generator) BookingAt(now time.Time) Booking {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	checkin := today.AddDate(0, 0, -g.faker.Number(1, MaxCheckinAge))
	checkout := checkin.AddDate(0, 0, g.faker.Number(MinNights, MaxNights))

	return Booking{
		Firstname:   g.faker.FirstName(),
		Lastname:    g.faker.LastName(),
		TotalPrice:  g.faker.Number(MinTotalPrice, MaxTotalPrice),
		DepositPaid: true,
		BookingDates: Dates{
			Checkin:  types.Date{Time: checkin},
			Checkout: types.Date{Time: checkout},
		},
		AdditionalNeeds: ptr.To(g.faker.RandomString(additionalNeeds)),
	}
}
