/*
Copyright 2025 the Unikorn Authors.
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

package api

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime/types"

	"github.com/unikorn-cloud/booking/pkg/booking"

	"k8s.io/utils/ptr"
)

// BookingPayloadBuilder builds booking payloads for testing, starting from
// a random valid booking.
type BookingPayloadBuilder struct {
	payload booking.Booking
}

func NewBookingPayload() *BookingPayloadBuilder {
	return &BookingPayloadBuilder{
		payload: booking.Generate(),
	}
}

func (b *BookingPayloadBuilder) WithFirstname(name string) *BookingPayloadBuilder {
	b.payload.Firstname = name
	return b
}

func (b *BookingPayloadBuilder) WithLastname(name string) *BookingPayloadBuilder {
	b.payload.Lastname = name
	return b
}

// WithUniqueName gives the booking a first name no other run will use, so
// filters return exactly this booking.
func (b *BookingPayloadBuilder) WithUniqueName() *BookingPayloadBuilder {
	b.payload.Firstname = generateRandomName("Guest")
	return b
}

func (b *BookingPayloadBuilder) WithTotalPrice(price int) *BookingPayloadBuilder {
	b.payload.TotalPrice = price
	return b
}

func (b *BookingPayloadBuilder) WithDepositPaid(paid bool) *BookingPayloadBuilder {
	b.payload.DepositPaid = paid
	return b
}

// WithDates sets the stay to start on checkin and last the given number of nights.
func (b *BookingPayloadBuilder) WithDates(checkin time.Time, nights int) *BookingPayloadBuilder {
	b.payload.BookingDates = booking.Dates{
		Checkin:  types.Date{Time: checkin},
		Checkout: types.Date{Time: checkin.AddDate(0, 0, nights)},
	}

	return b
}

func (b *BookingPayloadBuilder) WithAdditionalNeeds(needs string) *BookingPayloadBuilder {
	b.payload.AdditionalNeeds = ptr.To(needs)
	return b
}

func (b *BookingPayloadBuilder) WithoutAdditionalNeeds() *BookingPayloadBuilder {
	b.payload.AdditionalNeeds = nil
	return b
}

func (b *BookingPayloadBuilder) Build() booking.Booking {
	return b.payload
}

// generateRandomName creates a unique name for test resources.
func generateRandomName(prefix string) string {
	return fmt.Sprintf("%s%s", prefix, uuid.New().String()[:8])
}
