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

// Package booking models the records served by the booking API along with
// helpers to generate, address and validate them.
package booking

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime/types"
)

var (
	// ErrInvalidBooking is returned when a booking fails validation.
	ErrInvalidBooking = errors.New("invalid booking")
)

// Dates is the stay, both ends formatted as YYYY-MM-DD on the wire.
type Dates struct {
	Checkin  types.Date `json:"checkin"`
	Checkout types.Date `json:"checkout"`
}

// Booking is a reservation as accepted by POST and PUT and returned by
// GET /booking/{id}.
type Booking struct {
	Firstname       string  `json:"firstname" validate:"required"`
	Lastname        string  `json:"lastname" validate:"required"`
	TotalPrice      int     `json:"totalprice" validate:"gte=0"`
	DepositPaid     bool    `json:"depositpaid"`
	BookingDates    Dates   `json:"bookingdates"`
	AdditionalNeeds *string `json:"additionalneeds,omitempty"`
}

// Created is the response to POST /booking.
type Created struct {
	BookingID int     `json:"bookingid"`
	Booking   Booking `json:"booking"`
}

// Reference is an entry of the GET /booking listing.
type Reference struct {
	BookingID int `json:"bookingid"`
}

//nolint:gochecknoglobals
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateDates, Dates{})

	return v
}

// validateDates requires both dates and a checkout after the checkin.
func validateDates(sl validator.StructLevel) {
	dates, ok := sl.Current().Interface().(Dates)
	if !ok {
		return
	}

	if dates.Checkin.IsZero() {
		sl.ReportError(dates.Checkin, "checkin", "Checkin", "required", "")
	}

	if dates.Checkout.IsZero() {
		sl.ReportError(dates.Checkout, "checkout", "Checkout", "required", "")
	}

	if !dates.Checkout.After(dates.Checkin.Time) {
		sl.ReportError(dates.Checkout, "checkout", "Checkout", "gtfield", "Checkin")
	}
}

// Validate checks the booking is something the API will accept.
func (b *Booking) Validate() error {
	if err := validate.Struct(b); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBooking, err)
	}

	return nil
}

// Nights is the length of the stay.
func (d Dates) Nights() int {
	return int(d.Checkout.Sub(d.Checkin.Time).Hours() / 24)
}
