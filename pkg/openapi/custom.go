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

// Package openapi holds parameter types shared by the booking API server
// and its clients.
package openapi

import (
	"errors"
	"regexp"
	"strconv"
)

var ErrInvalidBookingID = errors.New("invalid booking id: must be a positive decimal integer")

var bookingIDValidationRegex = regexp.MustCompile("^[1-9][0-9]{0,17}$")

// BookingIDParameter is the {bookingid} path segment.
type BookingIDParameter struct {
	Value int
}

func (n *BookingIDParameter) UnmarshalText(text []byte) error {
	if !bookingIDValidationRegex.Match(text) {
		return ErrInvalidBookingID
	}

	value, err := strconv.Atoi(string(text))
	if err != nil {
		return ErrInvalidBookingID
	}

	*n = BookingIDParameter{
		Value: value,
	}

	return nil
}

func (n BookingIDParameter) String() string {
	return strconv.Itoa(n.Value)
}
