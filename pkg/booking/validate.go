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
	"errors"
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/unikorn-cloud/booking/pkg/compare"
)

var (
	// ErrNoBookings is returned when a listing is empty.
	ErrNoBookings = errors.New("response does not contain any bookings")

	// ErrMissingID is returned when a listing entry has no booking id.
	ErrMissingID = errors.New("booking entry does not contain a booking id")

	// ErrUnexpectedStatus is returned when a response status is wrong.
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrUnexpectedBody is returned when a response body is wrong.
	ErrUnexpectedBody = errors.New("unexpected response body")
)

// ValidateReferences checks a listing has at least one entry and that every
// entry carries a booking id.
func ValidateReferences(references []Reference) error {
	if len(references) == 0 {
		return ErrNoBookings
	}

	for i, reference := range references {
		if reference.BookingID == 0 {
			return fmt.Errorf("%w: entry %d", ErrMissingID, i)
		}
	}

	return nil
}

// CheckResponse checks the status and body of a response exactly.  A string
// wantBody is compared with the body text, anything else is compared as
// JSON without any normalization.
func CheckResponse(status int, body []byte, wantStatus int, wantBody any) error {
	if status != wantStatus {
		return fmt.Errorf("%w: expected %d, got %d", ErrUnexpectedStatus, wantStatus, status)
	}

	if text, ok := wantBody.(string); ok {
		if string(body) != text {
			return fmt.Errorf("%w: expected %q, got %q", ErrUnexpectedBody, text, string(body))
		}

		return nil
	}

	want, err := compare.ToValue(wantBody)
	if err != nil {
		return err
	}

	got, err := compare.ToValue(body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpectedBody, err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		return fmt.Errorf("%w (-want +got):\n%s", ErrUnexpectedBody, diff)
	}

	return nil
}
