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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/booking/pkg/booking"
	"github.com/unikorn-cloud/booking/pkg/compare"
)

// Session carries state between the ordered steps of a booking flow.
type Session struct {
	// Payload is what was posted.
	Payload booking.Booking
	// Created is what the service returned for it.
	Created booking.Created
	// Deleted is set once the flow removed the booking itself.
	Deleted bool
}

// BookingID is the identifier assigned on creation.
func (s *Session) BookingID() int {
	return s.Created.BookingID
}

// CreateBookingWithCleanup posts the payload and registers a delete that
// runs when the enclosing container finishes.  A booking the test already
// deleted is tolerated.
func CreateBookingWithCleanup(client *APIClient, ctx context.Context, payload booking.Booking) *booking.Created {
	created, _, err := client.CreateBooking(ctx, payload)
	Expect(err).NotTo(HaveOccurred())
	Expect(created.BookingID).To(BeNumerically(">", 0))

	DeferCleanup(func() {
		response, err := client.Executor().Delete(ctx, client.Endpoints().Booking(created.BookingID), client.AuthHeaders())
		if err != nil {
			GinkgoWriter.Printf("Warning: failed to delete booking %d: %v\n", created.BookingID, err)
			return
		}

		switch response.StatusCode {
		case http.StatusCreated:
			GinkgoWriter.Printf("Deleted booking %d\n", created.BookingID)
		case http.StatusMethodNotAllowed, http.StatusNotFound:
			GinkgoWriter.Printf("Booking %d already deleted\n", created.BookingID)
		default:
			GinkgoWriter.Printf("Warning: deleting booking %d returned %d\n", created.BookingID, response.StatusCode)
		}
	})

	return created
}

// VerifyReferences checks a listing is non-empty and every entry has an id.
func VerifyReferences(references []booking.Reference) {
	Expect(booking.ValidateReferences(references)).To(Succeed())
}

// VerifyFirstReference checks the filter returned the given booking first.
func VerifyFirstReference(references []booking.Reference, bookingID int) {
	VerifyReferences(references)
	Expect(references[0].BookingID).To(Equal(bookingID))
}

// VerifyReferencePresence checks the booking appears somewhere in the listing.
func VerifyReferencePresence(references []booking.Reference, bookingID int) {
	Expect(references).To(ContainElement(booking.Reference{BookingID: bookingID}))
}

// VerifyBookingMatches checks the actual booking equals the expected one
// once bookingid is disregarded.
func VerifyBookingMatches(expected, actual any) {
	Expect(actual).To(compare.MatchIgnoringKeys(expected, "bookingid"))
}
