//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/booking/pkg/booking"
	"github.com/unikorn-cloud/booking/pkg/compare"
	"github.com/unikorn-cloud/booking/test/api"
)

var _ = Describe("Core Booking Management", Ordered, func() {
	session := &api.Session{}

	AfterAll(func() {
		if session.BookingID() == 0 || session.Deleted {
			return
		}

		if err := client.DeleteBooking(ctx, session.BookingID()); err != nil {
			GinkgoWriter.Printf("Warning: failed to delete booking %d: %v\n", session.BookingID(), err)
		}
	})

	Context("When listing bookings", func() {
		It("should return every booking id", func() {
			response, err := client.Executor().Get(ctx, client.Endpoints().Bookings(), true)
			Expect(err).NotTo(HaveOccurred())
			Expect(response.StatusCode).To(Equal(http.StatusOK))
			Expect(schema.ValidateReferences(response)).To(Succeed())

			references, err := client.ListBookingIDs(ctx)
			Expect(err).NotTo(HaveOccurred())
			api.VerifyReferences(references)
		})
	})

	Context("When creating a booking", func() {
		It("should echo the booking with a new id", func() {
			session.Payload = api.NewBookingPayload().WithUniqueName().Build()

			created, response, err := client.CreateBooking(ctx, session.Payload)
			Expect(err).NotTo(HaveOccurred())
			Expect(schema.ValidateCreated(response)).To(Succeed())

			session.Created = *created

			Expect(created.BookingID).To(BeNumerically(">", 0))
			Expect(created.Booking).To(compare.MatchIgnoringKeys(session.Payload))
		})

		It("should return the created booking by id", func() {
			response, err := client.GetBooking(ctx, session.BookingID())
			Expect(err).NotTo(HaveOccurred())
			Expect(schema.ValidateBooking(response)).To(Succeed())

			api.VerifyBookingMatches(session.Created.Booking, response)
		})
	})

	Context("When filtering bookings", func() {
		DescribeTable("should list the created booking first",
			func(byFirstname, byLastname bool) {
				var firstname, lastname string

				if byFirstname {
					firstname = session.Created.Booking.Firstname
				}

				if byLastname {
					lastname = session.Created.Booking.Lastname
				}

				references, err := client.FilterBookings(ctx, firstname, lastname)
				Expect(err).NotTo(HaveOccurred())
				api.VerifyFirstReference(references, session.BookingID())
			},
			Entry("by first name", true, false),
			Entry("by last name", false, true),
			Entry("by first and last name", true, true),
		)
	})

	Context("When updating a booking", func() {
		It("should replace every field", func() {
			update := api.NewBookingPayload().Build()

			response, err := client.UpdateBooking(ctx, session.BookingID(), update)
			Expect(err).NotTo(HaveOccurred())
			Expect(schema.ValidateBooking(response)).To(Succeed())

			Expect(response).To(compare.MatchIgnoringKeys(update))
			Expect(response).To(compare.DifferIgnoringKeys(session.Created.Booking, "bookingid"))
		})
	})

	Context("When deleting a booking", func() {
		It("should acknowledge the delete", func() {
			Expect(client.DeleteBooking(ctx, session.BookingID())).To(Succeed())

			session.Deleted = true
		})

		It("should no longer return the booking", func() {
			response, err := client.Executor().Get(ctx, client.Endpoints().Booking(session.BookingID()), true)
			Expect(err).NotTo(HaveOccurred())
			Expect(booking.CheckResponse(response.StatusCode, response.Body, http.StatusNotFound, "Not Found")).To(Succeed())
		})
	})
})
