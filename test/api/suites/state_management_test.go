//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/booking/pkg/compare"
	"github.com/unikorn-cloud/booking/test/api"
)

var _ = Describe("State Management", func() {
	Context("When a booking is updated", func() {
		It("should return the update on subsequent reads", func() {
			created := api.CreateBookingWithCleanup(client, ctx, api.NewBookingPayload().Build())

			update := api.NewBookingPayload().Build()

			_, err := client.UpdateBooking(ctx, created.BookingID, update)
			Expect(err).NotTo(HaveOccurred())

			response, err := client.GetBooking(ctx, created.BookingID)
			Expect(err).NotTo(HaveOccurred())
			Expect(response).To(compare.MatchIgnoringKeys(update))
			Expect(response).To(compare.DifferIgnoringKeys(created.Booking, "bookingid"))
		})

		It("should be findable by its new name", func() {
			created := api.CreateBookingWithCleanup(client, ctx, api.NewBookingPayload().WithUniqueName().Build())

			update := api.NewBookingPayload().WithUniqueName().Build()

			_, err := client.UpdateBooking(ctx, created.BookingID, update)
			Expect(err).NotTo(HaveOccurred())

			references, err := client.FilterBookings(ctx, update.Firstname, "")
			Expect(err).NotTo(HaveOccurred())
			api.VerifyFirstReference(references, created.BookingID)

			references, err = client.FilterBookings(ctx, created.Booking.Firstname, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(references).To(BeEmpty())
		})
	})

	Context("When a booking is deleted", func() {
		It("should disappear from the listing", func() {
			created := api.CreateBookingWithCleanup(client, ctx, api.NewBookingPayload().Build())

			references, err := client.ListBookingIDs(ctx)
			Expect(err).NotTo(HaveOccurred())
			api.VerifyReferencePresence(references, created.BookingID)

			Expect(client.DeleteBooking(ctx, created.BookingID)).To(Succeed())

			references, err = client.ListBookingIDs(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(references).NotTo(ContainElement(HaveField("BookingID", created.BookingID)))

			response, err := client.Executor().Get(ctx, client.Endpoints().Booking(created.BookingID), true)
			Expect(err).NotTo(HaveOccurred())
			Expect(response.StatusCode).To(Equal(http.StatusNotFound))
		})
	})
})
