//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/booking/pkg/booking"
	"github.com/unikorn-cloud/booking/pkg/compare"
	"github.com/unikorn-cloud/booking/test/api"
)

func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

var _ = Describe("Boundary Value Testing", func() {
	Context("When creating bookings at the edges of the generated ranges", func() {
		DescribeTable("should round trip the booking",
			func(builder *api.BookingPayloadBuilder) {
				payload := builder.Build()

				created := api.CreateBookingWithCleanup(client, ctx, payload)
				Expect(created.Booking).To(compare.MatchIgnoringKeys(payload))

				response, err := client.GetBooking(ctx, created.BookingID)
				Expect(err).NotTo(HaveOccurred())
				api.VerifyBookingMatches(payload, response)
			},
			Entry("with the minimum total price", api.NewBookingPayload().WithTotalPrice(booking.MinTotalPrice)),
			Entry("with the maximum total price", api.NewBookingPayload().WithTotalPrice(booking.MaxTotalPrice)),
			Entry("with a zero total price", api.NewBookingPayload().WithTotalPrice(0)),
			Entry("with the shortest stay", api.NewBookingPayload().WithDates(today().AddDate(0, 0, -1), booking.MinNights)),
			Entry("with the longest stay", api.NewBookingPayload().WithDates(today().AddDate(0, 0, -booking.MaxCheckinAge), booking.MaxNights)),
			Entry("with a future stay", api.NewBookingPayload().WithDates(today().AddDate(1, 0, 0), 7)),
			Entry("without a deposit", api.NewBookingPayload().WithDepositPaid(false)),
			Entry("without additional needs", api.NewBookingPayload().WithoutAdditionalNeeds()),
		)
	})

	Context("When generating bookings", func() {
		It("should always satisfy the schema", func() {
			for range 50 {
				payload := booking.Generate()

				Expect(payload.Validate()).To(Succeed())
				Expect(schema.ValidateBooking(payload)).To(Succeed())
			}
		})
	})
})
