//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/booking/pkg/booking"
)

// missingBookingID is well beyond anything the services allocate.
const missingBookingID = 999999999

var _ = Describe("Error Handling and Edge Cases", func() {
	Context("When addressing a booking that does not exist", func() {
		It("should return 404 Not Found on fetch", func() {
			response, err := client.Executor().Get(ctx, client.Endpoints().Booking(missingBookingID), true)
			Expect(err).NotTo(HaveOccurred())
			Expect(booking.CheckResponse(response.StatusCode, response.Body, http.StatusNotFound, "Not Found")).To(Succeed())
		})

		It("should return 404 Not Found for a malformed id", func() {
			response, err := client.Executor().Get(ctx, client.Endpoints().Bookings()+"/not-a-number", true)
			Expect(err).NotTo(HaveOccurred())
			Expect(response.StatusCode).To(Equal(http.StatusNotFound))
		})

		It("should return 405 Method Not Allowed on update", func() {
			response, err := client.Executor().Put(ctx, client.Endpoints().Booking(missingBookingID), booking.Generate(), client.AuthHeaders())
			Expect(err).NotTo(HaveOccurred())
			Expect(response.StatusCode).To(Equal(http.StatusMethodNotAllowed))
		})

		It("should return 405 Method Not Allowed on delete", func() {
			response, err := client.Executor().Delete(ctx, client.Endpoints().Booking(missingBookingID), client.AuthHeaders())
			Expect(err).NotTo(HaveOccurred())
			Expect(booking.CheckResponse(response.StatusCode, response.Body, http.StatusMethodNotAllowed, "Method Not Allowed")).To(Succeed())
		})
	})

	Context("When posting an invalid booking", func() {
		DescribeTable("should report an error status",
			func(body any) {
				response, err := client.Executor().Post(ctx, client.Endpoints().Bookings(), body, false)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.IsError()).To(BeTrue(), "status %d", response.StatusCode)
			},
			Entry("with malformed JSON", `{"firstname":`),
			Entry("with required fields missing", map[string]any{"firstname": "Jim"}),
		)
	})

	Context("When filtering on names nobody has", func() {
		It("should return an empty list", func() {
			response, err := client.Executor().Get(ctx, client.Endpoints().Filter("Nobody-4f1c", "Here-4f1c"), true)
			Expect(err).NotTo(HaveOccurred())
			Expect(booking.CheckResponse(response.StatusCode, response.Body, http.StatusOK, []any{})).To(Succeed())
		})
	})
})
