//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/booking/pkg/auth"
	bookingclient "github.com/unikorn-cloud/booking/pkg/client"
	"github.com/unikorn-cloud/booking/test/api"
)

var _ = Describe("Security and Authentication", func() {
	Context("When generating a token", func() {
		Describe("Given valid credentials", func() {
			It("should issue a token", func() {
				if !config.UseToken {
					Skip("environment does not use tokens")
				}

				Expect(client.Token()).NotTo(BeEmpty())
			})
		})

		Describe("Given invalid credentials", func() {
			It("should fail softly with an empty token", func() {
				generator := auth.NewGenerator(config.BaseURL, config.AuthPath(), config.Username, "not-the-password", nil)

				_, err := generator.Token(ctx)
				Expect(err).To(HaveOccurred())

				Expect(auth.Acquire(ctx, generator)).To(BeEmpty())
			})
		})
	})

	Context("When modifying bookings", func() {
		Describe("Given no authentication", func() {
			It("should reject updates with 403 Forbidden", func() {
				created := api.CreateBookingWithCleanup(client, ctx, api.NewBookingPayload().Build())

				response, err := client.Executor().Put(ctx, client.Endpoints().Booking(created.BookingID), api.NewBookingPayload().Build(), bookingclient.DefaultHeaders())
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusForbidden))
			})

			It("should reject deletes with 403 Forbidden", func() {
				created := api.CreateBookingWithCleanup(client, ctx, api.NewBookingPayload().Build())

				response, err := client.Executor().Delete(ctx, client.Endpoints().Booking(created.BookingID), bookingclient.DefaultHeaders())
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusForbidden))
			})
		})

		Describe("Given a forged token", func() {
			It("should reject the delete with 403 Forbidden", func() {
				created := api.CreateBookingWithCleanup(client, ctx, api.NewBookingPayload().Build())

				headers := bookingclient.AuthenticatedHeaders("forged", bookingclient.PlacementCookie)

				response, err := client.Executor().Delete(ctx, client.Endpoints().Booking(created.BookingID), headers)
				Expect(err).NotTo(HaveOccurred())
				Expect(response.StatusCode).To(Equal(http.StatusForbidden))
			})
		})

		Describe("Given a valid token", func() {
			DescribeTable("should accept the token wherever it is placed",
				func(placement bookingclient.Placement) {
					if client.Token() == "" {
						Skip("no token was issued")
					}

					if placement == bookingclient.PlacementBearer && !config.UseStub {
						Skip("bearer tokens are only accepted by the stub service")
					}

					created := api.CreateBookingWithCleanup(client, ctx, api.NewBookingPayload().Build())

					headers := bookingclient.AuthenticatedHeaders(client.Token(), placement)

					response, err := client.Executor().Delete(ctx, client.Endpoints().Booking(created.BookingID), headers)
					Expect(err).NotTo(HaveOccurred())
					Expect(response.StatusCode).To(Equal(http.StatusCreated))
				},
				Entry("as a cookie", bookingclient.PlacementCookie),
				Entry("as a bearer token", bookingclient.PlacementBearer),
				Entry("as both", bookingclient.PlacementBoth),
			)
		})
	})

	Context("When submitting unusual input", func() {
		Describe("Given injection payloads", func() {
			It("should store them verbatim", func() {
				payload := api.NewBookingPayload().
					WithFirstname("Robert'); DROP TABLE bookings;--").
					WithLastname("<script>alert(1)</script>").
					Build()

				created := api.CreateBookingWithCleanup(client, ctx, payload)

				response, err := client.GetBooking(ctx, created.BookingID)
				Expect(err).NotTo(HaveOccurred())
				api.VerifyBookingMatches(payload, response)
			})
		})

		Describe("Given Unicode names", func() {
			It("should handle Unicode characters properly", func() {
				payload := api.NewBookingPayload().
					WithFirstname("Zoë").
					WithLastname("Ñúñez-東京").
					Build()

				created := api.CreateBookingWithCleanup(client, ctx, payload)
				Expect(created.Booking.Firstname).To(Equal("Zoë"))
				Expect(created.Booking.Lastname).To(Equal("Ñúñez-東京"))
			})
		})
	})
})
