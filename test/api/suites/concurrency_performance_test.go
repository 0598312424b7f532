//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gmeasure"

	"github.com/unikorn-cloud/booking/pkg/booking"
	"github.com/unikorn-cloud/booking/test/api"
)

const concurrentRequests = 5

var _ = Describe("Concurrency and Performance", func() {
	Context("When performing concurrent operations", func() {
		Describe("Given multiple simultaneous booking creation requests", func() {
			It("should give each booking a unique id", func() {
				var (
					wg  sync.WaitGroup
					mu  sync.Mutex
					ids []int
				)

				for range concurrentRequests {
					wg.Add(1)

					go func() {
						defer GinkgoRecover()
						defer wg.Done()

						created, _, err := client.CreateBooking(ctx, api.NewBookingPayload().Build())
						Expect(err).NotTo(HaveOccurred())

						mu.Lock()
						defer mu.Unlock()

						ids = append(ids, created.BookingID)
					}()
				}

				wg.Wait()

				DeferCleanup(func() {
					for _, id := range ids {
						if err := client.DeleteBooking(ctx, id); err != nil {
							GinkgoWriter.Printf("Warning: failed to delete booking %d: %v\n", id, err)
						}
					}
				})

				Expect(ids).To(HaveLen(concurrentRequests))

				seen := map[int]bool{}

				for _, id := range ids {
					Expect(seen).NotTo(HaveKey(id))

					seen[id] = true
				}
			})
		})

		Describe("Given concurrent reads", func() {
			It("should return a consistent booking", func() {
				created := api.CreateBookingWithCleanup(client, ctx, api.NewBookingPayload().Build())

				var wg sync.WaitGroup

				for range concurrentRequests {
					wg.Add(1)

					go func() {
						defer GinkgoRecover()
						defer wg.Done()

						response, err := client.Executor().Get(ctx, client.Endpoints().Booking(created.BookingID), true)
						Expect(err).NotTo(HaveOccurred())
						Expect(response.StatusCode).To(Equal(http.StatusOK))

						var fetched booking.Booking

						Expect(response.JSON(&fetched)).To(Succeed())
						Expect(fetched.Firstname).To(Equal(created.Booking.Firstname))
					}()
				}

				wg.Wait()
			})
		})
	})

	Context("When measuring response times", func() {
		It("should list bookings within the request timeout", func() {
			if config.RequestTimeout == 0 {
				Skip("environment has no request timeout")
			}

			experiment := gmeasure.NewExperiment("listing bookings")
			AddReportEntry(experiment.Name, experiment)

			experiment.Sample(func(_ int) {
				experiment.MeasureDuration("list", func() {
					_, err := client.ListBookingIDs(ctx)
					Expect(err).NotTo(HaveOccurred())
				})
			}, gmeasure.SamplingConfig{N: concurrentRequests})

			stats := experiment.GetStats("list")
			Expect(stats.DurationFor(gmeasure.StatMax)).To(BeNumerically("<", config.RequestTimeout))
		})
	})
})
