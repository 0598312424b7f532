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

// Package smoke runs the booking conformance flow once, step by step,
// stopping at the first failure.
package smoke

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/unikorn-cloud/booking/pkg/auth"
	"github.com/unikorn-cloud/booking/pkg/booking"
	"github.com/unikorn-cloud/booking/pkg/client"
	"github.com/unikorn-cloud/booking/pkg/compare"
	"github.com/unikorn-cloud/booking/pkg/config"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// ErrStepFailed wraps the first failing step.
var ErrStepFailed = errors.New("step failed")

// Runner executes the flow against one environment.
type Runner struct {
	client    *client.Client
	token     string
	placement client.Placement
	endpoints *booking.Endpoints
	schema    *booking.Schema

	// payload is what was posted, created is what came back.
	payload booking.Booking
	created booking.Created
}

// New acquires a token when the environment asks for one and prepares a
// runner.  A nil HTTP client selects the default.
func New(ctx context.Context, environment *config.Environment, httpClient *http.Client) (*Runner, error) {
	placement, err := client.ParsePlacement(environment.TokenPlacement)
	if err != nil {
		return nil, err
	}

	schema, err := booking.LoadSchema(ctx)
	if err != nil {
		return nil, err
	}

	if httpClient == nil {
		httpClient = &http.Client{}
	}

	var token string

	if environment.UseToken {
		generator := auth.NewGenerator(environment.BaseURL, environment.AuthPath(), environment.Username, environment.Password, httpClient)

		token = auth.Acquire(ctx, generator)
	}

	c := client.New(environment.BaseURL,
		client.WithHTTPClient(httpClient),
		client.WithTimeout(environment.RequestTimeout),
		client.WithToken(token),
		client.WithTokenPlacement(placement),
		client.WithBodyLogging(environment.LogResponseBodies()),
	)

	return &Runner{
		client:    c,
		token:     token,
		placement: placement,
		endpoints: booking.NewEndpoints(),
		schema:    schema,
	}, nil
}

type step struct {
	name string
	run  func(ctx context.Context) error
}

func (r *Runner) steps() []step {
	return []step{
		{"get all booking ids", r.listBookings},
		{"create booking", r.createBooking},
		{"fetch created booking", r.fetchCreated},
		{"filter by first name", r.filter(true, false)},
		{"filter by last name", r.filter(false, true)},
		{"filter by first and last name", r.filter(true, true)},
		{"update booking", r.updateBooking},
		{"delete booking", r.deleteBooking},
		{"fetch deleted booking", r.fetchDeleted},
	}
}

// Run executes every step in order.
func (r *Runner) Run(ctx context.Context) error {
	logger := log.FromContext(ctx)

	for _, s := range r.steps() {
		stepLogger := logger.WithValues("step", s.name)

		if err := s.run(log.IntoContext(ctx, stepLogger)); err != nil {
			stepLogger.Error(err, "step failed")

			return fmt.Errorf("%w: %s: %w", ErrStepFailed, s.name, err)
		}

		stepLogger.Info("step passed")
	}

	return nil
}

// authHeaders is the explicit header set sent with PUT and DELETE.
func (r *Runner) authHeaders() http.Header {
	return client.AuthenticatedHeaders(r.token, r.placement)
}

func (r *Runner) listBookings(ctx context.Context) error {
	response, err := r.client.Get(ctx, r.endpoints.Bookings(), true)
	if err != nil {
		return err
	}

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: expected %d, got %d", booking.ErrUnexpectedStatus, http.StatusOK, response.StatusCode)
	}

	if err := r.schema.ValidateReferences(response); err != nil {
		return err
	}

	var references []booking.Reference

	if err := response.JSON(&references); err != nil {
		return err
	}

	return booking.ValidateReferences(references)
}

func (r *Runner) createBooking(ctx context.Context) error {
	r.payload = booking.Generate()

	response, err := r.client.Post(ctx, r.endpoints.Bookings(), r.payload, false)
	if err != nil {
		return err
	}

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: expected %d, got %d", booking.ErrUnexpectedStatus, http.StatusOK, response.StatusCode)
	}

	if err := r.schema.ValidateCreated(response); err != nil {
		return err
	}

	if err := response.JSON(&r.created); err != nil {
		return err
	}

	log.FromContext(ctx).Info("booking created", "bookingid", r.created.BookingID)

	return compare.EqualIgnoringKeys(r.payload, r.created.Booking)
}

func (r *Runner) fetchCreated(ctx context.Context) error {
	response, err := r.client.Get(ctx, r.endpoints.Booking(r.created.BookingID), true)
	if err != nil {
		return err
	}

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: expected %d, got %d", booking.ErrUnexpectedStatus, http.StatusOK, response.StatusCode)
	}

	if err := r.schema.ValidateBooking(response); err != nil {
		return err
	}

	return compare.EqualIgnoringKeys(r.created.Booking, response, "bookingid")
}

func (r *Runner) filter(byFirstname, byLastname bool) func(context.Context) error {
	return func(ctx context.Context) error {
		var firstname, lastname string

		if byFirstname {
			firstname = r.created.Booking.Firstname
		}

		if byLastname {
			lastname = r.created.Booking.Lastname
		}

		response, err := r.client.Get(ctx, r.endpoints.Filter(firstname, lastname), true)
		if err != nil {
			return err
		}

		if response.StatusCode != http.StatusOK {
			return fmt.Errorf("%w: expected %d, got %d", booking.ErrUnexpectedStatus, http.StatusOK, response.StatusCode)
		}

		var references []booking.Reference

		if err := response.JSON(&references); err != nil {
			return err
		}

		if err := booking.ValidateReferences(references); err != nil {
			return err
		}

		if references[0].BookingID != r.created.BookingID {
			return fmt.Errorf("%w: expected booking %d first, got %d", booking.ErrUnexpectedBody, r.created.BookingID, references[0].BookingID)
		}

		return nil
	}
}

func (r *Runner) updateBooking(ctx context.Context) error {
	update := booking.Generate()

	response, err := r.client.Put(ctx, r.endpoints.Booking(r.created.BookingID), update, r.authHeaders())
	if err != nil {
		return err
	}

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: expected %d, got %d", booking.ErrUnexpectedStatus, http.StatusOK, response.StatusCode)
	}

	if err := compare.EqualIgnoringKeys(update, response); err != nil {
		return err
	}

	return compare.NotEqual(r.created.Booking, response, "bookingid")
}

func (r *Runner) deleteBooking(ctx context.Context) error {
	response, err := r.client.Delete(ctx, r.endpoints.Booking(r.created.BookingID), r.authHeaders())
	if err != nil {
		return err
	}

	return booking.CheckResponse(response.StatusCode, response.Body, http.StatusCreated, "Created")
}

func (r *Runner) fetchDeleted(ctx context.Context) error {
	response, err := r.client.Get(ctx, r.endpoints.Booking(r.created.BookingID), true)
	if err != nil {
		return err
	}

	return booking.CheckResponse(response.StatusCode, response.Body, http.StatusNotFound, "Not Found")
}
