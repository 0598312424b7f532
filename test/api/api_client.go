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

//nolint:revive // naming conventions acceptable in test code
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/onsi/ginkgo/v2"

	"github.com/unikorn-cloud/booking/pkg/auth"
	"github.com/unikorn-cloud/booking/pkg/booking"
	"github.com/unikorn-cloud/booking/pkg/client"
)

type APIClient struct {
	client    *client.Client
	config    *TestConfig
	endpoints *booking.Endpoints
}

// NewAPIClientWithConfig acquires a token when the environment uses one.
// Token failures are logged and leave the client anonymous.
func NewAPIClientWithConfig(ctx context.Context, config *TestConfig, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	var token string

	if config.UseToken {
		generator := auth.NewGenerator(config.BaseURL, config.AuthPath(), config.Username, config.Password, httpClient)

		token = auth.Acquire(ctx, generator)
	}

	return &APIClient{
		client: client.New(config.BaseURL,
			client.WithHTTPClient(httpClient),
			client.WithTimeout(config.RequestTimeout),
			client.WithToken(token),
			client.WithTokenPlacement(config.Placement),
			client.WithBodyLogging(config.LogResponseBodies()),
		),
		config:    config,
		endpoints: booking.NewEndpoints(),
	}
}

// Executor exposes the untyped request executor for negative tests.
func (c *APIClient) Executor() *client.Client {
	return c.client
}

func (c *APIClient) Endpoints() *booking.Endpoints {
	return c.endpoints
}

func (c *APIClient) Token() string {
	return c.client.Token()
}

// AuthHeaders is the explicit header set used for updates and deletes.
func (c *APIClient) AuthHeaders() http.Header {
	return client.AuthenticatedHeaders(c.client.Token(), c.config.Placement)
}

// logError logs a failed request.
func (c *APIClient) logError(method, path string, duration time.Duration, err error) {
	ginkgo.GinkgoWriter.Printf("[%s %s] ERROR duration=%s error=%v\n", method, path, duration, err)
}

// logUnexpectedStatus logs an unexpected HTTP status code.
func (c *APIClient) logUnexpectedStatus(method, path string, expectedStatus, actualStatus int, body string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] UNEXPECTED STATUS expected=%d got=%d body=%s\n", method, path, expectedStatus, actualStatus, body)
}

// doRequest dispatches to the executor and checks the status.
func (c *APIClient) doRequest(ctx context.Context, method, path string, body any, headers http.Header, expectedStatus int) (*client.Response, error) {
	start := time.Now()

	var (
		response *client.Response
		err      error
	)

	switch method {
	case http.MethodGet:
		response, err = c.client.Get(ctx, path, true)
	case http.MethodPost:
		response, err = c.client.Post(ctx, path, body, false)
	case http.MethodPut:
		response, err = c.client.Put(ctx, path, body, headers)
	case http.MethodDelete:
		response, err = c.client.Delete(ctx, path, headers)
	default:
		return nil, fmt.Errorf("%w: unsupported method %s", booking.ErrUnexpectedStatus, method)
	}

	duration := time.Since(start)

	if err != nil {
		c.logError(method, path, duration, err)

		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if response.StatusCode != expectedStatus {
		c.logUnexpectedStatus(method, path, expectedStatus, response.StatusCode, response.Text())

		return response, fmt.Errorf("%w: %s %s expected %d, got %d", booking.ErrUnexpectedStatus, method, path, expectedStatus, response.StatusCode)
	}

	ginkgo.GinkgoWriter.Printf("[%s %s] status=%d duration=%s\n", method, path, response.StatusCode, duration)

	return response, nil
}

func (c *APIClient) references(ctx context.Context, path string) ([]booking.Reference, error) {
	response, err := c.doRequest(ctx, http.MethodGet, path, nil, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var references []booking.Reference

	if err := response.JSON(&references); err != nil {
		return nil, err
	}

	return references, nil
}

// ListBookingIDs returns every booking reference.
func (c *APIClient) ListBookingIDs(ctx context.Context) ([]booking.Reference, error) {
	return c.references(ctx, c.endpoints.Bookings())
}

// FilterBookings lists references matching the names, empty names are omitted.
func (c *APIClient) FilterBookings(ctx context.Context, firstname, lastname string) ([]booking.Reference, error) {
	return c.references(ctx, c.endpoints.Filter(firstname, lastname))
}

func (c *APIClient) CreateBooking(ctx context.Context, payload booking.Booking) (*booking.Created, *client.Response, error) {
	response, err := c.doRequest(ctx, http.MethodPost, c.endpoints.Bookings(), payload, nil, http.StatusOK)
	if err != nil {
		return nil, response, err
	}

	var created booking.Created

	if err := response.JSON(&created); err != nil {
		return nil, response, err
	}

	return &created, response, nil
}

func (c *APIClient) GetBooking(ctx context.Context, bookingID int) (*client.Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.Booking(bookingID), nil, nil, http.StatusOK)
}

func (c *APIClient) UpdateBooking(ctx context.Context, bookingID int, payload booking.Booking) (*client.Response, error) {
	return c.doRequest(ctx, http.MethodPut, c.endpoints.Booking(bookingID), payload, c.AuthHeaders(), http.StatusOK)
}

// DeleteBooking expects the service's 201 "Created" acknowledgement.
func (c *APIClient) DeleteBooking(ctx context.Context, bookingID int) error {
	response, err := c.doRequest(ctx, http.MethodDelete, c.endpoints.Booking(bookingID), nil, c.AuthHeaders(), http.StatusCreated)
	if err != nil {
		return err
	}

	return booking.CheckResponse(response.StatusCode, response.Body, http.StatusCreated, "Created")
}
