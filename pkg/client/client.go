/*
Copyright 2024-2025 the Unikorn Authors.
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

// Package client executes requests against the booking API and hands back
// the raw status and body.  HTTP error statuses are not errors here, they
// are logged and returned like any other response so the caller can assert
// on them.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Option customizes a client.
type Option func(*Client)

// WithToken sets the session token attached to authenticated requests.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTokenPlacement selects bearer, cookie or both.
func WithTokenPlacement(placement Placement) Option {
	return func(c *Client) {
		c.placement = placement
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithTimeout bounds each request, zero leaves requests unbounded.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithBodyLogging toggles logging of response bodies.
func WithBodyLogging(enabled bool) Option {
	return func(c *Client) {
		c.logBodies = enabled
	}
}

// Client is the request executor.
type Client struct {
	baseURL   string
	client    *http.Client
	timeout   time.Duration
	token     string
	placement Placement
	logBodies bool
}

// New returns a client for the given base URL.
func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		client:    &http.Client{},
		placement: PlacementCookie,
		logBodies: true,
	}

	for _, o := range options {
		o(c)
	}

	if c.timeout > 0 {
		client := *c.client
		client.Timeout = c.timeout
		c.client = &client
	}

	return c
}

// BaseURL returns the URL all paths are relative to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Token returns the configured session token.
func (c *Client) Token() string {
	return c.token
}

// DefaultHeaders returns a fresh copy of the JSON headers sent with every
// request that does not supply its own.
func DefaultHeaders() http.Header {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Accept", "application/json")

	return header
}

// AuthenticatedHeaders returns the default headers plus the token credential
// for the given placement.  Tests use this to build explicit PUT and DELETE
// header sets.
func AuthenticatedHeaders(token string, placement Placement) http.Header {
	header := DefaultHeaders()
	placement.Apply(header, token)

	return header
}

// Get sends a GET request, merging the token credential into the default
// headers when includeToken is set.
func (c *Client) Get(ctx context.Context, path string, includeToken bool) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil, c.mergedHeaders(includeToken))
}

// Post sends a POST request, merging the token credential into the default
// headers when includeToken is set.
func (c *Client) Post(ctx context.Context, path string, body any, includeToken bool) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, body, c.mergedHeaders(includeToken))
}

// Put sends a PUT request.  Non-empty headers replace the default set
// entirely, nothing is merged into them.  Without headers the defaults are
// sent with the token credential.
func (c *Client) Put(ctx context.Context, path string, body any, headers http.Header) (*Response, error) {
	if len(headers) == 0 {
		return c.do(ctx, http.MethodPut, path, body, AuthenticatedHeaders(c.token, c.placement))
	}

	return c.do(ctx, http.MethodPut, path, body, headers.Clone())
}

// Delete sends a DELETE request.  Non-empty headers replace the default set
// entirely, nothing is merged into them.  Without headers only the defaults
// are sent, callers that need to authenticate pass AuthenticatedHeaders.
func (c *Client) Delete(ctx context.Context, path string, headers http.Header) (*Response, error) {
	if len(headers) == 0 {
		return c.do(ctx, http.MethodDelete, path, nil, DefaultHeaders())
	}

	return c.do(ctx, http.MethodDelete, path, nil, headers.Clone())
}

func (c *Client) mergedHeaders(includeToken bool) http.Header {
	header := DefaultHeaders()

	if includeToken {
		c.placement.Apply(header, c.token)
	}

	return header
}

// encodeBody sends raw bodies verbatim and JSON encodes everything else.
func encodeBody(body any) (io.Reader, error) {
	switch t := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(t), nil
	case json.RawMessage:
		return bytes.NewReader(t), nil
	case string:
		return strings.NewReader(t), nil
	case io.Reader:
		return t, nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}

	return bytes.NewReader(data), nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, header http.Header) (*Response, error) {
	fullURL := c.baseURL + path

	log := log.FromContext(ctx).WithValues("method", method, "path", path)

	reader, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header = header

	// Add W3C Trace Context headers, these are transport metadata and sit
	// outside the default/explicit header sets.
	traceParent := createTraceParent()
	req.Header.Set(traceParentHeader, traceParent)
	req.Header.Set(traceStateHeader, traceState)

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		log.Error(err, "http request failed", "duration", duration, "traceID", extractTraceID(traceParent))

		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(err, "reading response body", "status", resp.StatusCode, "duration", duration, "traceID", extractTraceID(traceParent))

		return nil, fmt.Errorf("reading response body: %w", err)
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}

	log.Info("Status Code", "status", response.StatusCode, "duration", duration)

	if c.logBodies {
		log.Info("Response Body", "body", response.Text())
	}

	if response.StatusCode >= http.StatusBadRequest {
		log.Error(nil, "request returned an error status", "status", response.StatusCode, "body", response.Text(), "traceID", extractTraceID(traceParent))
	}

	return response, nil
}
