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

//nolint:revive
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/booking/pkg/booking"
	"github.com/unikorn-cloud/booking/pkg/client"
	"github.com/unikorn-cloud/booking/pkg/openapi"
	"github.com/unikorn-cloud/booking/pkg/server/handler/bookings"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Options allows behaviour to be defined on the CLI.
type Options struct {
	// Username and Password are the only credentials that yield a token.
	Username string
	Password string

	// Seed is how many random bookings exist at start up.
	Seed int
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.Username, "username", "admin", "Username that is issued tokens")
	f.StringVar(&o.Password, "password", "password123", "Password that is issued tokens")
	f.IntVar(&o.Seed, "seed", 10, "Number of random bookings to create at start up")
}

type Handler struct {
	// options allows behaviour to be defined on the CLI.
	options *Options

	// bookings holds all bookings.
	bookings *bookings.Client

	// lock guards tokens.
	lock sync.RWMutex

	// tokens are all issued session tokens.
	tokens map[string]struct{}
}

func New(options *Options) *Handler {
	h := &Handler{
		options:  options,
		bookings: bookings.NewClient(),
		tokens:   map[string]struct{}{},
	}

	generator := booking.NewGenerator(0)

	for range options.Seed {
		b := generator.Booking()
		h.bookings.Create(&b)
	}

	return h
}

func (h *Handler) setUncacheable(w http.ResponseWriter) {
	w.Header().Add("Cache-Control", "no-cache")
}

// writeJSONResponse emits a JSON body with the status.
func writeJSONResponse(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		log.FromContext(r.Context()).Error(err, "unable to marshal response body")
		WriteStatus(w, http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if _, err := w.Write(data); err != nil {
		log.FromContext(r.Context()).Error(err, "unable to write response body")
	}
}

// WriteStatus emits the status text as a plain text body, e.g. "Created".
func WriteStatus(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)

	//nolint:errcheck
	w.Write([]byte(http.StatusText(status)))
}

// NotFound handles unrouted paths.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	WriteStatus(w, http.StatusNotFound)
}

// MethodNotAllowed handles unrouted methods.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	WriteStatus(w, http.StatusMethodNotAllowed)
}

// issue returns a new session token.
func (h *Handler) issue() string {
	token := uuid.NewString()

	h.lock.Lock()
	defer h.lock.Unlock()

	h.tokens[token] = struct{}{}

	return token
}

func (h *Handler) validToken(token string) bool {
	h.lock.RLock()
	defer h.lock.RUnlock()

	_, ok := h.tokens[token]

	return ok
}

// authorized accepts a session token as a cookie or bearer token, or the
// configured credentials via basic authentication.
func (h *Handler) authorized(r *http.Request) bool {
	if cookie, err := r.Cookie(client.CookieName); err == nil && h.validToken(cookie.Value) {
		return true
	}

	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok && h.validToken(token) {
		return true
	}

	if username, password, ok := r.BasicAuth(); ok && username == h.options.Username && password == h.options.Password {
		return true
	}

	return false
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token  string `json:"token,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// PostAuth issues a token for valid credentials, bad credentials are still
// answered with a 200.
func (h *Handler) PostAuth(w http.ResponseWriter, r *http.Request) {
	var request credentials

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		WriteStatus(w, http.StatusBadRequest)
		return
	}

	h.setUncacheable(w)

	if request.Username != h.options.Username || request.Password != h.options.Password {
		log.FromContext(r.Context()).Info("rejected credentials", "username", request.Username)
		writeJSONResponse(w, r, http.StatusOK, &tokenResponse{Reason: "Bad credentials"})

		return
	}

	writeJSONResponse(w, r, http.StatusOK, &tokenResponse{Token: h.issue()})
}

func (h *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	writeJSONResponse(w, r, http.StatusOK, h.bookings.List(query.Get("firstname"), query.Get("lastname")))
}

// decodeBooking reads and validates a request body.
func decodeBooking(r *http.Request) (*booking.Booking, error) {
	var b booking.Booking

	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		return nil, err
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}

	return &b, nil
}

func (h *Handler) PostBooking(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBooking(r)
	if err != nil {
		log.FromContext(r.Context()).Info("rejected booking", "error", err.Error())
		WriteStatus(w, http.StatusBadRequest)

		return
	}

	writeJSONResponse(w, r, http.StatusOK, h.bookings.Create(b))
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request, bookingID openapi.BookingIDParameter) {
	b, err := h.bookings.Get(bookingID.Value)
	if err != nil {
		WriteStatus(w, http.StatusNotFound)
		return
	}

	writeJSONResponse(w, r, http.StatusOK, b)
}

func (h *Handler) PutBooking(w http.ResponseWriter, r *http.Request, bookingID openapi.BookingIDParameter) {
	if !h.authorized(r) {
		WriteStatus(w, http.StatusForbidden)
		return
	}

	b, err := decodeBooking(r)
	if err != nil {
		log.FromContext(r.Context()).Info("rejected booking", "error", err.Error())
		WriteStatus(w, http.StatusBadRequest)

		return
	}

	result, err := h.bookings.Update(bookingID.Value, b)
	if err != nil {
		if errors.Is(err, bookings.ErrNotFound) {
			WriteStatus(w, http.StatusMethodNotAllowed)
			return
		}

		WriteStatus(w, http.StatusInternalServerError)

		return
	}

	writeJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request, bookingID openapi.BookingIDParameter) {
	if !h.authorized(r) {
		WriteStatus(w, http.StatusForbidden)
		return
	}

	if err := h.bookings.Delete(bookingID.Value); err != nil {
		WriteStatus(w, http.StatusMethodNotAllowed)
		return
	}

	WriteStatus(w, http.StatusCreated)
}
