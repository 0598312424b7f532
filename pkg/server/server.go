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

// Package server is an in-memory implementation of the booking API used to
// run the conformance suites without a live deployment.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/booking/pkg/openapi"
	"github.com/unikorn-cloud/booking/pkg/server/handler"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

type Options struct {
	// ListenAddress is where the server listens.
	ListenAddress string

	// ReadTimeout and WriteTimeout bound each request.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Handler controls request handling.
	Handler handler.Options
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.ListenAddress, "listen", ":3001", "API listener address")
	f.DurationVar(&o.ReadTimeout, "read-timeout", time.Second, "How long to wait for the client to send the request body")
	f.DurationVar(&o.WriteTimeout, "write-timeout", 10*time.Second, "How long to wait for the API to respond to the client")

	o.Handler.AddFlags(f)
}

type Server struct {
	options  *Options
	handler  *handler.Handler
	registry *prometheus.Registry
	metrics  *metrics
}

func New(options *Options) *Server {
	registry := prometheus.NewRegistry()

	return &Server{
		options:  options,
		handler:  handler.New(&options.Handler),
		registry: registry,
		metrics:  newMetrics(registry),
	}
}

// Registry exposes the server's metrics.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// logging attaches a request scoped logger to the context.
func logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContext(r.Context()).WithValues("method", r.Method, "path", r.URL.Path, "requestID", middleware.GetReqID(r.Context()))

		next.ServeHTTP(w, r.WithContext(log.IntoContext(r.Context(), logger)))
	})
}

// withBookingID parses the {bookingid} path segment, an invalid id is
// answered with the given status.
func withBookingID(status int, f func(http.ResponseWriter, *http.Request, openapi.BookingIDParameter)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var bookingID openapi.BookingIDParameter

		if err := bookingID.UnmarshalText([]byte(chi.URLParam(r, "bookingid"))); err != nil {
			handler.WriteStatus(w, status)
			return
		}

		f(w, r, bookingID)
	}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(logging)
	router.Use(s.metrics.middleware)
	router.NotFound(handler.NotFound)
	router.MethodNotAllowed(handler.MethodNotAllowed)

	router.Post("/auth", s.handler.PostAuth)

	router.Route("/booking", func(r chi.Router) {
		r.Get("/", s.handler.GetBookings)
		r.Post("/", s.handler.PostBooking)
		r.Get("/{bookingid}", withBookingID(http.StatusNotFound, s.handler.GetBooking))
		r.Put("/{bookingid}", withBookingID(http.StatusMethodNotAllowed, s.handler.PutBooking))
		r.Delete("/{bookingid}", withBookingID(http.StatusMethodNotAllowed, s.handler.DeleteBooking))
	})

	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return router
}

// Run serves the API until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	logger := log.FromContext(ctx)

	server := &http.Server{
		Addr:              s.options.ListenAddress,
		ReadTimeout:       s.options.ReadTimeout,
		ReadHeaderTimeout: s.options.ReadTimeout,
		WriteTimeout:      s.options.WriteTimeout,
		Handler:           s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error(err, "server shutdown failed")
		}
	}()

	logger.Info("listening", "address", s.options.ListenAddress)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}

	return nil
}
