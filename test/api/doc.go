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

// Package api provides integration test utilities for the booking API.
//
// # Typed Client
//
// APIClient layers typed booking operations over the generic request
// executor in pkg/client.  Every call is logged to the Ginkgo writer with
// the trace ID that was sent, so a failing step can be found in the
// service logs.
//
// # Environments
//
// The target is chosen with --env, defaulting to qa.  Setting
// BOOKING_STUB=true, or passing --stub, replaces the environment's base
// URL with an in-process stub service so the suites run without network
// access.
package api
