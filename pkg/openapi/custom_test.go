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

package openapi_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/booking/pkg/openapi"
)

func TestBookingIDParameter(t *testing.T) {
	t.Parallel()

	var id openapi.BookingIDParameter

	require.NoError(t, id.UnmarshalText([]byte("42")))
	require.Equal(t, 42, id.Value)
	require.Equal(t, "42", id.String())

	for _, bad := range []string{"", "0", "007", "-1", "1.5", "abc", "99999999999999999999"} {
		require.ErrorIs(t, id.UnmarshalText([]byte(bad)), openapi.ErrInvalidBookingID, bad)
	}
}
