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

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/unikorn-cloud/booking/pkg/client"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

var (
	// ErrUnexpectedStatus is returned when the auth endpoint does not answer 200.
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrTokenMissing is returned when a 200 response carries no token.
	ErrTokenMissing = errors.New("token not found in the response")
)

// credentials is the auth request body.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// tokenResponse is the auth response body.
type tokenResponse struct {
	Token string `json:"token"`
}

// Generator obtains tokens by posting credentials to the auth endpoint
// through the request executor.
type Generator struct {
	client   *client.Client
	path     string
	username string
	password string
}

// Ensure the interface is implemented.
var _ TokenSource = &Generator{}

// NewGenerator returns a token generator for {baseURL}{endpoint}.  A nil
// client selects the executor's default.
func NewGenerator(baseURL, endpoint, username, password string, httpClient *http.Client) *Generator {
	return &Generator{
		client:   client.New(baseURL, client.WithHTTPClient(httpClient)),
		path:     "/" + strings.TrimPrefix(endpoint, "/"),
		username: username,
		password: password,
	}
}

// Token posts the credentials and extracts the token.
func (g *Generator) Token(ctx context.Context) (string, error) {
	response, err := g.client.Post(ctx, g.path, &credentials{
		Username: g.username,
		Password: g.password,
	}, false)
	if err != nil {
		return "", err
	}

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: failed to obtain token: %d %s", ErrUnexpectedStatus, response.StatusCode, response.Text())
	}

	var token tokenResponse

	if err := response.JSON(&token); err != nil {
		return "", err
	}

	if token.Token == "" {
		return "", ErrTokenMissing
	}

	return token.Token, nil
}

// Acquire returns a token from the source, or the empty string on failure.
// Failures are logged and otherwise swallowed, requests that need
// authentication then fail downstream with an authorization error.
func Acquire(ctx context.Context, source TokenSource) string {
	log := log.FromContext(ctx)

	token, err := source.Token(ctx)
	if err != nil {
		log.Error(err, "token generation failed, continuing without a token")

		return ""
	}

	log.V(1).Info("token generated")

	return token
}
