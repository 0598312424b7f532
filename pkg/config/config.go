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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"k8s.io/utils/ptr"
)

const (
	// DefaultEnvironment is selected when no --env flag is given.
	DefaultEnvironment = "qa"

	// DefaultPath is where the environment file lives relative to the
	// repository root.
	DefaultPath = "config/environments.yaml"
)

var (
	// ErrEnvironmentNotFound is returned when the requested environment has
	// no block in the configuration file.
	ErrEnvironmentNotFound = errors.New("environment not found")

	// ErrInvalidConfiguration is returned when an environment block fails
	// validation.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Environment is the configuration for a single target deployment of the
// booking API.
type Environment struct {
	// Name is the key the environment was loaded from.
	Name string `yaml:"-"`
	// BaseURL is prefixed to every request path.
	BaseURL string `yaml:"base_url" validate:"required,url"`
	// AuthEndpoint is the path credentials are posted to.
	AuthEndpoint string `yaml:"auth_endpoint"`
	// Endpoint is accepted as an alias of AuthEndpoint.
	Endpoint string `yaml:"endpoint"`
	Username string `yaml:"username" validate:"required_if=UseToken true"`
	Password string `yaml:"password" validate:"required_if=UseToken true"`
	// UseToken requests a session token before any test runs.
	UseToken bool `yaml:"use_token"`
	// TokenPlacement is one of cookie, bearer or both.
	TokenPlacement string `yaml:"token_placement" validate:"omitempty,oneof=cookie bearer both"`
	// RequestTimeout bounds each request, zero means no limit.
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gte=0"`
	// LogBodies controls whether response bodies are logged, defaults to true.
	LogBodies *bool `yaml:"log_bodies"`
}

// AuthPath returns the authentication endpoint path.
func (e *Environment) AuthPath() string {
	if e.AuthEndpoint != "" {
		return e.AuthEndpoint
	}

	return e.Endpoint
}

// LogResponseBodies reports whether response bodies should be logged.
func (e *Environment) LogResponseBodies() bool {
	return ptr.Deref(e.LogBodies, true)
}

// Validate checks the environment is usable.
func (e *Environment) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(e); err != nil {
		return fmt.Errorf("%w: environment %q: %w", ErrInvalidConfiguration, e.Name, err)
	}

	if e.UseToken && e.AuthPath() == "" {
		return fmt.Errorf("%w: environment %q: auth_endpoint is required when use_token is set", ErrInvalidConfiguration, e.Name)
	}

	return nil
}

// File is the on-disk format, a mapping from environment name to settings.
type File map[string]Environment

// Names returns the sorted environment names.
func (f File) Names() []string {
	names := make([]string, 0, len(f))

	for name := range f {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Load reads the configuration file at path and returns the named
// environment with any process environment overrides applied.
func Load(path, name string) (*Environment, error) {
	loadEnvFile()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration %s: %w", path, err)
	}

	return Parse(data, name)
}

// Parse decodes a configuration document and selects the named environment.
func Parse(data []byte, name string) (*Environment, error) {
	var file File

	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: decoding configuration: %w", ErrInvalidConfiguration, err)
	}

	environment, ok := file[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrEnvironmentNotFound, name, strings.Join(file.Names(), ", "))
	}

	environment.Name = name

	applyOverrides(&environment)

	if err := environment.Validate(); err != nil {
		return nil, err
	}

	return &environment, nil
}

// applyOverrides lets CI inject credentials without editing the file.
func applyOverrides(e *Environment) {
	if value := os.Getenv("BOOKING_BASE_URL"); value != "" {
		e.BaseURL = value
	}

	if value := os.Getenv("BOOKING_USERNAME"); value != "" {
		e.Username = value
	}

	if value := os.Getenv("BOOKING_PASSWORD"); value != "" {
		e.Password = value
	}

	e.UseToken = GetBoolWithDefault("BOOKING_USE_TOKEN", e.UseToken)
	e.RequestTimeout = GetDurationWithDefault("BOOKING_REQUEST_TIMEOUT", e.RequestTimeout)
}

// GetDurationWithDefault reads a duration from the environment, falling back
// to the default when unset or unparsable.
func GetDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// GetBoolWithDefault reads a boolean from the environment, falling back to the
// default when unset or unparsable.
func GetBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		".env",
		"../../../.env", // From test/api/suites directory
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// Options are the command line options that select an environment.
type Options struct {
	// Environment is the environment block to load.
	Environment string
	// Path is the configuration file location.
	Path string
}

// AddFlags registers the options with a flag set.
func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.Environment, "env", DefaultEnvironment, "Environment to run tests against (qa, staging, etc.)")
	f.StringVar(&o.Path, "config", DefaultConfigPath(), "Path to the environment configuration file")
}

// Load loads the selected environment.
func (o *Options) Load() (*Environment, error) {
	return Load(o.Path, o.Environment)
}

// DefaultConfigPath returns $BOOKING_CONFIG if set, otherwise DefaultPath.
func DefaultConfigPath() string {
	if path := os.Getenv("BOOKING_CONFIG"); path != "" {
		return path
	}

	return DefaultPath
}
