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

package api

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/unikorn-cloud/booking/pkg/client"
	"github.com/unikorn-cloud/booking/pkg/config"
)

var ErrConfigNotFound = errors.New("environment configuration not found")

type TestConfig struct {
	*config.Environment

	Placement   client.Placement
	TestTimeout time.Duration
	UseStub     bool
}

// LoadTestConfig loads the named environment block.  The configuration file
// is searched for relative to the working directory so the suites can run
// from their own package directory.
func LoadTestConfig(name string, useStub bool) (*TestConfig, error) {
	path, err := findConfig()
	if err != nil {
		return nil, err
	}

	environment, err := config.Load(path, name)
	if err != nil {
		return nil, err
	}

	placement, err := client.ParsePlacement(environment.TokenPlacement)
	if err != nil {
		return nil, err
	}

	return &TestConfig{
		Environment: environment,
		Placement:   placement,
		TestTimeout: config.GetDurationWithDefault("BOOKING_TEST_TIMEOUT", 5*time.Minute),
		UseStub:     config.GetBoolWithDefault("BOOKING_STUB", useStub),
	}, nil
}

func findConfig() (string, error) {
	if path := os.Getenv("BOOKING_CONFIG"); path != "" {
		return path, nil
	}

	paths := []string{
		config.DefaultPath,
		"../../" + config.DefaultPath,    // From test/api directory
		"../../../" + config.DefaultPath, // From test/api/suites directory
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: tried %v", ErrConfigNotFound, paths)
}
