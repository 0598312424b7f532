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

package main

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/booking/pkg/config"
	"github.com/unikorn-cloud/booking/pkg/constants"
	"github.com/unikorn-cloud/booking/pkg/logging"
	"github.com/unikorn-cloud/booking/pkg/smoke"

	cr "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

func main() {
	var (
		configOptions  config.Options
		loggingOptions logging.Options
	)

	configOptions.AddFlags(pflag.CommandLine)
	loggingOptions.AddFlags(pflag.CommandLine)

	pflag.Parse()

	loggingOptions.Setup()

	logger := log.Log.WithName("init")
	logger.Info("smoke test starting", "application", constants.Application, "version", constants.Version, "revision", constants.Revision)

	ctx := cr.SetupSignalHandler()

	environment, err := configOptions.Load()
	if err != nil {
		logger.Error(err, "failed to load configuration")
		os.Exit(1)
	}

	logger = log.Log.WithName("smoke").WithValues("env", environment.Name, "baseURL", environment.BaseURL)
	ctx = log.IntoContext(ctx, logger)

	runner, err := smoke.New(ctx, environment, nil)
	if err != nil {
		logger.Error(err, "failed to initialize")
		os.Exit(1)
	}

	if err := runner.Run(ctx); err != nil {
		logger.Error(err, "smoke test failed")
		os.Exit(1)
	}

	logger.Info("smoke test passed")
}
