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

	"github.com/unikorn-cloud/booking/pkg/constants"
	"github.com/unikorn-cloud/booking/pkg/logging"
	"github.com/unikorn-cloud/booking/pkg/server"

	cr "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

func main() {
	var (
		serverOptions  server.Options
		loggingOptions logging.Options
	)

	serverOptions.AddFlags(pflag.CommandLine)
	loggingOptions.AddFlags(pflag.CommandLine)

	pflag.Parse()

	loggingOptions.Setup()

	logger := log.Log.WithName("init")
	logger.Info("service starting", "application", constants.Application, "version", constants.Version, "revision", constants.Revision)

	ctx := log.IntoContext(cr.SetupSignalHandler(), log.Log.WithName("booking-stub"))

	if err := server.New(&serverOptions).Run(ctx); err != nil {
		logger.Error(err, "server failed")
		os.Exit(1)
	}
}
