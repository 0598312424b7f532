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

package logging

import (
	"flag"
	"io"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"

	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// Options wraps the zap options so binaries get the usual --zap-* flags.
type Options struct {
	zap zap.Options
}

// AddFlags registers logging flags with the given flag set.
func (o *Options) AddFlags(f *pflag.FlagSet) {
	flags := flag.NewFlagSet("", flag.ContinueOnError)

	o.zap.BindFlags(flags)

	f.AddGoFlagSet(flags)
}

// Setup installs the global logger.
func (o *Options) Setup() {
	log.SetLogger(zap.New(zap.UseFlagOptions(&o.zap)))
}

// NewLogger returns a development logger that writes to w, with debug
// output enabled.
func NewLogger(w io.Writer) logr.Logger {
	return zap.New(zap.WriteTo(w), zap.UseDevMode(true), zap.Level(zapcore.DebugLevel))
}

// SetupForWriter installs a development logger that writes to w.  This is
// used by test suites to route output to the ginkgo writer.
func SetupForWriter(w io.Writer) {
	log.SetLogger(NewLogger(w))
}
