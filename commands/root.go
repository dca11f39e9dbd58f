// Copyright 2025 CardinalHQ, Inc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X".
var version = "dev"

var logLevel string

var root = &cobra.Command{
	Use:   "tremor",
	Short: "Tremor synthesizes earthquake ground-motion time histories",
	Long: `Tremor synthesizes site-specific earthquake ground-motion acceleration
histories with the Vlachos et al. (2018) stochastic model, from a magnitude,
a rupture distance and a site Vs30.`,
	Version:      version,
	SilenceUsage:  true,
}

func init() {
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides config)")
}

func Execute() error {
	root.AddCommand(GenerateCmd)
	root.AddCommand(ScenarioCmd)
	root.AddCommand(ArchiveCmd)

	return root.Execute()
}
