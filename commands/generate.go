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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/tremor/internal/logging"
	"github.com/cardinalhq/tremor/pkg/archive"
	"github.com/cardinalhq/tremor/pkg/config"
	"github.com/cardinalhq/tremor/pkg/emitter"
	"github.com/cardinalhq/tremor/pkg/metricemitter"
	"github.com/cardinalhq/tremor/pkg/metricproducer"
	"github.com/cardinalhq/tremor/pkg/script"
	"github.com/cardinalhq/tremor/pkg/sweep"
	"github.com/cardinalhq/tremor/pkg/traceemitter"
	"github.com/cardinalhq/tremor/pkg/traceproducer"
	"github.com/cardinalhq/tremor/pkg/vlachos"
)

// outputFlags select the emitters shared by generate and scenario.
type outputFlags struct {
	debug        bool
	progress     bool
	debugMetrics bool
	debugTraces  bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.debug, "debug", false, "print one JSON summary line per event to stderr")
	cmd.Flags().BoolVar(&f.progress, "progress", false, "show a progress line on stderr")
	cmd.Flags().BoolVar(&f.debugMetrics, "debug-metrics", false, "print run telemetry as OTLP JSON to stderr")
	cmd.Flags().BoolVar(&f.debugTraces, "debug-traces", false, "print run traces as OTLP JSON to stderr")
}

var (
	generateFlags  outputFlags
	generateSweeps []string
)

var GenerateCmd = &cobra.Command{
	Use:   "generate <config.yaml>...",
	Short: "Generate every scenario of the given config files",
	Long: `Generate ground motions for every scenario of the config files. Files are
merged in order: later scalar values win, scenario lists append.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 && len(generateSweeps) == 0 {
			return errors.New("no config files provided")
		}
		cfg, err := config.LoadConfigs(args)
		if err != nil {
			return fmt.Errorf("error loading config files: %w", err)
		}
		if err := mergeSweeps(cfg, generateSweeps); err != nil {
			return err
		}
		return generate(cmd.Context(), cfg, generateFlags, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	generateFlags.register(GenerateCmd)
	GenerateCmd.Flags().StringSliceVar(&generateSweeps, "sweep", nil, "sweep files whose grids are added as scenarios")
}

func mergeSweeps(cfg *config.Config, files []string) error {
	for _, fname := range files {
		b, err := os.ReadFile(fname)
		if err != nil {
			return fmt.Errorf("error reading sweep file: %w", err)
		}
		doc, err := sweep.ParseSweeps(b)
		if err != nil {
			return fmt.Errorf("sweep %s: %w", fname, err)
		}
		if err := doc.MergeIntoConfig(cfg); err != nil {
			return fmt.Errorf("sweep %s: %w", fname, err)
		}
	}
	return nil
}

func generate(ctx context.Context, cfg *config.Config, flags outputFlags, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger := logging.NewLogger(cfg.LogLevel, stderr)

	s := script.NewScript()
	s.SetLogger(logger)

	if cfg.Output != "" {
		if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		s.AddEmitter(emitter.NewFileEmitter(cfg.Output))
	} else {
		s.AddEmitter(emitter.NewJSONEmitter(stdout))
	}
	if flags.debug {
		s.AddEmitter(emitter.NewDebugEmitter(stderr))
	}
	if flags.progress {
		ticker := emitter.NewTickerEmitter(stderr)
		s.AddOption(vlachos.WithObserver(ticker))
		s.AddEmitter(ticker)
	}

	if cfg.Archive != "" {
		store, err := archive.NewStore(cfg.Archive)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing archive", slog.Any("error", err))
			}
		}()
		s.AddEmitter(store)
	}

	producer := metricproducer.NewRunProducer(metricproducer.Attributes{})
	tracer := traceproducer.NewRunTracer(metricproducer.Attributes{})
	if flags.debugMetrics {
		s.AddEmitter(emitter.NewTelemetryEmitter(producer, metricemitter.NewDebugMetricEmitter(stderr)))
	}
	if flags.debugTraces {
		s.AddEmitter(emitter.NewTraceEmitter(tracer, traceemitter.NewDebugTraceEmitter(stderr)))
	}
	if dest := cfg.OTLPDestination; dest.Endpoint != "" {
		client := &http.Client{Timeout: dest.Timeout}
		metrics, err := metricemitter.NewOTLPMetricEmitter(client, dest.Endpoint, dest.Headers)
		if err != nil {
			return err
		}
		traces, err := traceemitter.NewOTLPTraceEmitter(client, dest.Endpoint, dest.Headers)
		if err != nil {
			return err
		}
		s.AddEmitter(emitter.NewTelemetryEmitter(producer, metrics))
		s.AddEmitter(emitter.NewTraceEmitter(tracer, traces))
	}

	return script.Run(ctx, cfg, s)
}
