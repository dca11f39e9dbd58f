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

package config

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cardinalhq/tremor/pkg/identify"
	"github.com/cardinalhq/tremor/pkg/postprocess"
	"github.com/cardinalhq/tremor/pkg/scriptaction"
	"github.com/cardinalhq/tremor/pkg/spectrum"
	"github.com/cardinalhq/tremor/pkg/vlachos"
)

const DefaultOTLPTimeout = 5 * time.Second

type Config struct {
	Seed            uint64                      `mapstructure:"seed" yaml:"seed" json:"seed"`
	Units           string                      `mapstructure:"units" yaml:"units" json:"units"`
	Workers         int                         `mapstructure:"workers" yaml:"workers" json:"workers"`
	LogLevel        string                      `mapstructure:"logLevel" yaml:"logLevel" json:"logLevel"`
	Output          string                      `mapstructure:"output" yaml:"output" json:"output"`
	Archive         string                      `mapstructure:"archive" yaml:"archive" json:"archive"`
	Model           ModelConfig                 `mapstructure:"model" yaml:"model" json:"model"`
	Scenarios       []scriptaction.ScriptAction `mapstructure:"scenarios" yaml:"scenarios" json:"scenarios"`
	OTLPDestination OTLPDestination             `mapstructure:"otlpDestination" yaml:"otlpDestination" json:"otlpDestination"`
}

// ModelConfig holds the synthesis settings shared by every scenario.
type ModelConfig struct {
	TimeStep          float64 `mapstructure:"timeStep" yaml:"timeStep" json:"timeStep"`
	FreqStep          float64 `mapstructure:"freqStep" yaml:"freqStep" json:"freqStep"`
	CutoffFreq        float64 `mapstructure:"cutoffFreq" yaml:"cutoffFreq" json:"cutoffFreq"`
	FilterOrder       int     `mapstructure:"filterOrder" yaml:"filterOrder" json:"filterOrder"`
	FilterCorner      float64 `mapstructure:"filterCorner" yaml:"filterCorner" json:"filterCorner"`
	TaperSeconds      float64 `mapstructure:"taperSeconds" yaml:"taperSeconds" json:"taperSeconds"`
	MaxAttempts       int     `mapstructure:"maxAttempts" yaml:"maxAttempts" json:"maxAttempts"`
	FilterMode        string  `mapstructure:"filterMode" yaml:"filterMode" json:"filterMode"`
	SkipFailedSpectra bool    `mapstructure:"skipFailedSpectra" yaml:"skipFailedSpectra" json:"skipFailedSpectra"`
}

type OTLPDestination struct {
	Endpoint string            `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint"`
	Headers  map[string]string `mapstructure:"headers" yaml:"headers" json:"headers"`
	Timeout  time.Duration     `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
}

func Default() *Config {
	return &Config{
		Units:    vlachos.MetersPerSecondSquared.String(),
		LogLevel: "info",
		Model: ModelConfig{
			TimeStep:     spectrum.DefaultTimeStep,
			FreqStep:     spectrum.DefaultFreqStep,
			CutoffFreq:   spectrum.DefaultCutoffFreq,
			FilterOrder:  vlachos.DefaultFilterOrder,
			FilterCorner: vlachos.DefaultFilterCorner,
			TaperSeconds: postprocess.DefaultTaperSeconds,
			MaxAttempts:  identify.DefaultMaxAttempts,
			FilterMode:   vlachos.ZeroPhase.String(),
		},
		OTLPDestination: OTLPDestination{
			Timeout: DefaultOTLPTimeout,
		},
	}
}

// LoadConfigs loads the files in order on top of Default. Later scalar
// values win, scenario lists append and OTLP headers merge.
func LoadConfigs(fnames []string) (*Config, error) {
	merged := Default()
	for _, fname := range fnames {
		slog.Info("Loading config", "file", fname)
		cfg, err := loadConfig(fname)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", fname, err)
		}
		merged.Merge(cfg)
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// Merge overlays the non-zero fields of other onto c.
func (c *Config) Merge(other *Config) {
	if other.Seed != 0 {
		c.Seed = other.Seed
	}
	if other.Units != "" {
		c.Units = other.Units
	}
	if other.Workers != 0 {
		c.Workers = other.Workers
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.Output != "" {
		c.Output = other.Output
	}
	if other.Archive != "" {
		c.Archive = other.Archive
	}
	c.Model.merge(other.Model)
	if other.OTLPDestination.Timeout != 0 {
		c.OTLPDestination.Timeout = other.OTLPDestination.Timeout
	}
	if other.OTLPDestination.Endpoint != "" {
		c.OTLPDestination.Endpoint = other.OTLPDestination.Endpoint
	}
	if other.OTLPDestination.Headers != nil {
		if c.OTLPDestination.Headers == nil {
			c.OTLPDestination.Headers = make(map[string]string)
		}
		maps.Copy(c.OTLPDestination.Headers, other.OTLPDestination.Headers)
	}
	c.Scenarios = append(c.Scenarios, other.Scenarios...)
}

func (m *ModelConfig) merge(other ModelConfig) {
	if other.TimeStep != 0 {
		m.TimeStep = other.TimeStep
	}
	if other.FreqStep != 0 {
		m.FreqStep = other.FreqStep
	}
	if other.CutoffFreq != 0 {
		m.CutoffFreq = other.CutoffFreq
	}
	if other.FilterOrder != 0 {
		m.FilterOrder = other.FilterOrder
	}
	if other.FilterCorner != 0 {
		m.FilterCorner = other.FilterCorner
	}
	if other.TaperSeconds != 0 {
		m.TaperSeconds = other.TaperSeconds
	}
	if other.MaxAttempts != 0 {
		m.MaxAttempts = other.MaxAttempts
	}
	if other.FilterMode != "" {
		m.FilterMode = other.FilterMode
	}
	if other.SkipFailedSpectra {
		m.SkipFailedSpectra = true
	}
}

func (c *Config) Validate() error {
	if _, err := vlachos.ParseUnits(c.Units); err != nil {
		return err
	}
	if _, err := vlachos.ParseFilterMode(c.Model.FilterMode); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Model.TimeStep < 0 || c.Model.FreqStep < 0 || c.Model.CutoffFreq < 0 {
		return fmt.Errorf("model steps and cutoff must not be negative")
	}
	if c.Model.MaxAttempts < 0 {
		return fmt.Errorf("maxAttempts must not be negative, got %d", c.Model.MaxAttempts)
	}
	return nil
}

// ModelOptions translates the config into options for vlachos.NewModel.
func (c *Config) ModelOptions() ([]vlachos.Option, error) {
	units, err := vlachos.ParseUnits(c.Units)
	if err != nil {
		return nil, err
	}
	mode, err := vlachos.ParseFilterMode(c.Model.FilterMode)
	if err != nil {
		return nil, err
	}
	return []vlachos.Option{
		vlachos.WithTimeStep(c.Model.TimeStep),
		vlachos.WithFreqStep(c.Model.FreqStep),
		vlachos.WithCutoffFreq(c.Model.CutoffFreq),
		vlachos.WithFilter(c.Model.FilterOrder, c.Model.FilterCorner),
		vlachos.WithTaper(c.Model.TaperSeconds),
		vlachos.WithMaxAttempts(c.Model.MaxAttempts),
		vlachos.WithUnits(units),
		vlachos.WithFilterMode(mode),
		vlachos.WithWorkers(c.Workers),
		vlachos.WithSkipFailedSpectra(c.Model.SkipFailedSpectra),
	}, nil
}

func loadConfig(fname string) (*Config, error) {
	var cfg Config
	if strings.EqualFold(filepath.Ext(fname), ".json") {
		f, err := os.Open(fname)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := JSONDecode(f, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err := LoadYAML(fname, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func LoadYAML(fname string, config *Config) error {
	b, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, config)
}

func MarshalYAML(config *Config) ([]byte, error) {
	b, err := yaml.Marshal(config)
	if err != nil {
		return nil, err
	}
	return b, nil
}
