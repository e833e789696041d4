// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/Goodwine/go-xmldoc/mem"
	"github.com/Goodwine/go-xmldoc/mem/memmetrics"
)

var (
	// Global flags
	showStats   bool
	showMetrics bool
	logLevel    string
	capacity    int
)

var rootCmd = &cobra.Command{
	Use:   "xmldoc",
	Short: "Build and print XML documents backed by an instrumented allocator",
	Long: `xmldoc builds sample documents and trees in memory and prints them.

Every structure allocates through one instrumented allocator, whose counters can be printed
after the output as a short report or in the Prometheus text format.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&showStats, "stats", false, "Print allocator statistics after the output")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "Print allocator metrics in the Prometheus text format")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&capacity, "capacity", 4, "Initial number of entries of every structure")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger returns a text logger writing to stderr at the level chosen with --log-level.
func newLogger() (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}

// report writes the allocator statistics requested with --stats and --metrics.
func report(w io.Writer, m *mem.Allocator) error {
	if showStats {
		if err := m.Report(w); err != nil {
			return err
		}
	}
	if !showMetrics {
		return nil
	}

	reg := prometheus.NewRegistry()
	if err := reg.Register(memmetrics.NewCollector(m, "xmldoc")); err != nil {
		return fmt.Errorf("registering allocator metrics: %w", err)
	}
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gathering allocator metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
