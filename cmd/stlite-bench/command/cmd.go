/*
Copyright 2025 The stlite-go Authors. All rights reserved.

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
package command

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bojuzhang/stlite-go/logger"
)

const (
	DefaultHeaps             = 4
	DefaultOps               = 100_000
	DefaultMergeEvery        = 1_000
	DefaultMaxValue          = 1_000_000
	DefaultMetricsServerPort = 9497
)

type Options struct {
	Heaps      int
	Ops        int
	MergeEvery int
	MaxValue   int
	Seed       int64

	LogLevel string

	MetricsServer     bool
	MetricsServerPort int
}

func Execute() {
	cmd := NewCmd()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stlite-bench",
		Short: "Workload driver for the stlite-go containers",
		Long: "stlite-bench drives a randomized push/pop/merge workload over a set of " +
			"mergeable heaps, verifies the heap-order and element-count invariants on " +
			"the way out, and reports per-operation latencies.",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseOptions(cmd)
			if err != nil {
				return err
			}

			log := logger.NewSimpleLoggerWithLevel(
				"stlite-bench",
				os.Stderr,
				logger.LogLevelFromString(opts.LogLevel),
			)
			defer log.Close()

			return runBench(opts, log)
		},
		SilenceUsage: true,
	}

	setupFlags(cmd)
	setupDefaults()

	return cmd
}

func setupFlags(cmd *cobra.Command) {
	cmd.Flags().Int("heaps", DefaultHeaps, "number of independent heaps driven by the workload")
	cmd.Flags().Int("ops", DefaultOps, "total number of operations to run")
	cmd.Flags().Int("merge-every", DefaultMergeEvery, "merge a random pair of heaps after the specified number of operations (0 disables merging)")
	cmd.Flags().Int("max-value", DefaultMaxValue, "exclusive upper bound of pushed values")
	cmd.Flags().Int64("seed", 0, "workload seed (0 derives one from the current time)")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().Bool("metrics-server", false, "enable or disable Prometheus endpoint")
	cmd.Flags().Int("metrics-server-port", DefaultMetricsServerPort, "Prometheus endpoint port")
}

func setupDefaults() {
	viper.SetDefault("heaps", DefaultHeaps)
	viper.SetDefault("ops", DefaultOps)
	viper.SetDefault("merge-every", DefaultMergeEvery)
	viper.SetDefault("max-value", DefaultMaxValue)
	viper.SetDefault("seed", 0)
	viper.SetDefault("log-level", "info")
	viper.SetDefault("metrics-server", false)
	viper.SetDefault("metrics-server-port", DefaultMetricsServerPort)
}

func parseOptions(cmd *cobra.Command) (*Options, error) {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	viper.SetEnvPrefix("STLITE_BENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	opts := &Options{
		Heaps:      viper.GetInt("heaps"),
		Ops:        viper.GetInt("ops"),
		MergeEvery: viper.GetInt("merge-every"),
		MaxValue:   viper.GetInt("max-value"),
		Seed:       viper.GetInt64("seed"),

		LogLevel: viper.GetString("log-level"),

		MetricsServer:     viper.GetBool("metrics-server"),
		MetricsServerPort: viper.GetInt("metrics-server-port"),
	}

	if opts.Heaps < 1 {
		return nil, fmt.Errorf("heaps must be at least 1, got %d", opts.Heaps)
	}

	if opts.Ops < 1 {
		return nil, fmt.Errorf("ops must be at least 1, got %d", opts.Ops)
	}

	if opts.MaxValue < 1 {
		return nil, fmt.Errorf("max-value must be at least 1, got %d", opts.MaxValue)
	}

	return opts, nil
}
