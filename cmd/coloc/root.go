// Copyright 2025 go-coloc Authors
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

package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ajroetker/go-coloc/coloc"
)

// overrides maps a flag name to the config field it replaces when set.
type overrides map[string]func(fs *pflag.FlagSet) error

// app carries state shared by the subcommands of one invocation.
type app struct {
	cfg        runConfig
	configPath string
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: defaultConfig()}
	cmd := &cobra.Command{
		Use:   "coloc",
		Short: "Colocalization statistics for two-channel images",
		Long: `Compute Pearson's R, automatic threshold regression, the maximum
truncated Kendall tau and its block permutation p-value for two channels.
`,
		SilenceUsage: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML run configuration")
	pf.String("log-level", "", "log level (trace, debug, info, warning, error)")
	pf.String("pixel-type", "", "pixel type of both channels: uint8, uint16, float32 or float64")
	pf.IntSlice("dims", nil, "image extents, x first (e.g. 64,64)")

	cmd.AddCommand(
		a.pearsonsCmd(),
		a.thresholdCmd(),
		a.kendallCmd(),
		a.pvalueCmd(),
		a.allCmd(),
	)
	return cmd
}

// prepare loads the config file, applies the flags that were set and
// installs the logger.
func (a *app) prepare(cmd *cobra.Command, local overrides) error {
	if a.configPath != "" {
		if err := loadConfig(a.configPath, &a.cfg); err != nil {
			return err
		}
	}

	all := overrides{
		"log-level": func(fs *pflag.FlagSet) (err error) {
			a.cfg.LogLevel, err = fs.GetString("log-level")
			return err
		},
		"pixel-type": func(fs *pflag.FlagSet) (err error) {
			a.cfg.PixelType, err = fs.GetString("pixel-type")
			return err
		},
		"dims": func(fs *pflag.FlagSet) (err error) {
			a.cfg.Dims, err = fs.GetIntSlice("dims")
			return err
		},
	}
	for name, fn := range local {
		all[name] = fn
	}

	fs := cmd.Flags()
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if fn, ok := all[f.Name]; ok && err == nil {
			err = fn(fs)
		}
	})
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(level)
	coloc.SetLogger(logger)
	return nil
}

// load reads both channel files and builds the analyzer for the configured
// pixel type.
func (a *app) load(args []string) (analyzer, error) {
	ch1, err := readFile(args[0])
	if err != nil {
		return nil, err
	}
	ch2, err := readFile(args[1])
	if err != nil {
		return nil, err
	}
	coloc.Logger().WithFields(logrus.Fields{
		"samples":   len(ch1),
		"pixelType": a.cfg.PixelType,
		"dims":      a.cfg.Dims,
	}).Info("channels loaded")
	return newAnalyzer(&a.cfg, ch1, ch2)
}
