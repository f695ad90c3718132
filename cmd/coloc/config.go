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
	"os"
	"slices"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v2"

	"github.com/ajroetker/go-coloc/coloc"
	"github.com/ajroetker/go-coloc/coloc/contrib/kendall"
	"github.com/ajroetker/go-coloc/coloc/contrib/pearsons"
	"github.com/ajroetker/go-coloc/coloc/contrib/pvalue"
	"github.com/ajroetker/go-coloc/coloc/contrib/threshold"
)

// runConfig is the YAML run configuration.
type runConfig struct {
	PixelType string          `yaml:"pixel_type"`
	Dims      []int           `yaml:"dims"`
	LogLevel  string          `yaml:"log_level"`
	Pearsons  pearsonsConfig  `yaml:"pearsons"`
	Threshold thresholdConfig `yaml:"threshold"`
	Kendall   kendallConfig   `yaml:"kendall"`
	PValue    pvalueConfig    `yaml:"pvalue"`
}

type pearsonsConfig struct {
	Implementation string    `yaml:"implementation"`
	Thresholds     []float64 `yaml:"thresholds"`
}

type thresholdConfig struct {
	Implementation string `yaml:"implementation"`
	Pearsons       string `yaml:"pearsons"`
}

type kendallConfig struct {
	Thresholds []float64 `yaml:"thresholds"`
	TieBreak   string    `yaml:"tie_break"`
	Seed       uint64    `yaml:"seed"`
}

type pvalueConfig struct {
	Randomizations int    `yaml:"randomizations"`
	Seed           uint64 `yaml:"seed"`
	Workers        int    `yaml:"workers"`
}

func defaultConfig() runConfig {
	return runConfig{
		PixelType: "float64",
		LogLevel:  "warning",
		Pearsons:  pearsonsConfig{Implementation: "fast"},
		Threshold: thresholdConfig{Implementation: "bisection", Pearsons: "fast"},
		Kendall:   kendallConfig{TieBreak: "random"},
		PValue: pvalueConfig{
			Randomizations: pvalue.DefaultRandomizations,
			Seed:           pvalue.DefaultSeed,
		},
	}
}

// loadConfig reads path over cfg. Keys missing from the file keep their
// current values; unknown keys are rejected.
func loadConfig(path string, cfg *runConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

var (
	pearsonsImplementations = map[string]pearsons.Implementation{
		"fast":    pearsons.Fast,
		"classic": pearsons.Classic,
	}
	thresholdImplementations = map[string]threshold.Implementation{
		"bisection": threshold.Bisection,
		"simple":    threshold.Simple,
	}
	tieBreaks = map[string]kendall.TieBreak{
		"stable": kendall.TieBreakStable,
		"random": kendall.TieBreakRandom,
	}
)

// lookup resolves a case-insensitive option name.
func lookup[V any](kind, name string, options map[string]V) (V, error) {
	v, ok := options[strings.ToLower(name)]
	if !ok {
		names := lo.Keys(options)
		slices.Sort(names)
		return v, fmt.Errorf("unknown %s %q (want one of %s)", kind, name, strings.Join(names, ", "))
	}
	return v, nil
}

// thresholdsOf converts an optional [ch1, ch2] pair.
func thresholdsOf(v []float64) (*coloc.Thresholds, error) {
	switch len(v) {
	case 0:
		return nil, nil
	case 2:
		return &coloc.Thresholds{Ch1: v[0], Ch2: v[1]}, nil
	default:
		return nil, fmt.Errorf("thresholds need one value per channel, got %d", len(v))
	}
}
