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
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

func stringOverride(dst *string, name string) func(fs *pflag.FlagSet) error {
	return func(fs *pflag.FlagSet) (err error) {
		*dst, err = fs.GetString(name)
		return err
	}
}

func thresholdsOverride(dst *[]float64, name string) func(fs *pflag.FlagSet) error {
	return func(fs *pflag.FlagSet) (err error) {
		*dst, err = fs.GetFloat64Slice(name)
		return err
	}
}

func (a *app) pearsonsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pearsons <ch1> <ch2>",
		Short:   "Pearson's correlation coefficient",
		Example: `coloc pearsons ch1.txt ch2.txt --implementation classic --thresholds 40,38`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.prepare(cmd, overrides{
				"implementation": stringOverride(&a.cfg.Pearsons.Implementation, "implementation"),
				"thresholds":     thresholdsOverride(&a.cfg.Pearsons.Thresholds, "thresholds"),
			})
			if err != nil {
				return err
			}
			an, err := a.load(args)
			if err != nil {
				return err
			}
			r, err := an.pearsons(&a.cfg)
			if err != nil {
				return err
			}
			return r.write(cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("implementation", "", "fast or classic")
	cmd.Flags().Float64Slice("thresholds", nil, "channel thresholds for the below/above correlations")
	return cmd
}

func (a *app) thresholdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "threshold <ch1> <ch2>",
		Short:   "Automatic threshold regression (Costes)",
		Example: `coloc threshold ch1.txt ch2.txt --implementation simple`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.prepare(cmd, overrides{
				"implementation": stringOverride(&a.cfg.Threshold.Implementation, "implementation"),
				"pearsons":       stringOverride(&a.cfg.Threshold.Pearsons, "pearsons"),
			})
			if err != nil {
				return err
			}
			an, err := a.load(args)
			if err != nil {
				return err
			}
			r, err := an.threshold(&a.cfg)
			if err != nil {
				return err
			}
			return r.write(cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("implementation", "", "bisection or simple")
	cmd.Flags().String("pearsons", "", "evaluator used at each step: fast or classic")
	return cmd
}

func kendallFlags(a *app, fs *pflag.FlagSet) overrides {
	fs.Float64Slice("thresholds", nil, "channel intensity thresholds (default: Otsu)")
	fs.String("tie-break", "", "random (default) or stable")
	fs.Uint64("seed", 0, "seed of the random tie break")
	return overrides{
		"thresholds": thresholdsOverride(&a.cfg.Kendall.Thresholds, "thresholds"),
		"tie-break":  stringOverride(&a.cfg.Kendall.TieBreak, "tie-break"),
		"seed": func(fs *pflag.FlagSet) (err error) {
			a.cfg.Kendall.Seed, err = fs.GetUint64("seed")
			return err
		},
	}
}

func (a *app) kendallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "kendall <ch1> <ch2>",
		Short:   "Maximum truncated Kendall tau",
		Example: `coloc kendall ch1.txt ch2.txt --tie-break random --seed 7`,
		Args:    cobra.ExactArgs(2),
	}
	ov := kendallFlags(a, cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := a.prepare(cmd, ov); err != nil {
			return err
		}
		an, err := a.load(args)
		if err != nil {
			return err
		}
		r, err := an.kendall(&a.cfg)
		if err != nil {
			return err
		}
		return r.write(cmd.OutOrStdout())
	}
	return cmd
}

func (a *app) pvalueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pvalue <ch1> <ch2>",
		Short:   "Block permutation p-value of the maximum truncated Kendall tau",
		Example: `coloc pvalue ch1.txt ch2.txt --dims 64,64 --randomizations 500 --workers 8`,
		Args:    cobra.ExactArgs(2),
	}
	ov := kendallFlags(a, cmd.Flags())
	cmd.Flags().Int("randomizations", 0, "number of block shuffles")
	cmd.Flags().Uint64("shuffle-seed", 0, "seed of the block shuffles (0 selects the default seed)")
	cmd.Flags().Int("workers", 0, "parallel workers (default: GOMAXPROCS)")
	ov["randomizations"] = func(fs *pflag.FlagSet) (err error) {
		a.cfg.PValue.Randomizations, err = fs.GetInt("randomizations")
		return err
	}
	ov["shuffle-seed"] = func(fs *pflag.FlagSet) (err error) {
		a.cfg.PValue.Seed, err = fs.GetUint64("shuffle-seed")
		return err
	}
	ov["workers"] = func(fs *pflag.FlagSet) (err error) {
		a.cfg.PValue.Workers, err = fs.GetInt("workers")
		return err
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := a.prepare(cmd, ov); err != nil {
			return err
		}
		an, err := a.load(args)
		if err != nil {
			return err
		}
		r, err := an.pvalue(cmd.Context(), &a.cfg)
		if err != nil {
			return err
		}
		return r.write(cmd.OutOrStdout())
	}
	return cmd
}

func (a *app) allCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all <ch1> <ch2>",
		Short: "Pearson's R, threshold regression and MTKT, computed concurrently",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.prepare(cmd, nil); err != nil {
				return err
			}
			an, err := a.load(args)
			if err != nil {
				return err
			}

			names := []string{"pearsons", "threshold", "kendall"}
			runs := []func(*runConfig) (report, error){an.pearsons, an.threshold, an.kendall}
			reports := make([]report, len(runs))
			var g errgroup.Group
			for i, run := range runs {
				g.Go(func() (err error) {
					reports[i], err = run(&a.cfg)
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			var out report
			for i, r := range reports {
				out = slices.Concat(out, r.prefixed(names[i]))
			}
			return out.write(cmd.OutOrStdout())
		},
	}
}
