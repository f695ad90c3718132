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
	"context"
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/ajroetker/go-coloc/coloc"
	"github.com/ajroetker/go-coloc/coloc/contrib/image"
	"github.com/ajroetker/go-coloc/coloc/contrib/kendall"
	"github.com/ajroetker/go-coloc/coloc/contrib/pearsons"
	"github.com/ajroetker/go-coloc/coloc/contrib/pvalue"
	"github.com/ajroetker/go-coloc/coloc/contrib/threshold"
	"github.com/ajroetker/go-coloc/coloc/contrib/workerpool"
)

type field struct {
	name  string
	value any
}

// report is an ordered list of named results.
type report []field

func (r report) prefixed(prefix string) report {
	return lo.Map(r, func(f field, _ int) field {
		return field{name: prefix + "." + f.name, value: f.value}
	})
}

func (r report) write(w io.Writer) error {
	for _, f := range r {
		if _, err := fmt.Fprintf(w, "%s: %v\n", f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

// analyzer runs every statistic on a channel pair of a fixed pixel type.
type analyzer interface {
	pearsons(cfg *runConfig) (report, error)
	threshold(cfg *runConfig) (report, error)
	kendall(cfg *runConfig) (report, error)
	pvalue(ctx context.Context, cfg *runConfig) (report, error)
}

func newAnalyzer(cfg *runConfig, a, b []float64) (analyzer, error) {
	switch cfg.PixelType {
	case "uint8":
		return newPair[uint8](a, b, cfg.Dims)
	case "uint16":
		return newPair[uint16](a, b, cfg.Dims)
	case "float32":
		return newPair[float32](a, b, cfg.Dims)
	case "float64":
		return newPair[float64](a, b, cfg.Dims)
	}
	return nil, fmt.Errorf("unsupported pixel type %q (want uint8, uint16, float32 or float64)", cfg.PixelType)
}

type pair[T coloc.Real] struct {
	ch1, ch2 []T
	dims     []int
}

func newPair[T coloc.Real](a, b []float64, dims []int) (*pair[T], error) {
	if len(a) != len(b) {
		return nil, &coloc.ContractViolationError{Len1: len(a), Len2: len(b)}
	}
	if len(dims) > 0 {
		n := lo.Reduce(dims, func(agg, d, _ int) int { return agg * d }, 1)
		if n != len(a) {
			return nil, fmt.Errorf("dims %v hold %d pixels, channels have %d", dims, n, len(a))
		}
	}
	ch1, err := convertPixels[T](a)
	if err != nil {
		return nil, fmt.Errorf("channel 1: %w", err)
	}
	ch2, err := convertPixels[T](b)
	if err != nil {
		return nil, fmt.Errorf("channel 2: %w", err)
	}
	return &pair[T]{ch1: ch1, ch2: ch2, dims: dims}, nil
}

func (p *pair[T]) pearsons(cfg *runConfig) (report, error) {
	impl, err := lookup("pearsons implementation", cfg.Pearsons.Implementation, pearsonsImplementations)
	if err != nil {
		return nil, err
	}
	thr, err := thresholdsOf(cfg.Pearsons.Thresholds)
	if err != nil {
		return nil, err
	}
	res, err := pearsons.Compute(p.ch1, p.ch2, pearsons.Options{Implementation: impl, Thresholds: thr})
	if err != nil {
		return nil, err
	}
	r := report{{"r", res.R}}
	if res.HasThresholds {
		r = append(r, field{"r_below", res.RBelow}, field{"r_above", res.RAbove})
	}
	return r, nil
}

func (p *pair[T]) threshold(cfg *runConfig) (report, error) {
	impl, err := lookup("threshold implementation", cfg.Threshold.Implementation, thresholdImplementations)
	if err != nil {
		return nil, err
	}
	eval, err := lookup("pearsons implementation", cfg.Threshold.Pearsons, pearsonsImplementations)
	if err != nil {
		return nil, err
	}
	res, err := threshold.AutoThresholdRegression(p.ch1, p.ch2, threshold.Options{Implementation: impl, Pearsons: eval})
	if err != nil {
		return nil, err
	}
	return report{
		{"slope", res.Line.Slope},
		{"intercept", res.Line.Intercept},
		{"ch1_threshold", res.Ch1Max},
		{"ch2_threshold", res.Ch2Max},
		{"iterations", res.Iterations},
		{"intercept_warning", res.InterceptWarning()},
	}, nil
}

func (p *pair[T]) kendallOptions(cfg *runConfig) (kendall.Options, error) {
	tb, err := lookup("tie break", cfg.Kendall.TieBreak, tieBreaks)
	if err != nil {
		return kendall.Options{}, err
	}
	thr, err := thresholdsOf(cfg.Kendall.Thresholds)
	if err != nil {
		return kendall.Options{}, err
	}
	return kendall.Options{Thresholds: thr, TieBreak: tb, Seed: cfg.Kendall.Seed}, nil
}

func (p *pair[T]) kendall(cfg *runConfig) (report, error) {
	opts, err := p.kendallOptions(cfg)
	if err != nil {
		return nil, err
	}
	tau, err := kendall.MaxKendallTau(p.ch1, p.ch2, opts)
	if err != nil {
		return nil, err
	}
	return report{{"max_tau", tau}}, nil
}

func (p *pair[T]) pvalue(ctx context.Context, cfg *runConfig) (report, error) {
	if len(p.dims) == 0 {
		return nil, fmt.Errorf("pvalue needs the image extents (--dims)")
	}
	opts, err := p.kendallOptions(cfg)
	if err != nil {
		return nil, err
	}
	img1, err := image.FromPixels(p.ch1, p.dims...)
	if err != nil {
		return nil, err
	}
	img2, err := image.FromPixels(p.ch2, p.dims...)
	if err != nil {
		return nil, err
	}

	pool := workerpool.New(cfg.PValue.Workers)
	defer pool.Close()
	res, err := pvalue.Calculate(ctx, img1, img2, pvalue.Options[T, T]{
		Statistic:      kendall.Statistic[T, T](opts),
		Randomizations: cfg.PValue.Randomizations,
		Seed:           cfg.PValue.Seed,
		Pool:           pool,
	})
	if err != nil {
		return nil, err
	}
	sum, err := res.Summary()
	if err != nil {
		return nil, err
	}
	return report{
		{"max_tau", res.Value},
		{"p_value", res.PValue},
		{"randomizations", sum.Randomizations},
		{"null_mean", sum.Mean},
		{"null_stddev", sum.StdDev},
		{"null_p95", sum.Percentile95},
	}, nil
}
