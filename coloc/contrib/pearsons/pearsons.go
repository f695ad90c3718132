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

// Package pearsons computes Pearson's product-moment correlation between
// two channels, optionally restricted to pairs below or above a pair of
// thresholds.
//
// Two evaluation modes are available. Classic subtracts the channel means
// before accumulating and is the numerically safer choice when the means
// are large compared to the spread. Fast accumulates raw sums in one pass
// and needs no means.
//
//	r, err := pearsons.FastR(ch1, ch2, coloc.ThresholdNone, coloc.Thresholds{})
//
// A result that is NaN or infinite is reported as a
// *coloc.NumericalInstabilityError carrying the number of included pairs.
package pearsons

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ajroetker/go-coloc/coloc"
)

//go:generate go tool stringer -type=Implementation

// Implementation selects the evaluation mode.
type Implementation int

const (
	// Fast uses raw sums in a single pass.
	Fast Implementation = iota

	// Classic uses mean-centered sums.
	Classic
)

// Means carries precomputed channel means for Classic.
type Means struct {
	Ch1, Ch2 float64
}

// Options configures Calculate and Compute. The zero value selects Fast
// without thresholds.
type Options struct {
	Implementation Implementation

	// Means are used by Classic. When nil they are computed.
	Means *Means

	// Thresholds enable the below/above results of Compute.
	Thresholds *coloc.Thresholds
}

// Result holds the three correlations reported by Compute.
type Result struct {
	R float64

	// RBelow and RAbove are only set when HasThresholds is true.
	RBelow        float64
	RAbove        float64
	HasThresholds bool
}

// ClassicR computes Pearson's R from mean-centered sums.
func ClassicR[T, U coloc.Real](x []T, y []U, mean1, mean2 float64, mode coloc.ThresholdMode, thr coloc.Thresholds) (float64, error) {
	accept, err := mode.Accept(thr)
	if err != nil {
		return 0, err
	}
	acc, err := coloc.AccumulateCentered(x, y, accept, mean1, mean2)
	if err != nil {
		return 0, err
	}
	return classicFromSums(acc)
}

// FastR computes Pearson's R from raw sums.
func FastR[T, U coloc.Real](x []T, y []U, mode coloc.ThresholdMode, thr coloc.Thresholds) (float64, error) {
	accept, err := mode.Accept(thr)
	if err != nil {
		return 0, err
	}
	acc, err := coloc.Accumulate(x, y, accept)
	if err != nil {
		return 0, err
	}
	return fastFromSums(acc)
}

func classicFromSums(acc coloc.Accumulation) (float64, error) {
	r := acc.XY / math.Sqrt(acc.XX*acc.YY)
	if err := coloc.CheckFinite(r, acc.Count); err != nil {
		return 0, err
	}
	return r, nil
}

func fastFromSums(acc coloc.Accumulation) (float64, error) {
	invCount := 1.0 / float64(acc.Count)
	num := acc.XY - acc.X*acc.Y*invCount
	ss1 := acc.XX - acc.X*acc.X*invCount
	ss2 := acc.YY - acc.Y*acc.Y*invCount
	r := num / math.Sqrt(ss1*ss2)
	if err := coloc.CheckFinite(r, acc.Count); err != nil {
		return 0, err
	}
	return r, nil
}

// Calculate computes Pearson's R for the pairs selected by mode using the
// implementation chosen in opts.
func Calculate[T, U coloc.Real](x []T, y []U, mode coloc.ThresholdMode, thr coloc.Thresholds, opts Options) (float64, error) {
	switch opts.Implementation {
	case Fast:
		return FastR(x, y, mode, thr)
	case Classic:
		m, err := means(x, y, opts.Means)
		if err != nil {
			return 0, err
		}
		return ClassicR(x, y, m.Ch1, m.Ch2, mode, thr)
	default:
		return 0, &UnsupportedImplementationError{Implementation: opts.Implementation}
	}
}

// Compute returns R over all pairs and, when opts.Thresholds is set, R
// restricted to pairs below and above the thresholds.
func Compute[T, U coloc.Real](x []T, y []U, opts Options) (Result, error) {
	if err := coloc.Conforms(x, y); err != nil {
		return Result{}, err
	}
	if opts.Implementation == Classic && opts.Means == nil {
		m, err := means(x, y, nil)
		if err != nil {
			return Result{}, err
		}
		opts.Means = &m
	}

	var res Result
	var err error
	res.R, err = Calculate(x, y, coloc.ThresholdNone, coloc.Thresholds{}, opts)
	if err != nil {
		return Result{}, err
	}
	if opts.Thresholds == nil {
		return res, nil
	}

	thr := *opts.Thresholds
	res.HasThresholds = true
	res.RBelow, err = Calculate(x, y, coloc.ThresholdBelow, thr, opts)
	if err != nil {
		return Result{}, err
	}
	res.RAbove, err = Calculate(x, y, coloc.ThresholdAbove, thr, opts)
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

func means[T, U coloc.Real](x []T, y []U, given *Means) (Means, error) {
	if given != nil {
		return *given, nil
	}
	if err := coloc.Conforms(x, y); err != nil {
		return Means{}, err
	}
	return Means{
		Ch1: stat.Mean(coloc.Float64s(x), nil),
		Ch2: stat.Mean(coloc.Float64s(y), nil),
	}, nil
}
