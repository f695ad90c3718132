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

package threshold

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ajroetker/go-coloc/coloc"
	"github.com/ajroetker/go-coloc/coloc/contrib/pearsons"
)

//go:generate go tool stringer -type=Implementation

// Implementation selects the search strategy.
type Implementation int

const (
	// Bisection halves the search interval on every step.
	Bisection Implementation = iota

	// Simple scans down one intensity unit at a time (Costes et al.).
	Simple
)

// WarnYInterceptToYMeanRatio is the |intercept / mean2| above which the
// regression line is considered abnormally displaced.
const WarnYInterceptToYMeanRatio = 0.01

// Line is the fitted regression line ch2 = Slope*ch1 + Intercept.
type Line struct {
	Slope     float64
	Intercept float64
}

// Options configures AutoThresholdRegression.
type Options struct {
	Implementation Implementation

	// Pearsons selects the evaluator used at every search step. The zero
	// value is the fast implementation.
	Pearsons pearsons.Implementation
}

// Results of a threshold regression. Pixels at or between the min and max
// thresholds of a channel are considered above background.
type Results struct {
	Line Line

	Ch1Min, Ch1Max float64
	Ch2Min, Ch2Max float64

	// BToYMeanRatio is Intercept / mean of channel 2.
	BToYMeanRatio float64

	// Iterations is the number of evaluated candidates.
	Iterations int
}

// Thresholds returns the max thresholds of both channels.
func (r Results) Thresholds() coloc.Thresholds {
	return coloc.Thresholds{Ch1: r.Ch1Max, Ch2: r.Ch2Max}
}

// InterceptWarning reports whether the regression line intercept is far
// from zero relative to the channel 2 mean.
func (r Results) InterceptWarning() bool {
	return math.Abs(r.BToYMeanRatio) > WarnYInterceptToYMeanRatio
}

// AutoThresholdRegression fits an orthogonal regression line through the
// joint distribution of ch1 and ch2 and walks it downwards to find the
// thresholds below which the two channels are no longer positively
// correlated.
func AutoThresholdRegression[T, U coloc.Real](ch1 []T, ch2 []U, opts Options) (Results, error) {
	if err := coloc.Conforms(ch1, ch2); err != nil {
		return Results{}, err
	}
	n := len(ch1)
	if n < 2 {
		return Results{}, fmt.Errorf("threshold regression on %d samples: %w", n, coloc.ErrTooFewSamples)
	}

	x := coloc.Float64s(ch1)
	y := coloc.Float64s(ch2)
	mean1 := stat.Mean(x, nil)
	mean2 := stat.Mean(y, nil)
	line, err := fitLine(x, y, mean1, mean2)
	if err != nil {
		return Results{}, err
	}

	max1, max2 := floats.Max(x), floats.Max(y)
	mapper := channelMapper{line: line, walksCh2: !(line.Slope > -1 && line.Slope < 1)}
	walkMax := max1
	if mapper.walksCh2 {
		walkMax = max2
	}

	var stepper Stepper
	switch opts.Implementation {
	case Bisection:
		stepper = NewBisectionStepper(walkMax*0.5, walkMax)
	case Simple:
		stepper = NewSimpleStepper(walkMax)
	default:
		return Results{}, fmt.Errorf("threshold: unsupported implementation %s", opts.Implementation)
	}

	lo1, hi1 := coloc.TypeRange[T]()
	lo2, hi2 := coloc.TypeRange[U]()
	evalOpts := pearsons.Options{
		Implementation: opts.Pearsons,
		Means:          &pearsons.Means{Ch1: mean1, Ch2: mean2},
	}

	log := coloc.Logger().WithField("implementation", opts.Implementation.String())
	thr1, thr2 := max1, max2
	iterations := 0
	for !stepper.Finished() {
		t := stepper.Value()
		thr1 = coloc.Clamp(coloc.Round(mapper.ch1(t)), lo1, hi1)
		thr2 = coloc.Clamp(coloc.Round(mapper.ch2(t)), lo2, hi2)

		r, err := pearsons.Calculate(x, y, coloc.ThresholdBelow, coloc.Thresholds{Ch1: thr1, Ch2: thr2}, evalOpts)
		if err != nil {
			var ni *coloc.NumericalInstabilityError
			if !errors.As(err, &ni) {
				return Results{}, err
			}
			r = math.NaN()
		}
		iterations++
		log.WithFields(logrus.Fields{
			"step": iterations,
			"ch1":  thr1,
			"ch2":  thr2,
			"r":    r,
		}).Trace("threshold regression step")
		stepper.Update(r)
	}

	res := Results{
		Line:          line,
		Ch1Min:        lo1,
		Ch1Max:        thr1,
		Ch2Min:        lo2,
		Ch2Max:        thr2,
		BToYMeanRatio: line.Intercept / mean2,
		Iterations:    iterations,
	}
	log.WithFields(logrus.Fields{
		"slope":     line.Slope,
		"intercept": line.Intercept,
		"ch1Max":    thr1,
		"ch2Max":    thr2,
		"steps":     iterations,
	}).Debug("threshold regression finished")
	if res.InterceptWarning() {
		log.WithField("ratio", res.BToYMeanRatio).Warn("regression line intercept is far from zero relative to the channel 2 mean")
	}
	return res, nil
}

// fitLine computes the orthogonal (total least squares) regression line
// from the channel variances and the variance of their sum.
func fitLine(x, y []float64, mean1, mean2 float64) (Line, error) {
	combinedMean := mean1 + mean2
	var ss1, ss2, ssCombined float64
	for i := range x {
		d1 := x[i] - mean1
		d2 := y[i] - mean2
		dc := x[i] + y[i] - combinedMean
		ss1 += d1 * d1
		ss2 += d2 * d2
		ssCombined += dc * dc
	}
	denomN := float64(len(x) - 1)
	var1 := ss1 / denomN
	var2 := ss2 / denomN
	varCombined := ssCombined / denomN

	// var(x+y) = var(x) + var(y) + 2 cov(x, y)
	cov := 0.5 * (varCombined - (var1 + var2))

	denom := 2 * cov
	num := var2 - var1 + math.Sqrt((var2-var1)*(var2-var1)+4*cov*cov)
	m := num / denom
	b := mean2 - m*mean1
	if math.IsNaN(m) || math.IsInf(m, 0) || math.IsNaN(b) || math.IsInf(b, 0) {
		return Line{}, &coloc.NumericalInstabilityError{Count: len(x)}
	}
	return Line{Slope: m, Intercept: b}, nil
}
