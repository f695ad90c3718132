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

// Package pvalue estimates the significance of a colocalization statistic
// with a block permutation test (Costes et al. 2004).
//
// Channel 1 is block shuffled K times; the statistic is evaluated on every
// shuffled copy against the unmodified channel 2, and the p-value is the
// fraction of shuffled scores strictly greater than the observed one.
// Iteration i draws its permutation from a PCG generator seeded with
// (Seed, i), so results do not depend on scheduling or pool size.
package pvalue

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"

	"github.com/ajroetker/go-coloc/coloc"
	"github.com/ajroetker/go-coloc/coloc/contrib/image"
	"github.com/ajroetker/go-coloc/coloc/contrib/kendall"
	"github.com/ajroetker/go-coloc/coloc/contrib/workerpool"
)

const (
	// DefaultRandomizations is the number of shuffled copies scored.
	DefaultRandomizations = 1000

	// DefaultSeed seeds the block permutations.
	DefaultSeed uint64 = 0x27372034
)

// Statistic scores two channels given as pixels in iteration order.
type Statistic[T, U coloc.Real] func(a []T, b []U) (float64, error)

// Options configures Calculate. The zero value runs MaxKendallTau with Otsu
// thresholds on DefaultRandomizations shuffles, sequentially.
type Options[T, U coloc.Real] struct {
	Statistic Statistic[T, U]

	// Randomizations defaults to DefaultRandomizations.
	Randomizations int

	// Seed of the block permutations. Zero is not a usable seed: it
	// selects DefaultSeed, so the zero Options reproduce the default run.
	Seed uint64

	// Pool runs the shuffles in parallel when set.
	Pool *workerpool.Pool
}

// Result of a permutation test.
type Result struct {
	// Value is the statistic on the unshuffled channels.
	Value float64

	PValue float64

	// Distribution holds the score of shuffle i at index i.
	Distribution []float64
}

// Summary describes the null distribution.
type Summary struct {
	Mean, StdDev   float64
	Median         float64
	Percentile95   float64
	Min, Max       float64
	Randomizations int
}

// Summary computes descriptive statistics of the null distribution.
func (r Result) Summary() (Summary, error) {
	var (
		s   = Summary{Randomizations: len(r.Distribution)}
		err error
	)
	steps := []struct {
		name string
		dst  *float64
		fn   func(stats.Float64Data) (float64, error)
	}{
		{"mean", &s.Mean, stats.Mean},
		{"stddev", &s.StdDev, stats.StandardDeviationSample},
		{"median", &s.Median, stats.Median},
		{"p95", &s.Percentile95, func(d stats.Float64Data) (float64, error) { return stats.Percentile(d, 95) }},
		{"min", &s.Min, stats.Min},
		{"max", &s.Max, stats.Max},
	}
	for _, st := range steps {
		if *st.dst, err = st.fn(r.Distribution); err != nil {
			return Summary{}, fmt.Errorf("pvalue: %s of null distribution: %w", st.name, err)
		}
	}
	return s, nil
}

// FromDistribution returns the fraction of dist strictly greater than
// observed. An empty distribution yields NaN.
func FromDistribution(observed float64, dist []float64) float64 {
	count := 0
	for _, v := range dist {
		if v > observed {
			count++
		}
	}
	return float64(count) / float64(len(dist))
}

// Calculate runs the permutation test of ch1 against ch2.
func Calculate[T, U coloc.Real](ctx context.Context, ch1 *image.Image[T], ch2 *image.Image[U], opts Options[T, U]) (Result, error) {
	if !image.SameSize(ch1, ch2) {
		return Result{}, &coloc.ContractViolationError{Len1: ch1.Len(), Len2: ch2.Len()}
	}
	stat := opts.Statistic
	if stat == nil {
		stat = kendall.Statistic[T, U](kendall.Options{})
	}
	k := opts.Randomizations
	if k <= 0 {
		k = DefaultRandomizations
	}
	seed := opts.Seed
	if seed == 0 {
		seed = DefaultSeed
	}

	observed, err := stat(ch1.Pixels(), ch2.Pixels())
	if err != nil {
		return Result{}, fmt.Errorf("pvalue: observed statistic: %w", err)
	}

	shuffler := image.NewBlockShuffler(ch1)
	dist := make([]float64, k)
	iteration := func(ctx context.Context, i int) error {
		shuffled := shuffler.Shuffle(rand.New(rand.NewPCG(seed, uint64(i))))
		v, err := stat(shuffled.Pixels(), ch2.Pixels())
		if err != nil {
			return fmt.Errorf("pvalue: randomization %d: %w", i, err)
		}
		dist[i] = v
		return nil
	}

	pool := opts.Pool
	if pool == nil {
		pool = sequential
	}
	if err := pool.ParallelForErr(ctx, k, iteration); err != nil {
		return Result{}, err
	}

	res := Result{
		Value:        observed,
		PValue:       FromDistribution(observed, dist),
		Distribution: dist,
	}
	coloc.Logger().WithFields(logrus.Fields{
		"value":          res.Value,
		"pvalue":         res.PValue,
		"randomizations": k,
		"blocks":         len(shuffler.Blocks()),
		"dims":           ch1.Dims(),
		"workers":        pool.NumWorkers(),
	}).Debug("permutation test finished")
	return res, nil
}

// sequential is a closed single-worker pool; ParallelForErr on it runs the
// loop on the calling goroutine.
var sequential = func() *workerpool.Pool {
	p := workerpool.New(1)
	p.Close()
	return p
}()
