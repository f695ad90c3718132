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

package kendall

import (
	"cmp"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/ajroetker/go-coloc/coloc"
	"github.com/ajroetker/go-coloc/coloc/contrib/histogram"
	"github.com/ajroetker/go-coloc/coloc/contrib/sort"
)

// Options configures MaxKendallTau.
type Options struct {
	// Thresholds are intensity thresholds per channel. When nil they are
	// found with ThresholdFinder.
	Thresholds *coloc.Thresholds

	// ThresholdFinder defaults to histogram.OtsuFinder.
	ThresholdFinder histogram.ThresholdFinder

	// TieBreak defaults to TieBreakRandom.
	TieBreak TieBreak

	// Seed drives TieBreakRandom. Channel 1 and channel 2 draw from
	// separate streams of the same seed.
	Seed uint64
}

// MaxKendallTau returns the maximum normalised truncated Kendall tau of
// ch1 and ch2.
func MaxKendallTau[T, U coloc.Real](ch1 []T, ch2 []U, opts Options) (float64, error) {
	if err := coloc.Conforms(ch1, ch2); err != nil {
		return 0, err
	}
	n := len(ch1)
	if n < 3 {
		return 0, fmt.Errorf("kendall tau on %d samples: %w", n, coloc.ErrTooFewSamples)
	}

	thr := opts.Thresholds
	if thr == nil {
		find := opts.ThresholdFinder
		if find == nil {
			find = histogram.OtsuFinder
		}
		thr = &coloc.Thresholds{
			Ch1: find(coloc.Float64s(ch1)),
			Ch2: find(coloc.Float64s(ch2)),
		}
	}

	var rng1, rng2 *rand.Rand
	switch opts.TieBreak {
	case TieBreakRandom:
		rng1 = rand.New(rand.NewPCG(opts.Seed, 1))
		rng2 = rand.New(rand.NewPCG(opts.Seed, 2))
	case TieBreakStable:
	default:
		return 0, fmt.Errorf("kendall: unsupported tie break %s", opts.TieBreak)
	}
	rank1 := Rank(ch1, opts.TieBreak, rng1)
	rank2 := Rank(ch2, opts.TieBreak, rng2)
	thrRank1 := countBelow(ch1, thr.Ch1)
	thrRank2 := countBelow(ch2, thr.Ch2)

	var kept1, kept2 []int
	for i := range rank1 {
		if rank1[i] > thrRank1 && rank2[i] > thrRank2 {
			kept1 = append(kept1, rank1[i])
			kept2 = append(kept2, rank2[i])
		}
	}

	tau := maxWindowTau(kept1, kept2, thrRank1, thrRank2, n)
	coloc.Logger().WithFields(logrus.Fields{
		"samples":   n,
		"kept":      len(kept1),
		"threshold": *thr,
		"tau":       tau,
	}).Debug("max kendall tau")
	return tau, nil
}

// maxWindowTau scans windows over the top ranks of both axes. Offsets grow
// geometrically until they reach the threshold ranks.
func maxWindowTau(rank1, rank2 []int, thrRank1, thrRank2, n int) float64 {
	nf := float64(n)
	step := 1 + 1/math.Log(math.Log(nf))
	best := math.SmallestNonzeroFloat64

	w1 := make([]int, 0, len(rank1))
	w2 := make([]int, 0, len(rank2))
	for off1 := 1.0; off1*step+float64(thrRank1) < nf; {
		off1 *= step
		for off2 := 1.0; off2*step+float64(thrRank2) < nf; {
			off2 *= step

			w1, w2 = w1[:0], w2[:0]
			for i := range rank1 {
				if float64(rank1[i]) >= nf-off1 && float64(rank2[i]) >= nf-off2 {
					w1 = append(w1, rank1[i])
					w2 = append(w2, rank2[i])
				}
			}

			normal := math.SmallestNonzeroFloat64
			if k := float64(len(w1)); k > 1 {
				sd := math.Sqrt(2 * (2*k + 5) / (9 * k * (k - 1)))
				normal = KendallTau(w1, w2) / sd
			}
			if normal > best {
				best = normal
			}
		}
	}
	return best
}

// KendallTau returns Kendall's tau-a of two rank vectors without ties. It
// orders the pairs by rank1 and counts the inversions left in rank2.
func KendallTau(rank1, rank2 []int) float64 {
	n := len(rank1)
	if n < 2 || len(rank2) != n {
		return math.NaN()
	}
	index := make([]int, n)
	for i := range index {
		index[i] = i
	}
	sort.NewMergeSort(index, func(a, b int) int { return cmp.Compare(rank1[a], rank1[b]) }).Sort()
	swaps := sort.NewMergeSort(index, func(a, b int) int { return cmp.Compare(rank2[a], rank2[b]) }).Sort()

	n0 := int64(n) * int64(n-1) / 2
	return float64(n0-2*swaps) / float64(n0)
}

// Statistic adapts MaxKendallTau to the signature used by permutation
// tests.
func Statistic[T, U coloc.Real](opts Options) func(a []T, b []U) (float64, error) {
	return func(a []T, b []U) (float64, error) {
		return MaxKendallTau(a, b, opts)
	}
}
