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
	"math/rand/v2"

	"github.com/ajroetker/go-coloc/coloc"
	"github.com/ajroetker/go-coloc/coloc/contrib/sort"
)

//go:generate go tool stringer -type=TieBreak -trimprefix=TieBreak

// TieBreak decides the order of equal intensities during rank
// transformation.
type TieBreak int

const (
	// TieBreakRandom ranks equal values in a seeded random order, drawn
	// independently per channel. Equal intensities carry no order, so this
	// keeps tied samples from counting as concordant pairs.
	TieBreakRandom TieBreak = iota

	// TieBreakStable ranks equal values in sample order. Both channels then
	// share the same order inside ties, which inflates tau on images with
	// many equal intensities.
	TieBreakStable
)

// Rank returns distinct ranks 1..n for values. rng is only used by
// TieBreakRandom and must not be nil in that case.
func Rank[T coloc.Real](values []T, tb TieBreak, rng *rand.Rand) []int {
	order := sort.StableIndices(values)
	if tb == TieBreakRandom {
		for start := 0; start < len(order); {
			end := start + 1
			for end < len(order) && values[order[end]] == values[order[start]] {
				end++
			}
			if group := order[start:end]; len(group) > 1 {
				rng.Shuffle(len(group), func(i, j int) {
					group[i], group[j] = group[j], group[i]
				})
			}
			start = end
		}
	}

	ranks := make([]int, len(values))
	for r, i := range order {
		ranks[i] = r + 1
	}
	return ranks
}

// countBelow returns the number of values strictly below thr, which is the
// highest rank any of them can hold.
func countBelow[T coloc.Real](values []T, thr float64) int {
	n := 0
	for _, v := range values {
		if float64(v) < thr {
			n++
		}
	}
	return n
}
