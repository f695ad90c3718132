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

package coloc

import "iter"

// Accumulation holds the running sums of one pass over paired samples.
// Only accepted samples contribute, so Count may be smaller than the
// number of pairs visited, and may be zero.
type Accumulation struct {
	X, Y       float64 // Σx, Σy
	XX, XY, YY float64 // Σx², Σxy, Σy²
	Count      int
}

func (a *Accumulation) add(x, y float64) {
	a.X += x
	a.Y += y
	a.XX += x * x
	a.XY += x * y
	a.YY += y * y
	a.Count++
}

func (a *Accumulation) merge(b *Accumulation) {
	a.X += b.X
	a.Y += b.Y
	a.XX += b.XX
	a.XY += b.XY
	a.YY += b.YY
	a.Count += b.Count
}

// Accumulate sums the pairs (x[i], y[i]) accepted by accept. A nil accept
// includes every pair.
func Accumulate[T, U Real](x []T, y []U, accept AcceptFunc) (Accumulation, error) {
	if err := Conforms(x, y); err != nil {
		return Accumulation{}, err
	}
	return accumulateLanes(x, y, accept, 0, 0, CurrentLanes()), nil
}

// AccumulateCentered is like Accumulate but sums (x[i]-xDiff, y[i]-yDiff).
// The offsets are subtracted before squaring; accept still sees the raw
// values.
func AccumulateCentered[T, U Real](x []T, y []U, accept AcceptFunc, xDiff, yDiff float64) (Accumulation, error) {
	if err := Conforms(x, y); err != nil {
		return Accumulation{}, err
	}
	return accumulateLanes(x, y, accept, xDiff, yDiff, CurrentLanes()), nil
}

// AccumulateSeq consumes a stream of pairs. It is the form to use when the
// samples are produced on the fly rather than held in memory.
func AccumulateSeq(seq iter.Seq2[float64, float64], accept AcceptFunc, xDiff, yDiff float64) Accumulation {
	var acc Accumulation
	for x, y := range seq {
		if accept != nil && !accept(x, y) {
			continue
		}
		acc.add(x-xDiff, y-yDiff)
	}
	return acc
}

// Pairs returns a restartable sequence over (x[i], y[i]). The shorter slice
// bounds the iteration; use Conforms first when that matters.
func Pairs[T, U Real](x []T, y []U) iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		n := min(len(x), len(y))
		for i := range n {
			if !yield(float64(x[i]), float64(y[i])) {
				return
			}
		}
	}
}

// accumulateLanes keeps one partial Accumulation per lane so consecutive
// additions do not depend on each other. Lanes are merged in order, which
// keeps the result deterministic for a given lane count.
func accumulateLanes[T, U Real](x []T, y []U, accept AcceptFunc, xDiff, yDiff float64, lanes int) Accumulation {
	lanes = max(1, min(lanes, maxLanes))
	var part [maxLanes]Accumulation
	n := len(x)
	i := 0

	if accept == nil {
		for ; i+lanes <= n; i += lanes {
			for l := range lanes {
				part[l].add(float64(x[i+l])-xDiff, float64(y[i+l])-yDiff)
			}
		}
	} else {
		for ; i+lanes <= n; i += lanes {
			for l := range lanes {
				a, b := float64(x[i+l]), float64(y[i+l])
				if accept(a, b) {
					part[l].add(a-xDiff, b-yDiff)
				}
			}
		}
	}

	// Tail
	for ; i < n; i++ {
		a, b := float64(x[i]), float64(y[i])
		if accept != nil && !accept(a, b) {
			continue
		}
		part[0].add(a-xDiff, b-yDiff)
	}

	acc := part[0]
	for l := 1; l < lanes; l++ {
		acc.merge(&part[l])
	}
	return acc
}
