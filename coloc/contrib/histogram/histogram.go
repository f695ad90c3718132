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

// Package histogram provides fixed-width intensity histograms and Otsu's
// global threshold.
package histogram

import (
	"gonum.org/v1/gonum/floats"

	"github.com/ajroetker/go-coloc/coloc"
)

// DefaultBins is the bin count used when New is given bins <= 0.
const DefaultBins = 256

// Histogram counts samples in equal-width bins spanning [Min, Max]. The
// maximum falls into the last bin.
type Histogram struct {
	Min, Max float64
	Counts   []int64
}

// New builds a histogram of values over their own range.
func New[T coloc.Real](values []T, bins int) Histogram {
	if bins <= 0 {
		bins = DefaultBins
	}
	h := Histogram{Counts: make([]int64, bins)}
	if len(values) == 0 {
		return h
	}
	x := coloc.Float64s(values)
	h.Min, h.Max = floats.Min(x), floats.Max(x)
	for _, v := range x {
		h.Counts[h.Bin(v)]++
	}
	return h
}

// Width returns the width of a single bin.
func (h Histogram) Width() float64 {
	if len(h.Counts) == 0 {
		return 0
	}
	return (h.Max - h.Min) / float64(len(h.Counts))
}

// Bin returns the bin v falls into, clamped to the histogram.
func (h Histogram) Bin(v float64) int {
	w := h.Width()
	if w <= 0 {
		return 0
	}
	i := int((v - h.Min) / w)
	return min(max(i, 0), len(h.Counts)-1)
}

// BinValue returns the lower edge of bin i.
func (h Histogram) BinValue(i int) float64 {
	return h.Min + float64(i)*h.Width()
}

// Total returns the number of counted samples.
func (h Histogram) Total() int64 {
	var n int64
	for _, c := range h.Counts {
		n += c
	}
	return n
}
