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

package histogram

// ThresholdFinder derives a global intensity threshold from the samples of
// one channel.
type ThresholdFinder func(values []float64) float64

// OtsuFinder thresholds values with Otsu's method on a DefaultBins
// histogram.
func OtsuFinder(values []float64) float64 {
	return Otsu(New(values, DefaultBins))
}

// Otsu returns the threshold maximising the between-class variance of h.
// The result is the lower edge of the first foreground bin; samples at or
// above it are foreground. A histogram that cannot be split returns Min.
func Otsu(h Histogram) float64 {
	var total, sum float64
	for i, c := range h.Counts {
		total += float64(c)
		sum += float64(i) * float64(c)
	}

	best, bestK := 0.0, -1
	var w0, sum0 float64
	for k := 0; k < len(h.Counts)-1; k++ {
		c := float64(h.Counts[k])
		w0 += c
		sum0 += float64(k) * c
		if w0 == 0 {
			continue
		}
		w1 := total - w0
		if w1 == 0 {
			break
		}
		d := sum0/w0 - (sum-sum0)/w1
		if between := w0 * w1 * d * d; between > best {
			best, bestK = between, k
		}
	}
	if bestK < 0 {
		return h.Min
	}
	return h.BinValue(bestK + 1)
}
