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

//go:generate go tool stringer -type=ThresholdMode -trimprefix=Threshold

// ThresholdMode selects which pairs a thresholded statistic includes.
type ThresholdMode int

const (
	// ThresholdNone includes every pair.
	ThresholdNone ThresholdMode = iota

	// ThresholdBelow includes a pair if either channel is below its
	// threshold.
	ThresholdBelow

	// ThresholdAbove includes a pair if either channel is above its
	// threshold.
	ThresholdAbove
)

// AcceptFunc decides whether the pair (x, y) takes part in an accumulation.
type AcceptFunc func(x, y float64) bool

// Accept returns the inclusion predicate for mode. For ThresholdNone the
// returned predicate is nil, which accumulators treat as "accept all".
//
// Below and Above use an OR policy: one channel crossing its threshold is
// enough.
func (m ThresholdMode) Accept(thr Thresholds) (AcceptFunc, error) {
	switch m {
	case ThresholdNone:
		return nil, nil
	case ThresholdBelow:
		t1, t2 := thr.Ch1, thr.Ch2
		return func(x, y float64) bool {
			return x < t1 || y < t2
		}, nil
	case ThresholdAbove:
		t1, t2 := thr.Ch1, thr.Ch2
		return func(x, y float64) bool {
			return x > t1 || y > t2
		}, nil
	default:
		return nil, &UnsupportedModeError{Mode: m}
	}
}
