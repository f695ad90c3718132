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

import (
	"errors"
	"fmt"
	"math"
)

// ErrTooFewSamples is returned when a statistic needs more samples than
// the input provides.
var ErrTooFewSamples = errors.New("coloc: too few samples")

// NumericalInstabilityError reports a correlation that evaluated to NaN or
// ±Inf, usually because too few samples passed the threshold filter.
type NumericalInstabilityError struct {
	// Count is the number of samples that were accepted.
	Count int
}

func (e *NumericalInstabilityError) Error() string {
	return fmt.Sprintf("coloc: numerical problem, input data unsuitable for this algorithm (possibly too few pixels in range: %d)", e.Count)
}

// ContractViolationError reports two channels that cannot be paired.
type ContractViolationError struct {
	Len1, Len2 int
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("coloc: channels do not conform: %d vs %d samples", e.Len1, e.Len2)
}

// UnsupportedModeError reports a ThresholdMode outside the closed set.
type UnsupportedModeError struct {
	Mode ThresholdMode
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("coloc: unsupported threshold mode %s", e.Mode)
}

// Conforms checks that two channels have the same number of samples and can
// therefore be iterated as pairs.
func Conforms[T, U Real](a []T, b []U) error {
	if len(a) != len(b) {
		return &ContractViolationError{Len1: len(a), Len2: len(b)}
	}
	return nil
}

// CheckFinite returns a NumericalInstabilityError if r is NaN or infinite.
func CheckFinite(r float64, count int) error {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return &NumericalInstabilityError{Count: count}
	}
	return nil
}
