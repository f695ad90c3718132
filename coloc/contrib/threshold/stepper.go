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

import "math"

// MaxBisectionIterations bounds the number of BisectionStepper updates.
const MaxBisectionIterations = 100

// Stepper walks a search variable. After each evaluation the caller feeds
// the below-threshold correlation back with Update; NaN marks a candidate
// that could not be evaluated.
type Stepper interface {
	Finished() bool
	Value() float64
	Update(r float64)
}

// SimpleStepper scans downwards one unit at a time from the channel
// maximum until the correlation is no longer positive or the threshold
// reaches zero.
type SimpleStepper struct {
	threshold float64
	finished  bool
}

// NewSimpleStepper returns a stepper starting at start.
func NewSimpleStepper(start float64) *SimpleStepper {
	return &SimpleStepper{threshold: start}
}

// Finished reports whether the scan is over.
func (s *SimpleStepper) Finished() bool { return s.finished }

// Value returns the current candidate.
func (s *SimpleStepper) Value() float64 { return s.threshold }

// Update moves to the next candidate.
func (s *SimpleStepper) Update(r float64) {
	if s.finished {
		return
	}
	s.threshold--
	s.finished = s.threshold < 1 || math.IsNaN(r) || r <= 0
}

// BisectionStepper halves the distance to the previous candidate on every
// update, moving down while the correlation is positive and up when it is
// negative or NaN.
type BisectionStepper struct {
	threshold  float64
	diff       float64
	iterations int
	finished   bool
}

// NewBisectionStepper starts at start with an initial step of
// |start-last|.
func NewBisectionStepper(start, last float64) *BisectionStepper {
	return &BisectionStepper{
		threshold: start,
		diff:      math.Abs(start - last),
	}
}

// Finished reports whether the interval collapsed below one unit or the
// iteration budget ran out.
func (s *BisectionStepper) Finished() bool { return s.finished }

// Value returns the current candidate.
func (s *BisectionStepper) Value() float64 { return s.threshold }

// Update moves to the next candidate.
func (s *BisectionStepper) Update(r float64) {
	if s.finished {
		return
	}
	prev := s.threshold
	switch {
	case math.IsNaN(r) || r < 0:
		s.threshold += s.diff * 0.5
	case r > 0:
		s.threshold -= s.diff * 0.5
	}
	s.diff = math.Abs(s.threshold - prev)
	s.iterations++
	s.finished = s.diff < 1 || s.iterations > MaxBisectionIterations
}

// channelMapper converts the search variable into both channel thresholds
// along the regression line. The walked axis maps to itself.
type channelMapper struct {
	line     Line
	walksCh2 bool
}

func (m channelMapper) ch1(t float64) float64 {
	if m.walksCh2 {
		return (t - m.line.Intercept) / m.line.Slope
	}
	return t
}

func (m channelMapper) ch2(t float64) float64 {
	if m.walksCh2 {
		return t
	}
	return t*m.line.Slope + m.line.Intercept
}
