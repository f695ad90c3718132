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

// Package threshold implements automatic threshold regression (Costes et
// al. 2004).
//
// A total least squares line is fitted through the two-channel scatter.
// The search variable walks the axis with the larger dynamic range: channel
// 1 when the slope lies in (-1, 1), channel 2 otherwise. Every candidate is
// mapped onto both channels through the line, rounded, clamped to the pixel
// type, and scored with Pearson's R over the pairs below the thresholds.
// The search stops where that correlation stops being positive.
//
// Two steppers drive the search:
//
//	Simple    - one intensity unit per step from the maximum downwards
//	Bisection - halving steps starting at half the maximum
//
// A candidate for which R cannot be computed (too few pairs) is scored as
// NaN and the stepper moves away from it.
package threshold
