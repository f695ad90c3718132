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
	"os"
	"strconv"
)

// DispatchLevel represents the instruction set the accumulation kernel is
// tuned for.
type DispatchLevel int

const (
	// DispatchScalar uses a single running sum per quantity.
	DispatchScalar DispatchLevel = iota

	// DispatchSSE2 indicates 128-bit x86-64 baseline registers.
	DispatchSSE2

	// DispatchAVX2 indicates 256-bit registers.
	DispatchAVX2

	// DispatchAVX512 indicates 512-bit registers.
	DispatchAVX512

	// DispatchNEON indicates 128-bit ARM registers.
	DispatchNEON
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// maxLanes bounds the number of partial sums the kernel keeps.
const maxLanes = 8

// currentLevel is the detected level for this runtime.
// Set by init() in dispatch_*.go files.
var currentLevel DispatchLevel

// currentWidth is the register width in bytes for the current level.
// Set by init() in dispatch_*.go files.
var currentWidth int

// CurrentLevel returns the detected dispatch level.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentName returns the name of the current dispatch level, e.g. "avx2".
func CurrentName() string {
	return CurrentLevel().String()
}

// CurrentLanes returns how many independent float64 partial sums the
// accumulation kernel keeps per quantity.
func CurrentLanes() int {
	return lanesForWidth(currentWidth)
}

func lanesForWidth(width int) int {
	lanes := width / 8
	if lanes < 1 {
		return 1
	}
	return min(lanes, maxLanes)
}

// NoSimdEnv checks if the COLOC_NO_SIMD environment variable is set.
// When set, the single-lane kernel is used regardless of CPU capabilities.
func NoSimdEnv() bool {
	val := os.Getenv("COLOC_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

func setScalarMode() {
	currentLevel = DispatchScalar
	currentWidth = 8
}
