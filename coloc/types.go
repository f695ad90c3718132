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
	"math"
	"reflect"
)

// Floats is a constraint for floating-point pixel types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer pixel types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer pixel types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32
}

// Real is the constraint satisfied by every supported pixel type.
type Real interface {
	Floats | SignedInts | UnsignedInts
}

// TypeRange returns the smallest and largest value representable by T.
// Floating-point types report ±MaxFloat of their width.
func TypeRange[T Real]() (lo, hi float64) {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Uint8:
		return 0, math.MaxUint8
	case reflect.Uint16:
		return 0, math.MaxUint16
	case reflect.Uint32:
		return 0, math.MaxUint32
	case reflect.Int8:
		return math.MinInt8, math.MaxInt8
	case reflect.Int16:
		return math.MinInt16, math.MaxInt16
	case reflect.Int32:
		return math.MinInt32, math.MaxInt32
	case reflect.Int64:
		return math.MinInt64, math.MaxInt64
	case reflect.Float32:
		return -math.MaxFloat32, math.MaxFloat32
	default:
		return -math.MaxFloat64, math.MaxFloat64
	}
}

// Clamp returns v limited to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round rounds half up (towards +Inf), so -2.5 becomes -2.
func Round(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Float64s returns a widened copy of values.
func Float64s[T Real](values []T) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

// Thresholds holds one intensity threshold per channel.
type Thresholds struct {
	Ch1 float64
	Ch2 float64
}
