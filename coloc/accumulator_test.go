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
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// naiveAccumulate is the reference single pass used to check the kernels.
func naiveAccumulate(x, y []float64, accept AcceptFunc, xDiff, yDiff float64) Accumulation {
	var acc Accumulation
	for i := range x {
		if accept != nil && !accept(x[i], y[i]) {
			continue
		}
		a, b := x[i]-xDiff, y[i]-yDiff
		acc.X += a
		acc.Y += b
		acc.XX += a * a
		acc.XY += a * b
		acc.YY += b * b
		acc.Count++
	}
	return acc
}

func TestAccumulateSmall(t *testing.T) {
	x := []uint8{1, 2, 3}
	y := []uint16{4, 5, 6}

	acc, err := Accumulate(x, y, nil)
	if err != nil {
		t.Fatalf("Accumulate: %v", err)
	}
	want := Accumulation{X: 6, Y: 15, XX: 14, XY: 32, YY: 77, Count: 3}
	if diff := cmp.Diff(want, acc); diff != "" {
		t.Errorf("Accumulate mismatch (-want +got):\n%s", diff)
	}
}

func TestAccumulateCenteredOffsetsBeforeSquaring(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{2, 4, 6}

	acc, err := AccumulateCentered(x, y, nil, 2, 4)
	if err != nil {
		t.Fatalf("AccumulateCentered: %v", err)
	}
	// Centered values are (-1,-2), (0,0), (1,2).
	want := Accumulation{X: 0, Y: 0, XX: 2, XY: 4, YY: 8, Count: 3}
	if diff := cmp.Diff(want, acc); diff != "" {
		t.Errorf("AccumulateCentered mismatch (-want +got):\n%s", diff)
	}
}

func TestAccumulateRejectedSamplesSkipped(t *testing.T) {
	x := []float64{1, 10, 2, 20}
	y := []float64{1, 10, 2, 20}
	accept := func(a, b float64) bool { return a < 5 }

	acc, err := AccumulateCentered(x, y, accept, 1, 1)
	if err != nil {
		t.Fatalf("AccumulateCentered: %v", err)
	}
	if acc.Count != 2 {
		t.Errorf("Count: got %d, want 2", acc.Count)
	}
	// Only (0,0) and (1,1) after centering.
	want := Accumulation{X: 1, Y: 1, XX: 1, XY: 1, YY: 1, Count: 2}
	if diff := cmp.Diff(want, acc); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestAccumulateEmptyAndAllRejected(t *testing.T) {
	acc, err := Accumulate([]float32{}, []float32{}, nil)
	if err != nil {
		t.Fatalf("Accumulate(empty): %v", err)
	}
	if acc != (Accumulation{}) {
		t.Errorf("Accumulate(empty): got %+v, want zero", acc)
	}

	acc, err = Accumulate([]int16{1, 2, 3}, []int16{1, 2, 3}, func(x, y float64) bool { return false })
	if err != nil {
		t.Fatalf("Accumulate(reject all): %v", err)
	}
	if acc.Count != 0 || acc.XY != 0 {
		t.Errorf("Accumulate(reject all): got %+v, want zero", acc)
	}
}

func TestAccumulateLengthMismatch(t *testing.T) {
	_, err := Accumulate([]float64{1, 2}, []float64{1}, nil)
	var cv *ContractViolationError
	if !errors.As(err, &cv) {
		t.Fatalf("Accumulate: got %v, want ContractViolationError", err)
	}
	if cv.Len1 != 2 || cv.Len2 != 1 {
		t.Errorf("ContractViolationError: got %d/%d, want 2/1", cv.Len1, cv.Len2)
	}
}

func TestAccumulateLanesMatchScalar(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	sizes := []int{0, 1, 3, 7, 8, 9, 15, 16, 17, 100, 1001}
	accept := func(a, b float64) bool { return a < 0.7 || b < 0.3 }
	opt := cmpopts.EquateApprox(1e-12, 1e-9)

	for _, n := range sizes {
		x := make([]float64, n)
		y := make([]float64, n)
		for i := range n {
			x[i] = rng.Float64()
			y[i] = rng.Float64()
		}
		want := naiveAccumulate(x, y, accept, 0.25, 0.5)
		for _, lanes := range []int{1, 2, 4, 8} {
			got := accumulateLanes(x, y, accept, 0.25, 0.5, lanes)
			if diff := cmp.Diff(want, got, opt); diff != "" {
				t.Errorf("n=%d lanes=%d mismatch (-want +got):\n%s", n, lanes, diff)
			}
		}
	}
}

func TestAccumulateSeqMatchesSlices(t *testing.T) {
	x := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	y := []float64{2, 7, 1, 8, 2, 8, 1, 8}
	accept, err := ThresholdBelow.Accept(Thresholds{Ch1: 4, Ch2: 2})
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}

	fromSlices, err := AccumulateCentered(x, y, accept, 1, 1)
	if err != nil {
		t.Fatalf("AccumulateCentered: %v", err)
	}
	fromSeq := AccumulateSeq(Pairs(x, y), accept, 1, 1)
	if diff := cmp.Diff(fromSlices, fromSeq, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("AccumulateSeq mismatch (-slices +seq):\n%s", diff)
	}
}

func TestPairsEarlyStop(t *testing.T) {
	x := []int32{1, 2, 3, 4}
	y := []int32{5, 6, 7, 8}
	var seen int
	for a, b := range Pairs(x, y) {
		seen++
		if a != float64(seen) || b != float64(seen+4) {
			t.Errorf("pair %d: got (%v,%v)", seen, a, b)
		}
		if seen == 2 {
			break
		}
	}
	if seen != 2 {
		t.Errorf("seen: got %d, want 2", seen)
	}
}

func BenchmarkAccumulate(b *testing.B) {
	n := 1 << 20
	x := make([]uint16, n)
	y := make([]uint16, n)
	for i := range n {
		x[i] = uint16(i * 7)
		y[i] = uint16(i * 13)
	}
	b.SetBytes(int64(n * 4))
	for _, lanes := range []int{1, 4, 8} {
		b.Run(fmt.Sprintf("lanes=%d", lanes), func(b *testing.B) {
			for b.Loop() {
				accumulateLanes(x, y, nil, 0, 0, lanes)
			}
		})
	}
}
