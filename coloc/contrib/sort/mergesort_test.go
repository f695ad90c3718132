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

package sort

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	gocmp "github.com/google/go-cmp/cmp"
)

// naiveInversions counts inversions in O(n^2).
func naiveInversions(values []int) int64 {
	var n int64
	for i := range values {
		for j := i + 1; j < len(values); j++ {
			if values[i] > values[j] {
				n++
			}
		}
	}
	return n
}

func TestInversionsSmall(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   int64
	}{
		{"empty", nil, 0},
		{"single", []int{7}, 0},
		{"sorted", []int{1, 2, 3, 4, 5}, 0},
		{"reversed", []int{5, 4, 3, 2, 1}, 10},
		{"one swap", []int{1, 3, 2, 4}, 1},
		{"ties", []int{2, 2, 1, 1}, 4},
		{"odd length", []int{3, 1, 2}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Inversions(tt.values); got != tt.want {
				t.Errorf("Inversions(%v) = %d, want %d", tt.values, got, tt.want)
			}
		})
	}
}

func TestInversionsMatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, n := range []int{2, 3, 7, 8, 9, 31, 64, 100, 200} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			values := make([]int, n)
			for i := range values {
				values[i] = rng.IntN(n/2 + 1)
			}
			orig := slices.Clone(values)
			if got, want := Inversions(values), naiveInversions(values); got != want {
				t.Errorf("Inversions: got %d, want %d", got, want)
			}
			if diff := gocmp.Diff(orig, values); diff != "" {
				t.Errorf("Inversions modified its input (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeSortSortsIndices(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	keys := make([]int, 37)
	for i := range keys {
		keys[i] = rng.IntN(10)
	}
	idx := make([]int, len(keys))
	for i := range idx {
		idx[i] = i
	}

	m := NewMergeSort(idx, func(a, b int) int { return cmp.Compare(keys[a], keys[b]) })
	swaps := m.Sort()

	sorted := m.Sorted()
	for i := 1; i < len(sorted); i++ {
		a, b := sorted[i-1], sorted[i]
		if keys[a] > keys[b] || (keys[a] == keys[b] && a > b) {
			t.Fatalf("position %d: index %d (key %d) before %d (key %d)", i, a, keys[a], b, keys[b])
		}
	}
	if want := naiveInversions(keys); swaps != want {
		t.Errorf("swaps: got %d, want %d", swaps, want)
	}
	if &sorted[0] != &idx[0] {
		t.Error("Sorted should return the caller's slice")
	}
}

func TestStableIndices(t *testing.T) {
	values := []float32{3, 1, 2, 1, 3, 0.5}
	want := []int{5, 1, 3, 2, 0, 4}
	if diff := gocmp.Diff(want, StableIndices(values)); diff != "" {
		t.Errorf("StableIndices (-want +got):\n%s", diff)
	}
}

func BenchmarkInversions(b *testing.B) {
	for _, n := range []int{1 << 10, 1 << 16} {
		rng := rand.New(rand.NewPCG(uint64(n), 0))
		values := rng.Perm(n)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			for b.Loop() {
				_ = Inversions(values)
			}
		})
	}
}
