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

package kendall

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ajroetker/go-coloc/coloc"
)

type lcg uint64

func (s *lcg) next() uint64 {
	*s = *s*6364136223846793005 + 1442695040888963407
	return uint64(*s) >> 33
}

func (s *lcg) intn(n int) int {
	return int(s.next() % uint64(n))
}

// pair returns two uint8 channels that either follow each other within
// +-5 or are independent.
func pair(seed uint64, n int, correlated bool) ([]uint8, []uint8) {
	r := lcg(seed)
	x := make([]uint8, n)
	y := make([]uint8, n)
	for i := range n {
		a := r.intn(256)
		x[i] = uint8(a)
		if correlated {
			y[i] = uint8(min(255, max(0, a+r.intn(11)-5)))
		} else {
			y[i] = uint8(r.intn(256))
		}
	}
	return x, y
}

// naiveTau counts concordant minus discordant pairs directly.
func naiveTau(r1, r2 []int) float64 {
	var s int
	n := len(r1)
	for i := range n {
		for j := i + 1; j < n; j++ {
			if (r1[i]-r1[j])*(r2[i]-r2[j]) > 0 {
				s++
			} else {
				s--
			}
		}
	}
	return float64(s) / float64(n*(n-1)/2)
}

func TestKendallTauExtremes(t *testing.T) {
	r := []int{1, 2, 3, 4, 5, 6}
	rev := slices.Clone(r)
	slices.Reverse(rev)
	if got := KendallTau(r, r); got != 1 {
		t.Errorf("identical ranks: got %v, want 1", got)
	}
	if got := KendallTau(r, rev); got != -1 {
		t.Errorf("reversed ranks: got %v, want -1", got)
	}
	if got := KendallTau([]int{1}, []int{1}); !math.IsNaN(got) {
		t.Errorf("single pair: got %v, want NaN", got)
	}
}

func TestKendallTauMatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 9))
	for _, n := range []int{2, 5, 17, 64, 150} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			r1 := rng.Perm(n)
			r2 := rng.Perm(n)
			got, want := KendallTau(r1, r2), naiveTau(r1, r2)
			if math.Abs(got-want) > 1e-12 {
				t.Errorf("KendallTau: got %v, want %v", got, want)
			}
		})
	}
}

func TestRankStable(t *testing.T) {
	values := []float64{5, 1, 5, 3, 1}
	want := []int{4, 1, 5, 3, 2}
	if diff := cmp.Diff(want, Rank(values, TieBreakStable, nil)); diff != "" {
		t.Errorf("Rank (-want +got):\n%s", diff)
	}
}

func TestRankRandomTieBreak(t *testing.T) {
	values := make([]uint8, 200)
	for i := range values {
		values[i] = uint8(i % 4)
	}

	a := Rank(values, TieBreakRandom, rand.New(rand.NewPCG(1, 0)))
	b := Rank(values, TieBreakRandom, rand.New(rand.NewPCG(1, 0)))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed, different ranks (-a +b):\n%s", diff)
	}

	stable := Rank(values, TieBreakStable, nil)
	if slices.Equal(a, stable) {
		t.Error("random tie break kept the stable order")
	}
	// Ties are shuffled among themselves only: value v owns ranks
	// 50v+1..50v+50 under both policies.
	for i, v := range values {
		lo, hi := 50*int(v)+1, 50*int(v)+50
		if a[i] < lo || a[i] > hi {
			t.Errorf("sample %d (value %d): rank %d outside [%d, %d]", i, v, a[i], lo, hi)
		}
	}
	sorted := slices.Sorted(slices.Values(a))
	for i, r := range sorted {
		if r != i+1 {
			t.Fatalf("ranks are not a permutation of 1..n: %v", sorted)
		}
	}
}

func TestMaxKendallTauSeparatesCorrelation(t *testing.T) {
	all := &coloc.Thresholds{}
	for _, tc := range []struct {
		name string
		opts Options
	}{
		{"all samples", Options{Thresholds: all}},
		{"otsu", Options{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			for seed := uint64(1); seed <= 3; seed++ {
				x, y := pair(seed, 400, true)
				xi, yi := pair(seed, 400, false)
				corr, err := MaxKendallTau(x, y, tc.opts)
				if err != nil {
					t.Fatalf("correlated: %v", err)
				}
				indep, err := MaxKendallTau(xi, yi, tc.opts)
				if err != nil {
					t.Fatalf("independent: %v", err)
				}
				if corr < 10 {
					t.Errorf("seed %d: correlated MTKT %v, want > 10", seed, corr)
				}
				if indep > 5 {
					t.Errorf("seed %d: independent MTKT %v, want < 5", seed, indep)
				}
			}
		})
	}
}

func TestMaxKendallTauIdentical(t *testing.T) {
	x := make([]float32, 50)
	for i := range x {
		x[i] = float32(i)
	}
	got, err := MaxKendallTau(x, x, Options{Thresholds: &coloc.Thresholds{}})
	if err != nil {
		t.Fatalf("MaxKendallTau: %v", err)
	}
	if got < 5 {
		t.Errorf("identical channels: got %v, want a large positive score", got)
	}
}

// tiedPair returns two independent channels holding only the values 0..3.
func tiedPair(seed uint64, n int) ([]uint8, []uint8) {
	r := lcg(seed)
	x := make([]uint8, n)
	y := make([]uint8, n)
	for i := range n {
		x[i] = uint8(r.intn(4))
		y[i] = uint8(r.intn(4))
	}
	return x, y
}

func TestMaxKendallTauTiedIndependentChannels(t *testing.T) {
	all := &coloc.Thresholds{}
	x, y := tiedPair(11, 32*32)

	stable, err := MaxKendallTau(x, y, Options{Thresholds: all, TieBreak: TieBreakStable})
	if err != nil {
		t.Fatalf("stable: %v", err)
	}
	if stable < 8 {
		t.Errorf("stable tie break: got %v, want the inflated score of shared tie order", stable)
	}

	for seed := range uint64(5) {
		got, err := MaxKendallTau(x, y, Options{Thresholds: all, Seed: seed})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if got > 5 {
			t.Errorf("seed %d: independent tied channels got %v, want < 5", seed, got)
		}
	}

	flat := make([]uint8, 64)
	for i := range flat {
		flat[i] = 5
	}
	got, err := MaxKendallTau(flat, flat, Options{Thresholds: all})
	if err != nil {
		t.Fatalf("constant: %v", err)
	}
	if got > 5 {
		t.Errorf("constant channels: got %v, want < 5", got)
	}
}

func TestDefaultTieBreakIsRandom(t *testing.T) {
	var opts Options
	if opts.TieBreak != TieBreakRandom {
		t.Errorf("zero Options tie break: got %s, want Random", opts.TieBreak)
	}
}

func TestMaxKendallTauNothingAboveThreshold(t *testing.T) {
	x, y := pair(4, 100, true)
	got, err := MaxKendallTau(x, y, Options{Thresholds: &coloc.Thresholds{Ch1: 1000, Ch2: 1000}})
	if err != nil {
		t.Fatalf("MaxKendallTau: %v", err)
	}
	if got != math.SmallestNonzeroFloat64 {
		t.Errorf("got %v, want the smallest positive float64", got)
	}
}

func TestMaxKendallTauDeterministic(t *testing.T) {
	x, y := pair(9, 300, true)
	for _, opts := range []Options{
		{},
		{TieBreak: TieBreakRandom, Seed: 42},
	} {
		a, err := MaxKendallTau(x, y, opts)
		if err != nil {
			t.Fatalf("%s: %v", opts.TieBreak, err)
		}
		b, _ := MaxKendallTau(x, y, opts)
		if a != b {
			t.Errorf("%s: %v then %v", opts.TieBreak, a, b)
		}
	}
}

func TestMaxKendallTauErrors(t *testing.T) {
	_, err := MaxKendallTau([]uint8{1, 2}, []uint8{1, 2}, Options{})
	if !errors.Is(err, coloc.ErrTooFewSamples) {
		t.Errorf("two samples: got %v, want ErrTooFewSamples", err)
	}

	_, err = MaxKendallTau([]uint8{1, 2, 3}, []uint16{1, 2}, Options{})
	var cv *coloc.ContractViolationError
	if !errors.As(err, &cv) {
		t.Errorf("mismatch: got %v, want ContractViolationError", err)
	}

	_, err = MaxKendallTau([]uint8{1, 2, 3}, []uint8{1, 2, 3}, Options{TieBreak: 5})
	if err == nil {
		t.Error("unknown tie break: got nil error")
	}
}

func TestStatisticAdaptor(t *testing.T) {
	x, y := pair(2, 200, true)
	opts := Options{Thresholds: &coloc.Thresholds{}}
	want, _ := MaxKendallTau(x, y, opts)
	got, err := Statistic[uint8, uint8](opts)(x, y)
	if err != nil || got != want {
		t.Errorf("Statistic: got %v (%v), want %v", got, err, want)
	}
}

func BenchmarkMaxKendallTau(b *testing.B) {
	for _, n := range []int{1 << 10, 1 << 14} {
		x, y := pair(1, n, true)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			for b.Loop() {
				_, _ = MaxKendallTau(x, y, Options{})
			}
		})
	}
}
