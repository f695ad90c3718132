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

	"github.com/ajroetker/go-coloc/coloc"
)

// MergeSort sorts a permutation of indices with a caller-supplied
// comparison and reports how many inversions were removed.
type MergeSort struct {
	index   []int
	scratch []int
	compare func(a, b int) int
}

// NewMergeSort returns a sorter over index. The slice is sorted in place by
// Sort; compare receives elements of index, not positions.
func NewMergeSort(index []int, compare func(a, b int) int) *MergeSort {
	return &MergeSort{index: index, compare: compare}
}

// Sort performs a bottom-up merge sort and returns the equivalent number of
// bubble sort swaps. Equal elements keep their relative order.
func (m *MergeSort) Sort() int64 {
	n := len(m.index)
	if n < 2 {
		return 0
	}
	if cap(m.scratch) < n {
		m.scratch = make([]int, n)
	}
	src, dst := m.index, m.scratch[:n]

	var swaps int64
	for step := 1; step < n; step <<= 1 {
		k := 0
		for begin := 0; ; {
			mid := begin + step
			if mid >= n {
				break
			}
			end := min(mid+step, n)

			i, j := begin, mid
			for i < mid && j < end {
				if m.compare(src[i], src[j]) > 0 {
					swaps += int64(mid - i)
					dst[k] = src[j]
					j++
				} else {
					dst[k] = src[i]
					i++
				}
				k++
			}
			k += copy(dst[k:], src[i:mid])
			k += copy(dst[k:], src[j:end])
			begin = end
		}
		copy(dst[k:], src[k:])
		src, dst = dst, src
	}

	if &src[0] != &m.index[0] {
		copy(m.index, src)
	}
	return swaps
}

// Sorted returns the index slice, sorted after Sort has run.
func (m *MergeSort) Sorted() []int {
	return m.index
}

// Inversions counts the pairs i < j with values[i] > values[j]. values is
// not modified.
func Inversions(values []int) int64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	return NewMergeSort(idx, func(a, b int) int {
		return cmp.Compare(values[a], values[b])
	}).Sort()
}

// StableIndices returns the permutation that sorts values ascending, with
// equal values in their original order.
func StableIndices[T coloc.Real](values []T) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	NewMergeSort(idx, func(a, b int) int {
		return cmp.Compare(values[a], values[b])
	}).Sort()
	return idx
}
