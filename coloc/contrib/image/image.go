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

// Package image provides a single-channel n-dimensional image type and the
// block shuffling used by colocalization permutation tests.
//
// Pixels are stored contiguously with the first axis (x) varying fastest,
// so Pixels returns samples in the iteration order every statistic in
// go-coloc expects.
//
// Example usage:
//
//	img := image.NewImage[uint16](512, 512, 30)
//	for z := 0; z < img.Dims()[2]; z++ {
//	    for y := 0; y < img.Dims()[1]; y++ {
//	        row := img.Row(y, z)
//	        // fill row
//	    }
//	}
//	shuffled := image.BlockShuffle(img, 0x27372034)
package image

import (
	"fmt"
	"slices"

	"github.com/ajroetker/go-coloc/coloc"
)

// Image is a single-channel n-dimensional array.
type Image[T coloc.Real] struct {
	data    []T
	dims    []int
	strides []int // elements per unit step along each axis
}

// NewImage creates a zeroed image with the given extents. Any non-positive
// extent, or no extent at all, yields an empty image.
func NewImage[T coloc.Real](dims ...int) *Image[T] {
	if len(dims) == 0 {
		return &Image[T]{}
	}
	for _, d := range dims {
		if d <= 0 {
			return &Image[T]{}
		}
	}
	img := &Image[T]{
		dims:    slices.Clone(dims),
		strides: make([]int, len(dims)),
	}
	n := 1
	for i, d := range dims {
		img.strides[i] = n
		n *= d
	}
	img.data = make([]T, n)
	return img
}

// FromPixels wraps pixels, in x-fastest order, as an image. The slice is
// used directly, not copied.
func FromPixels[T coloc.Real](pixels []T, dims ...int) (*Image[T], error) {
	img := NewImage[T](dims...)
	if img.Len() != len(pixels) || len(pixels) == 0 {
		return nil, fmt.Errorf("image: %d pixels do not fill extents %v", len(pixels), dims)
	}
	img.data = pixels
	return img, nil
}

// Dims returns a copy of the image extents.
func (img *Image[T]) Dims() []int {
	return slices.Clone(img.dims)
}

// NumDims returns the number of axes.
func (img *Image[T]) NumDims() int {
	return len(img.dims)
}

// Len returns the number of pixels.
func (img *Image[T]) Len() int {
	return len(img.data)
}

// Pixels returns the backing slice in x-fastest order.
func (img *Image[T]) Pixels() []T {
	return img.data
}

// Index returns the offset of pos in Pixels, or -1 if pos is outside the
// image or has the wrong number of coordinates.
func (img *Image[T]) Index(pos ...int) int {
	if len(pos) != len(img.dims) || img.data == nil {
		return -1
	}
	idx := 0
	for i, p := range pos {
		if p < 0 || p >= img.dims[i] {
			return -1
		}
		idx += p * img.strides[i]
	}
	return idx
}

// Row returns a mutable slice of the x-row at the given coordinates of the
// remaining axes.
func (img *Image[T]) Row(pos ...int) []T {
	if len(img.dims) == 0 {
		return nil
	}
	i := img.Index(append([]int{0}, pos...)...)
	if i < 0 {
		return nil
	}
	return img.data[i : i+img.dims[0]]
}

// SameSize returns true if both images have the same extents.
func SameSize[T, U coloc.Real](a *Image[T], b *Image[U]) bool {
	return slices.Equal(a.dims, b.dims)
}
