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

package image

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/ajroetker/go-coloc/coloc"
)

// ErrSizeMismatch is returned when a destination image does not match the
// shuffled image.
var ErrSizeMismatch = errors.New("image: size mismatch")

// Block is an axis-aligned region of the image lattice. Boundary blocks are
// clipped to the image, so their Size may be smaller than the block edge.
type Block struct {
	Min  []int
	Size []int
}

// BlockShuffler tiles an image into blocks with edge floor(sqrt(extent))
// per axis and produces copies with the block positions permuted. A block
// only moves to a slot of the same shape: full blocks trade places with
// full blocks, and clipped blocks along each boundary with clipped blocks
// of the same extents. Every shuffle is therefore a permutation of the
// source pixels.
//
// A BlockShuffler only reads its source image and may be shared by
// goroutines as long as each uses its own rng and destination.
type BlockShuffler[T coloc.Real] struct {
	src    *Image[T]
	edge   []int
	blocks []Block
	shapes [][]int // block indices per shape, in order of first appearance
}

// NewBlockShuffler tiles img.
func NewBlockShuffler[T coloc.Real](img *Image[T]) *BlockShuffler[T] {
	nd := img.NumDims()
	s := &BlockShuffler[T]{src: img, edge: make([]int, nd)}
	counts := make([]int, nd)
	total := 1
	for i, d := range img.dims {
		s.edge[i] = max(1, int(math.Floor(math.Sqrt(float64(d)))))
		counts[i] = (d + s.edge[i] - 1) / s.edge[i]
		total *= counts[i]
	}
	if nd == 0 {
		return s
	}

	s.blocks = make([]Block, 0, total)
	pos := make([]int, nd)
	for {
		b := Block{Min: make([]int, nd), Size: make([]int, nd)}
		for i := range pos {
			b.Min[i] = pos[i] * s.edge[i]
			b.Size[i] = min(s.edge[i], img.dims[i]-b.Min[i])
		}
		s.addBlock(b)

		i := 0
		for ; i < nd; i++ {
			pos[i]++
			if pos[i] < counts[i] {
				break
			}
			pos[i] = 0
		}
		if i == nd {
			break
		}
	}
	return s
}

func (s *BlockShuffler[T]) addBlock(b Block) {
	idx := len(s.blocks)
	s.blocks = append(s.blocks, b)
	for g, members := range s.shapes {
		if slices.Equal(s.blocks[members[0]].Size, b.Size) {
			s.shapes[g] = append(members, idx)
			return
		}
	}
	s.shapes = append(s.shapes, []int{idx})
}

// Blocks returns the tiling in x-fastest order. The result must not be
// modified.
func (s *BlockShuffler[T]) Blocks() []Block {
	return s.blocks
}

// BlockEdge returns the block edge length per axis.
func (s *BlockShuffler[T]) BlockEdge() []int {
	return slices.Clone(s.edge)
}

// Shuffle returns a new image with the source blocks placed at positions
// permuted by rng.
func (s *BlockShuffler[T]) Shuffle(rng *rand.Rand) *Image[T] {
	dst := NewImage[T](s.src.dims...)
	// Sizes match by construction.
	_ = s.ShuffleInto(dst, rng)
	return dst
}

// ShuffleInto is Shuffle writing into dst. Every pixel of dst is
// overwritten.
func (s *BlockShuffler[T]) ShuffleInto(dst *Image[T], rng *rand.Rand) error {
	if !SameSize(s.src, dst) {
		return ErrSizeMismatch
	}

	// perm[slot] is the source block placed at slot.
	perm := make([]int, len(s.blocks))
	for _, members := range s.shapes {
		from := slices.Clone(members)
		rng.Shuffle(len(from), func(i, j int) {
			from[i], from[j] = from[j], from[i]
		})
		for j, slot := range members {
			perm[slot] = from[j]
		}
	}

	off := make([]int, len(s.edge))
	for slot, to := range s.blocks {
		s.copyBlock(dst, s.blocks[perm[slot]], to, off)
	}
	return nil
}

// copyBlock copies from into to one x-row at a time. Both blocks have the
// same Size. off is scratch space of NumDims length.
func (s *BlockShuffler[T]) copyBlock(dst *Image[T], from, to Block, off []int) {
	strides := s.src.strides
	nd := len(strides)
	width := to.Size[0]
	clear(off)
	for {
		dstBase, srcBase := to.Min[0], from.Min[0]
		for a := 1; a < nd; a++ {
			dstBase += (to.Min[a] + off[a]) * strides[a]
			srcBase += (from.Min[a] + off[a]) * strides[a]
		}
		copy(dst.data[dstBase:dstBase+width], s.src.data[srcBase:srcBase+width])

		a := 1
		for ; a < nd; a++ {
			off[a]++
			if off[a] < to.Size[a] {
				break
			}
			off[a] = 0
		}
		if a >= nd {
			return
		}
	}
}

// BlockShuffle returns a block-shuffled copy of img using a PCG generator
// seeded with seed.
func BlockShuffle[T coloc.Real](img *Image[T], seed uint64) *Image[T] {
	return NewBlockShuffler(img).Shuffle(rand.New(rand.NewPCG(seed, 0)))
}
