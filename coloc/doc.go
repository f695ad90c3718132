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

// Package coloc provides the shared building blocks of the colocalization
// statistics engine: the pixel type constraint, threshold modes, the paired
// accumulator and the error taxonomy used by every statistic.
//
// Two channels are represented as equal-length slices of pixel intensities
// paired by position. The feature packages live under coloc/contrib:
//
//	pearsons   - Pearson's R (classic and fast), optionally thresholded
//	threshold  - automatic threshold regression (Costes)
//	kendall    - Maximum Truncated Kendall Tau
//	sort       - inversion-counting merge sort
//	image      - n-dimensional images and block shuffling
//	pvalue     - block-permutation significance test
//	histogram  - histogram and Otsu threshold finder
//	workerpool - persistent worker pool
//
// Basic usage:
//
//	acc, err := coloc.Accumulate(ch1, ch2, nil)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(acc.Count, acc.XY)
//
// # Environment
//
//	COLOC_NO_SIMD=1        use the single-lane accumulation kernel
//	COLOC_LOG_LEVEL=debug  default logger level (logrus level names)
package coloc
