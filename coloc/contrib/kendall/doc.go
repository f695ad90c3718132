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

// Package kendall computes the maximum truncated Kendall tau (MTKT) of two
// channels (Wang et al. 2017).
//
// Both channels are rank transformed. Samples below either channel's
// intensity threshold are discarded; thresholds are explicit or found per
// channel with Otsu's method. Windows over the highest ranks of both axes
// grow geometrically with factor 1 + 1/ln(ln n), and for every window pair
// Kendall's tau is normalised by its standard deviation under independence,
//
//	sd(k) = sqrt(2(2k+5) / (9k(k-1)))
//
// The statistic is the maximum normalised tau over all windows. It is
// one-sided, so the running maximum starts at the smallest positive
// float64 rather than at zero.
//
// # Example Usage
//
//	import "github.com/ajroetker/go-coloc/coloc/contrib/kendall"
//
//	func Score(ch1, ch2 []uint16) (float64, error) {
//	    return kendall.MaxKendallTau(ch1, ch2, kendall.Options{})
//	}
package kendall
