// Package sort provides a non-recursive merge sort over index permutations
// that counts the inversions it removes.
//
// The inversion count equals the number of adjacent swaps a bubble sort
// would perform, which is the discordant-pair count needed by Kendall's
// tau in O(n log n).
//
// # Example Usage
//
//	import "github.com/ajroetker/go-coloc/coloc/contrib/sort"
//
//	func Discordant(ranks []int) int64 {
//	    return sort.Inversions(ranks)
//	}
package sort
