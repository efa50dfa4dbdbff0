// Package multirank ranks and unranks permutations of a multiset.
//
// A Codec is built once from a base multiset of type labels and then maps
// each distinct rearrangement of that multiset to a unique dense rank in
// [0, Potential()) and back. Potential is the multinomial coefficient
// length! / (counts[0]! * counts[1]! * ... * counts[types-1]!), the exact
// number of distinct rearrangements.
package multirank

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"slices"
)

var (
	// ErrInvalidInput reports a malformed base multiset at construction.
	ErrInvalidInput = errors.New("invalid base multiset")
	// ErrOverflow reports a potential too large for int64.
	ErrOverflow = errors.New("potential overflow")
	// ErrOutOfRange reports a rank outside [0, Potential()).
	ErrOutOfRange = errors.New("rank out of range")
	// ErrLengthMismatch reports a permutation of the wrong length.
	ErrLengthMismatch = errors.New("permutation length mismatch")
	// ErrInvalidPermutation reports a permutation that is not a
	// rearrangement of the base multiset.
	ErrInvalidPermutation = errors.New("invalid permutation")
)

// Codec ranks and unranks permutations of one base multiset. It is
// immutable after New; Rank and Unrank work on private copies of the count
// table, so a Codec is safe for concurrent use.
type Codec struct {
	length    int
	counts    []int
	potential int64
}

// New builds a codec from a base multiset of type labels. Labels must be
// dense and 0-based: every value in 0..max(base) has to occur at least
// once, since labels index the count tables directly. The base set must be
// non-empty. New fails with ErrOverflow when the number of distinct
// permutations exceeds math.MaxInt64.
//
// Example: New([]int{0, 0, 1, 1, 2, 3})
func New(base []int) (*Codec, error) {
	if len(base) == 0 {
		return nil, fmt.Errorf("%w: empty base set", ErrInvalidInput)
	}

	types := 0
	for _, t := range base {
		if t < 0 {
			return nil, fmt.Errorf("%w: negative type %d", ErrInvalidInput, t)
		}
		if t+1 > types {
			types = t + 1
		}
	}

	counts := make([]int, types)
	for _, t := range base {
		counts[t]++
	}
	for t, k := range counts {
		if k == 0 {
			return nil, fmt.Errorf("%w: type %d never occurs", ErrInvalidInput, t)
		}
	}

	potential, err := multinomial(counts)
	if err != nil {
		return nil, err
	}
	return &Codec{length: len(base), counts: counts, potential: potential}, nil
}

// Length returns the size of the base multiset.
func (c *Codec) Length() int { return c.length }

// Types returns the number of distinct types in the base multiset.
func (c *Codec) Types() int { return len(c.counts) }

// Counts returns a copy of the per-type multiplicities.
func (c *Codec) Counts() []int { return slices.Clone(c.counts) }

// Potential returns the number of distinct permutations of the base
// multiset, the exclusive upper bound on valid ranks.
func (c *Codec) Potential() int64 { return c.potential }

// Unrank returns the permutation of the base multiset at the given rank.
// Ranks are dense: every value in [0, Potential()) decodes to a distinct
// permutation and Rank inverts it exactly.
func (c *Codec) Unrank(rank int64) ([]int, error) {
	if rank < 0 || rank >= c.potential {
		return nil, fmt.Errorf("%w: rank %d, potential %d", ErrOutOfRange, rank, c.potential)
	}

	result := make([]int, c.length)
	counts := slices.Clone(c.counts)
	pot := uint64(c.potential)
	idx := uint64(rank)
	remaining := uint64(c.length)

	for pos := range result {
		// Reduce the rank to a selector over the remaining slots.
		selector := mulDiv(idx, remaining, pot)

		// The remaining counts partition the slots into per-type ranges,
		// in type order. Scan for the range holding the selector.
		offset := uint64(0)
		t := 0
		for offset+uint64(counts[t]) <= selector {
			offset += uint64(counts[t])
			t++
		}

		// Drop the rank mass of the types scanned past, then shrink the
		// potential to the sub-multiset with one fewer element of t.
		idx -= mulDiv(pot, offset, remaining)
		pot = mulDiv(pot, uint64(counts[t]), remaining)
		counts[t]--
		result[pos] = t
		remaining--
	}

	return result, nil
}

// Rank returns the rank of the given permutation, which must be a
// rearrangement of the base multiset. The last position is forced by the
// exhausted counts and contributes nothing, so the loop stops one position
// early, or as soon as the remaining potential collapses to 1.
func (c *Codec) Rank(perm []int) (int64, error) {
	if len(perm) != c.length {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(perm), c.length)
	}
	if err := c.validate(perm); err != nil {
		return 0, err
	}

	counts := slices.Clone(c.counts)
	pot := uint64(c.potential)
	remaining := uint64(c.length)
	result := uint64(0)

	for pos := 0; pos < c.length-1 && pot > 1; pos++ {
		t := perm[pos]

		// Rank mass of the sub-multisets led by a smaller type.
		offset := uint64(0)
		for i := 0; i < t; i++ {
			offset += uint64(counts[i])
		}

		result += mulDiv(pot, offset, remaining)
		pot = mulDiv(pot, uint64(counts[t]), remaining)
		counts[t]--
		remaining--
	}

	return int64(result), nil
}

// validate checks that perm is a rearrangement of the base multiset, so
// the ranking loop can trust its labels as count-table indices.
func (c *Codec) validate(perm []int) error {
	seen := make([]int, len(c.counts))
	for _, t := range perm {
		if t < 0 || t >= len(c.counts) {
			return fmt.Errorf("%w: unknown type %d", ErrInvalidPermutation, t)
		}
		seen[t]++
		if seen[t] > c.counts[t] {
			return fmt.Errorf("%w: type %d occurs more than %d times", ErrInvalidPermutation, t, c.counts[t])
		}
	}
	// Lengths match and no count is exceeded, so the tallies are equal.
	return nil
}

// multinomial computes length!/(counts[0]!*counts[1]!*...) incrementally:
// adding the n-th element overall, the j-th of its type, multiplies the
// running value by n and divides it by j. Every prefix of that product is
// itself a multinomial coefficient, so each division is exact and the
// running value never exceeds the final result.
func multinomial(counts []int) (int64, error) {
	p := uint64(1)
	n := uint64(0)
	for _, k := range counts {
		for j := uint64(1); j <= uint64(k); j++ {
			n++
			hi, lo := bits.Mul64(p, n)
			if hi >= j {
				// Quotient would not fit in 64 bits.
				return 0, fmt.Errorf("%w: multinomial exceeds 64 bits", ErrOverflow)
			}
			p, _ = bits.Div64(hi, lo, j)
		}
	}
	if p > math.MaxInt64 {
		return 0, fmt.Errorf("%w: potential %d exceeds max rank", ErrOverflow, p)
	}
	return int64(p), nil
}

// mulDiv returns a*b/d using a 128-bit intermediate product, so the
// multiply can never overflow. Callers guarantee d > 0 and a quotient that
// fits in 64 bits.
func mulDiv(a, b, d uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	q, _ := bits.Div64(hi, lo, d)
	return q
}
