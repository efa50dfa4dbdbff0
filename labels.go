package multirank

import (
	"cmp"
	"fmt"
	"slices"
)

// Labeled ranks and unranks permutations of a multiset over an arbitrary
// ordered label type. Labels are translated to the dense internal type
// encoding through a sorted lookup table built at construction, so callers
// never deal in raw type indices. Rank order follows the natural order of
// the label type; for labels already numbered 0..k-1 it matches Codec.
type Labeled[T cmp.Ordered] struct {
	codec  *Codec
	labels []T
}

// NewLabeled builds a labeled codec from a non-empty base multiset.
//
// Example: NewLabeled([]byte("aabbcd"))
func NewLabeled[T cmp.Ordered](base []T) (*Labeled[T], error) {
	if len(base) == 0 {
		return nil, fmt.Errorf("%w: empty base set", ErrInvalidInput)
	}

	labels := slices.Clone(base)
	slices.Sort(labels)
	labels = slices.Compact(labels)

	dense := make([]int, len(base))
	for i, v := range base {
		t, _ := slices.BinarySearch(labels, v)
		dense[i] = t
	}

	codec, err := New(dense)
	if err != nil {
		return nil, err
	}
	return &Labeled[T]{codec: codec, labels: labels}, nil
}

// Labels returns the distinct labels of the base multiset in rank order.
func (l *Labeled[T]) Labels() []T { return slices.Clone(l.labels) }

// Length returns the size of the base multiset.
func (l *Labeled[T]) Length() int { return l.codec.Length() }

// Potential returns the number of distinct permutations of the base
// multiset, the exclusive upper bound on valid ranks.
func (l *Labeled[T]) Potential() int64 { return l.codec.Potential() }

// Unrank returns the permutation at the given rank in terms of the
// original labels.
func (l *Labeled[T]) Unrank(rank int64) ([]T, error) {
	dense, err := l.codec.Unrank(rank)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(dense))
	for i, t := range dense {
		out[i] = l.labels[t]
	}
	return out, nil
}

// Rank returns the rank of a permutation given in terms of the original
// labels. Labels not present in the base multiset fail with
// ErrInvalidPermutation.
func (l *Labeled[T]) Rank(perm []T) (int64, error) {
	if len(perm) != l.codec.Length() {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(perm), l.codec.Length())
	}
	dense := make([]int, len(perm))
	for i, v := range perm {
		t, ok := slices.BinarySearch(l.labels, v)
		if !ok {
			return 0, fmt.Errorf("%w: unknown label %v", ErrInvalidPermutation, v)
		}
		dense[i] = t
	}
	return l.codec.Rank(dense)
}
