package multirank

// Each visits every permutation of the base multiset in rank order,
// stopping early if fn returns false. Each permutation passed to fn is a
// fresh allocation, safe to retain or modify.
func (c *Codec) Each(fn func(rank int64, perm []int) bool) {
	for rank := int64(0); rank < c.potential; rank++ {
		// Rank is always in range here, so Unrank cannot fail.
		perm, _ := c.Unrank(rank)
		if !fn(rank, perm) {
			return
		}
	}
}

// Permutations returns the permutations of the base multiset in rank
// order. If limit > 0, at most limit permutations are returned; otherwise
// all Potential() of them are. Each returned slice is a separate
// allocation, safe to modify without affecting the others.
//
// Note that potentials grow extremely fast with the multiset size. Always
// pass a limit unless the potential is known to be small, or the result
// will exhaust memory.
func (c *Codec) Permutations(limit int) [][]int {
	n := c.potential
	if limit > 0 && int64(limit) < n {
		n = int64(limit)
	}
	out := make([][]int, 0, n)
	c.Each(func(_ int64, perm []int) bool {
		out = append(out, perm)
		return int64(len(out)) < n
	})
	return out
}
