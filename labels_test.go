package multirank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLabeled(t *testing.T) {
	assert := assert.New(t)

	c, err := NewLabeled([]byte("aabbcd"))
	assert.NoError(err)
	assert.Equal(int64(180), c.Potential())
	assert.Equal(6, c.Length())
	assert.Equal([]byte("abcd"), c.Labels())

	first, err := c.Unrank(0)
	assert.NoError(err)
	assert.Equal("aabbcd", string(first))

	last, err := c.Unrank(c.Potential() - 1)
	assert.NoError(err)
	assert.Equal("dcbbaa", string(last))

	rank, err := c.Rank([]byte("dcbbaa"))
	assert.NoError(err)
	assert.Equal(c.Potential()-1, rank)

	_, err = NewLabeled([]byte{})
	assert.ErrorIs(err, ErrInvalidInput)
}

func TestLabeledErrors(t *testing.T) {
	assert := assert.New(t)

	c, err := NewLabeled([]byte("aabbcd"))
	assert.NoError(err)

	_, err = c.Unrank(-1)
	assert.ErrorIs(err, ErrOutOfRange)
	_, err = c.Unrank(c.Potential())
	assert.ErrorIs(err, ErrOutOfRange)

	_, err = c.Rank([]byte("aab"))
	assert.ErrorIs(err, ErrLengthMismatch)

	_, err = c.Rank([]byte("aabbcx")) // label x unknown
	assert.ErrorIs(err, ErrInvalidPermutation)

	_, err = c.Rank([]byte("aabbcc")) // wrong multiplicities
	assert.ErrorIs(err, ErrInvalidPermutation)
}

func TestLabeledRoundTrip(t *testing.T) {
	assert := assert.New(t)

	// Unsorted string labels; rank order follows the sorted label table.
	c, err := NewLabeled([]string{"pear", "apple", "apple", "pear", "fig"})
	assert.NoError(err)
	assert.Equal([]string{"apple", "fig", "pear"}, c.Labels())
	assert.Equal(int64(30), c.Potential()) // 5!/(2!*1!*2!)

	for i := int64(0); i < c.Potential(); i++ {
		perm, err := c.Unrank(i)
		if err != nil {
			t.Fatalf("Unrank(%d): %v", i, err)
		}
		back, err := c.Rank(perm)
		if err != nil {
			t.Fatalf("Rank(%v): %v", perm, err)
		}
		if back != i {
			t.Errorf("rank %d re-ranked as %d (perm %v)", i, back, perm)
		}
	}
}

func TestLabeledMatchesDenseCodec(t *testing.T) {
	assert := assert.New(t)

	// Labels already numbered 0..k-1 must rank identically to Codec.
	base := []int{0, 0, 1, 1, 2, 3}
	dense, err := New(base)
	assert.NoError(err)
	labeled, err := NewLabeled(base)
	assert.NoError(err)

	assert.Equal(dense.Potential(), labeled.Potential())
	for i := int64(0); i < dense.Potential(); i++ {
		want, err := dense.Unrank(i)
		assert.NoError(err)
		got, err := labeled.Unrank(i)
		assert.NoError(err)
		assert.Equal(want, got, "rank %d", i)
	}
}
