package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestEmptyList(t *testing.T) {
	p := New[int](6)
	p.SetItems(nil)

	assert.Equal(t, 0, p.TotalPages())
	assert.Equal(t, 1, p.CurrentPage())
	assert.Empty(t, p.Slice())
	assert.Nil(t, p.Controls())
}

func TestThirteenItemsPageSizeSix(t *testing.T) {
	p := New[int](6)
	p.SetItems(items(13))

	assert.Equal(t, 3, p.TotalPages())
	assert.Len(t, p.Slice(), 6)

	p.GoTo(3)
	assert.Len(t, p.Slice(), 1)
	assert.Equal(t, 13, p.Slice()[0])
}

func TestGoToOutOfRangeIsNoOp(t *testing.T) {
	p := New[int](6)
	p.SetItems(items(13))
	p.GoTo(2)

	for _, n := range []int{0, -1, 4, 100} {
		p.GoTo(n)
		assert.Equal(t, 2, p.CurrentPage(), "GoTo(%d) must not move", n)
	}
}

func TestSetItemsResetsPage(t *testing.T) {
	p := New[int](6)
	p.SetItems(items(20))
	p.GoTo(3)
	require.Equal(t, 3, p.CurrentPage())

	p.SetItems(items(3))
	assert.Equal(t, 1, p.CurrentPage())
	assert.Equal(t, 1, p.TotalPages())
}

func TestNextPrevClampAtBoundaries(t *testing.T) {
	p := New[int](6)
	p.SetItems(items(13))

	p.Prev()
	assert.Equal(t, 1, p.CurrentPage())

	p.Next()
	p.Next()
	p.Next() // past the last page
	assert.Equal(t, 3, p.CurrentPage())
}

func TestControls(t *testing.T) {
	p := New[int](6)
	p.SetItems(items(13))
	p.GoTo(2)

	c := p.Controls()
	require.NotNil(t, c)
	assert.Equal(t, 2, c.CurrentPage)
	assert.Equal(t, 3, c.TotalPages)
	assert.True(t, c.PrevEnabled)
	assert.True(t, c.NextEnabled)
	require.Len(t, c.Pages, 3)
	assert.True(t, c.Pages[1].Active)
	assert.False(t, c.Pages[0].Active)

	p.GoTo(1)
	assert.False(t, p.Controls().PrevEnabled)
	p.GoTo(3)
	assert.False(t, p.Controls().NextEnabled)
}

func TestSinglePageHasNoControls(t *testing.T) {
	p := New[int](6)
	p.SetItems(items(6))

	assert.Equal(t, 1, p.TotalPages())
	assert.Nil(t, p.Controls())
}

func TestBadPageSizeFallsBack(t *testing.T) {
	p := New[int](0)
	p.SetItems(items(7))
	assert.Equal(t, 2, p.TotalPages())
}
