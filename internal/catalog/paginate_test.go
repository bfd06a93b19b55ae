package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nProducts(n int) []Product {
	items := make([]Product, n)
	for i := range items {
		items[i] = Product{ID: int64(i + 1), Title: fmt.Sprintf("P%d", i+1)}
	}
	return items
}

func TestPaginateTwelveProductsPageSizeNine(t *testing.T) {
	items := nProducts(12)

	p1 := Paginate(items, 1, 9)
	require.Equal(t, 2, p1.TotalPages)
	assert.Equal(t, 12, p1.Total)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9}, idsOf(p1.Items))
	assert.Equal(t, 1, p1.First)
	assert.Equal(t, 9, p1.Last)

	p2 := Paginate(items, 2, 9)
	assert.Equal(t, []int64{10, 11, 12}, idsOf(p2.Items))
	assert.Equal(t, 10, p2.First)
	assert.Equal(t, 12, p2.Last)
	assert.True(t, p2.HasPrev())
	assert.False(t, p2.HasNext())
}

func TestPaginateReconstructsFilteredSetExactly(t *testing.T) {
	for _, total := range []int{0, 1, 8, 9, 10, 27, 100} {
		for _, size := range []int{9, 10, 12} {
			items := nProducts(total)
			first := Paginate(items, 1, size)
			var union []int64
			for page := 1; page <= first.TotalPages; page++ {
				union = append(union, idsOf(Paginate(items, page, size).Items)...)
			}
			assert.Equal(t, idsOf(items), union,
				"total=%d size=%d: union of pages must equal the filtered set", total, size)
		}
	}
}

func TestPaginateClampsPage(t *testing.T) {
	items := nProducts(20)

	under := Paginate(items, 0, 9)
	assert.Equal(t, 1, under.Number)

	over := Paginate(items, 99, 9)
	assert.Equal(t, 3, over.Number)
	assert.Equal(t, []int64{19, 20}, idsOf(over.Items))
}

func TestPaginateEmptySet(t *testing.T) {
	p := Paginate(nil, 3, 9)
	assert.Equal(t, 0, p.TotalPages)
	assert.Equal(t, 1, p.Number)
	assert.Empty(t, p.Items)
	assert.Zero(t, p.First)
	assert.Zero(t, p.Last)
}

func TestPageWindowSinglePageRendersNothing(t *testing.T) {
	assert.Nil(t, PageWindow(1, 1))
	assert.Nil(t, PageWindow(1, 0))
}

func TestPageWindowSmallTotals(t *testing.T) {
	refs := PageWindow(2, 4)
	assert.Equal(t, []PageRef{
		{Number: 1}, {Number: 2, Current: true}, {Number: 3}, {Number: 4},
	}, refs)
}

func TestPageWindowCenteredWithEdges(t *testing.T) {
	refs := PageWindow(10, 20)
	assert.Equal(t, []PageRef{
		{Number: 1},
		{Ellipsis: true},
		{Number: 8}, {Number: 9}, {Number: 10, Current: true}, {Number: 11}, {Number: 12},
		{Ellipsis: true},
		{Number: 20},
	}, refs)
}

func TestPageWindowAtStart(t *testing.T) {
	refs := PageWindow(1, 20)
	assert.Equal(t, []PageRef{
		{Number: 1, Current: true}, {Number: 2}, {Number: 3}, {Number: 4}, {Number: 5},
		{Ellipsis: true},
		{Number: 20},
	}, refs)
}

func TestPageWindowAtEnd(t *testing.T) {
	refs := PageWindow(20, 20)
	assert.Equal(t, []PageRef{
		{Number: 1},
		{Ellipsis: true},
		{Number: 16}, {Number: 17}, {Number: 18}, {Number: 19}, {Number: 20, Current: true},
	}, refs)
}

func TestPageWindowGrowthTieBreak(t *testing.T) {
	// Current page in the first half grows forward from its clamped start.
	refs := PageWindow(2, 20)
	nums := windowNumbers(refs)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, nums[:5])

	// Current page in the second half grows backward.
	refs = PageWindow(19, 20)
	nums = windowNumbers(refs)
	assert.Equal(t, []int{16, 17, 18, 19, 20}, nums[len(nums)-5:])
}

func TestPageWindowClampsCurrent(t *testing.T) {
	refs := PageWindow(50, 6)
	var current int
	for _, r := range refs {
		if r.Current {
			current = r.Number
		}
	}
	assert.Equal(t, 6, current)
}

func windowNumbers(refs []PageRef) []int {
	var nums []int
	for _, r := range refs {
		if !r.Ellipsis {
			nums = append(nums, r.Number)
		}
	}
	return nums
}
