package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	for _, size := range PageSizes {
		for _, total := range []int64{0, 1, int64(size) - 1, int64(size), int64(size) + 1, 1000} {
			want := 0
			if total > 0 {
				want = int(total) / size
				if int(total)%size != 0 {
					want++
				}
			}
			assert.Equal(t, want, TotalPages(total, size), "total=%d size=%d", total, size)
		}
	}
}

func TestPagination_Items(t *testing.T) {
	p := NewPagination(2, 12, 15)
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, int64(13), p.FirstItem())
	assert.Equal(t, int64(15), p.LastItem())
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext())

	beyond := NewPagination(3, 12, 15)
	assert.Zero(t, beyond.FirstItem())
	assert.Zero(t, beyond.LastItem())

	empty := NewPagination(1, 24, 0)
	assert.Zero(t, empty.TotalPages)
	assert.Zero(t, empty.FirstItem())
	assert.False(t, empty.HasNext())
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, int64(0), PageOffset(1, 24))
	assert.Equal(t, int64(0), PageOffset(0, 24))
	assert.Equal(t, int64(24), PageOffset(3, 12))
	assert.Equal(t, int64(math.MaxInt64), PageOffset(100000000000000000, 96))
	assert.Equal(t, int64(math.MaxInt64), PageOffset(math.MaxInt, 12))
}

func TestPagination_PageFarPastTheEnd(t *testing.T) {
	p := NewPagination(100000000000000000, 96, 10)
	assert.Zero(t, p.FirstItem())
	assert.Zero(t, p.LastItem())
	assert.False(t, p.HasNext())
	assert.True(t, p.HasPrev())
}

func TestPagination_Pages(t *testing.T) {
	cases := []struct {
		page, total int
		want        []int
	}{
		{1, 1, nil},
		{2, 4, []int{1, 2, 3, 4}},
		{1, 10, []int{1, 2, 3, 4, 0, 10}},
		{3, 10, []int{1, 2, 3, 4, 0, 10}},
		{5, 10, []int{1, 0, 4, 5, 6, 0, 10}},
		{9, 10, []int{1, 0, 7, 8, 9, 10}},
		{10, 10, []int{1, 0, 7, 8, 9, 10}},
	}
	for _, tc := range cases {
		p := Pagination{Page: tc.page, PageSize: 12, TotalPages: tc.total, TotalCount: int64(tc.total * 12)}
		assert.Equal(t, tc.want, p.Pages(), "page %d of %d", tc.page, tc.total)
	}
}
