package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/tourvault/pkg/pagination"
)

func TestPageCount(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 8, 0},
		{1, 8, 1},
		{8, 8, 1},
		{9, 8, 2},
		{16, 8, 2},
		{17, 4, 5},
		{5, 0, 0},
		{5, -1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pagination.PageCount(tt.total, tt.size), "PageCount(%d, %d)", tt.total, tt.size)
	}
}

func TestPageCount_Bounds(t *testing.T) {
	for n := 0; n <= 50; n++ {
		for p := 1; p <= 12; p++ {
			count := pagination.PageCount(n, p)
			assert.GreaterOrEqual(t, count*p, n, "n=%d p=%d", n, p)
			if n > 0 {
				assert.Less(t, (count-1)*p, n, "n=%d p=%d", n, p)
			}
		}
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, pagination.Slice(items, 1, 8))
	assert.Equal(t, []int{9}, pagination.Slice(items, 2, 8))
	assert.Empty(t, pagination.Slice(items, 3, 8))
	assert.Empty(t, pagination.Slice(items, 0, 8))
	assert.Empty(t, pagination.Slice(items, -2, 8))
	assert.Empty(t, pagination.Slice(items, 1, 0))
	assert.Empty(t, pagination.Slice([]int{}, 1, 8))
	assert.NotNil(t, pagination.Slice([]int(nil), 1, 8))
}

func TestSlice_CoversEveryItemOnce(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	var seen []int
	for page := 1; page <= pagination.PageCount(len(items), 4); page++ {
		seen = append(seen, pagination.Slice(items, page, 4)...)
	}
	assert.Equal(t, items, seen)
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name       string
		pageCount  int
		maxVisible int
		want       pagination.Window
	}{
		{"no pages", 0, 3, pagination.Window{Pages: []int{}}},
		{"fewer than max", 2, 3, pagination.Window{Pages: []int{1, 2}}},
		{"exactly max", 3, 3, pagination.Window{Pages: []int{1, 2, 3}}},
		{"more than max", 7, 3, pagination.Window{Pages: []int{1, 2, 3}, HasNext: true}},
		{"zero visible", 4, 0, pagination.Window{Pages: []int{}, HasNext: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.PageWindow(tt.pageCount, tt.maxVisible))
		})
	}
}
