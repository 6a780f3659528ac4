// Package pagination computes page counts, page slices and page-link windows.
// Every function is pure: pages are 1-based, nothing is clamped or mutated,
// and out-of-range requests produce empty results rather than errors.
package pagination

// Window is the set of page links to render.
type Window struct {
	// Pages lists the page numbers rendered as direct links, in order.
	Pages []int `json:"pages" yaml:"pages"`
	// HasNext reports whether a "jump to next" affordance is rendered as well.
	HasNext bool `json:"has_next" yaml:"has_next"`
}

// PageCount returns ceil(total/size). It is 0 when there are no items or
// when size is not positive.
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Slice returns items[(page-1)*size : page*size] clipped to the bounds of
// items. Pages before the first or past the last yield an empty slice.
// The result aliases items.
func Slice[T any](items []T, page, size int) []T {
	if page < 1 || page > PageCount(len(items), size) {
		return []T{}
	}
	start := (page - 1) * size
	end := min(start+size, len(items))
	return items[start:end]
}

// PageWindow returns the links 1..min(maxVisible, pageCount) and whether a
// next-page affordance is needed because more pages exist.
func PageWindow(pageCount, maxVisible int) Window {
	n := min(maxVisible, pageCount)
	w := Window{Pages: make([]int, 0, max(n, 0))}
	for p := 1; p <= n; p++ {
		w.Pages = append(w.Pages, p)
	}
	w.HasNext = maxVisible >= 0 && pageCount > maxVisible
	return w
}
