// Package query filters and pages a video collection for display.
//
// A View holds a search term and a current page over the latest snapshot of
// a collection. Filtering always runs against the full snapshot, so widening
// the term brings back everything it matches.
//
//	view, unsubscribe, err := query.Bind(client, query.WithPageSize(4))
//	if err != nil {
//	    return err
//	}
//	defer unsubscribe()
//
//	view.SetSearchTerm("cat")
//	for _, v := range view.Visible() {
//	    fmt.Println(v.Title)
//	}
package query

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/agentstation/tourvault/pkg/constants"
	"github.com/agentstation/tourvault/pkg/errors"
	"github.com/agentstation/tourvault/pkg/pagination"
	"github.com/agentstation/tourvault/pkg/videos"
)

// Source supplies the collection a View starts from.
type Source interface {
	Videos() []videos.Video
}

// Page is one rendered page of the filtered collection.
type Page struct {
	Items []videos.Video `json:"items" yaml:"items"`

	// Number is the current page, starting at 1.
	Number int `json:"number" yaml:"number"`

	// Count is the number of pages of the filtered collection.
	Count int `json:"count" yaml:"count"`

	// Total is the number of videos matching the search term.
	Total int `json:"total" yaml:"total"`

	Window pagination.Window `json:"window" yaml:"window"`
}

// View is a filtered, paged view over a collection. It is safe for
// concurrent use.
type View struct {
	mu         sync.RWMutex
	collection []videos.Video
	term       string
	folded     string
	page       int
	pageSize   int
	maxVisible int
}

// Option configures a View.
type Option func(*View) error

// WithPageSize sets the number of videos per page.
func WithPageSize(size int) Option {
	return func(v *View) error {
		if size <= 0 {
			return errors.NewValidationError("page_size", size, "must be positive")
		}
		v.pageSize = size
		return nil
	}
}

// WithMaxVisiblePages sets how many page links the window shows.
func WithMaxVisiblePages(n int) Option {
	return func(v *View) error {
		if n <= 0 {
			return errors.NewValidationError("max_visible_pages", n, "must be positive")
		}
		v.maxVisible = n
		return nil
	}
}

// New returns a View on page 1 with an empty search term over source's
// current collection. source may be nil. The view does not follow later
// changes; use Bind for that.
func New(source Source, opts ...Option) (*View, error) {
	v := &View{
		page:       1,
		pageSize:   constants.DefaultPageSize,
		maxVisible: constants.DefaultMaxVisiblePages,
	}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}
	if source != nil {
		v.collection = source.Videos()
	}
	return v, nil
}

// Refresh replaces the collection the view filters. The current page is
// kept; a page that no longer exists renders empty until the caller moves.
// The snapshot is not modified.
func (v *View) Refresh(snapshot []videos.Video) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.collection = snapshot
}

// SetSearchTerm stores term and returns to page 1.
func (v *View) SetSearchTerm(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.term = term
	v.folded = Fold(term)
	v.page = 1
}

// SearchTerm returns the current search term as it was set.
func (v *View) SearchTerm() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.term
}

// CurrentPage returns the current page number.
func (v *View) CurrentPage() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.page
}

// SetPage moves to page n, clamped into [1, max(1, page count)], and
// returns the page actually selected.
func (v *View) SetPage(n int) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	count := pagination.PageCount(len(v.filter()), v.pageSize)
	v.page = min(max(n, 1), max(count, 1))
	return v.page
}

// NextPage advances one page when a next page exists and reports whether
// it moved.
func (v *View) NextPage() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	count := pagination.PageCount(len(v.filter()), v.pageSize)
	if v.page >= count {
		return false
	}
	v.page++
	return true
}

// Matches returns every video matching the search term, in collection order.
func (v *View) Matches() []videos.Video {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.filter()
}

// Visible returns the matching videos on the current page.
func (v *View) Visible() []videos.Video {
	return v.Page().Items
}

// Page returns the current page together with its paging state.
func (v *View) Page() Page {
	v.mu.RLock()
	defer v.mu.RUnlock()

	matches := v.filter()
	count := pagination.PageCount(len(matches), v.pageSize)
	return Page{
		Items:  pagination.Slice(matches, v.page, v.pageSize),
		Number: v.page,
		Count:  count,
		Total:  len(matches),
		Window: pagination.PageWindow(count, v.maxVisible),
	}
}

// filter returns a fresh slice of the videos whose title or description
// contains the term. Callers hold mu.
func (v *View) filter() []videos.Video {
	out := make([]videos.Video, 0, len(v.collection))
	for _, video := range v.collection {
		if Match(video, v.folded) {
			out = append(out, video)
		}
	}
	return out
}

// Match reports whether video's title or description contains the already
// folded term. The empty term matches everything.
func Match(video videos.Video, foldedTerm string) bool {
	if foldedTerm == "" {
		return true
	}
	return strings.Contains(Fold(video.Title), foldedTerm) ||
		strings.Contains(Fold(video.Description), foldedTerm)
}

// Fold applies Unicode case folding, putting term in the form Match
// expects. A Caser keeps state, so each call gets its own.
func Fold(term string) string {
	if term == "" {
		return term
	}
	return cases.Fold().String(term)
}
