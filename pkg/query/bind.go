package query

import (
	"sync"

	"github.com/agentstation/tourvault"
)

// Catalog is the part of tourvault.Client a bound View needs.
type Catalog interface {
	Source
	Subscribe(fn tourvault.ChangeHook) func()
}

// Bind returns a View that follows catalog: every change notification
// refreshes it with the committed collection. Call the returned func to
// stop following.
//
// Subscribers registered after Bind see the view already refreshed for the
// change they are handed.
func Bind(catalog Catalog, opts ...Option) (*View, func(), error) {
	view, err := New(nil, opts...)
	if err != nil {
		return nil, nil, err
	}

	// notified guards the seed below against overwriting a newer
	// notification delivered while subscribing.
	var (
		mu       sync.Mutex
		notified bool
	)
	unsubscribe := catalog.Subscribe(func(change tourvault.Change) {
		mu.Lock()
		defer mu.Unlock()
		notified = true
		view.Refresh(change.Videos)
	})

	mu.Lock()
	if !notified {
		view.Refresh(catalog.Videos())
	}
	mu.Unlock()

	return view, unsubscribe, nil
}
