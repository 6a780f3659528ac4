package tourvault

import (
	"sync"
	"time"

	"github.com/agentstation/tourvault/pkg/errors"
	"github.com/agentstation/tourvault/pkg/videos"
)

// ChangeKind identifies what produced a change.
type ChangeKind string

const (
	// ChangeLoaded means the collection was replaced by a full load.
	ChangeLoaded ChangeKind = "loaded"
	// ChangeAdded means a confirmed video was appended.
	ChangeAdded ChangeKind = "added"
	// ChangeRemoved means a confirmed video was removed.
	ChangeRemoved ChangeKind = "removed"
)

// Change describes one committed change to the collection.
type Change struct {
	Kind ChangeKind

	// Videos is the collection after the change. Subscribers share it and
	// must not modify it.
	Videos []videos.Video

	// Video is the added or removed video. It is nil for loads.
	Video *videos.Video

	// Version increases by one with every commit.
	Version uint64

	At time.Time
}

// Hook function types for collection events
type (
	// ChangeHook is called after every committed change
	ChangeHook func(change Change)

	// VideoAddedHook is called when a video is added to the collection
	VideoAddedHook func(video videos.Video)

	// VideoRemovedHook is called when a video is removed from the collection
	VideoRemovedHook func(video videos.Video)

	// ErrorHook is called when an operation fails. err is an
	// *errors.OperationError carrying the operation and its input.
	ErrorHook func(err *errors.OperationError)
)

// Hooks provides event callback registration. Callbacks run synchronously
// on the goroutine that committed the change, in commit order. They must
// not call Load, Add, Remove or AutoRefreshOff synchronously.
type Hooks interface {
	// Subscribe registers fn for every change and returns a function that
	// removes it again.
	Subscribe(fn ChangeHook) (unsubscribe func())

	// OnVideoAdded registers a callback for added videos
	OnVideoAdded(fn VideoAddedHook)

	// OnVideoRemoved registers a callback for removed videos
	OnVideoRemoved(fn VideoRemovedHook)

	// OnError registers a callback for failed operations
	OnError(fn ErrorHook)
}

// Subscribe registers fn for every change.
func (c *client) Subscribe(fn ChangeHook) func() {
	return c.hooks.subscribe(fn)
}

// OnVideoAdded registers a callback for added videos.
func (c *client) OnVideoAdded(fn VideoAddedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onVideoAdded = append(c.hooks.onVideoAdded, fn)
}

// OnVideoRemoved registers a callback for removed videos.
func (c *client) OnVideoRemoved(fn VideoRemovedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onVideoRemoved = append(c.hooks.onVideoRemoved, fn)
}

// OnError registers a callback for failed operations.
func (c *client) OnError(fn ErrorHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onError = append(c.hooks.onError, fn)
}

type subscriber struct {
	id uint64
	fn ChangeHook
}

// hooks manages event callbacks for collection changes
type hooks struct {
	mu             sync.RWMutex
	nextID         uint64
	subscribers    []subscriber
	onVideoAdded   []VideoAddedHook
	onVideoRemoved []VideoRemovedHook
	onError        []ErrorHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

func (h *hooks) subscribe(fn ChangeHook) func() {
	if fn == nil {
		return func() {}
	}

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subscribers = append(h.subscribers, subscriber{id: id, fn: fn})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for i, s := range h.subscribers {
				if s.id == id {
					h.subscribers = append(h.subscribers[:i:i], h.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

// trigger delivers change to subscribers first, then to the per-video hooks.
// Callbacks are copied out so they may register or unsubscribe freely.
func (h *hooks) trigger(change Change) {
	h.mu.RLock()
	subs := append([]subscriber(nil), h.subscribers...)
	added := append([]VideoAddedHook(nil), h.onVideoAdded...)
	removed := append([]VideoRemovedHook(nil), h.onVideoRemoved...)
	h.mu.RUnlock()

	for _, s := range subs {
		s.fn(change)
	}

	if change.Video == nil {
		return
	}
	switch change.Kind {
	case ChangeAdded:
		for _, hook := range added {
			hook(*change.Video)
		}
	case ChangeRemoved:
		for _, hook := range removed {
			hook(*change.Video)
		}
	}
}

// triggerError delivers err to error hooks
func (h *hooks) triggerError(err *errors.OperationError) {
	h.mu.RLock()
	fns := append([]ErrorHook(nil), h.onError...)
	h.mu.RUnlock()

	for _, hook := range fns {
		hook(err)
	}
}
