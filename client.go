// Package tourvault provides the client-side catalog of a remote video store.
// It keeps a local, ordered collection of videos in step with the store and
// tells subscribers whenever that collection changes.
//
// Mutations are confirm-then-commit: Add and Remove call the remote store
// first and only touch the local collection once the store has confirmed.
// A failed call leaves the collection exactly as it was.
//
// Example usage:
//
//	gw, err := gateway.NewHTTP("http://localhost:8000")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tv, err := tourvault.New(gw)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tv.Close()
//
//	unsubscribe := tv.Subscribe(func(change tourvault.Change) {
//	    log.Printf("%s: %d videos", change.Kind, len(change.Videos))
//	})
//	defer unsubscribe()
//
//	if err := tv.Load(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	video, err := tv.Add(ctx, "https://youtu.be/dQw4w9WgXcQ")
//	if err != nil {
//	    log.Println(errors.UserMessage(err))
//	}
package tourvault

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/agentstation/tourvault/pkg/errors"
	"github.com/agentstation/tourvault/pkg/gateway"
	"github.com/agentstation/tourvault/pkg/logging"
	"github.com/agentstation/tourvault/pkg/videos"
)

// Compile-time interface check to ensure proper implementation.
var _ Collection = (*client)(nil)

// Collection provides copy-on-read access to the local collection.
type Collection interface {
	// Videos returns a snapshot of the collection in order.
	Videos() []videos.Video

	// Len returns the number of videos in the collection.
	Len() int

	// Get returns the video with the given id.
	Get(id string) (videos.Video, bool)
}

// Videos returns a copy of the current collection.
func (c *client) Videos() []videos.Video {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := videos.Clone(c.videos)
	if out == nil {
		out = []videos.Video{}
	}
	return out
}

// Len returns the number of videos in the collection.
func (c *client) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.videos)
}

// Get returns the video with the given id.
func (c *client) Get(id string) (videos.Video, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := videos.IndexOf(c.videos, id); i >= 0 {
		return c.videos[i], true
	}
	return videos.Video{}, false
}

// Client manages a local video collection mirrored from a remote store.
type Client interface {

	// Collection provides copy-on-read access to the videos
	Collection

	// Mutator loads, adds and removes videos through the remote store
	Mutator

	// Pending reports operations awaiting the remote store
	Pending

	// AutoRefresher provides access to periodic reload controls
	AutoRefresher

	// Hooks provides access to change and error callback registration
	Hooks

	// Close stops background work. The collection stays readable.
	Close() error
}

// client is the internal implementation of the Client interface.
type client struct {

	// options are the configured options for the client
	options *options

	// gateway is the remote store every mutation goes through
	gateway gateway.Gateway

	// mu guards the collection; commitMu serializes commit and notification
	mu       sync.RWMutex
	commitMu sync.Mutex
	videos   []videos.Video
	version  uint64

	// pending operation state
	pendingMu     sync.Mutex
	pendingAdd    *PendingOperation
	removing      map[string]*PendingOperation
	removeWaiters map[string]int
	removes       singleflight.Group

	// auto refresh state
	refreshMu     sync.Mutex
	refreshCancel context.CancelFunc
	refreshDone   chan struct{}

	hooks *hooks // Event hooks for collection changes and failures
}

// New creates a new Client backed by gw. The collection starts empty;
// call Load to fill it.
func New(gw gateway.Gateway, opts ...Option) (Client, error) {
	if gw == nil {
		return nil, errors.NewValidationError("gateway", nil, "cannot be nil")
	}

	options, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	c := &client{
		options:       options,
		gateway:       gw,
		videos:        []videos.Video{},
		removing:      make(map[string]*PendingOperation),
		removeWaiters: make(map[string]int),
		hooks:         newHooks(),
	}

	if options.autoRefreshEnabled {
		if err := c.AutoRefreshOn(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Close stops auto refresh. It is safe to call more than once.
func (c *client) Close() error {
	return c.AutoRefreshOff()
}

// commit applies mutate to the collection and, when it reports a change,
// publishes the result to subscribers before returning. Commits are
// serialized so subscribers observe them in order.
func (c *client) commit(kind ChangeKind, subject *videos.Video, mutate func(current []videos.Video) ([]videos.Video, bool)) bool {
	c.commitMu.Lock()
	defer c.commitMu.Unlock()

	c.mu.Lock()
	next, changed := mutate(c.videos)
	if !changed {
		c.mu.Unlock()
		return false
	}
	c.videos = next
	c.version++
	change := Change{
		Kind:    kind,
		Videos:  videos.Clone(next),
		Version: c.version,
		At:      c.options.now(),
	}
	if subject != nil {
		v := *subject
		change.Video = &v
	}
	c.mu.Unlock()

	c.hooks.trigger(change)
	return true
}

// withOperation prepares ctx for a gateway call.
func (c *client) withOperation(ctx context.Context, op Operation) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.options.logger != nil {
		ctx = logging.WithLogger(ctx, c.options.logger)
	}
	return logging.WithOperation(ctx, string(op))
}

// fail wraps err with the operation and its input, reports it to error
// hooks, and returns the wrapped error.
func (c *client) fail(ctx context.Context, op Operation, input string, err error) error {
	wrapped := &errors.OperationError{Operation: string(op), Input: input, Err: err}
	logging.FromContext(ctx).Warn().
		Err(err).
		Str("input", input).
		Msg("Catalog operation failed")
	c.hooks.triggerError(wrapped)
	return wrapped
}
