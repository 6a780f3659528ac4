// Package gatewaytest provides an in-memory gateway.Gateway for tests.
package gatewaytest

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/agentstation/tourvault/pkg/errors"
	"github.com/agentstation/tourvault/pkg/gateway"
	"github.com/agentstation/tourvault/pkg/videos"
)

// Compile-time interface check.
var _ gateway.Gateway = (*Fake)(nil)

// Fake is a scriptable in-memory video store.
//
// The zero value is an empty store. Set the *Err fields to inject failures,
// or the *Func fields to take over an operation entirely. Gate, when set,
// blocks every call until it is closed, which lets tests hold operations in
// flight.
type Fake struct {
	mu     sync.Mutex
	videos []videos.Video
	nextID int

	ListErr   error
	CreateErr error
	DeleteErr error

	ListFunc   func(ctx context.Context) ([]videos.Video, error)
	CreateFunc func(ctx context.Context, sourceURL string) (videos.Video, error)
	DeleteFunc func(ctx context.Context, id string) error

	Gate chan struct{}

	listCalls   atomic.Int32
	createCalls atomic.Int32
	deleteCalls atomic.Int32
	entered     chan string
}

// New returns a Fake holding the given records in order.
func New(initial ...videos.Video) *Fake {
	return &Fake{videos: videos.Clone(initial)}
}

// Entered returns a channel that receives the operation name each time a
// call starts, before Gate is awaited. It must be requested before the calls
// of interest are made.
func (f *Fake) Entered() <-chan string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.entered == nil {
		f.entered = make(chan string, 64)
	}
	return f.entered
}

// List implements gateway.Gateway.
func (f *Fake) List(ctx context.Context) ([]videos.Video, error) {
	f.listCalls.Add(1)
	if err := f.wait(ctx, gateway.OpList); err != nil {
		return nil, err
	}
	if f.ListFunc != nil {
		return f.ListFunc(ctx)
	}
	if f.ListErr != nil {
		return nil, f.ListErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	out := videos.Clone(f.videos)
	if out == nil {
		out = []videos.Video{}
	}
	return out, nil
}

// Create implements gateway.Gateway. Records get ids "vid-1", "vid-2", ...
// and a title derived from the URL.
func (f *Fake) Create(ctx context.Context, sourceURL string) (videos.Video, error) {
	f.createCalls.Add(1)
	if err := f.wait(ctx, gateway.OpCreate); err != nil {
		return videos.Video{}, err
	}
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, sourceURL)
	}
	if f.CreateErr != nil {
		return videos.Video{}, f.CreateErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.videos {
		if v.URL == sourceURL {
			return videos.Video{}, errors.NewRejectedError(gateway.OpCreate, sourceURL, 400, "Video already exists")
		}
	}
	f.nextID++
	v := videos.Video{
		ID:    fmt.Sprintf("vid-%d", f.nextID),
		Title: "Video " + sourceURL,
		URL:   sourceURL,
	}
	f.videos = append(f.videos, v)
	return v, nil
}

// Delete implements gateway.Gateway.
func (f *Fake) Delete(ctx context.Context, id string) error {
	f.deleteCalls.Add(1)
	if err := f.wait(ctx, gateway.OpDelete); err != nil {
		return err
	}
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	if f.DeleteErr != nil {
		return f.DeleteErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	i := videos.IndexOf(f.videos, id)
	if i < 0 {
		return errors.NewRemoteNotFoundError(gateway.OpDelete, id, fmt.Sprintf("Video %s not found", id))
	}
	f.videos = append(f.videos[:i], f.videos[i+1:]...)
	return nil
}

// Put appends records directly to the store, bypassing Create.
func (f *Fake) Put(list ...videos.Video) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.videos = append(f.videos, list...)
}

// Stored returns a copy of the store contents.
func (f *Fake) Stored() []videos.Video {
	f.mu.Lock()
	defer f.mu.Unlock()
	return videos.Clone(f.videos)
}

// ListCalls returns the number of List calls made.
func (f *Fake) ListCalls() int { return int(f.listCalls.Load()) }

// CreateCalls returns the number of Create calls made.
func (f *Fake) CreateCalls() int { return int(f.createCalls.Load()) }

// DeleteCalls returns the number of Delete calls made.
func (f *Fake) DeleteCalls() int { return int(f.deleteCalls.Load()) }

func (f *Fake) wait(ctx context.Context, op string) error {
	f.mu.Lock()
	entered, gate := f.entered, f.Gate
	f.mu.Unlock()

	if entered != nil {
		select {
		case entered <- op:
		default:
		}
	}
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return errors.NewNetworkError(op, "", ctx.Err())
	}
}
