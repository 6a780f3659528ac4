package tourvault

import (
	"context"
	"strings"

	"github.com/agentstation/tourvault/pkg/errors"
	"github.com/agentstation/tourvault/pkg/logging"
	"github.com/agentstation/tourvault/pkg/videos"
)

// Compile-time interface check to ensure proper implementation.
var _ Mutator = (*client)(nil)

// Operation names a catalog operation.
type Operation string

const (
	// OperationLoad replaces the collection from the remote store.
	OperationLoad Operation = "load"
	// OperationAdd creates a video from a source URL.
	OperationAdd Operation = "add"
	// OperationRemove deletes a video by id.
	OperationRemove Operation = "remove"
)

// Mutator changes the collection through the remote store. Every failure
// is returned as an *errors.OperationError and also sent to error hooks.
type Mutator interface {
	// Load replaces the collection with the store's list. On failure the
	// collection is left untouched. A list that was requested before an add
	// or remove committed is stale and is discarded.
	Load(ctx context.Context) error

	// Add asks the store to create a video from sourceURL and appends the
	// confirmed record. Only one add may be in flight; a second one fails
	// with an *errors.PendingError without contacting the store.
	Add(ctx context.Context, sourceURL string) (videos.Video, error)

	// Remove asks the store to delete id and removes it once confirmed.
	// A store that no longer has the id counts as success. Concurrent
	// removals of the same id share one store call and its result.
	Remove(ctx context.Context, id string) error
}

// Load replaces the collection with the store's list.
func (c *client) Load(ctx context.Context) error {
	ctx = c.withOperation(ctx, OperationLoad)
	logger := logging.FromContext(ctx)

	c.mu.RLock()
	base := c.version
	c.mu.RUnlock()

	list, err := c.gateway.List(ctx)
	if err != nil {
		return c.fail(ctx, OperationLoad, "", err)
	}

	loaded, dropped := videos.Dedupe(list)
	if len(dropped) > 0 {
		logger.Warn().
			Strs("duplicate_ids", dropped).
			Msg("Store listed duplicate ids; keeping first occurrence")
	}

	committed := c.commit(ChangeLoaded, nil, func([]videos.Video) ([]videos.Video, bool) {
		// mu is held, so version is read consistently here.
		return loaded, c.version == base
	})
	if !committed {
		logger.Debug().
			Uint64("listed_at_version", base).
			Msg("Collection changed while listing; discarding stale list")
		return nil
	}

	logger.Debug().Int("count", len(loaded)).Msg("Collection loaded")
	return nil
}

// Add creates a video from sourceURL and appends it once confirmed.
func (c *client) Add(ctx context.Context, sourceURL string) (videos.Video, error) {
	ctx = c.withOperation(ctx, OperationAdd)

	normalized, err := videos.ValidateSourceURL(sourceURL)
	if err != nil {
		return videos.Video{}, c.fail(ctx, OperationAdd, sourceURL, err)
	}

	pending, err := c.beginAdd(normalized)
	if err != nil {
		return videos.Video{}, c.fail(ctx, OperationAdd, sourceURL, err)
	}

	created, err := c.gateway.Create(ctx, normalized)
	c.endAdd(pending)
	if err != nil {
		return videos.Video{}, c.fail(ctx, OperationAdd, sourceURL, err)
	}

	committed := c.commit(ChangeAdded, &created, func(current []videos.Video) ([]videos.Video, bool) {
		if videos.IndexOf(current, created.ID) >= 0 {
			return current, false
		}
		next := make([]videos.Video, len(current), len(current)+1)
		copy(next, current)
		return append(next, created), true
	})

	logger := logging.FromContext(ctx)
	if !committed {
		logger.Debug().Str("video_id", created.ID).Msg("Created video already in collection")
	} else {
		logger.Debug().Str("video_id", created.ID).Msg("Video added")
	}
	return created, nil
}

// Remove deletes id through the store and removes it once confirmed.
func (c *client) Remove(ctx context.Context, id string) error {
	ctx = logging.WithVideo(c.withOperation(ctx, OperationRemove), id)

	if strings.TrimSpace(id) == "" {
		return c.fail(ctx, OperationRemove, id, errors.NewValidationError("id", id, "cannot be empty"))
	}

	c.joinRemove(id)
	defer c.leaveRemove(id)

	// The shared call outlives any single caller, so it runs without the
	// caller's cancellation and its result is committed even if nobody waits.
	shared := context.WithoutCancel(ctx)
	result := c.removes.DoChan(id, func() (any, error) {
		return nil, c.remove(shared, id)
	})

	select {
	case res := <-result:
		if res.Shared {
			logging.FromContext(ctx).Debug().Msg("Removal shared with a concurrent call")
		}
		return res.Err
	case <-ctx.Done():
		return &errors.OperationError{Operation: string(OperationRemove), Input: id, Err: ctx.Err()}
	}
}

// remove performs one store deletion and commits it.
func (c *client) remove(ctx context.Context, id string) error {
	c.beginRemove(id)
	err := c.gateway.Delete(ctx, id)
	c.endRemove(id)

	if err != nil {
		if !errors.IsNotFound(err) {
			return c.fail(ctx, OperationRemove, id, err)
		}
		logging.FromContext(ctx).Debug().Err(err).Msg("Store no longer has video; treating removal as done")
	}

	var removed videos.Video
	committed := c.commit(ChangeRemoved, &removed, func(current []videos.Video) ([]videos.Video, bool) {
		i := videos.IndexOf(current, id)
		if i < 0 {
			return current, false
		}
		removed = current[i]
		next := make([]videos.Video, 0, len(current)-1)
		next = append(next, current[:i]...)
		return append(next, current[i+1:]...), true
	})
	if !committed {
		logging.FromContext(ctx).Debug().Msg("Removed video was not in collection")
	}
	return nil
}
