// Package gateway defines the client's contract toward the remote video store
// and provides its HTTP implementation.
//
// Every failure is returned as a *errors.RemoteError whose Kind is one of
// KindNetwork, KindRejected or KindNotFound. A gateway never reports an empty
// success in place of a failure.
package gateway

import (
	"context"

	"github.com/agentstation/tourvault/pkg/videos"
)

// Gateway lists, creates and deletes videos in the remote store.
type Gateway interface {
	// List returns the complete collection in store order.
	List(ctx context.Context) ([]videos.Video, error)

	// Create submits a source URL. The store derives the id and metadata and
	// the created record is returned verbatim.
	Create(ctx context.Context, sourceURL string) (videos.Video, error)

	// Delete removes a video by id.
	Delete(ctx context.Context, id string) error
}

// Operation names used in RemoteError.Op.
const (
	OpList   = "list"
	OpCreate = "create"
	OpDelete = "delete"
)
