package tourvault

import (
	"slices"
	"strings"
	"time"

	"github.com/agentstation/tourvault/pkg/errors"
)

// Compile-time interface check to ensure proper implementation.
var _ Pending = (*client)(nil)

// Pending reports operations that are waiting on the remote store.
type Pending interface {
	// PendingOperations returns in-flight operations, oldest first.
	PendingOperations() []PendingOperation

	// IsPending reports whether a removal of id is in flight.
	IsPending(id string) bool
}

// PendingOperation is an operation waiting on the remote store.
type PendingOperation struct {
	Operation Operation `json:"operation" yaml:"operation"`

	// Key is the video id for removals, and a temporary key for adds.
	Key string `json:"key" yaml:"key"`

	// Input is what the caller passed in.
	Input string `json:"input" yaml:"input"`

	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Waiters is the number of callers sharing a removal.
	Waiters int `json:"waiters,omitempty" yaml:"waiters,omitempty"`
}

// PendingOperations returns in-flight operations, oldest first.
func (c *client) PendingOperations() []PendingOperation {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()

	ops := make([]PendingOperation, 0, len(c.removing)+1)
	if c.pendingAdd != nil {
		ops = append(ops, *c.pendingAdd)
	}
	for id, op := range c.removing {
		shared := *op
		shared.Waiters = c.removeWaiters[id]
		ops = append(ops, shared)
	}
	slices.SortStableFunc(ops, func(a, b PendingOperation) int {
		if n := a.StartedAt.Compare(b.StartedAt); n != 0 {
			return n
		}
		return strings.Compare(a.Key, b.Key)
	})
	return ops
}

// IsPending reports whether a removal of id is in flight.
func (c *client) IsPending(id string) bool {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	_, ok := c.removing[id]
	return ok
}

// beginAdd registers the single pending add, or refuses with a
// PendingError when one is already in flight.
func (c *client) beginAdd(input string) (*PendingOperation, error) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()

	if c.pendingAdd != nil {
		return nil, &errors.PendingError{
			Operation: string(OperationAdd),
			Key:       c.pendingAdd.Key,
			Input:     input,
		}
	}
	c.pendingAdd = &PendingOperation{
		Operation: OperationAdd,
		Key:       c.options.pendingKey(),
		Input:     input,
		StartedAt: c.options.now(),
	}
	return c.pendingAdd, nil
}

func (c *client) endAdd(op *PendingOperation) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	if c.pendingAdd == op {
		c.pendingAdd = nil
	}
}

func (c *client) beginRemove(id string) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	c.removing[id] = &PendingOperation{
		Operation: OperationRemove,
		Key:       id,
		Input:     id,
		StartedAt: c.options.now(),
	}
}

func (c *client) endRemove(id string) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	delete(c.removing, id)
}

// joinRemove counts a caller waiting on the removal of id.
func (c *client) joinRemove(id string) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	c.removeWaiters[id]++
}

func (c *client) leaveRemove(id string) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	if c.removeWaiters[id] <= 1 {
		delete(c.removeWaiters, id)
		return
	}
	c.removeWaiters[id]--
}
