package tourvault

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/agentstation/tourvault/pkg/constants"
	"github.com/agentstation/tourvault/pkg/errors"
	"github.com/agentstation/tourvault/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ AutoRefresher = (*client)(nil)

// AutoRefresher provides controls for periodic reloads of the collection.
// A refresh is a plain Load; failed mutations are never retried.
type AutoRefresher interface {
	// AutoRefreshOn starts periodic reloads at the configured interval
	AutoRefreshOn() error

	// AutoRefreshOff stops periodic reloads
	AutoRefreshOff() error
}

// AutoRefreshOn starts periodic reloads, replacing any running loop.
func (c *client) AutoRefreshOn() error {
	interval := c.options.autoRefreshInterval
	if interval <= 0 {
		return &errors.ValidationError{
			Field:   "autoRefreshInterval",
			Value:   interval,
			Message: "refresh interval must be positive",
		}
	}

	if err := c.AutoRefreshOff(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	if c.options.logger != nil {
		ctx = logging.WithLogger(ctx, c.options.logger)
	}
	done := make(chan struct{})

	c.refreshMu.Lock()
	c.refreshCancel = cancel
	c.refreshDone = done
	c.refreshMu.Unlock()

	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				loadCtx, loadCancel := context.WithTimeout(ctx, constants.RefreshContextTimeout)
				err := c.Load(loadCtx)
				loadCancel()

				if err != nil {
					if stderrors.Is(err, context.Canceled) && ctx.Err() != nil {
						return
					}
					logging.FromContext(ctx).Debug().Err(err).Msg("Auto-refresh failed")
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// AutoRefreshOff stops periodic reloads and waits for the loop to exit.
func (c *client) AutoRefreshOff() error {
	c.refreshMu.Lock()
	cancel, done := c.refreshCancel, c.refreshDone
	c.refreshCancel, c.refreshDone = nil, nil
	c.refreshMu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	return nil
}
