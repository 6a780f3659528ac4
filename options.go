package tourvault

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/tourvault/pkg/constants"
	"github.com/agentstation/tourvault/pkg/errors"
)

// options holds the configuration for a Client.
type options struct {
	logger *zerolog.Logger

	autoRefreshEnabled  bool
	autoRefreshInterval time.Duration

	pendingKey func() string
	now        func() time.Time
}

// Option is a function that configures a Client.
type Option func(*options) error

// defaults returns the default options.
func defaults() *options {
	return &options{
		autoRefreshInterval: constants.DefaultRefreshInterval,
		pendingKey:          uuid.NewString,
		now:                 time.Now,
	}
}

// apply applies the given options in order.
func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithLogger configures the logger used for catalog operations. Without it
// the logger attached to each call's context is used.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithAutoRefresh configures whether the collection is reloaded periodically.
func WithAutoRefresh(enabled bool) Option {
	return func(o *options) error {
		o.autoRefreshEnabled = enabled
		return nil
	}
}

// WithAutoRefreshInterval enables auto refresh at the given interval.
func WithAutoRefreshInterval(interval time.Duration) Option {
	return func(o *options) error {
		if interval <= 0 {
			return errors.NewValidationError("autoRefreshInterval", interval, "refresh interval must be positive")
		}
		o.autoRefreshEnabled = true
		o.autoRefreshInterval = interval
		return nil
	}
}

// WithPendingKeyFunc configures how temporary keys for pending adds are
// generated. The default is a random UUID.
func WithPendingKeyFunc(fn func() string) Option {
	return func(o *options) error {
		if fn == nil {
			return errors.NewValidationError("pendingKey", nil, "cannot be nil")
		}
		o.pendingKey = fn
		return nil
	}
}
