package remove

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tourvault"
	"github.com/agentstation/tourvault/internal/appcontext"
	"github.com/agentstation/tourvault/pkg/errors"
	"github.com/agentstation/tourvault/pkg/gateway/gatewaytest"
	"github.com/agentstation/tourvault/pkg/logging"
	"github.com/agentstation/tourvault/pkg/videos"
)

func TestRemove(t *testing.T) {
	fake := gatewaytest.New(
		videos.Video{ID: "a"},
		videos.Video{ID: "b"},
		videos.Video{ID: "c"},
	)
	client, err := tourvault.New(fake, tourvault.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	app := &appcontext.Mock{
		ClientFunc: func() (tourvault.Client, error) { return client, nil },
	}

	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"a", "gone", "c"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "Removed a")
	assert.Contains(t, out.String(), "Removed gone")
	assert.Contains(t, out.String(), "1 videos remain")
	assert.Equal(t, []videos.Video{{ID: "b"}}, client.Videos())
	assert.Equal(t, []videos.Video{{ID: "b"}}, fake.Stored())
}

func TestRemove_ReportsFailures(t *testing.T) {
	fake := gatewaytest.New(videos.Video{ID: "a"})
	fake.DeleteErr = context.DeadlineExceeded
	client, err := tourvault.New(fake, tourvault.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	cmd := NewCommand(&appcontext.Mock{
		ClientFunc: func() (tourvault.Client, error) { return client, nil },
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"a"})

	err = cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1")
	assert.Equal(t, 1, client.Len())
}

func TestRemove_BoundedConcurrency(t *testing.T) {
	fake := gatewaytest.New()
	var (
		mu       sync.Mutex
		inFlight int
		maxSeen  int
	)
	fake.DeleteFunc = func(context.Context, string) error {
		mu.Lock()
		inFlight++
		maxSeen = max(maxSeen, inFlight)
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		return nil
	}
	client, err := tourvault.New(fake, tourvault.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	cmd := NewCommand(&appcontext.Mock{
		ClientFunc: func() (tourvault.Client, error) { return client, nil },
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--concurrency", "2", "a", "b", "c", "d", "e"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Equal(t, 5, fake.DeleteCalls())
	assert.LessOrEqual(t, maxSeen, 2)
}

func TestRemove_InvalidConcurrency(t *testing.T) {
	cmd := NewCommand(&appcontext.Mock{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--concurrency", "0", "a"})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
