// Package watch provides the command that follows the catalog as it changes.
package watch

import (
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/agentstation/tourvault"
	"github.com/agentstation/tourvault/internal/appcontext"
	"github.com/agentstation/tourvault/internal/cmd/emoji"
	"github.com/agentstation/tourvault/pkg/errors"
	"github.com/agentstation/tourvault/pkg/query"
)

// NewCommand creates the watch command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "watch",
		GroupID: "core",
		Short:   "Reload the catalog periodically and report changes",
		Long: `Watch loads the catalog and reloads it at the configured refresh
interval (refresh_interval, default 5m) until interrupted. Each reload
prints the catalog size and how many videos match the search term.`,
		Example: `  tourvault watch
  TOURVAULT_REFRESH_INTERVAL=30s tourvault watch --search cats`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			search, _ := cmd.Flags().GetString("search")
			return run(cmd, app, search)
		},
	}

	cmd.Flags().StringP("search", "s", "", "Also report how many videos match this term")

	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, search string) error {
	client, err := app.Client()
	if err != nil {
		return err
	}

	view, unbind, err := query.Bind(client, query.WithPageSize(app.PageSize()))
	if err != nil {
		return err
	}
	defer unbind()
	view.SetSearchTerm(search)

	// Subscribed after Bind, so the view is current when a line is printed.
	r := &reporter{out: cmd.OutOrStdout(), view: view, search: search}
	unsubscribe := client.Subscribe(r.change)
	defer unsubscribe()
	client.OnError(r.failure)

	ctx := cmd.Context()
	if err := client.Load(ctx); err != nil {
		return err
	}

	if err := client.AutoRefreshOn(); err != nil {
		return err
	}
	defer func() { _ = client.AutoRefreshOff() }()

	<-ctx.Done()
	return nil
}

// reporter prints one line per change notification. Hooks run on the
// refresh goroutine, so writes are serialized.
type reporter struct {
	mu     sync.Mutex
	out    io.Writer
	view   *query.View
	search string
}

func (r *reporter) change(change tourvault.Change) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp := change.At.Format("15:04:05")
	if r.search == "" {
		fmt.Fprintf(r.out, "%s %s %s: %d videos\n", stamp, emoji.Success, change.Kind, len(change.Videos))
		return
	}
	fmt.Fprintf(r.out, "%s %s %s: %d videos, %d matching %q\n",
		stamp, emoji.Success, change.Kind, len(change.Videos), r.view.Page().Total, r.search)
}

func (r *reporter) failure(err *errors.OperationError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "%s %s\n", emoji.Warning, errors.UserMessage(err))
}
