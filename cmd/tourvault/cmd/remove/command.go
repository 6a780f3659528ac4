// Package remove provides the command that deletes videos from the store.
package remove

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/tourvault/internal/appcontext"
	"github.com/agentstation/tourvault/internal/cmd/emoji"
	"github.com/agentstation/tourvault/pkg/constants"
	"github.com/agentstation/tourvault/pkg/errors"
)

// NewCommand creates the remove command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove ID...",
		Aliases: []string{"rm"},
		GroupID: "core",
		Short:   "Remove videos by id",
		Long: `Remove deletes each video from the store concurrently. An id given more
than once is deleted with a single request. A video the store no longer
has counts as removed.`,
		Example: `  tourvault remove dQw4w9WgXcQ
  tourvault rm a b c`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			concurrency, _ := cmd.Flags().GetInt("concurrency")
			if concurrency < 1 {
				return errors.NewValidationError("concurrency", concurrency, "must be at least 1")
			}
			return run(cmd, app, args, concurrency)
		},
	}

	cmd.Flags().IntP("concurrency", "j", constants.DefaultRemoveConcurrency,
		"Maximum number of deletes in flight")

	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, ids []string, concurrency int) error {
	client, err := app.Client()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := client.Load(ctx); err != nil {
		return err
	}

	// Every id is attempted, so per-id failures are collected rather than
	// returned to the group.
	results := make([]error, len(ids))
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, id := range ids {
		g.Go(func() error {
			results[i] = client.Remove(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	out := cmd.OutOrStdout()
	failed := 0
	for i, id := range ids {
		if err := results[i]; err != nil {
			failed++
			fmt.Fprintf(out, "%s %s\n", emoji.Error, errors.UserMessage(err))
			continue
		}
		fmt.Fprintf(out, "%s Removed %s\n", emoji.Success, id)
	}
	fmt.Fprintf(out, "%d videos remain\n", client.Len())

	if failed > 0 {
		return fmt.Errorf("%d of %d videos could not be removed", failed, len(ids))
	}
	return nil
}
