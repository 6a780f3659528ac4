// Package add provides the command that submits videos to the store.
package add

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/tourvault/internal/appcontext"
	"github.com/agentstation/tourvault/internal/cmd/emoji"
	"github.com/agentstation/tourvault/pkg/errors"
)

// NewCommand creates the add command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "add URL...",
		GroupID: "core",
		Short:   "Add videos by source URL",
		Long: `Add submits each URL to the video store, one at a time. The store derives
the video's id, title and thumbnail. A URL that fails is reported together
with the reason so it can be corrected and submitted again.`,
		Example: `  tourvault add https://youtu.be/dQw4w9WgXcQ
  tourvault add https://youtu.be/a https://youtu.be/b`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, args)
		},
	}
}

func run(cmd *cobra.Command, app appcontext.Interface, urls []string) error {
	client, err := app.Client()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, sourceURL := range urls {
		video, err := client.Add(cmd.Context(), sourceURL)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s %s\n", emoji.Error, errors.UserMessage(err))
			continue
		}
		fmt.Fprintf(out, "%s Added %s (%s)\n", emoji.Success, video.ID, video.Title)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d videos could not be added", failed, len(urls))
	}
	return nil
}
