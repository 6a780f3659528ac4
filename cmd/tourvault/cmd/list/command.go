// Package list provides the command that pages through the catalog.
package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/tourvault/internal/appcontext"
	"github.com/agentstation/tourvault/internal/cmd/output"
	"github.com/agentstation/tourvault/pkg/query"
)

// NewCommand creates the list command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		GroupID: "core",
		Short:   "List videos one page at a time",
		Long: `List loads the catalog from the video store and prints one page of it.

A search term keeps only videos whose title or description contains it,
ignoring case. Pages are counted over the matching videos.`,
		Example: `  tourvault list                     # First page
  tourvault list --page 2            # Second page
  tourvault list --search cats       # Videos mentioning cats
  tourvault list -o json             # Page as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			search, _ := cmd.Flags().GetString("search")
			page, _ := cmd.Flags().GetInt("page")
			pageSize, _ := cmd.Flags().GetInt("page-size")
			return run(cmd, app, search, page, pageSize)
		},
	}

	cmd.Flags().StringP("search", "s", "", "Only show videos whose title or description contains this term")
	cmd.Flags().IntP("page", "p", 1, "Page to show")
	cmd.Flags().Int("page-size", 0, "Videos per page (default from config)")

	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, search string, page, pageSize int) error {
	if pageSize <= 0 {
		pageSize = app.PageSize()
	}

	client, err := app.Client()
	if err != nil {
		return err
	}

	view, unsubscribe, err := query.Bind(client,
		query.WithPageSize(pageSize),
		query.WithMaxVisiblePages(app.MaxVisiblePages()),
	)
	if err != nil {
		return err
	}
	defer unsubscribe()

	if err := client.Load(cmd.Context()); err != nil {
		return err
	}

	view.SetSearchTerm(search)
	view.SetPage(page)

	format := output.DetectFormat(app.OutputFormat())
	return output.FormatPage(cmd.OutOrStdout(), view.Page(), format)
}
