// Package version provides the version command.
package version

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/tourvault/internal/appcontext"
	"github.com/agentstation/tourvault/internal/cmd/output"
)

// Info is the build information printed by the version command.
type Info struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
	BuiltBy string `json:"built_by" yaml:"built_by"`
}

// TableData implements output.Tabular as a property list.
func (i Info) TableData(bool) output.Data {
	return output.Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"Version", i.Version},
			{"Commit", i.Commit},
			{"Built", i.Date},
			{"Built By", i.BuiltBy},
		},
	}
}

// NewCommand creates the version command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		GroupID: "management",
		Short:   "Show version information",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := Info{
				Version: app.Version(),
				Commit:  app.Commit(),
				Date:    app.Date(),
				BuiltBy: app.BuiltBy(),
			}
			format := output.DetectFormat(app.OutputFormat())
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), info)
		},
	}
}
