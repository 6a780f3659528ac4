package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/tourvault/cmd/tourvault/cmd/add"
	"github.com/agentstation/tourvault/cmd/tourvault/cmd/list"
	"github.com/agentstation/tourvault/cmd/tourvault/cmd/remove"
	"github.com/agentstation/tourvault/cmd/tourvault/cmd/serve"
	"github.com/agentstation/tourvault/cmd/tourvault/cmd/version"
	"github.com/agentstation/tourvault/cmd/tourvault/cmd/watch"
	"github.com/agentstation/tourvault/internal/cmd/output"
	"github.com/agentstation/tourvault/pkg/errors"
)

// Command builds the root cobra command with all subcommands. main hands
// it to fang for execution.
func (a *App) Command() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tourvault",
		Short: "Browse and curate a remote video catalog",
		Long: `Tourvault keeps a local catalog of the videos held by a remote video
store. Videos are added by source URL and removed by id; every change is
confirmed by the store before the local catalog reflects it.

The catalog can be searched by title or description and is shown one page
at a time. A reference store is included for local use (tourvault serve).`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Catalog Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.tourvault.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, json, yaml, wide")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.String("base-url", "", "video store URL (default "+a.config.BaseURL+")")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// These flags are defined as persistent flags in Command, so errors
	// indicate programming errors.
	if configFile := mustGetString(cmd, "config"); configFile != "" {
		config, err := LoadConfig(configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		mustGetString(cmd, "format"),
		mustGetString(cmd, "log-level"),
		mustGetString(cmd, "base-url"),
	)

	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return err
	}

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Catalog commands
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(add.NewCommand(a))
	rootCmd.AddCommand(remove.NewCommand(a))
	rootCmd.AddCommand(watch.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(serve.NewCommand(a))
	rootCmd.AddCommand(version.NewCommand(a))
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(errors.WrapResource("get", "flag", name, err))
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(errors.WrapResource("get", "flag", name, err))
	}
	return val
}
