// Package serve provides the command that runs the reference video store.
package serve

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/tourvault/internal/appcontext"
	"github.com/agentstation/tourvault/internal/server"
)

// NewCommand creates the serve command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "management",
		Short:   "Run the reference video store",
		Long: `Serve runs an HTTP video store that speaks the protocol the catalog
client expects:

  GET    /videos        list all videos in insertion order
  POST   /videos        create a video from {"url": "..."}
  DELETE /videos/{id}   delete a video
  GET    /health        liveness and record count

Titles, descriptions and thumbnails are looked up through YouTube oEmbed
unless --no-enrich is given. With --data-file the records are kept in a
YAML file that is rewritten after every change.`,
		Example: `  # In-memory store on :8000
  tourvault serve

  # Persistent store on a custom address without metadata lookups
  tourvault serve --listen :9000 --data-file ~/.tourvault/videos.yaml --no-enrich`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromFlags(cmd, app.ServerConfig())
			srv, err := server.New(cfg, app.Logger())
			if err != nil {
				return err
			}
			return srv.ListenAndServe(cmd.Context())
		},
	}

	defaults := app.ServerConfig()
	cmd.Flags().String("listen", defaults.Addr, "Listen address")
	cmd.Flags().String("data-file", defaults.DataFile, "YAML file holding the records (empty keeps them in memory)")
	cmd.Flags().String("oembed-endpoint", defaults.OEmbedEndpoint, "oEmbed endpoint used for metadata lookups")
	cmd.Flags().Bool("no-enrich", !defaults.Enrich, "Skip metadata lookups and use placeholder metadata")
	cmd.Flags().Bool("no-cors", false, "Disable CORS headers")
	cmd.Flags().StringSlice("cors-origins", defaults.CORSOrigins, "Allowed CORS origins (default localhost development ports)")
	cmd.Flags().Int("rate-limit", defaults.RateLimit, "Requests per minute per IP (0 to disable)")
	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	return cmd
}

// configFromFlags overlays explicitly set flags on cfg.
func configFromFlags(cmd *cobra.Command, cfg server.Config) server.Config {
	flags := cmd.Flags()
	if flags.Changed("listen") {
		cfg.Addr, _ = flags.GetString("listen")
	}
	if flags.Changed("data-file") {
		cfg.DataFile, _ = flags.GetString("data-file")
	}
	if flags.Changed("oembed-endpoint") {
		cfg.OEmbedEndpoint, _ = flags.GetString("oembed-endpoint")
	}
	if flags.Changed("no-enrich") {
		noEnrich, _ := flags.GetBool("no-enrich")
		cfg.Enrich = !noEnrich
	}
	if noCORS, _ := flags.GetBool("no-cors"); noCORS {
		cfg.CORSEnabled = false
	}
	if flags.Changed("cors-origins") {
		cfg.CORSOrigins, _ = flags.GetStringSlice("cors-origins")
	}
	if flags.Changed("rate-limit") {
		cfg.RateLimit, _ = flags.GetInt("rate-limit")
	}
	if flags.Changed("read-timeout") {
		cfg.ReadTimeout, _ = flags.GetDuration("read-timeout")
	}
	if flags.Changed("write-timeout") {
		cfg.WriteTimeout, _ = flags.GetDuration("write-timeout")
	}
	if flags.Changed("idle-timeout") {
		cfg.IdleTimeout, _ = flags.GetDuration("idle-timeout")
	}
	return cfg
}
