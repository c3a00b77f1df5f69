package cli

import (
	"github.com/spf13/cobra"

	"release-notes-drafter/internal/server"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and changelog server",
		Long: `Start the HTTP API and changelog server.

Endpoints:
  POST /api/compare            Resolve a range and return commits and files
  POST /api/generate           Draft release notes for a comparison
  GET  /api/releases           List published releases, newest first
  POST /api/releases           Publish a release
  GET  /api/releases/{id}      Get a published release
  GET  /changelog              Public changelog page
  GET  /changelog/{id}         Public release page`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.setup(cmd.Context())
			if err != nil {
				return err
			}
			defer d.Close()

			if addr != "" {
				a.config.ServerAddr = addr
			}
			return server.New(a.config, d).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides RND_SERVER_ADDR")

	return cmd
}
