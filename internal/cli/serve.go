package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagkit/pkg/server"
)

// serveCommand creates the preview server command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP preview server",
		Long: `Run the HTTP preview server.

POST a heatmap or legend as JSON to /v1/heatmaps or /v1/legends; the response
carries an id whose rendering is served from /v1/artifacts/{id}. Rendered
artifacts and published ids live in the configured cache backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, false)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			srv := server.New(server.Config{
				Addr:           addr,
				HeatmapOptions: c.Config.Heatmap,
				LegendOptions:  c.Config.Legend,
			}, runner, loggerFromContext(ctx))
			defer srv.Close()

			out := newPrinter(cmd.OutOrStdout())
			out.info("Serving on %s", StyleLink.Render("http://"+addr))
			out.keyValue("Cache", c.Config.Cache.Backend)
			out.nextStep("Try", fmt.Sprintf(`curl -d '{"data": [[1, 2], [3, 4]]}' http://%s/v1/heatmaps`, addr))
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")

	return cmd
}
