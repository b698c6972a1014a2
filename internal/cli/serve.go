package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/ntwkui/ntwk/internal/server"
	"github.com/ntwkui/ntwk/pkg/observability"
)

// serveCommand creates the serve command for the browser canvas.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the editor canvas over HTTP",
		Long: `Serve the editor canvas over HTTP.

Open the printed address in a browser to place nodes and edges with the
mouse. The session lives in memory; download it as a gesture script from
/api/script and replay it later with "ntwk render". Prometheus metrics
are served at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			srv := server.New(c.Config, loggerFromContext(cmd.Context()))

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			m := observability.NewMetrics(reg, observability.Editor(), observability.Render())
			observability.SetEditorHooks(m)
			observability.SetRenderHooks(m)
			srv.EnableMetrics(reg)

			printInfo("Serving canvas on %s", StyleLink.Render("http://"+addr))
			printKeyValue("session", srv.Session())
			printNextStep("Save the session", "curl -o session.toml http://"+addr+"/api/script")

			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	return cmd
}
