package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/quadra/internal/buildinfo"
	"github.com/aalvaropc/quadra/internal/httpapi"
	"github.com/aalvaropc/quadra/internal/infra/logger"
)

func serveCmd(g *globalFlags) *cobra.Command {
	var addr string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve calculations over HTTP with Prometheus metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g.workspace)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = ws.cfg.Server.Addr
			}

			log := logger.For("http")
			h := httpapi.NewHandlers(newEngine(ws.cfg),
				httpapi.WithLogger(log),
				httpapi.WithVersion(buildinfo.Version),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cmd.Printf("quadra listening on %s\n", addr)
			return httpapi.Serve(ctx, addr, httpapi.NewRouter(h), log)
		},
	}

	c.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to quadra.server.addr)")
	return c
}
