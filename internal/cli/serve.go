package cli

import (
	"net/netip"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonfocus/internal/config"
	"github.com/rshade/carbonfocus/internal/factors"
	"github.com/rshade/carbonfocus/internal/footprint"
	"github.com/rshade/carbonfocus/internal/server"
)

// NewServeCmd creates the serve command running the HTTP API until
// interrupted.
func NewServeCmd(ver string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the footprint HTTP API",
		Long: `Serve the footprint HTTP API.

Endpoints:
  POST /api/v1/footprint            calculate a footprint
  GET  /api/v1/countries            list countries
  GET  /api/v1/countries/{country}  show a country's emission factors
  GET  /healthz                     liveness
  GET  /metrics                     prometheus metrics

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Example: `  carbonfocus serve
  carbonfocus serve --addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			proxies := make([]netip.Prefix, 0, len(cfg.Server.TrustedProxies))
			for _, p := range cfg.Server.TrustedProxies {
				prefix, err := config.ParseTrustedProxy(p)
				if err != nil {
					return err
				}
				proxies = append(proxies, prefix)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			table := factors.Default()
			api := server.NewWebAPI(logger, server.Config{
				Addr:            cfg.Server.Addr,
				ShutdownTimeout: time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second,
				RateLimitRPS:    cfg.Server.RateLimitRPS,
				RateLimitBurst:  cfg.Server.RateLimitBurst,
				TrustedProxies:  proxies,
				Version:         ver,
			}, server.Dependencies{
				Calculator: footprint.New(table),
				Catalog:    table,
			})

			cmd.PrintErrf("Listening on %s\n", cfg.Server.Addr)
			return api.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from server.addr)")
	return cmd
}
