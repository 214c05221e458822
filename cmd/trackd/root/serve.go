package root

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sandeepkv93/trackd/internal/httpapi"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tracker over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := openEnv(flags, openOptions{logToStderr: true})
			if err != nil {
				return err
			}
			defer cleanup()

			if addr == "" {
				addr = e.cfg.ListenAddr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			gin.SetMode(gin.ReleaseMode)
			router := httpapi.NewRouter(e.store, httpapi.RouterOptions{Logger: e.log, CORSOrigins: e.cfg.CORSOrigins})
			e.log.Info("starting trackd api", zap.String("addr", addr), zap.String("backend", e.cfg.Backend))
			return httpapi.NewServer(addr, router, e.log).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
