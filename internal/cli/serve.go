package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jarvis/internal/server"
)

// ShutdownTimeout bounds graceful shutdown of the HTTP server.
const ShutdownTimeout = 5 * time.Second

func (c *CLI) newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the assistant over HTTP",
		Long: `Serve the assistant over HTTP until interrupted.

  POST /v1/utterances  {"text": "...", "voice": false}
  GET  /v1/tasks       current batch
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			a, err := c.build(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			e := server.New(a.assistant, c.log.Named("http"))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				if !c.quiet {
					fmt.Fprintf(c.Out, "listening on %s\n", addr)
				}
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
				defer cancel()
				c.log.Info("shutting down", zap.String("addr", addr))
				return e.Shutdown(shutdownCtx)
			})
			if err := g.Wait(); err != nil {
				return backendError(err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
