package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sportsync/refassign/pkg/api"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the suggestion API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := &http.Server{
				Addr:    app.Cfg.Server.ListenAddr,
				Handler: api.NewServer(app.Service, app.Logger).Handler(),
			}

			errCh := make(chan error, 1)
			go func() {
				app.Logger.Info("HTTP API listening", zap.String("addr", server.Addr))
				errCh <- server.ListenAndServe()
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
			case <-stop:
				app.Logger.Info("Shutting down HTTP API")
				shutdownCtx, cancel := context.WithTimeout(app.Ctx, 10*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("shutdown failed: %w", err)
				}
			}

			return nil
		},
	}
}
