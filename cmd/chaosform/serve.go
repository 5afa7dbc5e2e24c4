package main

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

	"github.com/goliatone/go-chaosform"
	"github.com/goliatone/go-chaosform/pkg/httpapi"
	"github.com/goliatone/go-chaosform/pkg/renderers/html"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the experiment registry over HTTP",
		Long: `Starts an HTTP server exposing the kinds, their initial values, HTML form
fragments, validation, icons, the OpenAPI components and Prometheus metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("listen") {
				a.cfg.Listen = listen
			}
			forms, err := html.New(html.WithIcons(chaosform.IconSource(a.registry)))
			if err != nil {
				return err
			}
			handler := httpapi.NewHandler(a.registry,
				httpapi.WithLogger(a.logger),
				httpapi.WithTranslator(a.cfg.Locale, a.translator()),
				httpapi.WithFormRenderer(forms),
			)

			srv := &http.Server{
				Addr:              a.cfg.Listen,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			serverErrors := make(chan error, 1)
			go func() {
				a.logger.Info("starting chaosform server", "addr", srv.Addr)
				serverErrors <- srv.ListenAndServe()
			}()

			shutdown := make(chan os.Signal, 1)
			signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(shutdown)

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serve: %w", err)
			case sig := <-shutdown:
				a.logger.Info("shutting down", "signal", sig.String())
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					a.logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
					return srv.Close()
				}
				a.logger.Info("server stopped")
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "Address to listen on (overrides config)")
	return cmd
}
