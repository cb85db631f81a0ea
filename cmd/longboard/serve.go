package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/longboard"
	"github.com/aretw0/longboard/internal/cli"
	httpAdapter "github.com/aretw0/longboard/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves every configured document over a JSON API, with Server-Sent Events for
frames and preview changes and Prometheus metrics on /metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer engine.Close()
		logger := engine.Logger()
		cfg := engine.Config()

		if err := engine.OpenAll(cmd.Context()); err != nil {
			return err
		}
		if ref, _ := cmd.Flags().GetString("doc"); ref != "" {
			glyph, _ := cmd.Flags().GetString("glyph")
			if _, err := cli.ResolveDocument(cmd.Context(), engine, ref, glyph); err != nil {
				return err
			}
		}

		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}
		opts := []httpAdapter.Option{
			httpAdapter.WithVersion(strings.TrimSpace(longboard.Version)),
			httpAdapter.WithLogger(logger),
		}
		if cfg.Server.Metrics {
			opts = append(opts, httpAdapter.WithMetrics(engine.Registry()))
		}

		srv := &http.Server{
			Addr:    addr,
			Handler: httpAdapter.NewHandler(engine.Manager(), opts...),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting Longboard Server", "address", addr, "documents", engine.Manager().Documents())
			serverErrors <- srv.ListenAndServe()
		}()

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)
		case <-sigCtx.Done():
			logger.Info("Start shutdown", "signal", sigCtx.Signal())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("Longboard Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on, overrides server.addr")
}
