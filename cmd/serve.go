package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lehigh-university-libraries/paperdigest/internal/handlers"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start web server for the summarization interface",
		Long: `Starts the Paperdigest web interface and JSON API on the specified port.

The interface lets you upload a research paper, review the extracted text and
figure text, and generate a short, medium or long summary.`,
		Example: `  # Start server on default port 5000
  paperdigest serve

  # Start server on custom port
  paperdigest serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			a, err := buildApp(cmd.Context(), cfg, true)
			if err != nil {
				return err
			}
			defer a.Close()

			handler := handlers.New(handlers.Deps{
				Extraction:     a.extraction,
				Summarizer:     a.summarizer,
				Provider:       a.provider,
				MaxUploadBytes: cfg.MaxUploadBytes(),
			})

			addr := ":" + cfg.Port
			server := &http.Server{
				Addr:              addr,
				Handler:           handler.Router(cfg.CORSAllowedOrigins),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Paperdigest interface available",
					"addr", addr,
					"url", "http://localhost"+addr,
					"provider", a.provider.Name(),
					"model", cfg.Model(),
					"ocr", cfg.OCREngine)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringP("port", "p", "5000", "Port to listen on (overrides PORT)")

	return cmd
}
