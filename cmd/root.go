package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lehigh-university-libraries/paperdigest/internal/config"
	"github.com/spf13/cobra"
)

var configFile string

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paperdigest",
		Short: "Research paper summarizer with OCR for figures",
		Long: `Paperdigest extracts the text of a research paper PDF, reads the text
inside its figures with OCR, and asks an LLM for a bullet-point summary.

It runs as a web service (serve) or directly against local files.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML config file")

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newExtractCmd())
	cmd.AddCommand(newSummarizeCmd())
	cmd.AddCommand(newCheckAuthCmd())

	return cmd
}

// loadConfig resolves configuration for cmd and applies the log level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	return cfg, nil
}
