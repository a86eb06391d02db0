package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/paperdigest/internal/apperror"
	"github.com/lehigh-university-libraries/paperdigest/internal/config"
	"github.com/lehigh-university-libraries/paperdigest/internal/summarizing"
	"github.com/spf13/cobra"
)

func newSummarizeCmd() *cobra.Command {
	var (
		length string
		noOCR  bool
	)

	cmd := &cobra.Command{
		Use:   "summarize <file.pdf>",
		Short: "Summarize a local PDF",
		Long: `Runs the full pipeline on a local PDF: text extraction, OCR of embedded
figures, and a bullet-point summary from the configured provider.`,
		Example: `  paperdigest summarize paper.pdf --length long`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if noOCR {
				cfg.OCREngine = config.OCRNone
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			a, err := buildApp(cmd.Context(), cfg, true)
			if err != nil {
				return err
			}
			defer a.Close()

			// A scanned paper may have no text layer but readable figures.
			req := summarizing.Request{Length: summarizing.Length(length)}
			text, err := a.extraction.Text(data)
			switch {
			case err == nil:
				req.Text = text.Text
			case apperror.Is(err, apperror.KindNoTextFound):
				slog.Warn("PDF has no text layer, summarizing figure text only", "file", args[0])
			default:
				return err
			}

			imgs, err := a.extraction.Images(cmd.Context(), data)
			if err != nil {
				return err
			}
			req.OCRText = imgs.OCRText

			summary, err := a.summarizer.Summarize(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&length, "length", "l", string(summarizing.LengthMedium), "Summary length: short, medium or long")
	cmd.Flags().BoolVar(&noOCR, "no-ocr", false, "Skip OCR of embedded figures")

	return cmd
}
