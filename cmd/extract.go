package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/paperdigest/internal/apperror"
	"github.com/lehigh-university-libraries/paperdigest/internal/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// extractOutput is what the extract command prints.
type extractOutput struct {
	Text    string                  `json:"text" yaml:"text"`
	Images  []models.ExtractedImage `json:"images,omitempty" yaml:"images,omitempty"`
	OCRText string                  `json:"ocr_text,omitempty" yaml:"ocr_text,omitempty"`
}

func newExtractCmd() *cobra.Command {
	var (
		withImages bool
		withData   bool
		format     string
	)

	cmd := &cobra.Command{
		Use:   "extract <file.pdf>",
		Short: "Extract body text and figure text from a local PDF",
		Example: `  # Print the text layer as JSON
  paperdigest extract paper.pdf

  # Include figures and their OCR text, as YAML
  paperdigest extract paper.pdf --images --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unsupported format %q (use json or yaml)", format)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.ValidateOCR(); err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			a, err := buildApp(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}
			defer a.Close()

			// Scanned papers have no text layer; their figures may still be read.
			var out extractOutput
			text, err := a.extraction.Text(data)
			switch {
			case err == nil:
				out.Text = text.Text
			case withImages && apperror.Is(err, apperror.KindNoTextFound):
				slog.Warn("PDF has no text layer, extracting figures only", "file", args[0])
			default:
				return err
			}

			if withImages {
				imgs, err := a.extraction.Images(cmd.Context(), data)
				if err != nil {
					return err
				}
				out.Images = imgs.Images
				out.OCRText = imgs.OCRText
				if !withData {
					for i := range out.Images {
						out.Images[i].Base64 = ""
					}
				}
			}

			return writeOutput(cmd.OutOrStdout(), format, out)
		},
	}

	cmd.Flags().BoolVar(&withImages, "images", false, "Also extract embedded images and OCR their text")
	cmd.Flags().BoolVar(&withData, "base64", false, "Include base64 image data in the output (with --images)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")

	return cmd
}

func writeOutput(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
