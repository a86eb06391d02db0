package document

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/lehigh-university-libraries/paperdigest/internal/apperror"
)

// ExtractText concatenates the plain text of every page in page order. No
// separator is added between pages. Pages whose text layer cannot be decoded
// are skipped.
func ExtractText(data []byte) (text string, err error) {
	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = apperror.InvalidDocument(fmt.Errorf("malformed PDF: %v", r))
		}
	}()

	if len(data) == 0 {
		return "", apperror.InvalidDocument(errors.New("empty PDF content"))
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperror.InvalidDocument(err)
	}

	var sb strings.Builder
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			slog.Warn("Skipping page with unreadable text layer", "page", i, "err", err)
			continue
		}
		sb.WriteString(pageText)
	}

	text = sb.String()
	if strings.TrimSpace(text) == "" {
		return "", apperror.NoTextFound()
	}

	slog.Debug("Extracted PDF text", "pages", numPages, "length", len(text))
	return text, nil
}
