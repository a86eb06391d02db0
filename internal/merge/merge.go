// Package merge combines body text and OCR transcripts into one payload.
package merge

import "strings"

// OCRLabel separates body text from text recognized in figures.
const OCRLabel = "[Text extracted from graphs/images:]"

// Transcripts joins the non-empty trimmed transcripts with newlines.
func Transcripts(transcripts []string) string {
	kept := make([]string, 0, len(transcripts))
	for _, t := range transcripts {
		if t = strings.TrimSpace(t); t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, "\n")
}

// Combined returns the trimmed body text followed, when ocrText is not
// blank, by the OCR label line and the OCR block.
func Combined(body, ocrText string) string {
	body = strings.TrimSpace(body)
	ocrText = strings.TrimSpace(ocrText)
	if ocrText == "" {
		return body
	}
	return strings.TrimSpace(body + "\n\n" + OCRLabel + "\n" + ocrText)
}
