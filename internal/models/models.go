package models

// ExtractedImage is an embedded PDF image as sent to clients
type ExtractedImage struct {
	Page       int    `json:"page" yaml:"page"`
	ImageIndex int    `json:"image_index" yaml:"image_index"`
	Ext        string `json:"ext" yaml:"ext"`
	Base64     string `json:"base64" yaml:"base64,omitempty"`
}

// TextResponse is returned by /api/extract-text
type TextResponse struct {
	Text string `json:"text" yaml:"text"`
}

// ImagesResponse is returned by /api/extract-images
type ImagesResponse struct {
	Images  []ExtractedImage `json:"images" yaml:"images"`
	OCRText string           `json:"ocr_text" yaml:"ocr_text"`
}

// SummaryResponse is returned by /api/summarize
type SummaryResponse struct {
	Summary string `json:"summary" yaml:"summary"`
}

// ErrorResponse is the envelope for every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// AuthResponse reports whether the summarization provider accepts our credentials
type AuthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

const (
	AuthOK    = "OK"
	AuthError = "ERROR"
)
