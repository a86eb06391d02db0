// Package document reads uploaded PDFs: the text layer of every page and the
// raster images embedded in them.
package document

// Image is a raster image embedded in a PDF page.
type Image struct {
	Page  int    // 1-based page number
	Index int    // 1-based position among the images of Page
	Ext   string // container format tag, e.g. "jpg" or "png"
	Data  []byte // encoded image bytes
}

// Extractor reads text and images from in-memory PDF bytes. It holds no
// state and is safe for concurrent use.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) ExtractText(data []byte) (string, error) {
	return ExtractText(data)
}

func (e *Extractor) ExtractImages(data []byte) ([]Image, error) {
	return ExtractImages(data)
}
