// Package testpdf builds small, valid PDF documents for tests.
package testpdf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"strings"
)

// Figure is an 8-bit DeviceGray image XObject.
type Figure struct {
	Width, Height int
	// Corrupt writes a FlateDecode stream that does not inflate.
	Corrupt bool
}

// Page is one page of BuildWithImages. Figures holds indexes into the
// figure list; the same figure may be drawn on several pages.
type Page struct {
	Text    string
	Figures []int
}

// Build returns a PDF with one page per entry of pages. Each page shows its
// text on a single line in Helvetica; an empty entry produces a page with no
// text operators at all.
func Build(pages ...string) []byte {
	pp := make([]Page, len(pages))
	for i, text := range pages {
		pp[i] = Page{Text: text}
	}
	return BuildWithImages(nil, pp...)
}

// BuildWithImages is Build with image XObjects. Each figure is written once
// and referenced from the resources of every page that draws it.
func BuildWithImages(figures []Figure, pages ...Page) []byte {
	var objects []string

	// 1: catalog, 2: page tree, 3: font, then one object per figure, then a
	// (page, contents) pair per page.
	firstPage := 4 + len(figures)
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", firstPage+2*i)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)

	for i, f := range figures {
		stream := []byte("this is not a zlib stream")
		if !f.Corrupt {
			stream = deflate(pixels(i, f.Width, f.Height))
		}
		objects = append(objects, fmt.Sprintf(
			"<< /Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /DeviceGray /BitsPerComponent 8 /Filter /FlateDecode /Length %d >>\nstream\n%s\nendstream",
			f.Width, f.Height, len(stream), stream))
	}

	for i, p := range pages {
		var content, xobjects strings.Builder
		for j, fig := range p.Figures {
			fmt.Fprintf(&xobjects, " /Im%d %d 0 R", fig+1, 4+fig)
			fmt.Fprintf(&content, "q\n64 0 0 64 %d 600 cm\n/Im%d Do\nQ\n", 72+80*j, fig+1)
		}
		if p.Text != "" {
			fmt.Fprintf(&content, "BT\n/F1 12 Tf\n72 720 Td\n(%s) Tj\nET\n", escape(p.Text))
		}
		if content.Len() == 0 {
			content.WriteString("0 0 m\n")
		}

		resources := "<< /Font << /F1 3 0 R >>"
		if xobjects.Len() > 0 {
			resources += " /XObject <<" + xobjects.String() + " >>"
		}
		resources += " >>"

		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources %s /Contents %d 0 R >>", resources, firstPage+2*i+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// pixels fills a gradient seeded by the figure number so no two figures
// share a stream.
func pixels(seed, w, h int) []byte {
	b := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b[y*w+x] = byte(x*7 + y*13 + seed*31)
		}
	}
	return b
}

func deflate(b []byte) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, _ = zw.Write(b)
	_ = zw.Close()
	return buf.Bytes()
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
