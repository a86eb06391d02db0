package document

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/lehigh-university-libraries/paperdigest/internal/apperror"
	"github.com/lehigh-university-libraries/paperdigest/internal/testpdf"
)

func TestOrderImages(t *testing.T) {
	raw := []rawImage{
		{page: 3, objNr: 40, ext: "png"},
		{page: 1, objNr: 12, ext: "jpg"},
		{page: 3, objNr: 31, ext: "jpg"},
		{page: 1, objNr: 9, ext: "png"},
		{page: 2, objNr: 20, ext: "tif"},
		{page: 3, objNr: 35, ext: "png"},
	}

	images := orderImages(raw)

	expected := []struct {
		page  int
		index int
		ext   string
	}{
		{1, 1, "png"},
		{1, 2, "jpg"},
		{2, 1, "tif"},
		{3, 1, "jpg"},
		{3, 2, "png"},
		{3, 3, "png"},
	}

	if len(images) != len(expected) {
		t.Fatalf("Expected %d images, got %d", len(expected), len(images))
	}
	for i, want := range expected {
		got := images[i]
		if got.Page != want.page || got.Index != want.index || got.Ext != want.ext {
			t.Errorf("image %d: expected page=%d index=%d ext=%s, got page=%d index=%d ext=%s",
				i, want.page, want.index, want.ext, got.Page, got.Index, got.Ext)
		}
	}
}

func TestOrderImagesIndexing(t *testing.T) {
	raw := []rawImage{
		{page: 2, objNr: 5}, {page: 2, objNr: 4}, {page: 5, objNr: 1},
		{page: 1, objNr: 7}, {page: 5, objNr: 3}, {page: 2, objNr: 6},
	}

	images := orderImages(raw)
	if len(images) != len(raw) {
		t.Fatalf("Expected exactly %d entries, got %d", len(raw), len(images))
	}

	for i := range images {
		if i == 0 {
			if images[i].Index != 1 {
				t.Errorf("First image must have index 1, got %d", images[i].Index)
			}
			continue
		}
		prev, cur := images[i-1], images[i]
		if cur.Page < prev.Page {
			t.Errorf("Page numbers decreased at %d: %d -> %d", i, prev.Page, cur.Page)
		}
		if cur.Page != prev.Page && cur.Index != 1 {
			t.Errorf("Index must reset to 1 on page %d, got %d", cur.Page, cur.Index)
		}
		if cur.Page == prev.Page && cur.Index != prev.Index+1 {
			t.Errorf("Index must increase by one within page %d, got %d after %d", cur.Page, cur.Index, prev.Index)
		}
	}
}

func TestOrderImagesEmpty(t *testing.T) {
	images := orderImages(nil)
	if images == nil {
		t.Fatal("Expected empty non-nil slice")
	}
	if len(images) != 0 {
		t.Errorf("Expected no images, got %d", len(images))
	}
}

func TestExtractImagesInvalidDocument(t *testing.T) {
	for name, data := range map[string][]byte{
		"garbage": []byte("%%% not a pdf at all %%%"),
		"empty":   {},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractImages(data)
			if !apperror.Is(err, apperror.KindInvalidDocument) {
				t.Errorf("Expected InvalidDocument, got %v", err)
			}
		})
	}
}

func TestExtractImagesFromPDF(t *testing.T) {
	figures := []testpdf.Figure{
		{Width: 40, Height: 30},
		{Width: 50, Height: 20},
		{Width: 24, Height: 24},
	}
	data := testpdf.BuildWithImages(figures,
		testpdf.Page{Text: "Figure 1 and Figure 2", Figures: []int{0, 1}},
		testpdf.Page{Text: "Discussion without figures"},
		testpdf.Page{Figures: []int{1, 2}},
	)

	images, err := ExtractImages(data)
	if err != nil {
		t.Fatalf("ExtractImages() error = %v", err)
	}

	expected := []struct {
		page, index   int
		width, height int
	}{
		{1, 1, 40, 30},
		{1, 2, 50, 20},
		{3, 1, 50, 20},
		{3, 2, 24, 24},
	}
	if len(images) != len(expected) {
		t.Fatalf("Expected %d images, got %d", len(expected), len(images))
	}
	for i, want := range expected {
		got := images[i]
		if got.Page != want.page || got.Index != want.index {
			t.Errorf("image %d: expected page=%d index=%d, got page=%d index=%d", i, want.page, want.index, got.Page, got.Index)
		}
		if got.Ext != "png" {
			t.Errorf("image %d: expected png, got %q", i, got.Ext)
		}
		cfg, err := png.DecodeConfig(bytes.NewReader(got.Data))
		if err != nil {
			t.Errorf("image %d: not a PNG: %v", i, err)
			continue
		}
		if cfg.Width != want.width || cfg.Height != want.height {
			t.Errorf("image %d: expected %dx%d, got %dx%d", i, want.width, want.height, cfg.Width, cfg.Height)
		}
	}
}

func TestExtractImagesTextOnlyPDF(t *testing.T) {
	images, err := ExtractImages(testpdf.Build("No figures here.", "Nor here."))
	if err != nil {
		t.Fatalf("ExtractImages() error = %v", err)
	}
	if images == nil || len(images) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", images)
	}
}

func TestExtractImagesSkipsCorruptStream(t *testing.T) {
	figures := []testpdf.Figure{
		{Width: 4, Height: 4, Corrupt: true},
		{Width: 4, Height: 4},
		{Width: 8, Height: 6},
	}
	data := testpdf.BuildWithImages(figures,
		testpdf.Page{Text: "A broken figure next to a good one", Figures: []int{0, 1}},
		testpdf.Page{Figures: []int{2}},
	)

	images, err := ExtractImages(data)
	if err != nil {
		t.Fatalf("Expected the corrupt image to be skipped, got error %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("Expected 2 images, got %d", len(images))
	}
	if images[0].Page != 1 || images[0].Index != 1 {
		t.Errorf("Expected the good image at page 1 index 1, got page=%d index=%d", images[0].Page, images[0].Index)
	}
	if images[1].Page != 2 || images[1].Index != 1 {
		t.Errorf("Expected page 2 index 1, got page=%d index=%d", images[1].Page, images[1].Index)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(images[0].Data))
	if err != nil || cfg.Width != 4 || cfg.Height != 4 {
		t.Errorf("Expected a 4x4 PNG from the good stream, got %+v (err %v)", cfg, err)
	}
}
