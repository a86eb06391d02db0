package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/lehigh-university-libraries/paperdigest/internal/apperror"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// Keep pdfcpu from creating a config directory under $HOME.
	api.DisableConfigDir()
}

// rawImage is an image as reported by the parser, before ordering.
type rawImage struct {
	page  int
	objNr int
	ext   string
	data  []byte
}

// ExtractImages returns every embedded raster image, ordered by page and
// then by object number within the page. Index restarts at 1 on each page.
// A document without images yields an empty, non-nil slice. Only a document
// that cannot be parsed is an error; an image that fails to decode is logged
// and left out.
func ExtractImages(data []byte) (images []Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			images = nil
			err = apperror.InvalidDocument(fmt.Errorf("malformed PDF: %v", r))
		}
	}()

	if len(data) == 0 {
		return nil, apperror.InvalidDocument(errors.New("empty PDF content"))
	}

	conf := model.NewDefaultConfiguration()
	conf.Cmd = model.EXTRACTIMAGES
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, apperror.InvalidDocument(err)
	}

	var raw []rawImage
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		for objNr, img := range pageImages(ctx, pageNr) {
			if img.Thumb || img.Reader == nil {
				continue
			}
			b, err := io.ReadAll(img)
			if err != nil {
				slog.Warn("Skipping unreadable image", "page", pageNr, "obj", objNr, "err", err)
				continue
			}
			raw = append(raw, rawImage{
				page:  pageNr,
				objNr: objNr,
				ext:   strings.ToLower(img.FileType),
				data:  b,
			})
		}
	}

	images = orderImages(raw)
	slog.Debug("Extracted PDF images", "pages", ctx.PageCount, "count", len(images))
	return images, nil
}

// pageImages decodes the images on one page. pdfcpu gives up on the whole
// page at the first bad stream, so on failure each image object is decoded
// on its own and the broken ones are skipped.
func pageImages(ctx *model.Context, pageNr int) map[int]model.Image {
	m, err := safely(func() (map[int]model.Image, error) {
		return pdfcpu.ExtractPageImages(ctx, pageNr, false)
	})
	if err == nil {
		return m
	}
	slog.Debug("Page image extraction failed, retrying per image", "page", pageNr, "err", err)

	m = map[int]model.Image{}
	for _, objNr := range pdfcpu.ImageObjNrs(ctx, pageNr) {
		obj := ctx.Optimize.ImageObjects[objNr]
		if obj == nil {
			continue
		}
		img, err := safely(func() (*model.Image, error) {
			return pdfcpu.ExtractImage(ctx, obj.ImageDict, false, obj.ResourceNames[pageNr-1], objNr, false)
		})
		if err != nil {
			slog.Warn("Skipping undecodable image", "page", pageNr, "obj", objNr, "err", err)
			continue
		}
		if img != nil {
			img.PageNr = pageNr
			m[objNr] = *img
		}
	}
	return m
}

// safely runs fn, turning a parser panic into an error.
func safely[T any](fn func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic decoding image: %v", r)
		}
	}()
	return fn()
}

// orderImages sorts page-major, object number minor, and numbers images
// from 1 within each page.
func orderImages(raw []rawImage) []Image {
	sort.SliceStable(raw, func(i, j int) bool {
		if raw[i].page != raw[j].page {
			return raw[i].page < raw[j].page
		}
		return raw[i].objNr < raw[j].objNr
	})

	images := make([]Image, 0, len(raw))
	page, index := 0, 0
	for _, r := range raw {
		if r.page != page {
			page, index = r.page, 0
		}
		index++
		images = append(images, Image{
			Page:  r.page,
			Index: index,
			Ext:   r.ext,
			Data:  r.data,
		})
	}
	return images
}
