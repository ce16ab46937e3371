package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/offerte-app/offerte/internal/models"
)

// A4 portrait in millimeters.
const (
	pageWidth   = 210.0
	pageHeight  = 297.0
	photoMargin = 10.0
)

// Artifact is the generated binary document held by the application until
// the underlying document changes.
type Artifact struct {
	PDF       []byte
	Filename  string
	CreatedAt time.Time
}

// Builder composes the multi-page PDF from the captured preview and the
// attached photos.
type Builder struct {
	capturer Capturer
}

func NewBuilder(capturer Capturer) *Builder {
	return &Builder{capturer: capturer}
}

// Build captures previewHTML as the first page and appends one page per
// photo, each scaled to fit inside the margins preserving aspect ratio and
// centered. Photo pages follow attachment order. Any failure aborts the
// whole export; the caller keeps whatever artifact it held before.
func (b *Builder) Build(ctx context.Context, previewHTML, quoteNumber string, fotos []models.Photo) (*Artifact, error) {
	shot, err := b.capturer.CapturePNG(ctx, previewHTML)
	if err != nil {
		return nil, err
	}
	shotCfg, _, err := image.DecodeConfig(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("export: decoding preview capture: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	// Page one: the preview scaled to full page width, like the on-screen
	// document.
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("preview", opts, bytes.NewReader(shot))
	previewH := float64(shotCfg.Height) * pageWidth / float64(shotCfg.Width)
	pdf.ImageOptions("preview", 0, 0, pageWidth, previewH, false, opts, 0, "")

	for i, foto := range fotos {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(foto.Data))
		if err != nil {
			return nil, fmt.Errorf("export: decoding photo %d (%s): %w", i+1, foto.Naam, err)
		}
		pdf.AddPage()
		x, y, w, h := fitCentered(float64(cfg.Width), float64(cfg.Height))
		fopts := gofpdf.ImageOptions{ImageType: imageType(foto.MimeType)}
		name := fmt.Sprintf("foto-%d", i+1)
		pdf.RegisterImageOptionsReader(name, fopts, bytes.NewReader(foto.Data))
		pdf.ImageOptions(name, x, y, w, h, false, fopts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: writing pdf: %w", err)
	}
	return &Artifact{
		PDF:       buf.Bytes(),
		Filename:  quoteNumber + ".pdf",
		CreatedAt: time.Now(),
	}, nil
}

// fitCentered scales an image of w x h pixels to fit within the page
// margins, preserving aspect ratio, and centers it.
func fitCentered(w, h float64) (x, y, fw, fh float64) {
	maxW := pageWidth - 2*photoMargin
	maxH := pageHeight - 2*photoMargin
	ratio := maxW / w
	if r := maxH / h; r < ratio {
		ratio = r
	}
	fw = w * ratio
	fh = h * ratio
	x = (pageWidth - fw) / 2
	y = (pageHeight - fh) / 2
	return
}

func imageType(mime string) string {
	switch mime {
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	default:
		return "JPG"
	}
}
