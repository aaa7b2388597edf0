package upload

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	// Decoders for the image formats the validator accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"
)

// Preview is a displayable representation of a pending image: a data URI for
// inline embedding plus a terminal rendering built from half-block cells.
type Preview struct {
	Generation int
	DataURI    string
	Width      int
	Height     int
	Terminal   string
}

const (
	defaultPreviewCols = 40
	maxPreviewRows     = 20
)

// RenderPreview derives a preview for p. It is meant to run as its own task;
// the caller compares Preview.Generation against Validator.Latest before
// displaying, which keeps a slow render for a superseded selection from
// overwriting a newer one.
func RenderPreview(p *Pending, cols int) (Preview, error) {
	if p == nil {
		return Preview{}, ErrNoFileSelected
	}
	if cols <= 0 {
		cols = defaultPreviewCols
	}

	img, _, err := image.Decode(bytes.NewReader(p.Data))
	if err != nil {
		return Preview{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	// Each text row holds two pixel rows, so the height budget doubles.
	thumb := resize.Thumbnail(uint(cols), uint(maxPreviewRows*2), img, resize.Lanczos3)

	return Preview{
		Generation: p.Generation,
		DataURI:    "data:" + p.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(p.Data),
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Terminal:   renderBlocks(thumb),
	}, nil
}

// renderBlocks draws the image with "▀" cells, foreground carrying the upper
// pixel and background the lower one.
func renderBlocks(img image.Image) string {
	bounds := img.Bounds()
	var b strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexAt(img, x, y))
			if y+1 < bounds.Max.Y {
				style = style.Background(hexAt(img, x, y+1))
			}
			b.WriteString(style.Render("▀"))
		}
		if y+2 < bounds.Max.Y {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func hexAt(img image.Image, x, y int) lipgloss.Color {
	r, g, b, _ := img.At(x, y).RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8)))
}
