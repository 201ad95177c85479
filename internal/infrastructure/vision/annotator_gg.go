package vision

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"complaint-bot/internal/domain/entity"
	"complaint-bot/internal/domain/port"
)

// GGAnnotator рисует рамки средствами fogleman/gg, без cgo
type GGAnnotator struct {
	fontFace font.Face
}

// NewGGAnnotator создаёт аннотатор. При пустом fontPath используется встроенный шрифт gg.
func NewGGAnnotator(fontPath string, fontSize float64) (*GGAnnotator, error) {
	a := &GGAnnotator{}
	if fontPath == "" {
		return a, nil
	}
	face, err := loadFontFace(fontPath, fontSize)
	if err != nil {
		return nil, err
	}
	a.fontFace = face
	return a, nil
}

// Bounds читает только заголовок изображения
func (a *GGAnnotator) Bounds(imageData []byte) (int, int, error) {
	if len(imageData) == 0 {
		return 0, 0, ErrEmptyImage
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// HighlightDefects рисует пронумерованные рамки и возвращает PNG
func (a *GGAnnotator) HighlightDefects(imageData []byte, result *entity.InspectionResult) ([]byte, error) {
	if len(imageData) == 0 {
		return nil, ErrEmptyImage
	}
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	dc := gg.NewContextForImage(img)
	if a.fontFace != nil {
		dc.SetFontFace(a.fontFace)
	}

	if result != nil {
		for i, area := range result.Areas {
			b := area.Box
			dc.SetColor(boxColor)
			dc.SetLineWidth(boxLineWidth)
			dc.DrawRectangle(b.X1, b.Y1, b.Width(), b.Height())
			dc.Stroke()

			label := areaLabel(i)
			tw, th := dc.MeasureString(label)
			dc.DrawRectangle(b.X1, b.Y1-th-labelPadding, tw+2*labelPadding, th+labelPadding)
			dc.Fill()

			dc.SetColor(labelColor)
			dc.DrawString(label, b.X1+labelPadding, b.Y1-2)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}

var _ port.Annotator = (*GGAnnotator)(nil)
