//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"image"

	"gocv.io/x/gocv"

	"complaint-bot/internal/domain/entity"
	"complaint-bot/internal/domain/port"
)

// GoCVAnnotator рисует рамки через OpenCV
type GoCVAnnotator struct {
	FontScale float64
}

// NewGoCVAnnotator создаёт аннотатор на OpenCV.
func NewGoCVAnnotator() (*GoCVAnnotator, error) {
	return &GoCVAnnotator{FontScale: 0.7}, nil
}

// Bounds декодирует изображение и возвращает его размер
func (a *GoCVAnnotator) Bounds(imageData []byte) (int, int, error) {
	mat, err := decodeToMat(imageData)
	if err != nil {
		return 0, 0, err
	}
	defer mat.Close()
	return mat.Cols(), mat.Rows(), nil
}

// HighlightDefects рисует пронумерованные рамки и возвращает PNG
func (a *GoCVAnnotator) HighlightDefects(imageData []byte, result *entity.InspectionResult) ([]byte, error) {
	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	if result != nil {
		for i, area := range result.Areas {
			rect := area.Box.Rect()
			gocv.Rectangle(&mat, rect, boxColor, boxLineWidth)

			label := areaLabel(i)
			size := gocv.GetTextSize(label, gocv.FontHersheySimplex, a.FontScale, 2)
			tag := image.Rect(
				rect.Min.X,
				rect.Min.Y-size.Y-2*labelPadding,
				rect.Min.X+size.X+2*labelPadding,
				rect.Min.Y,
			)
			// толщина -1 заливает прямоугольник
			gocv.Rectangle(&mat, tag, boxColor, -1)
			gocv.PutText(&mat, label, image.Pt(rect.Min.X+labelPadding, rect.Min.Y-labelPadding),
				gocv.FontHersheySimplex, a.FontScale, labelColor, 2)
		}
	}

	buf, err := gocv.IMEncode(gocv.PNGFileExt, mat)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	return append([]byte(nil), buf.GetBytes()...), nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	if len(imageData) == 0 {
		return gocv.NewMat(), ErrEmptyImage
	}
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}

var _ port.Annotator = (*GoCVAnnotator)(nil)
