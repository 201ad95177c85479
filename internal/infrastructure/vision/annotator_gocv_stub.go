//go:build !gocv
// +build !gocv

package vision

import (
	"errors"

	"complaint-bot/internal/domain/entity"
	"complaint-bot/internal/domain/port"
)

// ErrGoCVDisabled сборка без тега gocv
var ErrGoCVDisabled = errors.New("gocv build tag is not enabled")

// GoCVAnnotator заглушка без OpenCV
type GoCVAnnotator struct {
	FontScale float64
}

// NewGoCVAnnotator возвращает ошибку, если сборка без тега gocv.
func NewGoCVAnnotator() (*GoCVAnnotator, error) {
	return nil, ErrGoCVDisabled
}

// Bounds возвращает ошибку, если сборка без тега gocv.
func (a *GoCVAnnotator) Bounds(imageData []byte) (int, int, error) {
	_ = imageData
	return 0, 0, ErrGoCVDisabled
}

// HighlightDefects возвращает ошибку, если сборка без тега gocv.
func (a *GoCVAnnotator) HighlightDefects(imageData []byte, result *entity.InspectionResult) ([]byte, error) {
	_ = imageData
	_ = result
	return nil, ErrGoCVDisabled
}

var _ port.Annotator = (*GoCVAnnotator)(nil)
