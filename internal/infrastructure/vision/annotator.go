package vision

import (
	"errors"
	"fmt"
	"image/color"
)

var ErrEmptyImage = errors.New("empty image")

var (
	boxColor   = color.RGBA{R: 255, A: 255}
	labelColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

const (
	boxLineWidth = 5
	labelPadding = 5
)

// areaLabel подпись над рамкой, нумерация с единицы
func areaLabel(i int) string {
	return fmt.Sprintf("Defect Area %d", i+1)
}
