package entity

import (
	"image"
	"math"
)

// FractionalRect прямоугольник в долях ширины и высоты изображения
type FractionalRect struct {
	X1, Y1, X2, Y2 float64
}

// Scale переводит доли в пиксели
func (f FractionalRect) Scale(width, height int) BoundingBox {
	w, h := float64(width), float64(height)
	return BoundingBox{
		X1: w * f.X1,
		Y1: h * f.Y1,
		X2: w * f.X2,
		Y2: h * f.Y2,
	}
}

// BoundingBox рамка в пикселях, 0 <= X1 < X2 <= width, 0 <= Y1 < Y2 <= height
type BoundingBox struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Width ширина рамки
func (b BoundingBox) Width() float64 { return b.X2 - b.X1 }

// Height высота рамки
func (b BoundingBox) Height() float64 { return b.Y2 - b.Y1 }

// Center возвращает координаты центра рамки
func (b BoundingBox) Center() (x, y float64) {
	return (b.X1 + b.X2) / 2, (b.Y1 + b.Y2) / 2
}

// Rect округляет рамку до целых пикселей для отрисовки
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(
		int(math.Round(b.X1)),
		int(math.Round(b.Y1)),
		int(math.Round(b.X2)),
		int(math.Round(b.Y2)),
	)
}

// DefectArea область с дефектом и ключевое слово, по которому она найдена
type DefectArea struct {
	Location string      `json:"location"`
	Box      BoundingBox `json:"box"`
}
