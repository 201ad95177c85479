// Package location переводит текстовое описание мест дефектов в рамки на изображении.
package location

import (
	"errors"
	"fmt"
	"strings"

	"complaint-bot/internal/domain/entity"
)

var ErrInvalidDimensions = errors.New("image dimensions must be positive")

// Keyword ключевое слово места и его прямоугольник в долях изображения
type Keyword struct {
	Name string
	Rect entity.FractionalRect
}

// CenterKeyword используется, когда место не распознано
const CenterKeyword = "center"

// Порядок таблицы определяет порядок областей в результате.
var table = []Keyword{
	{CenterKeyword, entity.FractionalRect{X1: 0.25, Y1: 0.25, X2: 0.75, Y2: 0.75}},
	{"top", entity.FractionalRect{X1: 0.2, Y1: 0.05, X2: 0.8, Y2: 0.35}},
	{"bottom", entity.FractionalRect{X1: 0.2, Y1: 0.65, X2: 0.8, Y2: 0.95}},
	{"left", entity.FractionalRect{X1: 0.05, Y1: 0.2, X2: 0.45, Y2: 0.8}},
	{"right", entity.FractionalRect{X1: 0.55, Y1: 0.2, X2: 0.95, Y2: 0.8}},
	{"top-left", entity.FractionalRect{X1: 0.05, Y1: 0.05, X2: 0.45, Y2: 0.35}},
	{"top-right", entity.FractionalRect{X1: 0.55, Y1: 0.05, X2: 0.95, Y2: 0.35}},
	{"bottom-left", entity.FractionalRect{X1: 0.05, Y1: 0.65, X2: 0.45, Y2: 0.95}},
	{"bottom-right", entity.FractionalRect{X1: 0.55, Y1: 0.65, X2: 0.95, Y2: 0.95}},
	{"foreground", entity.FractionalRect{X1: 0.15, Y1: 0.3, X2: 0.85, Y2: 0.7}},
}

var defectWords = []string{
	"crack", "damage", "broken", "defect", "issue", "problem",
	"screen", "surface", "foreground",
}

// Table возвращает копию таблицы мест
func Table() []Keyword {
	return append([]Keyword(nil), table...)
}

// Lookup ищет прямоугольник по ключевому слову
func Lookup(name string) (entity.FractionalRect, bool) {
	for _, k := range table {
		if k.Name == name {
			return k.Rect, true
		}
	}
	return entity.FractionalRect{}, false
}

// Locate возвращает хотя бы одну область. Слово считается найденным, только если
// перед ним пробел или начало строки, а после пробел или конец строки:
// "top-left" не даёт совпадения для "top" и "left".
func Locate(description string, width, height int) (entity.InspectionResult, error) {
	if width <= 0 || height <= 0 {
		return entity.InspectionResult{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	text := strings.ToLower(description)
	padded := " " + text + " "

	res := entity.InspectionResult{ImageWidth: width, ImageHeight: height}
	for _, k := range table {
		if strings.Contains(padded, " "+k.Name+" ") {
			res.Areas = append(res.Areas, entity.DefectArea{
				Location: k.Name,
				Box:      k.Rect.Scale(width, height),
			})
		}
	}
	if len(res.Areas) > 0 {
		return res, nil
	}

	// без указания места всегда размечаем центр, есть слова про дефект или нет
	res.DefectMentioned = mentionsDefect(text)
	res.Fallback = true
	res.Areas = []entity.DefectArea{{
		Location: CenterKeyword,
		Box:      table[0].Rect.Scale(width, height),
	}}
	return res, nil
}

func mentionsDefect(text string) bool {
	for _, w := range defectWords {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
