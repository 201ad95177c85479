package port

import "complaint-bot/internal/domain/entity"

// Annotator рисует найденные области поверх изображения
type Annotator interface {
	// Bounds возвращает ширину и высоту изображения в пикселях
	Bounds(imageData []byte) (width, height int, err error)

	// HighlightDefects создаёт изображение с подсветкой областей
	HighlightDefects(imageData []byte, result *entity.InspectionResult) ([]byte, error)
}
