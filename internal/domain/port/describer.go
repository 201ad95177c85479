package port

import (
	"context"

	"complaint-bot/internal/domain/entity"
)

// LocationDescriber интерфейс vision-модели, описывающей места дефектов
type LocationDescriber interface {
	// DescribeLocations возвращает текст с указанием мест дефектов на изображении
	DescribeLocations(ctx context.Context, imageData []byte) (*entity.LocationDescription, error)
}
