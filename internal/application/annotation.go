package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"complaint-bot/internal/domain/entity"
	"complaint-bot/internal/domain/location"
	"complaint-bot/internal/domain/port"
	"complaint-bot/internal/platform/logger"
)

var ErrAnnotatorNotConfigured = errors.New("annotator is not configured")

// AnnotationOutput содержит найденные области и картинку с подсветкой.
type AnnotationOutput struct {
	RunID       string
	Description string
	Result      *entity.InspectionResult
	Highlighted []byte
}

type AnnotationService struct {
	describer port.LocationDescriber
	annotator port.Annotator
	log       *logger.Logger
}

// NewAnnotationService создаёт сервис разметки дефектов на изображении.
func NewAnnotationService(describer port.LocationDescriber, annotator port.Annotator, log *logger.Logger) *AnnotationService {
	if log == nil {
		log = logger.Nop()
	}
	return &AnnotationService{
		describer: describer,
		annotator: annotator,
		log:       log,
	}
}

// Annotate размечает изображение. Описание мест берётся из hint, а если он пуст, то
// у vision-модели. Без описания вообще размечается центр.
func (s *AnnotationService) Annotate(ctx context.Context, imageData []byte, hint string) (*AnnotationOutput, error) {
	if s.annotator == nil {
		return nil, ErrAnnotatorNotConfigured
	}

	runID := uuid.NewString()
	log := s.log.With("run_id", runID)

	description := strings.TrimSpace(hint)
	if description == "" && s.describer != nil {
		desc, err := s.describer.DescribeLocations(ctx, imageData)
		if err != nil {
			return nil, fmt.Errorf("describe defect locations: %w", err)
		}
		if desc != nil {
			description = desc.Text
		}
	}

	width, height, err := s.annotator.Bounds(imageData)
	if err != nil {
		return nil, fmt.Errorf("read image bounds: %w", err)
	}

	result, err := location.Locate(description, width, height)
	if err != nil {
		return nil, err
	}
	if result.Fallback {
		log.Info("no defect location recognized, using center",
			"defect_mentioned", result.DefectMentioned)
	}

	highlighted, err := s.annotator.HighlightDefects(imageData, &result)
	if err != nil {
		return nil, fmt.Errorf("highlight defects: %w", err)
	}

	log.Debug("image annotated", "areas", len(result.Areas), "width", width, "height", height)
	return &AnnotationOutput{
		RunID:       runID,
		Description: description,
		Result:      &result,
		Highlighted: highlighted,
	}, nil
}
