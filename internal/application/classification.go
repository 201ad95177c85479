package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"complaint-bot/internal/domain/classify"
	"complaint-bot/internal/domain/entity"
	"complaint-bot/internal/domain/port"
	"complaint-bot/internal/domain/prompt"
	"complaint-bot/internal/platform/logger"
)

var ErrChatNotConfigured = errors.New("chat model is not configured")

// ComplaintInput данные жалобы, собранные предыдущими шагами конвейера
type ComplaintInput struct {
	Transcription    string
	ImageDescription string
	Question         string
	History          []entity.Message
	Documents        []prompt.Document // справочные материалы из базы знаний
}

// ClassificationOutput результат классификации вместе с промежуточными данными
type ClassificationOutput struct {
	RunID     string
	Messages  entity.MessageSequence
	RawAnswer string
	Result    entity.ClassificationResult
}

type ClassificationService struct {
	builder   *prompt.Builder
	chat      port.ChatCompleter
	validator *classify.Validator
	log       *logger.Logger
}

// NewClassificationService создаёт сервис: шаблон -> сообщения -> модель -> проверка по справочнику.
func NewClassificationService(builder *prompt.Builder, chat port.ChatCompleter, validator *classify.Validator, log *logger.Logger) *ClassificationService {
	if log == nil {
		log = logger.Nop()
	}
	return &ClassificationService{
		builder:   builder,
		chat:      chat,
		validator: validator,
		log:       log,
	}
}

// Messages собирает сообщения для модели, не вызывая её
func (s *ClassificationService) Messages(in ComplaintInput) (entity.MessageSequence, error) {
	catalogJSON, err := s.validator.Catalog().Indented()
	if err != nil {
		return nil, fmt.Errorf("format catalog: %w", err)
	}
	return s.builder.Build(prompt.Data{
		Context:          complaintContext(in, catalogJSON),
		ImageDescription: strings.TrimSpace(in.ImageDescription),
		Transcription:    strings.TrimSpace(in.Transcription),
		Catalog:          catalogJSON,
		Question:         strings.TrimSpace(in.Question),
		History:          in.History,
	})
}

// Classify возвращает ошибку только для проблем конфигурации и сбоев вызова модели.
// Невалидный ответ модели не ошибка: см. Result.Valid и Result.Coerced.
func (s *ClassificationService) Classify(ctx context.Context, in ComplaintInput) (*ClassificationOutput, error) {
	if s.chat == nil {
		return nil, ErrChatNotConfigured
	}

	runID := uuid.NewString()
	log := s.log.With("run_id", runID)

	msgs, err := s.Messages(in)
	if err != nil {
		return nil, err
	}

	raw, err := s.chat.Complete(ctx, msgs)
	if err != nil {
		return nil, fmt.Errorf("classification call: %w", err)
	}

	result := s.validator.Validate(raw)
	switch {
	case !result.Valid:
		log.Warn("classification is not in catalog", "raw", raw)
	case result.Coerced:
		log.Warn("classification coerced to catalog",
			"resolution", result.Resolution,
			"category", result.Category,
			"subcategory", result.Subcategory,
			"raw", raw)
	default:
		log.Info("complaint classified", "category", result.Category, "subcategory", result.Subcategory)
	}

	return &ClassificationOutput{
		RunID:     runID,
		Messages:  msgs,
		RawAnswer: raw,
		Result:    result,
	}, nil
}

func complaintContext(in ComplaintInput, catalogJSON string) string {
	var b strings.Builder
	if d := strings.TrimSpace(in.ImageDescription); d != "" {
		b.WriteString("Image Description: " + d + "\n")
	}
	if tr := strings.TrimSpace(in.Transcription); tr != "" {
		b.WriteString("Original Complaint Transcription: " + tr + "\n")
	}
	b.WriteString("\nAvailable Categories and Subcategories:\n")
	b.WriteString(catalogJSON)
	if len(in.Documents) > 0 {
		b.WriteString("\n\nReference Documents:\n")
		b.WriteString(prompt.FormatContext(in.Documents))
	}
	return strings.TrimSpace(b.String())
}
