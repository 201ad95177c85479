package prompt

import (
	"errors"
	"fmt"

	"complaint-bot/internal/domain/entity"
	"complaint-bot/internal/domain/port"
)

var ErrRendererNotConfigured = errors.New("template renderer is not configured")

// Data переменные, доступные шаблону чата
type Data struct {
	Context          string           // подставляется и в резервное system-сообщение
	ImageDescription string           // описание изображения от vision-модели
	Transcription    string           // исходный текст жалобы
	Catalog          string           // справочник категорий в виде JSON
	Question         string           // текущий вопрос пользователя
	History          []entity.Message // предыдущие реплики диалога
}

// Builder рендерит шаблон и разбирает его в сообщения
type Builder struct {
	renderer port.TemplateRenderer
	parser   *Parser
}

func NewBuilder(renderer port.TemplateRenderer, parser *Parser) *Builder {
	if parser == nil {
		parser = NewParser("")
	}
	return &Builder{renderer: renderer, parser: parser}
}

// Build возвращает ошибку только если шаблон не удалось отрендерить.
// Ошибки структуры маркеров закрываются резервным system-сообщением.
func (b *Builder) Build(data Data) (entity.MessageSequence, error) {
	if b.renderer == nil {
		return nil, ErrRendererNotConfigured
	}
	rendered, err := b.renderer.Render(data)
	if err != nil {
		return nil, fmt.Errorf("render chat template: %w", err)
	}
	return b.parser.Parse(rendered, data.Context), nil
}
