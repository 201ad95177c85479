package port

import (
	"context"

	"complaint-bot/internal/domain/entity"
)

// ChatCompleter интерфейс chat-completion модели
type ChatCompleter interface {
	// Complete отправляет сообщения и возвращает текст ответа
	Complete(ctx context.Context, messages entity.MessageSequence) (string, error)
}
