package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "complaint-bot/internal/application"
	"complaint-bot/internal/container"
	"complaint-bot/internal/domain/entity"
	"complaint-bot/internal/platform/logger"
)

const (
	msgStart = `👋 Привет! Я бот для разбора жалоб покупателей.

📝 Опишите проблему текстом, и я определю категорию и подкатегорию товара.
📸 Пришлите фото с подписью, где дефект, и я отмечу его на снимке.

📋 Команды:
/classify — классифицировать жалобу
/annotate — отметить дефект на фото
/categories — справочник категорий
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ /classify и текст жалобы — получите категорию и подкатегорию из справочника
2️⃣ /annotate и фото — получите снимок с отмеченными областями дефекта

💡 В подписи к фото укажите место: top-left, center, bottom и т.п.
Без подписи место определит модель, а если не сможет — отмечу центр.

📋 Команды:
/classify — классифицировать жалобу
/annotate — отметить дефект
/categories — справочник категорий
/cancel — отменить операцию`

	msgAwaitingComplaint = "📝 Опишите жалобу одним сообщением."
	msgAwaitingPhoto     = "📸 Отправьте фото товара. В подписи можно указать, где дефект."
	msgCancelled         = "❌ Операция отменена. Отправьте /classify или /annotate."
	msgChooseAction      = "🤔 Выберите действие: /classify для жалобы или /annotate для фото."
	msgUnknownCommand    = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing        = "⏳ Обрабатываю..."
	msgBusy              = "⏳ Предыдущий запрос ещё обрабатывается, подождите."
	msgNotConfigured     = "⚙️ Эта функция сейчас не настроена."
	msgProcessingError   = "⚠️ Не удалось обработать запрос. Попробуйте ещё раз."
	msgNotInCatalog      = "⚠️ Ответ модели не совпал со справочником:"
	msgCoerced           = "ℹ️ Ответ модели приведён к справочнику."
	msgEmptyCatalog      = "📂 Справочник категорий пуст."
)

// Bot представляет Telegram-бота
type Bot struct {
	api *tgbotapi.BotAPI
	app *container.Container
	log *logger.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log := c.Log.With("component", "telegram")
	log.Info("authorized on account", "username", api.Self.UserName)

	return &Bot{
		api: api,
		app: c,
		log: log,
	}, nil
}

// Run читает обновления до отмены контекста
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.app.UserService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		b.log.Error("get user", "error", err, "user_id", msg.From.ID)
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}

	if user.State == entity.StateAwaitingComplaint && strings.TrimSpace(msg.Text) != "" {
		b.handleComplaint(ctx, msg)
		return
	}

	switch user.State {
	case entity.StateAwaitingPhoto:
		b.sendMessage(msg.Chat.ID, msgAwaitingPhoto)
	case entity.StateProcessing:
		b.sendMessage(msg.Chat.ID, msgBusy)
	default:
		b.sendMessage(msg.Chat.ID, msgChooseAction)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	users := b.app.UserService
	from, chat := msg.From.ID, msg.Chat.ID

	var err error
	switch msg.Command() {
	case "start":
		_, err = users.Cancel(ctx, from, chat)
		b.sendMessage(chat, msgStart)

	case "help":
		b.sendMessage(chat, msgHelp)

	case "classify":
		_, err = users.BeginClassify(ctx, from, chat)
		b.sendMessage(chat, msgAwaitingComplaint)

	case "annotate":
		_, err = users.BeginAnnotate(ctx, from, chat)
		b.sendMessage(chat, msgAwaitingPhoto)

	case "categories":
		b.sendMessage(chat, formatCatalog(b.app.Validator.Catalog().Entries()))

	case "cancel":
		_, err = users.Cancel(ctx, from, chat)
		b.sendMessage(chat, msgCancelled)

	default:
		b.sendMessage(chat, msgUnknownCommand)
	}

	if err != nil {
		b.log.Error("update user state", "error", err, "command", msg.Command())
	}
}

func (b *Bot) handleComplaint(ctx context.Context, msg *tgbotapi.Message) {
	if !b.startProcessing(ctx, msg) {
		return
	}
	defer b.finishProcessing(ctx, msg)

	out, err := b.app.ClassificationService.Classify(ctx, app.ComplaintInput{
		Transcription: msg.Text,
	})
	if err != nil {
		b.replyError(msg.Chat.ID, err)
		return
	}

	b.sendMessage(msg.Chat.ID, formatClassification(out.Result))
}

func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	if !b.startProcessing(ctx, msg) {
		return
	}
	defer b.finishProcessing(ctx, msg)

	// Берём фото с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(ctx, photo.FileID)
	if err != nil {
		b.replyError(msg.Chat.ID, err)
		return
	}

	out, err := b.app.AnnotationService.Annotate(ctx, imageData, msg.Caption)
	if err != nil {
		b.replyError(msg.Chat.ID, err)
		return
	}

	reply := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{Name: "defects.png", Bytes: out.Highlighted})
	reply.Caption = formatInspection(out.Result)
	if _, err := b.api.Send(reply); err != nil {
		b.log.Error("send photo", "error", err, "run_id", out.RunID)
	}
}

// startProcessing false, если пользователь уже ждёт результат
func (b *Bot) startProcessing(ctx context.Context, msg *tgbotapi.Message) bool {
	_, err := b.app.UserService.StartProcessing(ctx, msg.From.ID, msg.Chat.ID)
	switch {
	case errors.Is(err, app.ErrUserBusy):
		b.sendMessage(msg.Chat.ID, msgBusy)
		return false
	case err != nil:
		b.log.Error("start processing", "error", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return false
	}
	b.sendMessage(msg.Chat.ID, msgProcessing)
	return true
}

func (b *Bot) finishProcessing(ctx context.Context, msg *tgbotapi.Message) {
	if err := b.app.UserService.FinishProcessing(ctx, msg.From.ID); err != nil {
		b.log.Error("reset user state", "error", err)
	}
}

func (b *Bot) replyError(chatID int64, err error) {
	if errors.Is(err, app.ErrChatNotConfigured) || errors.Is(err, app.ErrAnnotatorNotConfigured) {
		b.sendMessage(chatID, msgNotConfigured)
		return
	}
	b.log.Error("processing failed", "error", err, "chat_id", chatID)
	b.sendMessage(chatID, msgProcessingError)
}

func formatClassification(res entity.ClassificationResult) string {
	if !res.Valid {
		return msgNotInCatalog + "\n\n" + res.String()
	}
	text := "📋 " + res.String()
	if res.Coerced {
		text += "\n\n" + msgCoerced
	}
	return text
}

func formatCatalog(entries []entity.CatalogEntry) string {
	if len(entries) == 0 {
		return msgEmptyCatalog
	}
	var b strings.Builder
	b.WriteString("📂 Категории:")
	for _, e := range entries {
		fmt.Fprintf(&b, "\n\n%s", e.Category)
		for _, sub := range e.Subcategories {
			fmt.Fprintf(&b, "\n• %s", sub)
		}
	}
	return b.String()
}

func formatInspection(res *entity.InspectionResult) string {
	if res == nil || len(res.Areas) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("🔍 Отмеченные области:")
	for i, area := range res.Areas {
		fmt.Fprintf(&b, "\n%d. %s", i+1, area.Location)
	}
	if res.Fallback {
		b.WriteString("\n\nℹ️ Место дефекта не указано, отмечен центр.")
	}
	return b.String()
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send message", "error", err, "chat_id", chatID)
	}
}
