package entity

import "strings"

// Role роль автора сообщения в чате
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Marker возвращает строку-маркер роли в отрендеренном шаблоне
func (r Role) Marker() string {
	return string(r) + ":"
}

// Message одно сообщение для chat-completion вызова
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// MessageSequence упорядоченный список сообщений.
// Корректная последовательность непуста и начинается с system.
type MessageSequence []Message

// Valid проверяет инвариант последовательности
func (s MessageSequence) Valid() bool {
	if len(s) == 0 || s[0].Role != RoleSystem {
		return false
	}
	for _, m := range s {
		if strings.TrimSpace(m.Content) == "" {
			return false
		}
	}
	return true
}

// Render собирает последовательность обратно в текст с маркерами ролей
func (s MessageSequence) Render() string {
	var b strings.Builder
	for _, m := range s {
		b.WriteString(m.Role.Marker())
		b.WriteByte('\n')
		b.WriteString(m.Content)
		b.WriteByte('\n')
	}
	return b.String()
}
