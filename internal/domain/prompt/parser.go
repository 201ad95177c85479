// Package prompt превращает отрендеренный шаблон чата в последовательность сообщений.
package prompt

import (
	"strings"
	"unicode"

	"complaint-bot/internal/domain/entity"
)

// ContextPlaceholder заменяется контекстом в резервном шаблоне
const ContextPlaceholder = "{context}"

// DefaultFallbackTemplate используется, если в тексте нет корректного system-сообщения
const DefaultFallbackTemplate = `You are a helpful assistant that classifies customer complaints into appropriate categories.
Use the following context to answer accurately. If the context doesn't contain relevant information, say so.

Context:
{context}`

var markers = map[string]entity.Role{
	entity.RoleSystem.Marker():    entity.RoleSystem,
	entity.RoleUser.Marker():      entity.RoleUser,
	entity.RoleAssistant.Marker(): entity.RoleAssistant,
}

// Parser разбирает текст с маркерами ролей. Безопасен для конкурентного использования.
type Parser struct {
	fallback string
}

// NewParser создаёт парсер с резервным шаблоном system-сообщения
func NewParser(fallbackTemplate string) *Parser {
	if strings.TrimSpace(fallbackTemplate) == "" {
		fallbackTemplate = DefaultFallbackTemplate
	}
	return &Parser{fallback: fallbackTemplate}
}

// Parse возвращает последовательность, которая всегда непуста и начинается с system.
// Если разбор не дал такой последовательности, результат заменяется одним
// system-сообщением из резервного шаблона с подставленным context.
func (p *Parser) Parse(rendered, context string) entity.MessageSequence {
	var acc accumulator
	for _, line := range strings.Split(rendered, "\n") {
		if role, ok := markerRole(line); ok {
			acc.start(role)
			continue
		}
		acc.add(line)
	}
	msgs := acc.finish()

	if len(msgs) == 0 || msgs[0].Role != entity.RoleSystem {
		return p.Fallback(context)
	}
	return msgs
}

// Fallback строит единственное system-сообщение из резервного шаблона
func (p *Parser) Fallback(context string) entity.MessageSequence {
	content := strings.TrimSpace(strings.ReplaceAll(p.fallback, ContextPlaceholder, context))
	if content == "" {
		content = strings.TrimSpace(strings.ReplaceAll(DefaultFallbackTemplate, ContextPlaceholder, context))
	}
	return entity.MessageSequence{{Role: entity.RoleSystem, Content: content}}
}

// markerRole: строка без хвостовых пробелов должна точно совпасть с маркером
func markerRole(line string) (entity.Role, bool) {
	role, ok := markers[strings.TrimRightFunc(line, unicode.IsSpace)]
	return role, ok
}

// accumulator конечный автомат разбора.
// Пустая role соответствует состоянию "до первого маркера".
type accumulator struct {
	role  entity.Role
	lines []string
	out   entity.MessageSequence
}

func (a *accumulator) start(role entity.Role) {
	a.flush()
	a.role = role
}

func (a *accumulator) add(line string) {
	// строки до первого маркера ни к какому сообщению не относятся
	if a.role == "" {
		return
	}
	a.lines = append(a.lines, line)
}

func (a *accumulator) flush() {
	if a.role != "" {
		content := strings.TrimSpace(strings.Join(a.lines, "\n"))
		if content != "" {
			a.out = append(a.out, entity.Message{Role: a.role, Content: content})
		}
	}
	a.lines = a.lines[:0]
}

func (a *accumulator) finish() entity.MessageSequence {
	a.flush()
	a.role = ""
	return a.out
}
