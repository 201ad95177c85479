// Package template рендерит шаблоны чата из файлов.
package template

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"complaint-bot/internal/domain/port"
)

// Renderer обёртка над text/template. Шаблон разбирается один раз,
// Render безопасен для конкурентного вызова.
type Renderer struct {
	tmpl *template.Template
}

// Load читает и разбирает шаблон. Отсутствие файла считается ошибкой конфигурации
func Load(path string) (*Renderer, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chat template %s: %w", path, err)
	}
	return New(filepath.Base(path), string(text))
}

// New разбирает шаблон из строки
func New(name, text string) (*Renderer, error) {
	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(template.FuncMap{
			"trim":  strings.TrimSpace,
			"lower": strings.ToLower,
		}).
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse chat template %s: %w", name, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render исполняет шаблон с переданными данными
func (r *Renderer) Render(data any) (string, error) {
	var b strings.Builder
	if err := r.tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("execute chat template %s: %w", r.tmpl.Name(), err)
	}
	return b.String(), nil
}

var _ port.TemplateRenderer = (*Renderer)(nil)
