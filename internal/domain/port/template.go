package port

// TemplateRenderer рендерит шаблон чата в текст с маркерами ролей
type TemplateRenderer interface {
	Render(data any) (string, error)
}
