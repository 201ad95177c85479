package container

import (
	app "complaint-bot/internal/application"
	"complaint-bot/internal/domain/classify"
	"complaint-bot/internal/domain/entity"
	"complaint-bot/internal/domain/port"
	"complaint-bot/internal/domain/prompt"
	"complaint-bot/internal/platform/logger"
)

// Deps внешние зависимости. Chat, Describer и Annotator могут быть nil:
// соответствующие сценарии тогда отвечают ошибкой "не настроено".
type Deps struct {
	Users            port.UserRepository
	Catalog          *entity.Catalog
	Renderer         port.TemplateRenderer
	FallbackTemplate string
	Chat             port.ChatCompleter
	Describer        port.LocationDescriber
	Annotator        port.Annotator
	Log              *logger.Logger
}

type Container struct {
	UserService           *app.UserService
	ClassificationService *app.ClassificationService
	AnnotationService     *app.AnnotationService
	Parser                *prompt.Parser
	Validator             *classify.Validator
	Log                   *logger.Logger
}

func New(deps Deps) *Container {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	parser := prompt.NewParser(deps.FallbackTemplate)
	validator := classify.NewValidator(deps.Catalog)
	builder := prompt.NewBuilder(deps.Renderer, parser)

	return &Container{
		UserService:           app.NewUserService(deps.Users),
		ClassificationService: app.NewClassificationService(builder, deps.Chat, validator, log.With("component", "classification")),
		AnnotationService:     app.NewAnnotationService(deps.Describer, deps.Annotator, log.With("component", "annotation")),
		Parser:                parser,
		Validator:             validator,
		Log:                   log,
	}
}
