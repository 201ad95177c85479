// Package rest HTTP-вход для разбора шаблонов, проверки классификации и разметки.
package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	app "complaint-bot/internal/application"
	"complaint-bot/internal/domain/classify"
	"complaint-bot/internal/domain/entity"
	"complaint-bot/internal/domain/location"
	"complaint-bot/internal/domain/prompt"
	"complaint-bot/internal/platform/logger"
)

type Handler struct {
	parser         *prompt.Parser
	validator      *classify.Validator
	classification *app.ClassificationService
	log            *logger.Logger
}

func NewHandler(parser *prompt.Parser, validator *classify.Validator, classification *app.ClassificationService, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		parser:         parser,
		validator:      validator,
		classification: classification,
		log:            log,
	}
}

type messagesRequest struct {
	Text    string `json:"text"`
	Context string `json:"context"`
}

type messagesResponse struct {
	Messages entity.MessageSequence `json:"messages"`
}

type validateRequest struct {
	Answer string `json:"answer" binding:"required"`
}

type locateRequest struct {
	Description string `json:"description"`
	Width       int    `json:"width" binding:"required"`
	Height      int    `json:"height" binding:"required"`
}

type classifyRequest struct {
	Transcription    string            `json:"transcription"`
	ImageDescription string            `json:"image_description"`
	Question         string            `json:"question"`
	History          []entity.Message  `json:"history"`
	Documents        []prompt.Document `json:"documents"`
}

type classifyResponse struct {
	RunID     string                      `json:"run_id"`
	RawAnswer string                      `json:"raw_answer"`
	Result    entity.ClassificationResult `json:"result"`
}

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *Handler) Catalog(c *gin.Context) {
	RespondOK(c, h.validator.Catalog())
}

func (h *Handler) Messages(c *gin.Context) {
	var req messagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	RespondOK(c, messagesResponse{Messages: h.parser.Parse(req.Text, req.Context)})
}

func (h *Handler) Validate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res := h.validator.Validate(req.Answer)
	if !res.Valid {
		h.log.Warn("answer is not in catalog", "raw", req.Answer)
	}
	RespondOK(c, res)
}

func (h *Handler) Locate(c *gin.Context) {
	var req locateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := location.Locate(req.Description, req.Width, req.Height)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_dimensions", err)
		return
	}
	RespondOK(c, res)
}

func (h *Handler) Classify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.classification.Classify(c.Request.Context(), app.ComplaintInput{
		Transcription:    req.Transcription,
		ImageDescription: req.ImageDescription,
		Question:         req.Question,
		History:          req.History,
		Documents:        req.Documents,
	})
	switch {
	case errors.Is(err, app.ErrChatNotConfigured):
		RespondError(c, http.StatusServiceUnavailable, "not_configured", err)
		return
	case err != nil:
		h.log.Error("classification failed", "error", err)
		RespondError(c, http.StatusBadGateway, "classification_failed", err)
		return
	}
	RespondOK(c, classifyResponse{RunID: out.RunID, RawAnswer: out.RawAnswer, Result: out.Result})
}
