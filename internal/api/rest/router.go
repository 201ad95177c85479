package rest

import (
	"github.com/gin-gonic/gin"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", h.Health)

	v1 := r.Group("/v1")
	{
		v1.GET("/catalog", h.Catalog)
		v1.POST("/messages", h.Messages)
		v1.POST("/validate", h.Validate)
		v1.POST("/locate", h.Locate)
		v1.POST("/classify", h.Classify)
	}
	return r
}
