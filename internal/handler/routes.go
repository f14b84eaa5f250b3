package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Almas2004/led/internal/models"
)

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health    *HealthHandler
	Products  *ContentHandler[models.Product, *models.Product]
	Solutions *ContentHandler[models.Solution, *models.Solution]
	Cases     *ContentHandler[models.Case, *models.Case]
	Leads     *LeadHandler
	Events    *SSEHandler
}

// RegisterRoutes mounts the content API under /api and metrics on /metrics.
func RegisterRoutes(router *gin.Engine, h *Handlers) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/health", h.Health.GetHealth)

		api.GET("/products", h.Products.List)
		api.GET("/products/:slug", h.Products.GetBySlug)
		api.POST("/products", h.Products.Create)
		api.PUT("/products/:id", h.Products.Update)
		api.DELETE("/products/:id", h.Products.Delete)

		api.GET("/solutions", h.Solutions.List)
		api.POST("/solutions", h.Solutions.Create)
		api.PUT("/solutions/:id", h.Solutions.Update)
		api.DELETE("/solutions/:id", h.Solutions.Delete)

		api.GET("/cases", h.Cases.List)
		api.POST("/cases", h.Cases.Create)
		api.PUT("/cases/:id", h.Cases.Update)
		api.DELETE("/cases/:id", h.Cases.Delete)

		api.GET("/leads", h.Leads.List)
		api.POST("/leads", h.Leads.Create)
		api.PATCH("/leads/:id", h.Leads.Update)

		if h.Events != nil {
			api.GET("/events", h.Events.Stream)
		}
	}
}
