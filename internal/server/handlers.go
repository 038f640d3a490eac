package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quaero-ai/quaero/internal/engine"
	"github.com/quaero-ai/quaero/models"
)

// Handler holds the API endpoints backed by the engine.
type Handler struct {
	Engine *engine.Engine
}

// Register attaches the endpoints to the group.
func (h *Handler) Register(g *echo.Group) {
	g.POST("/search", h.search)
	g.POST("/documents", h.addDocuments)
	g.GET("/metrics", h.metrics)
}

type searchRequest struct {
	Query   string                 `json:"query"`
	UserID  string                 `json:"user_id"`
	Filters map[string]interface{} `json:"filters,omitempty"`
}

func (h *Handler) search(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}
	resp := h.Engine.Search(c.Request().Context(), req.Query, req.UserID, req.Filters)
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) addDocuments(c echo.Context) error {
	var docs []models.Document
	if err := c.Bind(&docs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	added := h.Engine.AddDocuments(c.Request().Context(), docs)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"added": added,
		"total": h.Engine.DocumentCount(),
	})
}

func (h *Handler) metrics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Engine.GetPerformanceMetrics())
}
