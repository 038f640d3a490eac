// Package server fronts the engine with a thin HTTP API for non-desktop
// consumers: search, ingestion and metrics.
package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/quaero-ai/quaero/config"
	"github.com/quaero-ai/quaero/internal/engine"
)

// New builds the echo application around an engine.
func New(cfg *config.Config, eng *engine.Engine) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(eng.Telemetry().Handler()))

	api := e.Group("/api")
	if cfg.Server.JWTSecret != "" {
		api.Use(withAuth([]byte(cfg.Server.JWTSecret)))
	}

	h := &Handler{Engine: eng}
	h.Register(api)

	return e
}

// Run starts the HTTP server and blocks until it exits.
func Run(cfg *config.Config, eng *engine.Engine) error {
	e := New(cfg, eng)
	return e.Start(cfg.Server.Address)
}
