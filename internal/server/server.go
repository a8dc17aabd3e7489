// Package server exposes the assistant over HTTP.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"jarvis/internal/assistant"
	"jarvis/internal/scheduler"
)

// MaxBodySize caps utterance request bodies.
const MaxBodySize = "64K"

// Processor handles utterances. *assistant.Assistant satisfies it.
type Processor interface {
	Process(ctx context.Context, text string, opts assistant.Options) assistant.Reply
	Board() *scheduler.Board
}

type utteranceRequest struct {
	Text  string `json:"text"`
	Voice bool   `json:"voice"`
}

type tasksResponse struct {
	Tasks []scheduler.Task `json:"tasks"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New returns an Echo instance with all routes registered.
func New(p Processor, log *zap.Logger) *echo.Echo {
	if log == nil {
		log = zap.NewNop()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(MaxBodySize))
	e.Use(requestLogger(log))
	Register(e, p)
	return e
}

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, p Processor) {
	e.POST("/v1/utterances", postUtterance(p))
	e.GET("/v1/tasks", getTasks(p))
	e.GET("/healthz", healthz)
}

func healthz(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func postUtterance(p Processor) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req utteranceRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
		}
		text := strings.TrimSpace(req.Text)
		if text == "" {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "text is required"})
		}
		reply := p.Process(c.Request().Context(), text, assistant.Options{Voice: req.Voice})
		return c.JSON(http.StatusOK, reply)
	}
}

func getTasks(p Processor) echo.HandlerFunc {
	return func(c echo.Context) error {
		tasks := p.Board().Snapshot()
		if tasks == nil {
			tasks = []scheduler.Task{}
		}
		return c.JSON(http.StatusOK, tasksResponse{Tasks: tasks})
	}
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			log.Info("request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("took", time.Since(start)))
			return nil
		}
	}
}
