package server

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/export"
	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/parse"
	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/repository"
)

// Recognizer is the OCR collaborator the server depends on.
type Recognizer interface {
	Recognize(ctx context.Context, userID, imageB64 string) (parse.Result, error)
}

// Deps wires the command handlers.
type Deps struct {
	OCR      Recognizer
	Commands repository.CommandRepository
	Exporter *export.Service
	Logger   *slog.Logger
}

// New builds the fiber app and registers the routes.
func New(deps Deps) *fiber.App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	app := fiber.New(fiber.Config{AppName: "handwritely-excelizer"})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	h := &CommandHandler{
		ocr:      deps.OCR,
		repo:     deps.Commands,
		exporter: deps.Exporter,
		logger:   deps.Logger,
	}

	api := app.Group("/api")
	api.Post("/commands", h.Create)
	api.Get("/users/:userID/commands", h.ListByUser)
	api.Delete("/commands/:id", h.Delete)
	api.Get("/commands/:id/export", h.Export)

	return app
}
