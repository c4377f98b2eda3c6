package server

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/common"
	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/entity"
	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/export"
	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/parse"
	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/repository"
)

// ErrorResponse is the error body for every endpoint.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateCommandRequest is the upload payload: the user's opaque id from the
// auth provider and the comanda photo as base64.
type CreateCommandRequest struct {
	UserID string `json:"user_id"`
	Image  string `json:"image"`
}

// CommandResponse carries the parsed rows back to the UI. Detected is false
// when OCR came back with nothing usable; the UI prompts for a retake instead
// of showing an error.
type CommandResponse struct {
	ID        uuid.UUID         `json:"id,omitempty"`
	UserID    string            `json:"user_id"`
	Detected  bool              `json:"detected"`
	Items     []entity.LineItem `json:"items"`
	CreatedAt time.Time         `json:"created_at"`
}

// CommandHandler serves the comanda endpoints.
type CommandHandler struct {
	ocr      Recognizer
	repo     repository.CommandRepository
	exporter *export.Service
	logger   *slog.Logger
}

// Create uploads a comanda image, runs OCR, parses the result into rows and
// persists them for the user.
func (h *CommandHandler) Create(c *fiber.Ctx) error {
	var in CreateCommandRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	if in.UserID == "" || in.Image == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: "user_id and image are required"})
	}

	result, err := h.ocr.Recognize(c.UserContext(), in.UserID, in.Image)
	if err != nil {
		h.logger.Error("commands.create.ocr_failed", "user_id", in.UserID, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Code: "OCR_FAILED", Message: "ocr request failed"})
	}

	items, err := parse.Normalize(result)
	if errors.Is(err, parse.ErrNoUsableInput) {
		// Not an error: nothing was recognized, invite a retake.
		h.logger.Info("commands.create.nothing_detected", "user_id", in.UserID)
		return c.JSON(CommandResponse{UserID: in.UserID, Detected: false, Items: []entity.LineItem{}, CreatedAt: time.Now().UTC()})
	}
	if err != nil {
		h.logger.Error("commands.create.parse_failed", "user_id", in.UserID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: "parse failed"})
	}

	rec := &entity.Receipt{
		ID:        uuid.New(),
		UserID:    in.UserID,
		Items:     items,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.repo.Save(c.UserContext(), rec); err != nil {
		h.logger.Error("commands.create.save_failed", "user_id", in.UserID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: "save failed"})
	}

	h.logger.Info("commands.create.ok", "user_id", in.UserID, "command_id", rec.ID, "rows", len(items))
	return c.Status(fiber.StatusCreated).JSON(CommandResponse{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Detected:  true,
		Items:     rec.Items,
		CreatedAt: rec.CreatedAt,
	})
}

// ListByUser returns the user's saved comandas, newest first.
func (h *CommandHandler) ListByUser(c *fiber.Ctx) error {
	userID := c.Params("userID")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: "userID is required"})
	}
	recs, err := h.repo.ListByUser(c.UserContext(), userID)
	if err != nil {
		h.logger.Error("commands.list.failed", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: "list failed"})
	}
	if recs == nil {
		recs = []*entity.Receipt{}
	}
	return c.JSON(recs)
}

// Delete removes a saved comanda.
func (h *CommandHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: "id must be a UUID"})
	}
	if err := h.repo.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: "command not found"})
		}
		h.logger.Error("commands.delete.failed", "command_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: "delete failed"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Export streams a saved comanda as an XLSX download.
func (h *CommandHandler) Export(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: "id must be a UUID"})
	}
	rec, err := h.repo.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: "command not found"})
		}
		h.logger.Error("commands.export.failed", "command_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: "export failed"})
	}

	data, err := h.exporter.ReceiptXLSX(rec)
	if err != nil {
		h.logger.Error("commands.export.xlsx_failed", "command_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: "export failed"})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="comanda-%s.xlsx"`, rec.ID))
	return c.Send(data)
}
