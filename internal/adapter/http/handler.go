package http

import (
	"context"
	"log/slog"
	"strconv"

	"cv-renderer/internal/domain"
	"cv-renderer/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UserIDHeader carries the caller id set by the authenticating gateway.
const UserIDHeader = "X-User-ID"

type Generator interface {
	Generate(ctx context.Context, userID, cvID uuid.UUID, templateOverride *uuid.UUID) (*usecase.GenerateResult, error)
	DownloadURL(ctx context.Context, userID, cvID uuid.UUID) (string, error)
	InvalidateTemplate(ctx context.Context, templateID uuid.UUID) error
}

type Handler struct {
	generator Generator
	logger    *slog.Logger
}

func NewHandler(g Generator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{generator: g, logger: logger}
}

// Register mounts the routes on app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/healthz", h.Health)

	api := app.Group("/api")
	api.Post("/cvs/:id/generate/pdf", h.GeneratePDF)
	api.Get("/cvs/:id/download/pdf", h.DownloadPDF)
	api.Post("/templates/:id/invalidate", h.InvalidateTemplate)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) GeneratePDF(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Get(UserIDHeader))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid user id")
	}
	cvID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid cv id")
	}

	var override *uuid.UUID
	if raw := c.Query("templateId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid templateId")
		}
		override = &id
	}

	res, err := h.generator.Generate(c.UserContext(), userID, cvID, override)
	if err != nil {
		return h.fromError(c, err, "cv_id", cvID)
	}

	art := res.Artifact
	if res.URL != "" {
		c.Set("X-PDF-URL", res.URL)
	}
	if res.UploadErr != nil {
		c.Set("X-Upload-Warning", "pdf generated but upload failed")
	}
	c.Set("X-PDF-Pages", strconv.Itoa(art.PageCount))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(art.Filename)
	return c.Status(fiber.StatusOK).Send(art.PDF)
}

func (h *Handler) DownloadPDF(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Get(UserIDHeader))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid user id")
	}
	cvID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid cv id")
	}

	url, err := h.generator.DownloadURL(c.UserContext(), userID, cvID)
	if err != nil {
		return h.fromError(c, err, "cv_id", cvID)
	}
	return c.Redirect(url, fiber.StatusFound)
}

func (h *Handler) InvalidateTemplate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid template id")
	}
	if err := h.generator.InvalidateTemplate(c.UserContext(), id); err != nil {
		return h.fromError(c, err, "template_id", id)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) fromError(c *fiber.Ctx, err error, attrs ...any) error {
	status := domain.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		h.logger.Error("request failed", append(attrs, "path", c.Path(), "error", err)...)
	}
	return fail(c, status, message(status, err))
}

func message(status int, err error) string {
	switch status {
	case fiber.StatusNotFound:
		return err.Error()
	case fiber.StatusServiceUnavailable:
		return "renderer busy, retry later"
	default:
		return "failed to generate pdf"
	}
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": msg})
}
