package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"draftgen/internal/render"
	"draftgen/internal/service"
)

const maxListLimit = 100

// generateRequest is the body of POST /drafts. An empty or unknown category
// falls back to the default one.
type generateRequest struct {
	Category string `json:"category" example:"Pajak"`
}

type categoriesResponse struct {
	Data    []string `json:"data"`
	Default string   `json:"default"`
}

type linkResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}

// ListCategories returns the selectable categories and the fallback.
//
// @Summary  List draft categories
// @Tags     drafts
// @Produce  json
// @Success  200 {object} categoriesResponse
// @Router   /categories [get]
func ListCategories(svc service.DraftService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(categoriesResponse{
			Data:    svc.Categories(),
			Default: svc.DefaultCategory(),
		})
	}
}

// GenerateDraft renders a new draft and records it in history.
//
// @Summary  Generate a draft
// @Tags     drafts
// @Accept   json
// @Produce  json
// @Param    body body generateRequest false "Category selector"
// @Success  201 {object} model.Draft
// @Failure  400 {object} errorPayload
// @Failure  422 {object} errorPayload
// @Router   /drafts [post]
func GenerateDraft(svc service.DraftService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req generateRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
			}
		}
		if req.Category == "" {
			req.Category = c.Query("category")
		}

		d, err := svc.Generate(c.UserContext(), req.Category)
		if err != nil {
			if errors.Is(err, render.ErrRenderFailure) {
				log.Warn("draft_render_failed", zap.String("request_id", requestIDFromCtx(c)), zap.Error(err))
				return writeError(c, fiber.StatusUnprocessableEntity, "RENDER_FAILED", "draft could not be rendered")
			}
			return writeInternal(c, log, "draft_generate", err)
		}

		log.Info("draft_generated",
			zap.String("request_id", requestIDFromCtx(c)),
			zap.String("id", d.ID),
			zap.String("generation_id", d.GenerationID),
			zap.String("category", d.Category),
			zap.Int("pages", d.Pages),
		)
		return c.Status(fiber.StatusCreated).JSON(d)
	}
}

// ListDrafts returns the history with limit & offset.
//
// @Summary  List generated drafts
// @Tags     drafts
// @Produce  json
// @Param    limit  query int false "Page size" default(10)
// @Param    offset query int false "Offset"    default(0)
// @Success  200 {object} service.DraftListResult
// @Failure  400 {object} errorPayload
// @Router   /drafts [get]
func ListDrafts(svc service.DraftService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil || limit < 0 || limit > maxListLimit {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil || offset < 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeInternal(c, log, "draft_list", err)
		}
		return c.JSON(res)
	}
}

// GetDraft returns one draft record.
//
// @Summary  Get a draft
// @Tags     drafts
// @Produce  json
// @Param    id path string true "Draft ID"
// @Success  200 {object} model.Draft
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /drafts/{id} [get]
func GetDraft(svc service.DraftService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := draftID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		d, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return draftError(c, log, "draft_get", err)
		}
		return c.JSON(d)
	}
}

// DownloadDraft streams the PDF as an attachment.
//
// @Summary  Download a draft PDF
// @Tags     drafts
// @Produce  application/pdf
// @Param    id path string true "Draft ID"
// @Success  200 {file} binary
// @Failure  404 {object} errorPayload
// @Router   /drafts/{id}/download [get]
func DownloadDraft(svc service.DraftService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := draftID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, d, err := svc.Open(c.UserContext(), id)
		if err != nil {
			return draftError(c, log, "draft_download", err)
		}
		c.Set(fiber.HeaderContentType, d.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", d.Filename))
		// fasthttp closes rc once the body is written
		return c.SendStream(rc, int(d.Size))
	}
}

// PreviewDraft streams the PDF inline and moves the draft to the front of the history.
//
// @Summary  Preview a draft PDF
// @Tags     drafts
// @Produce  application/pdf
// @Param    id path string true "Draft ID"
// @Success  200 {file} binary
// @Failure  404 {object} errorPayload
// @Router   /drafts/{id}/preview [get]
func PreviewDraft(svc service.DraftService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := draftID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, d, err := svc.Preview(c.UserContext(), id)
		if err != nil {
			return draftError(c, log, "draft_preview", err)
		}
		c.Set(fiber.HeaderContentType, d.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", d.Filename))
		return c.SendStream(rc, int(d.Size))
	}
}

// DraftLink returns a presigned download URL.
//
// @Summary  Get a temporary download link
// @Tags     drafts
// @Produce  json
// @Param    id path string true "Draft ID"
// @Success  200 {object} linkResponse
// @Failure  404 {object} errorPayload
// @Failure  501 {object} errorPayload
// @Router   /drafts/{id}/link [get]
func DraftLink(svc service.DraftService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := draftID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		u, exp, err := svc.Link(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrPresignUnsupported) {
				return writeError(c, fiber.StatusNotImplemented, "PRESIGN_UNSUPPORTED", "storage backend cannot issue links")
			}
			return draftError(c, log, "draft_link", err)
		}
		return c.JSON(linkResponse{URL: u, ExpiresIn: int(exp.Seconds())})
	}
}

// DeleteDraft removes a draft from storage and history.
//
// @Summary  Delete a draft
// @Tags     drafts
// @Param    id path string true "Draft ID"
// @Success  204
// @Failure  404 {object} errorPayload
// @Router   /drafts/{id} [delete]
func DeleteDraft(svc service.DraftService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := draftID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return draftError(c, log, "draft_delete", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func draftID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// draftError translates service errors into the standard envelope.
func draftError(c *fiber.Ctx, log *zap.Logger, op string, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "draft not found")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	default:
		return writeInternal(c, log, op, err)
	}
}
