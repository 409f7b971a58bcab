package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"draftgen/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// db may be nil when history is kept in memory.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.DraftService, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("http")

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/categories", ListCategories(svc))

	drafts := app.Group("/drafts")
	drafts.Get("/", ListDrafts(svc, log))
	drafts.Post("/", GenerateDraft(svc, log))
	drafts.Get("/:id", GetDraft(svc, log))
	drafts.Get("/:id/download", DownloadDraft(svc, log))
	drafts.Get("/:id/preview", PreviewDraft(svc, log))
	drafts.Get("/:id/link", DraftLink(svc, log))
	drafts.Delete("/:id", DeleteDraft(svc, log))
}
