package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"draftgen/internal/model"
	"draftgen/internal/repository"
	"draftgen/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("draft not found")

	// ErrPresignUnsupported is returned by Link when the storage backend
	// cannot issue download URLs.
	ErrPresignUnsupported = storage.ErrPresignUnsupported
)

const (
	storagePrefix        = "drafts"
	defaultListLimit     = 10
	defaultPresignExpiry = 15 * time.Minute
)

var tracer = otel.Tracer("draftgen/internal/service")

// ContentResolver maps a category selector to its content bundle.
type ContentResolver interface {
	Resolve(category string, now time.Time) *model.ContentBundle
	Categories() []string
	Default() string
}

// DocumentRenderer lays a bundle out as a PDF.
type DocumentRenderer interface {
	Render(b *model.ContentBundle) (*model.RenderedDocument, error)
}

// DraftListResult is the service-level DTO for paginated draft history.
type DraftListResult struct {
	Items []model.Draft `json:"data"`
	Total int           `json:"total"`
}

// DraftService defines the use cases around generated drafts. It owns the
// history that the stateless resolver and renderer know nothing about.
type DraftService interface {
	// Categories lists the selectable categories; DefaultCategory is the fallback for unknown input.
	Categories() []string
	DefaultCategory() string

	// Generate resolves and renders a draft for category, stores the PDF and records it in history.
	// Render failures are returned wrapped so errors.Is(err, render.ErrRenderFailure) holds.
	Generate(ctx context.Context, category string) (*model.Draft, error)

	// List returns the history, most recently generated or previewed first.
	List(ctx context.Context, limit, offset int) (*DraftListResult, error)

	// Get returns a single draft record by its ID.
	Get(ctx context.Context, id string) (*model.Draft, error)

	// Open streams the stored PDF of a draft. The caller must close the reader.
	Open(ctx context.Context, id string) (io.ReadCloser, *model.Draft, error)

	// Preview moves the draft to the front of the history and streams its PDF.
	Preview(ctx context.Context, id string) (io.ReadCloser, *model.Draft, error)

	// Link returns a time-limited download URL for the draft's PDF.
	Link(ctx context.Context, id string) (string, time.Duration, error)

	// Delete removes a draft from both storage and history.
	Delete(ctx context.Context, id string) error
}

// Option configures the draft service.
type Option func(*draftService)

// WithClock overrides the time source used for generation and preview timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *draftService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMetrics records generation outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(s *draftService) { s.metrics = m }
}

// WithPresignExpiry sets the lifetime of links returned by Link.
func WithPresignExpiry(d time.Duration) Option {
	return func(s *draftService) {
		if d > 0 {
			s.presignExpiry = d
		}
	}
}

type draftService struct {
	store    storage.Storage
	repo     repository.DraftRepository
	resolver ContentResolver
	renderer DocumentRenderer

	now           func() time.Time
	metrics       *Metrics
	presignExpiry time.Duration
}

// NewDraftService constructs a new DraftService.
func NewDraftService(store storage.Storage, repo repository.DraftRepository, resolver ContentResolver, renderer DocumentRenderer, opts ...Option) DraftService {
	s := &draftService{
		store:         store,
		repo:          repo,
		resolver:      resolver,
		renderer:      renderer,
		now:           time.Now,
		presignExpiry: defaultPresignExpiry,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *draftService) Categories() []string {
	return s.resolver.Categories()
}

func (s *draftService) DefaultCategory() string {
	return s.resolver.Default()
}

func (s *draftService) Generate(ctx context.Context, category string) (*model.Draft, error) {
	ctx, span := tracer.Start(ctx, "DraftService.Generate",
		trace.WithAttributes(attribute.String("draft.category_input", category)))
	defer span.End()

	now := s.now()
	_, resolveSpan := tracer.Start(ctx, "DraftService.resolve")
	bundle := s.resolver.Resolve(category, now)
	resolveSpan.End()
	span.SetAttributes(
		attribute.String("draft.category", bundle.Category),
		attribute.String("draft.generation_id", bundle.Metadata.GenerationID),
	)

	_, renderSpan := tracer.Start(ctx, "DraftService.render")
	start := time.Now()
	doc, err := s.renderer.Render(bundle)
	s.metrics.observeRender(time.Since(start), err)
	renderSpan.End()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		return nil, fmt.Errorf("render draft: %w", err)
	}
	span.SetAttributes(attribute.Int("draft.pages", doc.Pages), attribute.Int("draft.bytes", len(doc.Bytes)))

	id := uuid.New().String()
	key := path.Join(storagePrefix, id+".pdf")

	putCtx, putSpan := tracer.Start(ctx, "DraftService.store", trace.WithAttributes(attribute.String("storage.key", key)))
	objInfo, err := s.store.Put(putCtx, key, bytes.NewReader(doc.Bytes), storage.PutObjectOptions{
		Size:        int64(len(doc.Bytes)),
		ContentType: doc.ContentType,
		Metadata: map[string]string{
			"filename":      doc.Filename,
			"generation-id": bundle.Metadata.GenerationID,
			"category":      bundle.Category,
		},
	})
	putSpan.End()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage failed")
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	createdAt := now.UTC()
	d := &model.Draft{
		ID:           id,
		GenerationID: bundle.Metadata.GenerationID,
		Category:     bundle.Category,
		Title:        bundle.Title,
		Filename:     doc.Filename,
		StoragePath:  objInfo.Key,
		Size:         int64(len(doc.Bytes)),
		ContentType:  doc.ContentType,
		Pages:        doc.Pages,
		CreatedAt:    createdAt,
		ViewedAt:     createdAt,
	}
	stored, err := s.repo.Create(ctx, d)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "db save failed")
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	s.metrics.incGenerated(bundle.Category)
	return stored, nil
}

// List returns paginated drafts without exposing repository types.
func (s *draftService) List(ctx context.Context, limit, offset int) (*DraftListResult, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DraftListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *draftService) Get(ctx context.Context, id string) (*model.Draft, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *draftService) Open(ctx context.Context, id string) (io.ReadCloser, *model.Draft, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, d.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("read storage: %w", err)
	}
	return rc, d, nil
}

func (s *draftService) Preview(ctx context.Context, id string) (io.ReadCloser, *model.Draft, error) {
	if id == "" {
		return nil, nil, ErrIDRequired
	}
	if err := s.repo.Touch(ctx, id, s.now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return s.Open(ctx, id)
}

func (s *draftService) Link(ctx context.Context, id string) (string, time.Duration, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return "", 0, err
	}
	u, err := s.store.PresignGet(ctx, d.StoragePath, s.presignExpiry)
	if err != nil {
		return "", 0, fmt.Errorf("presign: %w", err)
	}
	return u, s.presignExpiry, nil
}

// Delete removes a draft from storage, then deletes its record.
func (s *draftService) Delete(ctx context.Context, id string) error {
	d, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	// Delete from storage first; if this fails, keep the row so the object is not orphaned
	if err := s.store.Delete(ctx, d.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
