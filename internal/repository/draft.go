package repository

import (
	"context"
	"time"

	"draftgen/internal/model"
)

// DraftRepository defines data access for generated draft history.
// No business logic here, only persistence.
type DraftRepository interface {
	// Create inserts a new draft record and returns the stored record.
	Create(ctx context.Context, d *model.Draft) (*model.Draft, error)

	// FindByID returns a draft by its ID.
	FindByID(ctx context.Context, id string) (*model.Draft, error)

	// List returns a page of drafts, most recently viewed first, and the total count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Draft], error)

	// Touch sets the draft's viewed_at, moving it to the front of List.
	Touch(ctx context.Context, id string, at time.Time) error

	// Delete removes a draft by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
