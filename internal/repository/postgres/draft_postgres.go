package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"draftgen/internal/model"
	"draftgen/internal/repository"
)

// DraftPostgres is a PostgreSQL implementation of repository.DraftRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DraftPostgres struct {
	db *sql.DB
}

// NewDraftPostgres creates a new DraftPostgres repository.
func NewDraftPostgres(db *sql.DB) *DraftPostgres {
	return &DraftPostgres{db: db}
}

var _ repository.DraftRepository = (*DraftPostgres)(nil)

const draftColumns = `id, generation_id, category, title, filename, storage_path, size, content_type, pages, created_at, viewed_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanDraft(s scanner) (*model.Draft, error) {
	var d model.Draft
	if err := s.Scan(
		&d.ID,
		&d.GenerationID,
		&d.Category,
		&d.Title,
		&d.Filename,
		&d.StoragePath,
		&d.Size,
		&d.ContentType,
		&d.Pages,
		&d.CreatedAt,
		&d.ViewedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// IsNoRowsError reports whether err means the draft does not exist.
func IsNoRowsError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// Create inserts a new draft row and returns the stored record.
func (r *DraftPostgres) Create(ctx context.Context, d *model.Draft) (*model.Draft, error) {
	const q = `
		INSERT INTO drafts (` + draftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + draftColumns
	row := r.db.QueryRowContext(ctx, q,
		d.ID,
		d.GenerationID,
		d.Category,
		d.Title,
		d.Filename,
		d.StoragePath,
		d.Size,
		d.ContentType,
		d.Pages,
		d.CreatedAt,
		d.ViewedAt,
	)
	return scanDraft(row)
}

// FindByID fetches a single draft by its ID.
func (r *DraftPostgres) FindByID(ctx context.Context, id string) (*model.Draft, error) {
	const q = `
		SELECT ` + draftColumns + `
		FROM drafts
		WHERE id = $1
	`
	return scanDraft(r.db.QueryRowContext(ctx, q, id))
}

// List returns drafts using LIMIT/OFFSET pagination and a total count.
func (r *DraftPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Draft], error) {
	const qCount = `SELECT COUNT(*) FROM drafts`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + draftColumns + `
		FROM drafts
		ORDER BY viewed_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Draft, 0)
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Draft]{
		Items: items,
		Total: total,
	}, nil
}

// Touch updates viewed_at. A missing row is reported as sql.ErrNoRows.
func (r *DraftPostgres) Touch(ctx context.Context, id string, at time.Time) error {
	const q = `UPDATE drafts SET viewed_at = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, q, at, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a draft by ID. It does not return an error if the row does not exist.
func (r *DraftPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM drafts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
