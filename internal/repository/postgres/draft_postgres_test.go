package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"draftgen/internal/model"
	"draftgen/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var draftRowColumns = []string{
	"id", "generation_id", "category", "title", "filename", "storage_path",
	"size", "content_type", "pages", "created_at", "viewed_at",
}

func sampleDraft(id string, at time.Time) *model.Draft {
	return &model.Draft{
		ID:           id,
		GenerationID: "RUU-PAJ-0a1b2c3d",
		Category:     "Pajak",
		Title:        "RANCANGAN UNDANG-UNDANG TENTANG REFORMASI PERPAJAKAN UNTUK DAYA SAING DAN KEADILAN",
		Filename:     "draft_RUU_Pajak_20240115_100000.pdf",
		StoragePath:  "drafts/" + id + ".pdf",
		Size:         2048,
		ContentType:  "application/pdf",
		Pages:        3,
		CreatedAt:    at,
		ViewedAt:     at,
	}
}

func draftRow(rows *sqlmock.Rows, d *model.Draft) *sqlmock.Rows {
	return rows.AddRow(d.ID, d.GenerationID, d.Category, d.Title, d.Filename, d.StoragePath,
		d.Size, d.ContentType, d.Pages, d.CreatedAt, d.ViewedAt)
}

func TestDraftPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDraftPostgres(db)
	ctx := context.Background()

	d := sampleDraft("test-uuid", time.Now().UTC())

	mock.ExpectQuery("INSERT INTO drafts").
		WithArgs(d.ID, d.GenerationID, d.Category, d.Title, d.Filename, d.StoragePath,
			d.Size, d.ContentType, d.Pages, d.CreatedAt, d.ViewedAt).
		WillReturnRows(draftRow(sqlmock.NewRows(draftRowColumns), d))

	result, err := repo.Create(ctx, d)

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, d.ID, result.ID)
	assert.Equal(t, d.GenerationID, result.GenerationID)
	assert.Equal(t, 3, result.Pages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDraftPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDraftPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM drafts WHERE id = ?").
			WithArgs("test-id").
			WillReturnRows(draftRow(sqlmock.NewRows(draftRowColumns), sampleDraft("test-id", time.Now())))

		d, err := repo.FindByID(ctx, "test-id")

		assert.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, "test-id", d.ID)
		assert.Equal(t, "Pajak", d.Category)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM drafts WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		d, err := repo.FindByID(ctx, "missing")

		assert.Error(t, err)
		assert.True(t, IsNoRowsError(err))
		assert.Nil(t, d)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDraftPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDraftPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM drafts").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		now := time.Now()
		rows := sqlmock.NewRows(draftRowColumns)
		draftRow(rows, sampleDraft("b", now))
		draftRow(rows, sampleDraft("a", now.Add(-time.Minute)))

		mock.ExpectQuery("SELECT (.+) FROM drafts ORDER BY viewed_at DESC").
			WithArgs(10, 0).
			WillReturnRows(rows)

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0})

		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		require.Len(t, res.Items, 2)
		assert.Equal(t, "b", res.Items[0].ID)
	})

	t.Run("count error", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM drafts").
			WillReturnError(errors.New("db down"))

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10})

		assert.EqualError(t, err, "db down")
		assert.Nil(t, res)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDraftPostgres_Touch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDraftPostgres(db)
	ctx := context.Background()
	at := time.Now().UTC()

	t.Run("updated", func(t *testing.T) {
		mock.ExpectExec("UPDATE drafts SET viewed_at = ?").
			WithArgs(at, "test-id").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Touch(ctx, "test-id", at))
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec("UPDATE drafts SET viewed_at = ?").
			WithArgs(at, "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Touch(ctx, "missing", at)
		assert.True(t, IsNoRowsError(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDraftPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDraftPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM drafts WHERE id = ?").
		WithArgs("test-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete(ctx, "test-id")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
