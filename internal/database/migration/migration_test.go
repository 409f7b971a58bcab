package migration

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"draftgen/internal/logging"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sentinelQuery = `SELECT to_regclass\('public.drafts'\) IS NOT NULL`

func TestEnsureMigrated_Skip(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	log := logging.NewWithWriter(&buf, "info", time.UTC)

	mock.ExpectQuery(sentinelQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	require.NoError(t, EnsureMigrated(context.Background(), db, log, "db.local"))
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, buf.String(), `"msg":"db_migration_skip"`)
	assert.Contains(t, buf.String(), `"db_host":"db.local"`)
}

func TestEnsureMigrated_RunsAllSteps(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(sentinelQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS drafts").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_drafts_viewed_at").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_drafts_category").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureMigrated(context.Background(), db, logging.Nop(), "db.local"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMigrated_StepFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	log := logging.NewWithWriter(&buf, "info", time.UTC)

	mock.ExpectQuery(sentinelQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS drafts").WillReturnError(errors.New("permission denied"))

	err = EnsureMigrated(context.Background(), db, log, "db.local")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration step create_table_drafts failed")
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMigrated_SentinelFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(sentinelQuery).WillReturnError(errors.New("conn reset"))

	err = EnsureMigrated(context.Background(), db, logging.Nop(), "db.local")
	assert.ErrorContains(t, err, "failed to check sentinel table")
}
