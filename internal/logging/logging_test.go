package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWithWriter_JSONLine(t *testing.T) {
	var buf bytes.Buffer
	loc := time.FixedZone("WIB", 7*60*60)
	log := NewWithWriter(&buf, "info", loc).Named("database")

	log.Info("db_migration_skip", zap.String("status", "success"), zap.Int64("duration_ms", 3))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "db_migration_skip", entry["msg"])
	assert.Equal(t, "database", entry["component"])
	assert.Equal(t, "success", entry["status"])
	assert.Equal(t, float64(3), entry["duration_ms"])

	ts, err := time.Parse(time.RFC3339Nano, entry["ts"].(string))
	require.NoError(t, err)
	_, offset := ts.Zone()
	assert.Equal(t, 7*60*60, offset)
}

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", nil)

	log.Info("dropped")
	log.Warn("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"msg":"kept"`)
}

func TestNewWithWriter_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "loud", time.UTC)

	log.Debug("dropped")
	log.Info("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}
