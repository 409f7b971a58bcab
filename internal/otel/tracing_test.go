package otel

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"

	"draftgen/internal/logging"
)

func TestInit_Disabled(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")

	var buf bytes.Buffer
	shutdown, err := Init(context.Background(), logging.NewWithWriter(&buf, "info", time.UTC))
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "tracing_configured", entry["msg"])
	assert.Equal(t, false, entry["tracing_enabled"])
	assert.Equal(t, "otel", entry["component"])
}

func TestInit_UnsupportedProtocolDegrades(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "false")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "carrier-pigeon")

	var buf bytes.Buffer
	shutdown, err := Init(context.Background(), logging.NewWithWriter(&buf, "info", time.UTC))
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "tracing_init_failed")
}

func TestNewSampler(t *testing.T) {
	tests := []struct {
		name, arg string
		want      string
	}{
		{"always_on", "", trace.AlwaysSample().Description()},
		{"always_off", "", trace.NeverSample().Description()},
		{"traceidratio", "0.5", trace.TraceIDRatioBased(0.5).Description()},
		{"traceidratio", "junk", trace.TraceIDRatioBased(1).Description()},
		{"parentbased_traceidratio", "0.25", trace.ParentBased(trace.TraceIDRatioBased(0.25)).Description()},
		{"", "", trace.ParentBased(trace.AlwaysSample()).Description()},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.want, newSampler(tt.name, tt.arg).Description())
		})
	}
}
