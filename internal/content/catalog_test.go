package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog_Embedded(t *testing.T) {
	c, err := ParseCatalog(embeddedCatalog)
	require.NoError(t, err)

	assert.Equal(t, "Ketenagakerjaan", c.Default)
	assert.Len(t, c.Categories, 3)
	assert.Len(t, c.Articles, 6)
	assert.Equal(t, sanctionsRef, c.Articles[4].ClausesFrom)
	assert.Empty(t, c.Articles[4].Clauses)
}

func TestParseCatalog_Invalid(t *testing.T) {
	valid := string(embeddedCatalog)

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			data:    "default: [",
			wantErr: "parsing catalog",
		},
		{
			name:    "unknown default",
			data:    strings.Replace(valid, "default: Ketenagakerjaan", "default: Kesehatan", 1),
			wantErr: `default category "Kesehatan" is not defined`,
		},
		{
			name:    "unknown clause source",
			data:    strings.Replace(valid, "clauses_from: sanctions", "clauses_from: timeline", 1),
			wantErr: `unknown clauses_from "timeline"`,
		},
		{
			name:    "duplicate category",
			data:    strings.Replace(valid, "- name: Korupsi", "- name: Pajak", 1),
			wantErr: "duplicate category Pajak",
		},
		{
			name:    "missing categories",
			data:    "default: A\ncategories: []\n",
			wantErr: "expected 3 categories, got 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNew_WithCatalog(t *testing.T) {
	c, err := ParseCatalog(embeddedCatalog)
	require.NoError(t, err)

	r, err := New(WithCatalog(c))
	require.NoError(t, err)
	assert.Same(t, c, r.catalog)
}
