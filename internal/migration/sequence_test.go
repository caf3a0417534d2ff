package migration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextSequence(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		noDir    bool
		expected string
	}{
		{
			name:     "missing directory",
			noDir:    true,
			expected: "001",
		},
		{
			name:     "empty directory",
			expected: "001",
		},
		{
			name: "continues after highest",
			files: []string{
				"20240101000000_001_update_regions_data.up.sql",
				"20240101000000_001_update_regions_data.down.sql",
				"20240301000000_003_update_regions_data.up.sql",
				"20240201000000_002_create_regions.up.sql",
			},
			expected: "004",
		},
		{
			name: "ignores names outside the pattern",
			files: []string{
				"000_schema.sql",
				"20240101000000_0042_update_regions_data.up.sql",
				"20240101000000_007_notes.txt",
				"README.md",
				"20240101000000_002_update_regions_data.up.sql",
			},
			expected: "003",
		},
		{
			name:     "rolls past 999",
			files:    []string{"20240101000000_999_update_regions_data.up.sql"},
			expected: "1000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "migrations")
			if !tt.noDir {
				require.NoError(t, os.MkdirAll(dir, 0o755))
			}
			for _, name := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
			}

			seq, err := NextSequence(dir)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, seq)
		})
	}
}

func TestNewPair(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	ts := time.Date(2024, 4, 1, 9, 30, 15, 0, jst)

	p := NewPair("backend/migrations", ts, "004")

	assert.Equal(t, filepath.Join("backend/migrations", "20240401003015_004_update_regions_data.up.sql"), p.Up)
	assert.Equal(t, filepath.Join("backend/migrations", "20240401003015_004_update_regions_data.down.sql"), p.Down)
}
