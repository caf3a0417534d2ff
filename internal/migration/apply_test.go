package migration

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplier_ApplyFile(t *testing.T) {
	script := "BEGIN;\nDELETE FROM regions WHERE jis_code IN ('010006');\nCOMMIT;\n"

	tests := []struct {
		name        string
		execErr     error
		missing     bool
		expectError bool
	}{
		{name: "applies script"},
		{name: "database error", execErr: assert.AnError, expectError: true},
		{name: "missing file", missing: true, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			path := filepath.Join(t.TempDir(), "20240101000000_001_update_regions_data.down.sql")
			if !tt.missing {
				require.NoError(t, os.WriteFile(path, []byte(script), 0o644))
				exec := mock.ExpectExec(regexp.QuoteMeta(script))
				if tt.execErr != nil {
					exec.WillReturnError(tt.execErr)
				} else {
					exec.WillReturnResult(sqlmock.NewResult(0, 1))
				}
			}

			err = NewApplier(db).ApplyFile(context.Background(), path)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
