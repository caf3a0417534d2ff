package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"region-codes/internal/cli"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeader = "団体コード,都道府県名（漢字）,市区町村名（漢字）,都道府県名（カナ）,市区町村名（カナ）\n"

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs(append([]string{"--config", t.TempDir()}, args...))
	code := cli.Run(cmd, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestMigrator_GenerateTwice(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "local_government_codes.csv")
	migrations := filepath.Join(dir, "migrations")
	require.NoError(t, os.WriteFile(csvPath, []byte(csvHeader+"010006,北海道,,ﾎｯｶｲﾄﾞｳ,\n"), 0o644))

	code, stdout, _ := run(t, "generate", "--csv", csvPath, "--migrations", migrations)
	require.Equal(t, cli.ExitOK, code)
	assert.Contains(t, stdout, "added: 1, updated: 0, deleted: 0")
	assert.FileExists(t, csvPath+".backup")

	code, stdout, _ = run(t, "--csv", csvPath, "--migrations", migrations)
	require.Equal(t, cli.ExitOK, code)
	assert.Contains(t, stdout, "added: 0, updated: 0, deleted: 0")

	entries, err := os.ReadDir(migrations)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestMigrator_Plan(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "local_government_codes.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(csvHeader+"010006,北海道,,ﾎｯｶｲﾄﾞｳ,\n"), 0o644))

	code, stdout, _ := run(t, "plan", "--csv", csvPath, "--migrations", filepath.Join(dir, "migrations"))
	require.Equal(t, cli.ExitOK, code)
	assert.Contains(t, stdout, "('010006', '北海道', 'ﾎｯｶｲﾄﾞｳ', 'prefecture', NULL, NOW(), NOW());")

	code, stdout, _ = run(t, "plan", "--down", "--csv", csvPath)
	require.Equal(t, cli.ExitOK, code)
	assert.Contains(t, stdout, "DELETE FROM regions WHERE jis_code IN ('010006');")

	assert.NoFileExists(t, csvPath+".backup")
	assert.NoDirExists(t, filepath.Join(dir, "migrations"))
}

func TestMigrator_MissingCSV(t *testing.T) {
	code, _, stderr := run(t, "generate", "--csv", filepath.Join(t.TempDir(), "absent.csv"))

	assert.Equal(t, cli.ExitInput, code)
	assert.Contains(t, stderr, "snapshot not found")
}

func TestMigrator_ApplyRequiresDatabase(t *testing.T) {
	t.Setenv("DB_SOURCE", "")

	code, _, stderr := run(t, "apply", "--file", "up.sql")

	assert.Equal(t, cli.ExitUsage, code)
	assert.Contains(t, stderr, "DB_SOURCE")
}
