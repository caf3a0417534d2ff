package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"region-codes/internal/cli"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExtractor(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "local_government_codes.xlsx")
	output := filepath.Join(dir, "sql", "local_government_codes.csv")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "R6.1.1現在の団体"))
	require.NoError(t, f.SetSheetRow("R6.1.1現在の団体", "A1", &[]interface{}{"団体コード", "都道府県名\n（漢字）"}))
	require.NoError(t, f.SetSheetRow("R6.1.1現在の団体", "A2", &[]interface{}{10006, "北海道"}))
	require.NoError(t, f.SaveAs(source))
	require.NoError(t, f.Close())

	tests := []struct {
		name     string
		args     []string
		expected int
	}{
		{name: "exports the sheet", args: []string{"--source", source, "--output", output}, expected: cli.ExitOK},
		{name: "missing workbook", args: []string{"--source", filepath.Join(dir, "absent.xlsx"), "--output", output}, expected: cli.ExitInput},
		{name: "missing sheet", args: []string{"--source", source, "--sheet", "R7.1.1現在の団体", "--output", output}, expected: cli.ExitInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetArgs(append([]string{"--config", dir}, tt.args...))

			assert.Equal(t, tt.expected, cli.Run(cmd, &bytes.Buffer{}))
		})
	}

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "団体コード,都道府県名（漢字）\n010006,北海道\n", string(got))
}
