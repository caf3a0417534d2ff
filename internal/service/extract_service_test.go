package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"region-codes/internal/config"
	"region-codes/internal/extractor"
	"region-codes/internal/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExtractService_Extract(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "local_government_codes.xlsx")
	sheet := "R6.1.1現在の団体"

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"団体コード", "都道府県名\n（漢字）", "市区町村名\n（漢字）", "都道府県名\n（カナ）", "市区町村名\n（カナ）"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{10006, "北海道", "", "ﾎｯｶｲﾄﾞｳ", ""}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{11002, "北海道", "札幌市", "ﾎｯｶｲﾄﾞｳ", "ｻｯﾎﾟﾛｼ"}))
	require.NoError(t, f.SaveAs(source))
	require.NoError(t, f.Close())

	cfg := config.Config{
		SourcePath: source,
		SheetName:  sheet,
		CSVPath:    filepath.Join(dir, "backend", "sql", "local_government_codes.csv"),
	}

	result, err := NewExtractService(cfg).Extract(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.Rows)

	s, err := snapshot.Load(cfg.CSVPath)
	require.NoError(t, err)
	rec, ok := s.Get("011002")
	require.True(t, ok)
	assert.Equal(t, "札幌市", rec.MunicipalityName)
	assert.True(t, s.Has("010006"))
}

func TestExtractService_MissingSource(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{
		SourcePath: filepath.Join(dir, "absent.xlsx"),
		SheetName:  "R6.1.1現在の団体",
		CSVPath:    filepath.Join(dir, "out.csv"),
	}

	_, err := NewExtractService(cfg).Extract(context.Background())

	assert.ErrorIs(t, err, extractor.ErrSourceNotFound)
	_, statErr := os.Stat(cfg.CSVPath)
	assert.True(t, os.IsNotExist(statErr))
}
