// Package extractor turns the local government code workbook into a normalized CSV.
package extractor

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"region-codes/internal/models"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrSourceNotFound is returned when the workbook does not exist.
	ErrSourceNotFound = errors.New("source workbook not found")
	// ErrSheetNotFound is returned when the workbook has no sheet with the requested name.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrCodeColumnMissing is returned when the header has no code column.
	ErrCodeColumnMissing = errors.New("code column missing")
	// ErrEmptySheet is returned when the sheet has no header row.
	ErrEmptySheet = errors.New("sheet is empty")
)

// InvalidCodeError reports a code cell that cannot be normalized.
type InvalidCodeError struct {
	Row   int
	Value string
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("row %d: invalid code %q", e.Row, e.Value)
}

func (e *InvalidCodeError) Unwrap() error {
	return models.ErrInvalidCode
}

// Table is a normalized sheet: cleaned header plus rows padded to the header width.
type Table struct {
	Header    []string
	Rows      [][]string
	CodeIndex int
}

// ReadSheet opens the workbook at path and normalizes the named sheet.
func ReadSheet(path, sheet string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("extractor: %s: %w", path, ErrSourceNotFound)
		}
		return nil, fmt.Errorf("extractor: failed to stat %s: %w", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("extractor: failed to open workbook: %w", err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("extractor: %q in %s: %w", sheet, path, ErrSheetNotFound)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("extractor: failed to read rows: %w", err)
	}

	return Normalize(rows)
}

// Normalize cleans the header, fills missing cells with empty strings and zero-pads the code column.
// Blank rows are dropped. Rows wider than the header add "Unnamed: N" columns.
func Normalize(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("extractor: %w", ErrEmptySheet)
	}

	width := len(rows[0])
	for _, row := range rows[1:] {
		if len(row) > width && !isBlank(row) {
			width = len(row)
		}
	}

	// Cells past the last named column keep their data under a positional name.
	header := make([]string, width)
	for i := len(rows[0]); i < width; i++ {
		header[i] = fmt.Sprintf("Unnamed: %d", i)
	}
	codeIndex := -1
	for i, name := range rows[0] {
		header[i] = strings.NewReplacer("\r", "", "\n", "").Replace(name)
		if codeIndex < 0 && models.CanonicalColumn(name) == models.CanonicalColumn(models.ColumnCode) {
			codeIndex = i
		}
	}
	if codeIndex < 0 {
		return nil, fmt.Errorf("extractor: %w", ErrCodeColumnMissing)
	}

	table := &Table{Header: header, CodeIndex: codeIndex}
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		cells := make([]string, len(header))
		copy(cells, row)

		code, err := models.NormalizeCode(cells[codeIndex])
		if err != nil {
			// +2: one for the header, one for 1-based sheet rows
			return nil, fmt.Errorf("extractor: %w", &InvalidCodeError{Row: i + 2, Value: cells[codeIndex]})
		}
		cells[codeIndex] = code

		table.Rows = append(table.Rows, cells)
	}

	return table, nil
}

// WriteCSV writes the table as UTF-8 CSV, creating parent directories as needed.
func WriteCSV(path string, t *Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("extractor: failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("extractor: failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(t.Header); err != nil {
		return fmt.Errorf("extractor: failed to write header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("extractor: failed to write rows: %w", err)
	}

	return file.Close()
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
