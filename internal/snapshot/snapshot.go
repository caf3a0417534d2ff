// Package snapshot loads normalized local government code CSV files.
package snapshot

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"region-codes/internal/models"

	"github.com/jszwec/csvutil"
)

var (
	// ErrNotFound is returned when the snapshot file does not exist.
	ErrNotFound = errors.New("snapshot not found")
	// ErrDuplicateCode is returned when a code appears more than once in a snapshot.
	ErrDuplicateCode = errors.New("duplicate code")
	// ErrMissingColumn is returned when the CSV header lacks the code column.
	ErrMissingColumn = errors.New("missing column")
)

// Snapshot is an ordered, code-indexed collection of records.
type Snapshot struct {
	records []models.Record
	index   map[string]int
}

// New builds a snapshot, rejecting duplicate codes.
func New(records []models.Record) (*Snapshot, error) {
	s := &Snapshot{
		records: make([]models.Record, 0, len(records)),
		index:   make(map[string]int, len(records)),
	}
	for _, r := range records {
		if _, ok := s.index[r.Code]; ok {
			return nil, fmt.Errorf("snapshot: %s: %w", r.Code, ErrDuplicateCode)
		}
		s.index[r.Code] = len(s.records)
		s.records = append(s.records, r)
	}
	return s, nil
}

// Len returns the number of records. A nil snapshot is empty.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// Records returns the records in file order.
func (s *Snapshot) Records() []models.Record {
	if s == nil {
		return nil
	}
	out := make([]models.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Get looks a record up by code.
func (s *Snapshot) Get(code string) (models.Record, bool) {
	if s == nil {
		return models.Record{}, false
	}
	i, ok := s.index[code]
	if !ok {
		return models.Record{}, false
	}
	return s.records[i], true
}

// Has reports whether code is present.
func (s *Snapshot) Has(code string) bool {
	_, ok := s.Get(code)
	return ok
}

// Load reads the snapshot at path.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("snapshot: %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("snapshot: failed to open %s: %w", path, err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadOptional is Load that returns a nil snapshot when the file does not exist.
func LoadOptional(path string) (*Snapshot, error) {
	s, err := Load(path)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return s, err
}

// Parse decodes CSV with a header row. Codes are zero-padded and columns beyond the known ones are ignored.
func Parse(r io.Reader) (*Snapshot, error) {
	cr := csv.NewReader(stripUTF8BOM(bufio.NewReader(r)))

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("snapshot: missing header")
		}
		return nil, fmt.Errorf("snapshot: failed to read header: %w", err)
	}
	header = canonicalHeader(header)
	if !contains(header, models.ColumnCode) {
		return nil, fmt.Errorf("snapshot: %s: %w", models.ColumnCode, ErrMissingColumn)
	}

	dec, err := csvutil.NewDecoder(cr, header...)
	if err != nil {
		return nil, fmt.Errorf("snapshot: failed to create decoder: %w", err)
	}

	var records []models.Record
	for line := 2; ; line++ {
		var rec models.Record
		if err := dec.Decode(&rec); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("snapshot: line %d: %w", line, err)
		}

		code, err := models.NormalizeCode(rec.Code)
		if err != nil {
			return nil, fmt.Errorf("snapshot: line %d: %q: %w", line, rec.Code, err)
		}
		rec.Code = code

		records = append(records, rec)
	}

	return New(records)
}

var knownColumns = []string{
	models.ColumnCode,
	models.ColumnPrefectureName,
	models.ColumnMunicipalityName,
	models.ColumnPrefectureNameKana,
	models.ColumnMunicipalityNameKana,
}

// canonicalHeader rewrites spellings of the known columns to the names used in the csv tags.
func canonicalHeader(header []string) []string {
	lookup := make(map[string]string, len(knownColumns))
	for _, c := range knownColumns {
		lookup[models.CanonicalColumn(c)] = c
	}

	out := make([]string, len(header))
	for i, h := range header {
		if c, ok := lookup[models.CanonicalColumn(h)]; ok {
			out[i] = c
			continue
		}
		out[i] = h
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}
