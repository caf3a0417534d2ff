// Package migration names, writes and applies the generated regions migrations.
//
// Sequencing is not safe for concurrent runs against the same directory.
package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

const (
	// TimestampLayout is the UTC prefix of migration file names.
	TimestampLayout = "20060102150405"
	// Suffix follows the sequence number in every generated file name.
	Suffix = "update_regions_data"
)

var sequencePattern = regexp.MustCompile(`^\d+_(\d{3})_.*\.sql$`)

// NextSequence returns the sequence number following the highest one found in dir, formatted as three digits.
// A missing directory yields "001".
func NextSequence(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return formatSequence(1), nil
		}
		return "", fmt.Errorf("migration: failed to read %s: %w", dir, err)
	}

	highest := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := sequencePattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}

	return formatSequence(highest + 1), nil
}

func formatSequence(n int) string {
	return fmt.Sprintf("%03d", n)
}

// Pair is the forward and rollback file of one migration.
type Pair struct {
	Up   string
	Down string
}

// NewPair names the files of a migration created at ts with sequence seq inside dir.
func NewPair(dir string, ts time.Time, seq string) Pair {
	base := fmt.Sprintf("%s_%s_%s", ts.UTC().Format(TimestampLayout), seq, Suffix)
	return Pair{
		Up:   filepath.Join(dir, base+".up.sql"),
		Down: filepath.Join(dir, base+".down.sql"),
	}
}
