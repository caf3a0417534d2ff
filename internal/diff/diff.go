// Package diff classifies records of two snapshots as added, updated or deleted.
package diff

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"region-codes/internal/models"
	"region-codes/internal/snapshot"
)

// ChangeSet is the result of comparing two snapshots.
// Updated holds the current version of each record, Deleted the previous one.
type ChangeSet struct {
	Added   []models.Record
	Updated []models.Record
	Deleted []models.Record
}

// Empty reports whether nothing changed.
func (c ChangeSet) Empty() bool {
	return len(c.Added) == 0 && len(c.Updated) == 0 && len(c.Deleted) == 0
}

// Total is the number of changed records across all categories.
func (c ChangeSet) Total() int {
	return len(c.Added) + len(c.Updated) + len(c.Deleted)
}

// Codes returns the codes of a category in order.
func Codes(records []models.Record) []string {
	codes := make([]string, len(records))
	for i, r := range records {
		codes[i] = r.Code
	}
	return codes
}

// Detect compares prev with curr by code. A nil prev classifies every current record as added.
// Added and Updated follow curr order, Deleted follows prev order.
func Detect(prev, curr *snapshot.Snapshot) ChangeSet {
	var cs ChangeSet

	for _, rec := range curr.Records() {
		old, ok := prev.Get(rec.Code)
		switch {
		case !ok:
			cs.Added = append(cs.Added, rec)
		case Hash(old) != Hash(rec):
			cs.Updated = append(cs.Updated, rec)
		}
	}

	for _, rec := range prev.Records() {
		if !curr.Has(rec.Code) {
			cs.Deleted = append(cs.Deleted, rec)
		}
	}

	return cs
}

// Hash digests the four name fields. The code and any other column do not take part.
func Hash(r models.Record) string {
	content := strings.Join([]string{
		r.PrefectureName,
		r.MunicipalityName,
		r.PrefectureNameKana,
		r.MunicipalityNameKana,
	}, "\x1f")
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
