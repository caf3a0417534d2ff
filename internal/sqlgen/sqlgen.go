// Package sqlgen renders forward and rollback SQL for a diff.ChangeSet against the regions table.
//
// Values are quoted by doubling single quotes and nothing else. Input is the official code list,
// not user data.
package sqlgen

import (
	"fmt"
	"strings"

	"region-codes/internal/diff"
	"region-codes/internal/models"
	"region-codes/internal/snapshot"
)

const insertHeader = "INSERT INTO regions (jis_code, name, name_kana, region_type, parent_jis_code, created_at, updated_at) VALUES"

// Quote returns s as a SQL string literal.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// ResolveParent finds the prefecture for a municipality code among batch: the first prefecture record
// sharing the two-digit prefix. Only batch is searched.
func ResolveParent(code string, batch []models.Record) (string, bool) {
	if len(code) < 2 {
		return "", false
	}
	prefix := code[:2]
	for _, r := range batch {
		if !r.IsMunicipality() && strings.HasPrefix(r.Code, prefix) {
			return r.Code, true
		}
	}
	return "", false
}

// RenderUp renders the forward migration for cs.
func RenderUp(cs diff.ChangeSet) string {
	lines := []string{
		"-- Update regions data (differential migration)",
		"-- Generated automatically from local government codes diff",
		"",
		"BEGIN;",
		"",
	}

	if len(cs.Added) > 0 {
		lines = append(lines,
			fmt.Sprintf("-- Insert new regions (%d records)", len(cs.Added)),
			insertHeader,
			insertValues(cs.Added),
			"",
		)
	}

	if len(cs.Updated) > 0 {
		lines = append(lines, fmt.Sprintf("-- Update existing regions (%d records)", len(cs.Updated)))
		for _, r := range cs.Updated {
			lines = append(lines, updateStatement(r))
		}
		lines = append(lines, "")
	}

	if len(cs.Deleted) > 0 {
		lines = append(lines,
			fmt.Sprintf("-- Delete removed regions (%d records)", len(cs.Deleted)),
			"-- Note: Physical deletion for master data",
			deleteStatement(cs.Deleted),
			"",
		)
	}

	return finish(lines)
}

// RenderDown renders the rollback of cs. prev supplies the names restored for updated records;
// with an empty prev the updated section is omitted.
func RenderDown(cs diff.ChangeSet, prev *snapshot.Snapshot) string {
	lines := []string{
		"-- Rollback regions data changes",
		"-- This will undo the differential migration",
		"",
		"BEGIN;",
		"",
	}

	if len(cs.Added) > 0 {
		lines = append(lines,
			fmt.Sprintf("-- Remove newly added regions (%d records)", len(cs.Added)),
			deleteStatement(cs.Added),
			"",
		)
	}

	if len(cs.Updated) > 0 && prev.Len() > 0 {
		lines = append(lines, fmt.Sprintf("-- Restore updated regions (%d records)", len(cs.Updated)))
		for _, r := range cs.Updated {
			if old, ok := prev.Get(r.Code); ok {
				lines = append(lines, updateStatement(old))
			}
		}
		lines = append(lines, "")
	}

	if len(cs.Deleted) > 0 {
		lines = append(lines,
			fmt.Sprintf("-- Restore deleted regions (%d records)", len(cs.Deleted)),
			insertHeader,
			insertValues(cs.Deleted),
			"",
		)
	}

	return finish(lines)
}

func insertValues(batch []models.Record) string {
	values := make([]string, 0, len(batch))
	for _, r := range batch {
		parent := "NULL"
		if r.IsMunicipality() {
			if code, ok := ResolveParent(r.Code, batch); ok {
				parent = Quote(code)
			}
		}
		values = append(values, fmt.Sprintf("(%s, %s, %s, %s, %s, NOW(), NOW())",
			Quote(r.Code), Quote(r.Name()), Quote(r.NameKana()), Quote(string(r.RegionType())), parent))
	}
	return strings.Join(values, ",\n") + ";"
}

func updateStatement(r models.Record) string {
	return fmt.Sprintf("UPDATE regions SET name = %s, name_kana = %s, updated_at = NOW() WHERE jis_code = %s;",
		Quote(r.Name()), Quote(r.NameKana()), Quote(r.Code))
}

func deleteStatement(batch []models.Record) string {
	codes := diff.Codes(batch)
	for i, c := range codes {
		codes[i] = Quote(c)
	}
	return fmt.Sprintf("DELETE FROM regions WHERE jis_code IN (%s);", strings.Join(codes, ", "))
}

func finish(lines []string) string {
	lines = append(lines,
		"COMMIT;",
		"",
		"-- Update statistics",
		"ANALYZE regions;",
	)
	return strings.Join(lines, "\n") + "\n"
}
