package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"region-codes/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the regions table targeted by the generated migrations.
const Schema = `
	CREATE TABLE IF NOT EXISTS regions (
		jis_code VARCHAR(6) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		name_kana VARCHAR(255) NOT NULL,
		region_type VARCHAR(20) NOT NULL CHECK (region_type IN ('prefecture', 'municipality')),
		parent_jis_code VARCHAR(6),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS regions_parent_jis_code_idx ON regions (parent_jis_code);
	CREATE INDEX IF NOT EXISTS regions_region_type_idx ON regions (region_type);
`

const regionColumns = `jis_code, name, name_kana, region_type, parent_jis_code, created_at, updated_at`

// Repository implements the regions repository for PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the regions table if it does not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// ListRegions returns every region ordered by code
func (r *Repository) ListRegions(ctx context.Context) ([]models.Region, error) {
	return r.queryRegions(ctx, `SELECT `+regionColumns+` FROM regions ORDER BY jis_code`)
}

// ListPrefectures returns the prefecture rows ordered by code
func (r *Repository) ListPrefectures(ctx context.Context) ([]models.Region, error) {
	return r.queryRegions(ctx, `SELECT `+regionColumns+` FROM regions WHERE region_type = 'prefecture' ORDER BY jis_code`)
}

// ListMunicipalitiesByPrefecture returns the municipalities whose parent is prefectureCode
func (r *Repository) ListMunicipalitiesByPrefecture(ctx context.Context, prefectureCode string) ([]models.Region, error) {
	sql := `
		SELECT ` + regionColumns + `
		FROM regions
		WHERE region_type = 'municipality' AND parent_jis_code = $1
		ORDER BY jis_code
	`
	return r.queryRegions(ctx, sql, prefectureCode)
}

// ListRegionHierarchy returns every region joined with its parent's name
func (r *Repository) ListRegionHierarchy(ctx context.Context) ([]models.RegionHierarchy, error) {
	sql := `
		SELECT
			r.jis_code,
			r.name,
			r.name_kana,
			r.region_type,
			r.parent_jis_code,
			r.created_at,
			r.updated_at,
			p.name AS parent_name
		FROM regions r
		LEFT JOIN regions p ON p.jis_code = r.parent_jis_code
		ORDER BY r.jis_code
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute hierarchy query: %w", err)
	}
	defer rows.Close()

	result := []models.RegionHierarchy{}
	for rows.Next() {
		var h models.RegionHierarchy
		err := rows.Scan(
			&h.JISCode,
			&h.Name,
			&h.NameKana,
			&h.RegionType,
			&h.ParentJISCode,
			&h.CreatedAt,
			&h.UpdatedAt,
			&h.ParentName,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan region: %w", err)
		}
		result = append(result, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return result, nil
}

// FindRegionByCode looks a region up by its JIS code
func (r *Repository) FindRegionByCode(ctx context.Context, code string) (*models.Region, error) {
	var region models.Region
	err := r.db.QueryRow(ctx, `SELECT `+regionColumns+` FROM regions WHERE jis_code = $1`, code).Scan(
		&region.JISCode,
		&region.Name,
		&region.NameKana,
		&region.RegionType,
		&region.ParentJISCode,
		&region.CreatedAt,
		&region.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repository: %s: %w", code, models.ErrRegionNotFound)
		}
		return nil, fmt.Errorf("repository: failed to execute region query: %w", err)
	}

	return &region, nil
}

// CopyRegions bulk loads regions with COPY. Zero timestamps are replaced by now.
func (r *Repository) CopyRegions(ctx context.Context, regions []models.Region) (int64, error) {
	now := time.Now().UTC()
	n, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"regions"},
		[]string{"jis_code", "name", "name_kana", "region_type", "parent_jis_code", "created_at", "updated_at"},
		pgx.CopyFromSlice(len(regions), func(i int) ([]any, error) {
			reg := regions[i]
			created, updated := reg.CreatedAt, reg.UpdatedAt
			if created.IsZero() {
				created = now
			}
			if updated.IsZero() {
				updated = now
			}
			return []any{reg.JISCode, reg.Name, reg.NameKana, string(reg.RegionType), reg.ParentJISCode, created, updated}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to copy regions: %w", err)
	}
	return n, nil
}

// CountRegions returns the number of rows in regions
func (r *Repository) CountRegions(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM regions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("repository: failed to count regions: %w", err)
	}
	return count, nil
}

func (r *Repository) queryRegions(ctx context.Context, sql string, args ...any) ([]models.Region, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute regions query: %w", err)
	}
	defer rows.Close()

	regions := []models.Region{}
	for rows.Next() {
		var region models.Region
		err := rows.Scan(
			&region.JISCode,
			&region.Name,
			&region.NameKana,
			&region.RegionType,
			&region.ParentJISCode,
			&region.CreatedAt,
			&region.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan region: %w", err)
		}
		regions = append(regions, region)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return regions, nil
}
