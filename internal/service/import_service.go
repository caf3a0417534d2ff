package service

import (
	"context"
	"errors"
	"fmt"

	"region-codes/internal/models"
	"region-codes/internal/snapshot"
	"region-codes/internal/sqlgen"

	"github.com/rs/zerolog/log"
)

// ErrTableNotEmpty is returned when seeding a regions table that already has rows.
var ErrTableNotEmpty = errors.New("regions table is not empty")

// RegionWriter interface for dependency injection
type RegionWriter interface {
	EnsureSchema(ctx context.Context) error
	CountRegions(ctx context.Context) (int, error)
	CopyRegions(ctx context.Context, regions []models.Region) (int64, error)
}

// ImportService seeds an empty regions table from a snapshot
type ImportService struct {
	repo RegionWriter
}

// NewImportService creates a new import service
func NewImportService(repo RegionWriter) *ImportService {
	return &ImportService{repo: repo}
}

// Import bulk loads every record of s and verifies the resulting row count
func (s *ImportService) Import(ctx context.Context, snap *snapshot.Snapshot) (int, error) {
	if err := s.repo.EnsureSchema(ctx); err != nil {
		return 0, fmt.Errorf("service: failed to prepare schema: %w", err)
	}

	existing, err := s.repo.CountRegions(ctx)
	if err != nil {
		return 0, fmt.Errorf("service: failed to count regions: %w", err)
	}
	if existing > 0 {
		return 0, fmt.Errorf("service: %d rows present: %w", existing, ErrTableNotEmpty)
	}

	regions := BuildRegions(snap.Records())
	if _, err := s.repo.CopyRegions(ctx, regions); err != nil {
		return 0, fmt.Errorf("service: failed to import regions: %w", err)
	}

	count, err := s.repo.CountRegions(ctx)
	if err != nil {
		return 0, fmt.Errorf("service: failed to verify import: %w", err)
	}
	if count != len(regions) {
		return 0, fmt.Errorf("service: record count mismatch: expected %d, got %d", len(regions), count)
	}

	log.Info().Int("regions", count).Msg("regions imported")
	return count, nil
}

// BuildRegions converts records to rows. Parents are resolved against the whole record list.
func BuildRegions(records []models.Record) []models.Region {
	regions := make([]models.Region, 0, len(records))
	for _, r := range records {
		region := models.Region{
			JISCode:    r.Code,
			Name:       r.Name(),
			NameKana:   r.NameKana(),
			RegionType: r.RegionType(),
		}
		if r.IsMunicipality() {
			if parent, ok := sqlgen.ResolveParent(r.Code, records); ok {
				region.ParentJISCode = &parent
			}
		}
		regions = append(regions, region)
	}
	return regions
}
