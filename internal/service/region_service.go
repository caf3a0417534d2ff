package service

import (
	"context"
	"errors"
	"fmt"

	"region-codes/internal/models"
)

// ErrInvalidCode is returned for codes that are not six digits.
var ErrInvalidCode = errors.New("code must be 6 digits")

// RegionService contains the read logic of the regions API
type RegionService struct {
	repo RegionRepository
}

// RegionRepository interface for dependency injection
type RegionRepository interface {
	ListRegions(ctx context.Context) ([]models.Region, error)
	ListPrefectures(ctx context.Context) ([]models.Region, error)
	ListMunicipalitiesByPrefecture(ctx context.Context, prefectureCode string) ([]models.Region, error)
	ListRegionHierarchy(ctx context.Context) ([]models.RegionHierarchy, error)
	FindRegionByCode(ctx context.Context, code string) (*models.Region, error)
}

// NewRegionService creates a new region service
func NewRegionService(repo RegionRepository) *RegionService {
	return &RegionService{repo: repo}
}

// ListRegions returns every region
func (s *RegionService) ListRegions(ctx context.Context) ([]models.Region, error) {
	regions, err := s.repo.ListRegions(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list regions: %w", err)
	}
	return regions, nil
}

// ListPrefectures returns the prefectures only
func (s *RegionService) ListPrefectures(ctx context.Context) ([]models.Region, error) {
	regions, err := s.repo.ListPrefectures(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list prefectures: %w", err)
	}
	return regions, nil
}

// ListMunicipalities returns the municipalities whose parent is the given prefecture code
func (s *RegionService) ListMunicipalities(ctx context.Context, prefectureCode string) ([]models.Region, error) {
	if !validCode(prefectureCode) {
		return nil, fmt.Errorf("service: %q: %w", prefectureCode, ErrInvalidCode)
	}

	regions, err := s.repo.ListMunicipalitiesByPrefecture(ctx, prefectureCode)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list municipalities: %w", err)
	}
	return regions, nil
}

// ListHierarchy returns every region with its parent's name
func (s *RegionService) ListHierarchy(ctx context.Context) ([]models.RegionHierarchy, error) {
	rows, err := s.repo.ListRegionHierarchy(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list region hierarchy: %w", err)
	}
	return rows, nil
}

// GetRegion looks a region up by its JIS code
func (s *RegionService) GetRegion(ctx context.Context, code string) (*models.Region, error) {
	if !validCode(code) {
		return nil, fmt.Errorf("service: %q: %w", code, ErrInvalidCode)
	}

	region, err := s.repo.FindRegionByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("service: failed to find region: %w", err)
	}
	return region, nil
}

func validCode(code string) bool {
	if len(code) != models.CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
