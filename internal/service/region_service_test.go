package service

import (
	"context"
	"testing"

	"region-codes/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRegionRepository is a mock implementation of the RegionRepository interface
type MockRegionRepository struct {
	mock.Mock
}

func (m *MockRegionRepository) ListRegions(ctx context.Context) ([]models.Region, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Region), args.Error(1)
}

func (m *MockRegionRepository) ListPrefectures(ctx context.Context) ([]models.Region, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Region), args.Error(1)
}

func (m *MockRegionRepository) ListMunicipalitiesByPrefecture(ctx context.Context, prefectureCode string) ([]models.Region, error) {
	args := m.Called(ctx, prefectureCode)
	return args.Get(0).([]models.Region), args.Error(1)
}

func (m *MockRegionRepository) ListRegionHierarchy(ctx context.Context) ([]models.RegionHierarchy, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.RegionHierarchy), args.Error(1)
}

func (m *MockRegionRepository) FindRegionByCode(ctx context.Context, code string) (*models.Region, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(*models.Region), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestRegionService_GetRegion(t *testing.T) {
	sapporo := &models.Region{
		JISCode:       "011002",
		Name:          "札幌市",
		NameKana:      "ｻｯﾎﾟﾛｼ",
		RegionType:    models.RegionTypeMunicipality,
		ParentJISCode: strPtr("010006"),
	}

	tests := []struct {
		name        string
		code        string
		mockRegion  *models.Region
		mockError   error
		expected    *models.Region
		expectError error
		callsRepo   bool
	}{
		{
			name:        "code too short",
			code:        "11002",
			expectError: ErrInvalidCode,
		},
		{
			name:        "code not numeric",
			code:        "01100a",
			expectError: ErrInvalidCode,
		},
		{
			name:       "found",
			code:       "011002",
			mockRegion: sapporo,
			expected:   sapporo,
			callsRepo:  true,
		},
		{
			name:        "not found",
			code:        "019999",
			mockRegion:  nil,
			mockError:   models.ErrRegionNotFound,
			expectError: models.ErrRegionNotFound,
			callsRepo:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockRegionRepository)
			service := NewRegionService(mockRepo)

			if tt.callsRepo {
				mockRepo.On("FindRegionByCode", mock.Anything, tt.code).Return(tt.mockRegion, tt.mockError)
			}

			// Execute
			result, err := service.GetRegion(context.Background(), tt.code)

			// Assert
			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestRegionService_ListMunicipalities(t *testing.T) {
	municipalities := []models.Region{
		{JISCode: "011002", Name: "札幌市", RegionType: models.RegionTypeMunicipality, ParentJISCode: strPtr("010006")},
	}

	tests := []struct {
		name        string
		prefecture  string
		mockRegions []models.Region
		mockError   error
		expectError bool
		callsRepo   bool
	}{
		{name: "invalid prefecture code", prefecture: "01", expectError: true},
		{name: "success", prefecture: "010006", mockRegions: municipalities, callsRepo: true},
		{name: "repository error", prefecture: "010006", mockRegions: []models.Region(nil), mockError: assert.AnError, expectError: true, callsRepo: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRegionRepository)
			service := NewRegionService(mockRepo)

			if tt.callsRepo {
				mockRepo.On("ListMunicipalitiesByPrefecture", mock.Anything, tt.prefecture).Return(tt.mockRegions, tt.mockError)
			}

			result, err := service.ListMunicipalities(context.Background(), tt.prefecture)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.mockRegions, result)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestRegionService_Lists(t *testing.T) {
	prefectures := []models.Region{{JISCode: "010006", Name: "北海道", RegionType: models.RegionTypePrefecture}}
	hierarchy := []models.RegionHierarchy{{Region: prefectures[0]}}

	mockRepo := new(MockRegionRepository)
	mockRepo.On("ListRegions", mock.Anything).Return(prefectures, nil)
	mockRepo.On("ListPrefectures", mock.Anything).Return([]models.Region(nil), assert.AnError)
	mockRepo.On("ListRegionHierarchy", mock.Anything).Return(hierarchy, nil)
	service := NewRegionService(mockRepo)

	all, err := service.ListRegions(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, prefectures, all)

	_, err = service.ListPrefectures(context.Background())
	assert.ErrorIs(t, err, assert.AnError)

	rows, err := service.ListHierarchy(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, hierarchy, rows)

	mockRepo.AssertExpectations(t)
}
