package service

import (
	"context"
	"fmt"

	"region-codes/internal/config"
	"region-codes/internal/extractor"

	"github.com/rs/zerolog/log"
)

// ExtractService converts the code workbook into the snapshot CSV
type ExtractService struct {
	cfg config.Config
}

// ExtractResult reports where the CSV went and how many rows it holds
type ExtractResult struct {
	Path string
	Rows int
}

// NewExtractService creates a new extract service
func NewExtractService(cfg config.Config) *ExtractService {
	return &ExtractService{cfg: cfg}
}

// Extract reads the configured sheet and writes the normalized CSV
func (s *ExtractService) Extract(ctx context.Context) (*ExtractResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := extractor.ReadSheet(s.cfg.SourcePath, s.cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("service: failed to read workbook: %w", err)
	}

	if err := extractor.WriteCSV(s.cfg.CSVPath, table); err != nil {
		return nil, fmt.Errorf("service: failed to write csv: %w", err)
	}

	log.Info().Str("output", s.cfg.CSVPath).Int("rows", len(table.Rows)).Msg("local government codes exported")

	return &ExtractResult{Path: s.cfg.CSVPath, Rows: len(table.Rows)}, nil
}
