package service

import (
	"context"
	"fmt"
	"time"

	"region-codes/internal/config"
	"region-codes/internal/diff"
	"region-codes/internal/migration"
	"region-codes/internal/snapshot"
	"region-codes/internal/sqlgen"

	"github.com/rs/zerolog/log"
)

// MigrationStore persists generated migrations and the snapshot backup
type MigrationStore interface {
	NextSequence(dir string) (string, error)
	WritePair(p migration.Pair, up, down string) error
	CopyBackup(src, dst string) error
}

// MigrationService diffs the current snapshot against its backup and writes migration files
type MigrationService struct {
	cfg   config.Config
	store MigrationStore
	now   func() time.Time
}

// Plan is a computed but not yet written migration
type Plan struct {
	Previous *snapshot.Snapshot
	Current  *snapshot.Snapshot
	Changes  diff.ChangeSet
	Up       string
	Down     string
}

// Result describes what Generate wrote. Files is nil when there were no changes.
type Result struct {
	Changes   diff.ChangeSet
	Files     *migration.Pair
	BackupErr error
}

// NewMigrationService creates a new migration service
func NewMigrationService(cfg config.Config, store MigrationStore) *MigrationService {
	return &MigrationService{cfg: cfg, store: store, now: time.Now}
}

// WithClock replaces the clock used for migration timestamps
func (s *MigrationService) WithClock(now func() time.Time) *MigrationService {
	s.now = now
	return s
}

// Plan loads both snapshots and renders the SQL for their differences
func (s *MigrationService) Plan(ctx context.Context) (*Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	current, err := snapshot.Load(s.cfg.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load current snapshot: %w", err)
	}

	previous, err := snapshot.LoadOptional(s.cfg.BackupPath)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load previous snapshot: %w", err)
	}
	if previous == nil {
		log.Info().Str("backup", s.cfg.BackupPath).Msg("no backup found, treating every record as added")
	}

	changes := diff.Detect(previous, current)

	return &Plan{
		Previous: previous,
		Current:  current,
		Changes:  changes,
		Up:       sqlgen.RenderUp(changes),
		Down:     sqlgen.RenderDown(changes, previous),
	}, nil
}

// Generate writes the up/down migration pair and refreshes the backup.
// A failed backup is logged and reported in Result.BackupErr, the migration files are already written by then.
func (s *MigrationService) Generate(ctx context.Context) (*Result, error) {
	plan, err := s.Plan(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{Changes: plan.Changes}
	if plan.Changes.Empty() {
		log.Info().Msg("no changes, no migration files generated")
		return result, nil
	}

	seq, err := s.store.NextSequence(s.cfg.MigrationDir)
	if err != nil {
		return nil, fmt.Errorf("service: failed to determine migration number: %w", err)
	}

	pair := migration.NewPair(s.cfg.MigrationDir, s.now(), seq)
	if err := s.store.WritePair(pair, plan.Up, plan.Down); err != nil {
		return nil, fmt.Errorf("service: failed to write migration: %w", err)
	}
	result.Files = &pair

	log.Info().
		Str("up", pair.Up).
		Str("down", pair.Down).
		Int("added", len(plan.Changes.Added)).
		Int("updated", len(plan.Changes.Updated)).
		Int("deleted", len(plan.Changes.Deleted)).
		Msg("migration files generated")

	if err := s.store.CopyBackup(s.cfg.CSVPath, s.cfg.BackupPath); err != nil {
		log.Warn().Err(err).Str("backup", s.cfg.BackupPath).Msg("failed to update backup")
		result.BackupErr = err
		return result, nil
	}
	log.Info().Str("backup", s.cfg.BackupPath).Msg("backup updated")

	return result, nil
}
