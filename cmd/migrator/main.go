package main

import (
	"errors"
	"fmt"
	"os"

	"region-codes/internal/cli"
	"region-codes/internal/config"
	"region-codes/internal/logger"
	"region-codes/internal/migration"
	"region-codes/internal/service"
	"region-codes/internal/snapshot"

	"github.com/spf13/cobra"
)

type options struct {
	configDir    string
	csvPath      string
	backupPath   string
	migrationDir string
}

// load reads the config and applies flag overrides.
func (o *options) load() (config.Config, error) {
	cfg, err := config.LoadConfig(o.configDir)
	if err != nil {
		return cfg, cli.WithCode(cli.ExitUsage, err)
	}
	if o.csvPath != "" {
		cfg.CSVPath = o.csvPath
		if o.backupPath == "" {
			cfg.BackupPath = o.csvPath + ".backup"
		}
	}
	if o.backupPath != "" {
		cfg.BackupPath = o.backupPath
	}
	if o.migrationDir != "" {
		cfg.MigrationDir = o.migrationDir
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	generate := newGenerateCmd(opts)
	cmd := &cobra.Command{
		Use:           "migrator",
		Short:         "Generate regions migrations from local government code CSV snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          generate.RunE,
	}

	cmd.PersistentFlags().StringVar(&opts.configDir, "config", "configs", "Directory containing app.env")
	cmd.PersistentFlags().StringVar(&opts.csvPath, "csv", "", "Current CSV snapshot (default from CSV_PATH)")
	cmd.PersistentFlags().StringVar(&opts.backupPath, "backup", "", "Previous CSV snapshot (default <csv>.backup)")
	cmd.PersistentFlags().StringVar(&opts.migrationDir, "migrations", "", "Migration directory (default from MIGRATION_DIR)")

	cmd.AddCommand(generate)
	cmd.AddCommand(newPlanCmd(opts))
	cmd.AddCommand(newApplyCmd(opts))
	return cmd
}

func newGenerateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Write up/down migration files for the changes since the last backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			result, err := service.NewMigrationService(cfg, migration.FileStore{}).Generate(cmd.Context())
			if err != nil {
				return inputCode(err)
			}

			if result.Files != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "UP:   %s\nDOWN: %s\n", result.Files.Up, result.Files.Down)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added: %d, updated: %d, deleted: %d\n",
				len(result.Changes.Added), len(result.Changes.Updated), len(result.Changes.Deleted))
			return nil
		},
	}
}

func newPlanCmd(opts *options) *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the migration SQL without writing files or the backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			plan, err := service.NewMigrationService(cfg, migration.FileStore{}).Plan(cmd.Context())
			if err != nil {
				return inputCode(err)
			}
			if plan.Changes.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "-- no changes")
				return nil
			}

			if down {
				fmt.Fprint(cmd.OutOrStdout(), plan.Down)
			} else {
				fmt.Fprint(cmd.OutOrStdout(), plan.Up)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "Print the rollback script instead")
	return cmd
}

func newApplyCmd(opts *options) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Run a generated migration file against DB_SOURCE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if cfg.DBSource == "" {
				return cli.WithCode(cli.ExitUsage, errors.New("DB_SOURCE is not configured"))
			}

			if _, err := os.Stat(file); err != nil {
				return cli.WithCode(cli.ExitInput, err)
			}

			applier, err := migration.Open(cmd.Context(), cfg.DBSource)
			if err != nil {
				return cli.WithCode(cli.ExitDB, err)
			}
			defer applier.Close()

			if err := applier.ApplyFile(cmd.Context(), file); err != nil {
				return cli.WithCode(cli.ExitDB, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", file)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Migration file to apply (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func inputCode(err error) error {
	if errors.Is(err, snapshot.ErrNotFound) {
		return cli.WithCode(cli.ExitInput, err)
	}
	return err
}

func main() {
	cli.Execute(newRootCmd())
}
