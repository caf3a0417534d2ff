package main

import (
	"errors"
	"fmt"

	"region-codes/internal/cli"
	"region-codes/internal/config"
	"region-codes/internal/logger"
	"region-codes/internal/repository"
	"region-codes/internal/service"
	"region-codes/internal/snapshot"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type options struct {
	configDir string
	file      string
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "importer",
		Short:         "Seed an empty regions table from a CSV snapshot",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configDir)
			if err != nil {
				return cli.WithCode(cli.ExitUsage, err)
			}
			if opts.file != "" {
				cfg.CSVPath = opts.file
			}
			logger.Setup(cfg.LogLevel, cfg.LogFormat)

			snap, err := snapshot.Load(cfg.CSVPath)
			if err != nil {
				if errors.Is(err, snapshot.ErrNotFound) {
					return cli.WithCode(cli.ExitInput, err)
				}
				return err
			}
			log.Info().Str("file", cfg.CSVPath).Int("records", snap.Len()).Msg("parsed snapshot")

			if cfg.DBSource == "" {
				return cli.WithCode(cli.ExitUsage, errors.New("DB_SOURCE is not set"))
			}

			pool, err := pgxpool.New(cmd.Context(), cfg.DBSource)
			if err != nil {
				return cli.WithCode(cli.ExitDB, fmt.Errorf("cannot connect to db: %w", err))
			}
			defer pool.Close()

			count, err := service.NewImportService(repository.NewRepository(pool)).Import(cmd.Context(), snap)
			if err != nil {
				return cli.WithCode(cli.ExitDB, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d regions\n", count)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.configDir, "config", "configs", "Directory containing app.env")
	cmd.Flags().StringVar(&opts.file, "file", "", "Snapshot CSV to import (default from CSV_PATH)")

	return cmd
}

func main() {
	cli.Execute(newRootCmd())
}
