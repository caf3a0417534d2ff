package main

import (
	"errors"

	"region-codes/internal/cli"
	"region-codes/internal/config"
	"region-codes/internal/extractor"
	"region-codes/internal/logger"
	"region-codes/internal/service"

	"github.com/spf13/cobra"
)

type options struct {
	configDir string
	source    string
	sheet     string
	output    string
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "extractor",
		Short:         "Convert the local government code workbook into a normalized CSV",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configDir)
			if err != nil {
				return cli.WithCode(cli.ExitUsage, err)
			}
			if opts.source != "" {
				cfg.SourcePath = opts.source
			}
			if opts.sheet != "" {
				cfg.SheetName = opts.sheet
			}
			if opts.output != "" {
				cfg.CSVPath = opts.output
			}
			logger.Setup(cfg.LogLevel, cfg.LogFormat)

			_, err = service.NewExtractService(cfg).Extract(cmd.Context())
			if errors.Is(err, extractor.ErrSourceNotFound) || errors.Is(err, extractor.ErrSheetNotFound) {
				return cli.WithCode(cli.ExitInput, err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.configDir, "config", "configs", "Directory containing app.env")
	cmd.Flags().StringVar(&opts.source, "source", "", "Path to the workbook (default from SOURCE_PATH)")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "Sheet to export (default from SHEET_NAME)")
	cmd.Flags().StringVar(&opts.output, "output", "", "CSV output path (default from CSV_PATH)")

	return cmd
}

func main() {
	cli.Execute(newRootCmd())
}
