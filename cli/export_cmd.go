package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const formatSQLite = "sqlite"

func newExportCmd(a *app) *cobra.Command {
	var (
		cf     criteriaFlags
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered restaurant table",
		Long: `Export the cleaned, filtered restaurant table with normalized headers.

CSV goes to stdout unless --out is given. SQLite needs --out and replaces
any existing database at that path.`,
		Args: cobra.NoArgs,
		Example: `  fomezero export --country Brazil > dados_tratados.csv
  fomezero export --format sqlite --out restaurants.db --rating-min 4`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format, formatCSV, formatSQLite); err != nil {
				return err
			}
			criteria := cf.criteria(cmd)

			if format == formatSQLite {
				if out == "" {
					return fmt.Errorf("--out is required for sqlite export")
				}
				if err := a.pipeline.ExportSQLite(cmd.Context(), a.cfg.DataPath, criteria, out); err != nil {
					return err
				}
				a.logger.Infow("sqlite export written", "path", out)
				return nil
			}

			w, closeOut, err := openOutput(cmd.OutOrStdout(), out)
			if err != nil {
				return err
			}
			err = a.pipeline.Export(cmd.Context(), a.cfg.DataPath, criteria, w)
			if cerr := closeOut(); err == nil {
				err = cerr
			}
			return err
		},
	}

	cmd.Flags().AddFlagSet(cf.flagSet())
	cmd.Flags().StringVarP(&format, "format", "f", formatCSV, "output format: csv, sqlite")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	return cmd
}
