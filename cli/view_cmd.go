package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spektr-org/fomezero/views"
)

func newViewCmd(a *app) *cobra.Command {
	var (
		cf     criteriaFlags
		format string
		out    string
	)

	names := make([]string, 0, 4)
	for _, v := range views.Registry() {
		names = append(names, v.Name)
	}

	cmd := &cobra.Command{
		Use:       "view <name>",
		Short:     "Compute one dashboard view",
		Long:      fmt.Sprintf("Compute one dashboard view (%s) over the filtered restaurants.", strings.Join(names, ", ")),
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		Example: `  fomezero view overview --format text
  fomezero view countries --country Brazil --country India --rating-min 4
  fomezero view cuisines --cuisine Italian,Japanese --format csv --out cuisines.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format, formatJSON, formatPretty, formatText, formatCSV); err != nil {
				return err
			}

			res, err := a.pipeline.Run(cmd.Context(), a.cfg.DataPath, args[0], cf.criteria(cmd))
			if err != nil {
				return err
			}

			w, closeOut, err := openOutput(cmd.OutOrStdout(), out)
			if err != nil {
				return err
			}
			switch format {
			case formatText:
				err = writePageText(w, res.Page, chartWidth(w))
			case formatCSV:
				err = writePageCSV(w, res.Page)
			default:
				err = writeJSON(w, res.Page, format)
			}
			if cerr := closeOut(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			if out != "" {
				a.logger.Infow("view written", "view", res.View.Name, "path", out, "run_id", res.RunID)
			}
			return nil
		},
	}

	cmd.Flags().AddFlagSet(cf.flagSet())
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json, pretty, text, csv")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write output to file instead of stdout")
	return cmd
}
