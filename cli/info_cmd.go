package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spektr-org/fomezero/engine"
	"github.com/spektr-org/fomezero/schema"
)

func newOptionsCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List the countries, cities and cuisines in the data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format, formatJSON, formatPretty, formatText); err != nil {
				return err
			}
			opts, err := a.pipeline.Options(cmd.Context(), a.cfg.DataPath)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if format != formatText {
				return writeJSON(w, opts, format)
			}
			fmt.Fprintf(w, "Countries (%d): %s\n", len(opts.Countries), strings.Join(opts.Countries, ", "))
			fmt.Fprintf(w, "Cities (%d): %s\n", len(opts.Cities), strings.Join(opts.Cities, ", "))
			fmt.Fprintf(w, "Cuisines (%d): %s\n", len(opts.Cuisines), strings.Join(opts.Cuisines, ", "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: json, pretty, text")
	return cmd
}

func newSchemaCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the fields of the loaded restaurant table",
		Args:  cobra.NoArgs,
		// no data source needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format, formatJSON, formatPretty, formatText); err != nil {
				return err
			}
			cfg := schema.RestaurantConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if format != formatText {
				return writeJSON(w, cfg, format)
			}

			rows := make([][]string, 0, len(cfg.Dimensions)+len(cfg.Measures))
			for _, d := range cfg.Dimensions {
				kind := "dimension"
				if d.DerivedFrom != "" {
					kind = "derived from " + d.DerivedFrom.String()
				}
				rows = append(rows, []string{d.Key.String(), d.DisplayName, kind})
			}
			for _, m := range cfg.Measures {
				rows = append(rows, []string{m.Key.String(), m.DisplayName, "measure (" + m.Unit + ")"})
			}
			return engine.WriteTable(w, []string{"Field", "Name", "Kind"}, rows)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: json, pretty, text")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print the version",
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "fomezero version %s (commit: %s)\n", version, commit)
			return err
		},
	}
}
