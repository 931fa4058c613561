package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syssam/relm/dialect/sql"
)

func newTruncateCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "truncate <table>...",
		Short: "Remove every row of tables and restart their key sequences",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, tables []string) error {
			if !yes {
				return errors.New("truncate deletes every row, rerun with --yes to confirm")
			}
			drv, _, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer drv.Close()
			warn := color.New(color.FgYellow)
			for _, table := range tables {
				if err := sql.TruncateTable(cmd.Context(), drv, drv.Dialect(), table); err != nil {
					return fmt.Errorf("truncate %s: %w", table, err)
				}
				warn.Fprintf(cmd.OutOrStdout(), "truncated %s\n", table)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the truncation")
	return cmd
}
