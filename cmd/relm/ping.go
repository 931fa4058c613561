package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syssam/relm/dialect/sql"
)

func newPingCmd(a *app) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check database connectivity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			drv, cfg, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer drv.Close()
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			start := time.Now()
			if err := ping(ctx, drv); err != nil {
				return fmt.Errorf("ping %s: %w", cfg.Database.Driver, err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ %s (%s) is reachable in %s\n",
				drv.Dialect(), cfg.Database.Driver, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Second, "timeout of the check")
	return cmd
}

func ping(ctx context.Context, drv *sql.LogDriver) error {
	rows := &sql.Rows{}
	if err := drv.Query(ctx, "SELECT 1", []any{}, rows); err != nil {
		return err
	}
	n, err := sql.ScanInt64(rows)
	if err != nil {
		return err
	}
	if n != 1 {
		return fmt.Errorf("unexpected result %d", n)
	}
	return nil
}
