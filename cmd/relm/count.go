package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/syssam/relm/dialect"
	"github.com/syssam/relm/dialect/sql"
)

func newCountCmd(a *app) *cobra.Command {
	var parallel int
	cmd := &cobra.Command{
		Use:   "count <table>...",
		Short: "Print the number of rows of tables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, tables []string) error {
			drv, _, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer drv.Close()
			counts, err := countTables(cmd.Context(), drv, parallel, tables)
			if err != nil {
				return err
			}
			printCounts(cmd.OutOrStdout(), tables, counts)
			return nil
		},
	}
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 4, "number of tables counted concurrently")
	return cmd
}

// countTables counts the rows of every table, at most limit at a time.
// The first failure cancels the remaining counts.
func countTables(ctx context.Context, drv dialect.Driver, limit int, tables []string) ([]int64, error) {
	counts := make([]int64, len(tables))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, table := range tables {
		g.Go(func() error {
			n, err := sql.QueryInt64(ctx, drv, sql.Dialect(drv.Dialect()).Select().Count().From(table))
			if err != nil {
				return fmt.Errorf("count %s: %w", table, err)
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}

func printCounts(w io.Writer, tables []string, counts []int64) {
	width := 0
	for _, t := range tables {
		width = max(width, len(t))
	}
	p := message.NewPrinter(language.English)
	for i, t := range tables {
		fmt.Fprintf(w, "%-*s  %s\n", width, t, p.Sprintf("%d", counts[i]))
	}
}
