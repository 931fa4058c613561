package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/syssam/relm/dialect"
	"github.com/syssam/relm/dialect/sql"
)

type renderOptions struct {
	dialect string
	columns []string
	where   []string
	or      []string
	order   []string
	limit   int
	offset  int
	count   bool
}

func newRenderCmd() *cobra.Command {
	opts := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render <table>",
		Short: "Print the SELECT statement of a query without running it",
		Long: `render prints the statement and arguments a query would send.

Constraints are given as column,operator,value. Values of IN and NOT IN
are separated by '|'; the value null is the SQL NULL.

Examples:

  relm render users --where age,>=,18 --where role,IN,admin|owner
  relm render users --dialect mysql --order created_at:desc --limit 10
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, qargs, err := render(args[0], opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), query)
			if len(qargs) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "args: %v\n", qargs)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.dialect, "dialect", "d", dialect.Postgres, "dialect to render for: postgres, mysql or sqlite")
	f.StringSliceVar(&opts.columns, "columns", nil, "selected columns, all when empty")
	f.StringArrayVarP(&opts.where, "where", "w", nil, "constraint joined with AND")
	f.StringArrayVar(&opts.or, "or", nil, "constraint starting a group joined with OR")
	f.StringArrayVarP(&opts.order, "order", "o", nil, "sort key as column[:asc|desc]")
	f.IntVarP(&opts.limit, "limit", "l", -1, "maximum number of rows")
	f.IntVar(&opts.offset, "offset", -1, "number of skipped rows")
	f.BoolVar(&opts.count, "count", false, "render a COUNT(*) query")
	return cmd
}

func render(table string, opts renderOptions) (string, []any, error) {
	sel := sql.Dialect(opts.dialect).Select(opts.columns...).From(table)
	if opts.count {
		sel = sql.Dialect(opts.dialect).Select().Count().From(table)
	}
	var (
		groups  [][]*sql.Predicate
		current []*sql.Predicate
	)
	for _, w := range opts.where {
		p, err := parseConstraint(w)
		if err != nil {
			return "", nil, err
		}
		current = append(current, p)
	}
	groups = append(groups, current)
	for _, w := range opts.or {
		p, err := parseConstraint(w)
		if err != nil {
			return "", nil, err
		}
		groups = append(groups, []*sql.Predicate{p})
	}
	if p := sql.OrGroups(groups...); p != nil {
		sel.Where(p)
	}
	for _, o := range opts.order {
		column, dir, _ := strings.Cut(o, ":")
		d := sql.Asc
		if dir != "" {
			var err error
			if d, err = sql.ParseDirection(dir); err != nil {
				return "", nil, err
			}
		}
		sel.OrderBy(column, d)
	}
	if opts.limit >= 0 {
		sel.Limit(opts.limit)
	}
	if opts.offset >= 0 {
		sel.Offset(opts.offset)
	}
	if err := sel.Err(); err != nil {
		return "", nil, err
	}
	query, args := sel.Query()
	return query, args, nil
}

// parseConstraint parses "column,op,value" into a predicate. The value is
// optional for IS NULL and IS NOT NULL.
func parseConstraint(s string) (*sql.Predicate, error) {
	parts := strings.SplitN(s, ",", 3)
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid constraint %q, expect column,operator,value", s)
	}
	column, op := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	var v any
	if len(parts) == 3 {
		switch strings.ToUpper(op) {
		case "IN", "NOT IN":
			var vs []any
			for _, e := range strings.Split(parts[2], "|") {
				vs = append(vs, parseValue(e))
			}
			v = vs
		default:
			v = parseValue(parts[2])
		}
	}
	return sql.Compare(column, op, v), nil
}

func parseValue(s string) any {
	switch {
	case s == "null":
		return nil
	case s == "true" || s == "false":
		return s == "true"
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
