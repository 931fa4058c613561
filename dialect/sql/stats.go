package sql

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/syssam/relm/dialect"
)

// QueryStats holds query execution statistics.
type QueryStats struct {
	// TotalQueries is the total number of queries executed.
	TotalQueries atomic.Int64
	// TotalExecs is the total number of exec statements executed.
	TotalExecs atomic.Int64
	// TotalDuration is the total time spent executing statements.
	TotalDuration atomic.Int64 // nanoseconds
	// SlowQueries is the count of statements exceeding the slow threshold.
	SlowQueries atomic.Int64
	// Errors is the count of failed statements.
	Errors atomic.Int64
}

// Stats returns a snapshot of the current statistics.
func (s *QueryStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  s.TotalQueries.Load(),
		TotalExecs:    s.TotalExecs.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		SlowQueries:   s.SlowQueries.Load(),
		Errors:        s.Errors.Load(),
	}
}

// Reset resets all statistics to zero.
func (s *QueryStats) Reset() {
	s.TotalQueries.Store(0)
	s.TotalExecs.Store(0)
	s.TotalDuration.Store(0)
	s.SlowQueries.Store(0)
	s.Errors.Store(0)
}

// StatsSnapshot is a point-in-time snapshot of query statistics.
type StatsSnapshot struct {
	TotalQueries  int64
	TotalExecs    int64
	TotalDuration time.Duration
	SlowQueries   int64
	Errors        int64
}

// AvgQueryDuration returns the average statement duration.
func (s StatsSnapshot) AvgQueryDuration() time.Duration {
	total := s.TotalQueries + s.TotalExecs
	if total == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(total)
}

// String returns a human-readable summary of the statistics.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf(
		"queries=%d execs=%d duration=%s avg=%s slow=%d errors=%d",
		s.TotalQueries, s.TotalExecs, s.TotalDuration, s.AvgQueryDuration(),
		s.SlowQueries, s.Errors,
	)
}

// LogDriver wraps a dialect.Driver with statement logging and statistics.
// Every statement is logged at debug level; statements slower than the
// threshold are logged at warn level.
type LogDriver struct {
	dialect.Driver
	logger        *slog.Logger
	stats         *QueryStats
	slowThreshold time.Duration
}

// LogOption configures the LogDriver.
type LogOption func(*LogDriver)

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(l *slog.Logger) LogOption {
	return func(d *LogDriver) {
		d.logger = l
	}
}

// WithSlowThreshold sets the threshold for slow statement detection.
// Default is 100ms.
func WithSlowThreshold(t time.Duration) LogOption {
	return func(d *LogDriver) {
		d.slowThreshold = t
	}
}

// NewLogDriver wraps a driver with logging and statistics collection.
//
//	drv, _ := sql.Open(dialect.Postgres, "pgx", dsn)
//	logged := sql.NewLogDriver(drv,
//	    sql.WithLogger(logger),
//	    sql.WithSlowThreshold(200*time.Millisecond),
//	)
//	fmt.Println(logged.QueryStats().Stats())
func NewLogDriver(drv dialect.Driver, opts ...LogOption) *LogDriver {
	d := &LogDriver{
		Driver:        drv,
		logger:        slog.Default(),
		stats:         &QueryStats{},
		slowThreshold: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// QueryStats returns the underlying QueryStats for reading statistics.
func (d *LogDriver) QueryStats() *QueryStats {
	return d.stats
}

// Query executes a query and records it.
func (d *LogDriver) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Query(ctx, query, args, v)
	d.record(ctx, "query", query, args, start, err)
	return err
}

// Exec executes a statement and records it.
func (d *LogDriver) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Exec(ctx, query, args, v)
	d.record(ctx, "exec", query, args, start, err)
	return err
}

func (d *LogDriver) record(ctx context.Context, kind, query string, args any, start time.Time, err error) {
	duration := time.Since(start)
	if kind == "query" {
		d.stats.TotalQueries.Add(1)
	} else {
		d.stats.TotalExecs.Add(1)
	}
	d.stats.TotalDuration.Add(int64(duration))
	attrs := []slog.Attr{
		slog.String("query", query),
		slog.Any("args", args),
		slog.Duration("duration", duration),
	}
	if err != nil {
		d.stats.Errors.Add(1)
		attrs = append(attrs, slog.Any("error", err))
	}
	if duration > d.slowThreshold {
		d.stats.SlowQueries.Add(1)
		d.logger.LogAttrs(ctx, slog.LevelWarn, "slow "+kind, attrs...)
		return
	}
	d.logger.LogAttrs(ctx, slog.LevelDebug, kind, attrs...)
}

// Tx starts a transaction whose statements are recorded too.
func (d *LogDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	d.logger.LogAttrs(ctx, slog.LevelDebug, "begin transaction")
	return &LogTx{Tx: tx, driver: d}, nil
}

// LogTx wraps a transaction with logging and statistics.
type LogTx struct {
	dialect.Tx
	driver *LogDriver
}

// Query executes a query within the transaction and records it.
func (tx *LogTx) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := tx.Tx.Query(ctx, query, args, v)
	tx.driver.record(ctx, "query", query, args, start, err)
	return err
}

// Exec executes a statement within the transaction and records it.
func (tx *LogTx) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := tx.Tx.Exec(ctx, query, args, v)
	tx.driver.record(ctx, "exec", query, args, start, err)
	return err
}

// Commit commits the transaction and logs it.
func (tx *LogTx) Commit() error {
	tx.driver.logger.LogAttrs(context.Background(), slog.LevelDebug, "commit transaction")
	return tx.Tx.Commit()
}

// Rollback rolls back the transaction and logs it.
func (tx *LogTx) Rollback() error {
	tx.driver.logger.LogAttrs(context.Background(), slog.LevelDebug, "rollback transaction")
	return tx.Tx.Rollback()
}

// Ensure interfaces are implemented.
var (
	_ dialect.Driver = (*LogDriver)(nil)
	_ dialect.Tx     = (*LogTx)(nil)
)
