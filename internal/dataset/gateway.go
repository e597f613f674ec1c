// Package dataset provides read-only access to the bundled instance dataset.
package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// slowQueryThreshold is the duration above which a query is logged at warn level.
const slowQueryThreshold = 50 * time.Millisecond

// Gateway executes read-only queries against a single dataset file.
// A Gateway is opened once and shared by every caller; it is safe for
// concurrent use.
type Gateway struct {
	path   string
	db     *sql.DB
	logger zerolog.Logger
}

// Open checks that the dataset file exists and opens a read-only connection
// pool to it. Failure to locate or open the file returns an error matching
// ErrDatasetUnavailable whose message names the expected location.
func Open(ctx context.Context, path string, logger zerolog.Logger) (*Gateway, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &UnavailableError{Path: path, Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, &UnavailableError{Path: abs, Err: err}
	}
	if info.IsDir() {
		return nil, &UnavailableError{Path: abs, Err: fmt.Errorf("%s is a directory", abs)}
	}

	db, err := sql.Open(driverName, readOnlyDSN(abs))
	if err != nil {
		return nil, &UnavailableError{Path: abs, Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &UnavailableError{Path: abs, Err: err}
	}

	logger.Debug().Str("path", abs).Msg("dataset opened read-only")

	return &Gateway{
		path:   abs,
		db:     db,
		logger: logger,
	}, nil
}

// readOnlyDSN builds a SQLite URI that opens path without write access.
func readOnlyDSN(path string) string {
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(path),
		RawQuery: "mode=ro&_pragma=query_only(1)",
	}
	return u.String()
}

// Path returns the absolute location of the dataset file.
func (g *Gateway) Path() string {
	return g.path
}

// Close releases the connection pool.
func (g *Gateway) Close() error {
	return g.db.Close()
}

// Query runs statement with args and returns every row keyed by column name,
// in the order the database returned them. Failures are wrapped in a
// QueryError and are not retried.
func (g *Gateway) Query(ctx context.Context, statement string, args ...any) ([]Row, error) {
	var out []Row
	err := g.run(ctx, "adhoc", statement, args, func(rows *sql.Rows) (int, error) {
		cols, err := rows.Columns()
		if err != nil {
			return 0, err
		}
		for rows.Next() {
			values := make([]any, len(cols))
			ptrs := make([]any, len(cols))
			for i := range values {
				ptrs[i] = &values[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				return 0, err
			}
			row := make(Row, len(cols))
			for i, c := range cols {
				row[c] = values[i]
			}
			out = append(out, row)
		}
		return len(out), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListInstances returns one row per instance type in ascending order,
// with the minimum on-demand Linux hourly price or nil if none exists.
func (g *Gateway) ListInstances(ctx context.Context) ([]InstanceRow, error) {
	var out []InstanceRow
	err := g.run(ctx, queryList, listQuery, nil, func(rows *sql.Rows) (int, error) {
		for rows.Next() {
			var (
				r       InstanceRow
				vcpus   sql.NullInt64
				memory  sql.NullInt64
				storage sql.NullString
				network sql.NullString
				price   sql.NullFloat64
			)
			if err := rows.Scan(&r.InstanceType, &vcpus, &memory, &storage, &network, &price); err != nil {
				return 0, err
			}
			r.VCPUs = int(vcpus.Int64)
			r.MemorySizeInMiB = memory.Int64
			r.Storage = storage.String
			r.NetworkPerformance = network.String
			if price.Valid {
				p := price.Float64
				r.OnDemandLinuxHourly = &p
			}
			out = append(out, r)
		}
		return len(out), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListDisks returns every instance store attachment row, unordered.
func (g *Gateway) ListDisks(ctx context.Context) ([]DiskRow, error) {
	var out []DiskRow
	err := g.run(ctx, queryDisks, disksQuery, nil, func(rows *sql.Rows) (int, error) {
		for rows.Next() {
			var (
				r     DiskRow
				count sql.NullInt64
				size  sql.NullInt64
				typ   sql.NullString
			)
			if err := rows.Scan(&r.InstanceType, &count, &size, &typ); err != nil {
				return 0, err
			}
			r.Count = int(count.Int64)
			r.SizeInGB = size.Int64
			r.Type = typ.String
			out = append(out, r)
		}
		return len(out), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListRegions returns the distinct locations with a price for instanceType,
// in ascending order. An instance type without prices yields an empty slice.
func (g *Gateway) ListRegions(ctx context.Context, instanceType string) ([]string, error) {
	out := []string{}
	err := g.run(ctx, queryRegions, regionsQuery, []any{instanceType}, func(rows *sql.Rows) (int, error) {
		for rows.Next() {
			var loc sql.NullString
			if err := rows.Scan(&loc); err != nil {
				return 0, err
			}
			if loc.Valid {
				out = append(out, loc.String)
			}
		}
		return len(out), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// run executes a query, hands the rows to scan and wraps any failure.
// scan reports how many rows it consumed.
func (g *Gateway) run(ctx context.Context, name, statement string, args []any, scan func(*sql.Rows) (int, error)) error {
	start := time.Now()
	count := 0

	err := func() error {
		rows, err := g.db.QueryContext(ctx, statement, args...)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := rows.Close(); cerr != nil {
				g.logger.Error().Err(cerr).Str("query", name).Msg("failed to close rows")
			}
		}()

		n, err := scan(rows)
		if err != nil {
			return err
		}
		count = n
		return rows.Err()
	}()

	elapsed := time.Since(start)
	if err != nil {
		g.logger.Error().
			Err(err).
			Str("query", name).
			Dur("elapsed", elapsed).
			Msg("dataset query failed")
		return &QueryError{Query: name, Err: err}
	}

	event := g.logger.Debug()
	if elapsed > slowQueryThreshold {
		event = g.logger.Warn()
	}
	event.
		Str("query", name).
		Int("rows", count).
		Dur("elapsed", elapsed).
		Msg("dataset query completed")
	return nil
}
