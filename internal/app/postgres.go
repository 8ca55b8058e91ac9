package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/fpl-live-league/internal/config"
)

const (
	preparedBinaryResultParam = "disable_prepared_binary_result"
	maxTracedQueryLength      = 512
)

// openPostgres opens the snapshot database with query tracing and checks it is reachable.
func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := withPreparedBinaryResult(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(databaseName(dsn)),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// withPreparedBinaryResult sets the pooler-friendly flag on URL DSNs that do not choose a value.
// Keyword DSNs are returned unchanged.
func withPreparedBinaryResult(dsn string, disable bool) string {
	if !disable {
		return dsn
	}
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return dsn
	}
	q := u.Query()
	if q.Get(preparedBinaryResultParam) != "" {
		return dsn
	}
	q.Set(preparedBinaryResultParam, "yes")
	u.RawQuery = q.Encode()
	return u.String()
}

// databaseName reads the database from either a URL or a keyword DSN.
func databaseName(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" {
		return strings.TrimPrefix(u.Path, "/")
	}
	for _, field := range strings.Fields(dsn) {
		if name, ok := strings.CutPrefix(field, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}

// traceQuery collapses whitespace so span names stay on one line.
func traceQuery(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if len(query) > maxTracedQueryLength {
		return query[:maxTracedQueryLength] + "..."
	}
	return query
}
