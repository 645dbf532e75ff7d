// Package sqlite stores the forecast audit log in an embedded SQLite database,
// for single-node deployments without PostgreSQL.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // driver: sqlite

	"github.com/smartcity/aqi-forecast/internal/domain"
)

const defaultDSN = "file:aqi-forecast.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"

const schema = `
CREATE TABLE IF NOT EXISTS forecast_logs (
  id TEXT PRIMARY KEY,
  city TEXT NOT NULL,
  forecast_date TEXT NOT NULL,
  aqi INTEGER NOT NULL,
  category TEXT NOT NULL,
  concentrations_json TEXT NOT NULL,
  sub_indices_json TEXT NOT NULL,
  out_of_range TEXT NOT NULL DEFAULT '',
  generated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS forecast_logs_date_idx ON forecast_logs (forecast_date);
`

// Repository implements domain.ForecastRepository on SQLite
type Repository struct {
	db *sql.DB
}

// Open opens the database and ensures the schema exists. An empty dsn uses
// a file in the working directory.
func Open(ctx context.Context, dsn string) (*Repository, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// SQLite allows a single writer; in-memory databases are per connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: failed to create schema: %w", err)
	}
	return &Repository{db: db}, nil
}

// SaveForecast inserts a served forecast
func (r *Repository) SaveForecast(ctx context.Context, f domain.Forecast) error {
	conc, err := json.Marshal(f.Concentrations)
	if err != nil {
		return fmt.Errorf("sqlite: failed to encode concentrations: %w", err)
	}
	sub, err := json.Marshal(f.SubIndices)
	if err != nil {
		return fmt.Errorf("sqlite: failed to encode sub-indices: %w", err)
	}
	oor := make([]string, len(f.OutOfRange))
	for i, p := range f.OutOfRange {
		oor[i] = string(p)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO forecast_logs (
			id, city, forecast_date, aqi, category,
			concentrations_json, sub_indices_json, out_of_range, generated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.City, f.Date, f.AQI, string(f.Category),
		string(conc), string(sub), strings.Join(oor, ","), f.GeneratedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: failed to save forecast: %w", err)
	}
	return nil
}

// Health checks database connectivity
func (r *Repository) Health(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: health check failed: %w", err)
	}
	return nil
}

// Close closes the database
func (r *Repository) Close() error {
	return r.db.Close()
}
