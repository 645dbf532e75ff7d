package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartcity/aqi-forecast/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS forecast_logs (
	id             TEXT PRIMARY KEY,
	city           TEXT NOT NULL,
	forecast_date  TEXT NOT NULL,
	aqi            INTEGER NOT NULL,
	category       TEXT NOT NULL,
	concentrations JSONB NOT NULL,
	sub_indices    JSONB NOT NULL,
	out_of_range   TEXT[] NOT NULL DEFAULT '{}',
	generated_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS forecast_logs_date_idx ON forecast_logs (forecast_date);
`

// PostgresRepository implements domain.ForecastRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the forecast log table if it does not exist
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: failed to create schema: %w", err)
	}
	return nil
}

// SaveForecast persists a served forecast to PostgreSQL
func (r *PostgresRepository) SaveForecast(ctx context.Context, f domain.Forecast) error {
	query := `
		INSERT INTO forecast_logs (
			id, city, forecast_date, aqi, category,
			concentrations, sub_indices, out_of_range, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8, $9)
	`

	row, err := newForecastRow(f)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query,
		f.ID, f.City, f.Date, f.AQI, string(f.Category),
		row.concentrations, row.subIndices, row.outOfRange, f.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save forecast: %w", err)
	}

	return nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

// forecastRow holds the column encodings of a forecast
type forecastRow struct {
	concentrations string
	subIndices     string
	outOfRange     []string
}

func newForecastRow(f domain.Forecast) (forecastRow, error) {
	conc, err := json.Marshal(f.Concentrations)
	if err != nil {
		return forecastRow{}, fmt.Errorf("postgres: failed to encode concentrations: %w", err)
	}
	sub, err := json.Marshal(f.SubIndices)
	if err != nil {
		return forecastRow{}, fmt.Errorf("postgres: failed to encode sub-indices: %w", err)
	}
	oor := make([]string, len(f.OutOfRange))
	for i, p := range f.OutOfRange {
		oor[i] = string(p)
	}
	return forecastRow{concentrations: string(conc), subIndices: string(sub), outOfRange: oor}, nil
}
