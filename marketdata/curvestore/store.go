// Package curvestore loads historical calibrated curve snapshots from
// Postgres. One row per curve node per snapshot date; the scenario engine
// turns consecutive snapshots into shift sets.
package curvestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/meenmo/riskcore/curve"
	"github.com/meenmo/riskcore/dates"
)

// Config holds the Postgres connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Open connects and pings the database.
func Open(cfg Config) (*Store, error) {
	if cfg.Host == "" || cfg.Name == "" {
		return nil, errors.New("curvestore.Open: host and database name are required")
	}
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslMode,
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("curvestore.Open: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("curvestore.Open: ping: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an existing connection, e.g. for tests.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Store reads curve snapshots from the curve_nodes table:
//
//	curve_nodes(snap_date date, curve_name text, currency text,
//	            position int, node_date date, node_label text,
//	            node_value double precision)
type Store struct {
	db *sql.DB
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

const loadCurveQuery = `
SELECT node_date, node_label, node_value
FROM curve_nodes
WHERE snap_date = $1 AND curve_name = $2 AND currency = $3
ORDER BY position`

// LoadCurve reads one curve's nodes for a snapshot date. It returns a
// nil curve without error when the snapshot holds no rows, so a missing
// historical date reads as "no snapshot", not as an empty curve.
func (s *Store) LoadCurve(ctx context.Context, snapDate time.Time, id curve.ID) (*curve.NodalCurve, error) {
	rows, err := s.db.QueryContext(ctx, loadCurveQuery, snapDate, id.Name, id.Currency)
	if err != nil {
		return nil, fmt.Errorf("LoadCurve: curve %s on %s: %w", id, snapDate.Format("2006-01-02"), err)
	}
	defer rows.Close()

	var metadata []curve.NodeMetadata
	var values []float64
	for rows.Next() {
		var nodeDate time.Time
		var label string
		var value float64
		if err := rows.Scan(&nodeDate, &label, &value); err != nil {
			return nil, fmt.Errorf("LoadCurve: curve %s on %s: %w", id, snapDate.Format("2006-01-02"), err)
		}
		metadata = append(metadata, curve.NodeMetadata{Date: nodeDate, Label: label})
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("LoadCurve: curve %s on %s: %w", id, snapDate.Format("2006-01-02"), err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return curve.NewNodalCurve(id, metadata, values)
}

const snapDatesQuery = `
SELECT DISTINCT snap_date
FROM curve_nodes
ORDER BY snap_date`

// SnapshotDates lists every snapshot date present, ascending.
func (s *Store) SnapshotDates(ctx context.Context) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, snapDatesQuery)
	if err != nil {
		return nil, fmt.Errorf("SnapshotDates: %w", err)
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("SnapshotDates: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("SnapshotDates: %w", err)
	}
	return out, nil
}

// LoadHistory loads every snapshot of the given curves, returning the
// history keyed by date and the sorted date list. Dates for which a curve
// has no rows are simply absent from that date's map.
func (s *Store) LoadHistory(ctx context.Context, ids []curve.ID) (map[time.Time]map[curve.ID]*curve.NodalCurve, []time.Time, error) {
	snapDates, err := s.SnapshotDates(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("LoadHistory: %w", err)
	}
	dates.Sort(snapDates)

	history := make(map[time.Time]map[curve.ID]*curve.NodalCurve, len(snapDates))
	for _, d := range snapDates {
		byID := make(map[curve.ID]*curve.NodalCurve, len(ids))
		for _, id := range ids {
			c, err := s.LoadCurve(ctx, d, id)
			if err != nil {
				return nil, nil, fmt.Errorf("LoadHistory: %w", err)
			}
			if c != nil {
				byID[id] = c
			}
		}
		history[d] = byID
	}
	return history, snapDates, nil
}
