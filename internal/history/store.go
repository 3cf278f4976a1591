package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists run snapshots in a local sqlite database.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Record(ctx context.Context, snap Snapshot) error {
	if snap.SchemaVersion == 0 {
		snap.SchemaVersion = SchemaVersion
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO snapshots (
  schema_version, run_id, ts_utc, framework,
  file_count, route_count, flow_count, menu_count,
  node_count, edge_count, warning_count, duration_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.SchemaVersion,
		snap.RunID,
		snap.Timestamp.UTC().Format(time.RFC3339Nano),
		snap.Framework,
		snap.FileCount,
		snap.RouteCount,
		snap.FlowCount,
		snap.MenuCount,
		snap.NodeCount,
		snap.EdgeCount,
		snap.WarningCount,
		snap.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("record snapshot: %w", err)
	}
	return nil
}

// Recent returns up to limit snapshots, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT schema_version, run_id, ts_utc, framework,
       file_count, route_count, flow_count, menu_count,
       node_count, edge_count, warning_count, duration_ms
FROM snapshots
ORDER BY ts_utc DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var (
			snap       Snapshot
			ts         string
			durationMS int64
		)
		if err := rows.Scan(
			&snap.SchemaVersion, &snap.RunID, &ts, &snap.Framework,
			&snap.FileCount, &snap.RouteCount, &snap.FlowCount, &snap.MenuCount,
			&snap.NodeCount, &snap.EdgeCount, &snap.WarningCount, &durationMS,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		snap.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, snap)
	}
	return out, rows.Err()
}

// LatestTrend compares the two most recent snapshots. Returns false when
// fewer than two runs are recorded.
func (s *Store) LatestTrend(ctx context.Context) (*Trend, bool, error) {
	snaps, err := s.Recent(ctx, 2)
	if err != nil {
		return nil, false, err
	}
	if len(snaps) < 2 {
		return nil, false, nil
	}
	latest, previous := snaps[0], snaps[1]
	return &Trend{
		Latest:        latest,
		Previous:      previous,
		DeltaRoutes:   latest.RouteCount - previous.RouteCount,
		DeltaFlows:    latest.FlowCount - previous.FlowCount,
		DeltaEdges:    latest.EdgeCount - previous.EdgeCount,
		DeltaWarnings: latest.WarningCount - previous.WarningCount,
	}, true, nil
}
