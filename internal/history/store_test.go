package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RecordAndRecent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := s.Record(ctx, Snapshot{
			RunID:      string(rune('a' + i)),
			Timestamp:  base.Add(time.Duration(i) * time.Hour),
			Framework:  "angular",
			RouteCount: 10 + i,
			FlowCount:  5,
		})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	snaps, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}
	if snaps[0].RouteCount != 12 {
		t.Errorf("newest first: got route_count %d", snaps[0].RouteCount)
	}
	if snaps[0].Framework != "angular" {
		t.Errorf("framework round-trip failed: %q", snaps[0].Framework)
	}
}

func TestStore_LatestTrend(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, ok, err := s.LatestTrend(ctx); err != nil || ok {
		t.Fatalf("trend with no data: ok=%v err=%v", ok, err)
	}

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	s.Record(ctx, Snapshot{RunID: "r1", Timestamp: base, RouteCount: 10, FlowCount: 4, WarningCount: 2})
	s.Record(ctx, Snapshot{RunID: "r2", Timestamp: base.Add(time.Hour), RouteCount: 13, FlowCount: 4, WarningCount: 1})

	trend, ok, err := s.LatestTrend(ctx)
	if err != nil || !ok {
		t.Fatalf("LatestTrend: ok=%v err=%v", ok, err)
	}
	if trend.DeltaRoutes != 3 {
		t.Errorf("DeltaRoutes = %d, want 3", trend.DeltaRoutes)
	}
	if trend.DeltaWarnings != -1 {
		t.Errorf("DeltaWarnings = %d, want -1", trend.DeltaWarnings)
	}
}
