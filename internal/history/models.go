package history

import "time"

const SchemaVersion = 1

// Snapshot is one analysis run persisted for trend comparison.
type Snapshot struct {
	SchemaVersion int       `json:"schema_version"`
	RunID         string    `json:"run_id"`
	Timestamp     time.Time `json:"timestamp"`
	Framework     string    `json:"framework"`
	FileCount     int       `json:"file_count"`
	RouteCount    int       `json:"route_count"`
	FlowCount     int       `json:"flow_count"`
	MenuCount     int       `json:"menu_count"`
	NodeCount     int       `json:"node_count"`
	EdgeCount     int       `json:"edge_count"`
	WarningCount  int       `json:"warning_count"`
	Duration      time.Duration `json:"duration_ms"`
}

// Trend compares the latest snapshot against the previous one.
type Trend struct {
	Latest        Snapshot `json:"latest"`
	Previous      Snapshot `json:"previous"`
	DeltaRoutes   int      `json:"delta_routes"`
	DeltaFlows    int      `json:"delta_flows"`
	DeltaEdges    int      `json:"delta_edges"`
	DeltaWarnings int      `json:"delta_warnings"`
}
