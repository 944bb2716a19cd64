// pkg/api/alignments_v1.go
package api

// AlignmentV1 is the stable JSON/JSONL schema for one retained alignment.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
// Coordinates are 1-based and inclusive; start > end on a reverse strand.
type AlignmentV1 struct {
	RefID      string  `json:"ref_id"`
	QryID      string  `json:"qry_id"`
	RefLen     int64   `json:"ref_len"`
	QryLen     int64   `json:"qry_len"`
	RefStart   int64   `json:"ref_start"`
	RefEnd     int64   `json:"ref_end"`
	QryStart   int64   `json:"qry_start"`
	QryEnd     int64   `json:"qry_end"`
	RefSpan    int64   `json:"ref_span"`
	QrySpan    int64   `json:"qry_span"`
	RefStrand  string  `json:"ref_strand"` // "+" | "-"
	QryStrand  string  `json:"qry_strand"`
	Identity   float64 `json:"identity"`
	Similarity float64 `json:"similarity"`
	Stop       float64 `json:"stop"`
	Errors     int64   `json:"errors"`
	SimErrors  int64   `json:"sim_errors"`
	Stops      int64   `json:"stops"`
	Deltas     []int64 `json:"deltas,omitempty"`
}

// SummaryV1 describes one filter run.
type SummaryV1 struct {
	Input         string   `json:"input"`
	Type          string   `json:"type"` // "NUCMER" | "PROMER"
	RefPath       string   `json:"ref_path"`
	QryPath       string   `json:"qry_path"`
	Steps         []string `json:"steps,omitempty"`
	RefSequences  int      `json:"ref_sequences"`
	QrySequences  int      `json:"qry_sequences"`
	Pairs         int      `json:"pairs"`
	AlignmentsIn  int      `json:"alignments_in"`
	AlignmentsOut int      `json:"alignments_out"`
}
