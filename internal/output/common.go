package output

// Output format names accepted by --output.
const (
	FormatDelta  = "delta"
	FormatCoords = "coords"
	FormatJSON   = "json"
	FormatJSONL  = "jsonl"
)

// TSVHeader is the canonical header row for the coords table.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "s1\te1\ts2\te2\tlen1\tlen2\tidy\tsim\tstp\tlen_r\tlen_q\tid_r\tid_q"
