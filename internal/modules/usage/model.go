package usage

import "time"

// DefaultRetention is how long call records are kept when no retention is configured.
const DefaultRetention = 30 * 24 * time.Hour

// Entry is one row of the import_calls ledger.
type Entry struct {
	ID        string
	RequestID string
	Variant   string
	UID       string
	Status    int
	Outcome   string
	ItemCount int
	LatencyMS int64
	CreatedAt time.Time
}

// Summary counts calls of one variant since a point in time.
type Summary struct {
	Variant string `json:"variant"`
	Total   int64  `json:"total"`
	Failed  int64  `json:"failed"`
}
