package stats

// VariantStats holds the counters of one import variant.
type VariantStats struct {
	Total    int64            `json:"total"`
	Outcomes map[string]int64 `json:"outcomes"`
	Statuses map[string]int64 `json:"statuses"`
}
