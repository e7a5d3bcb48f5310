package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/digitalunknown/trip-planner-ai-proxy/internal/modules/stats"
	"github.com/digitalunknown/trip-planner-ai-proxy/internal/modules/usage"
)

const defaultLedgerWindow = 24 * time.Hour

// LedgerReader reads per-variant call totals from the call ledger.
type LedgerReader interface {
	Summaries(ctx context.Context, window time.Duration) ([]usage.Summary, error)
}

// StatsHandler reports Redis counters and ledger totals. Either source may be nil.
type StatsHandler struct {
	stats  *stats.Service
	ledger LedgerReader
}

func NewStatsHandler(svc *stats.Service, ledger LedgerReader) *StatsHandler {
	return &StatsHandler{stats: svc, ledger: ledger}
}

// Get handles GET /api/stats. The optional "window" query (Go duration, default 24h) bounds
// the ledger totals.
func (h *StatsHandler) Get(c *gin.Context) {
	window := defaultLedgerWindow
	if raw := c.Query("window"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			writeText(c, http.StatusBadRequest, "invalid window")
			return
		}
		window = d
	}

	resp := gin.H{}
	if h.stats != nil {
		snap, err := h.stats.Snapshot(c.Request.Context())
		if err != nil {
			writeText(c, http.StatusInternalServerError, "stats unavailable")
			return
		}
		resp["variants"] = snap
	}
	if h.ledger != nil {
		summaries, err := h.ledger.Summaries(c.Request.Context(), window)
		if err != nil {
			writeText(c, http.StatusInternalServerError, "ledger unavailable")
			return
		}
		if summaries == nil {
			summaries = []usage.Summary{}
		}
		resp["ledger"] = gin.H{"window": window.String(), "calls": summaries}
	}
	writeJSON(c, http.StatusOK, resp)
}
