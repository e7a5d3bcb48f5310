// README: Import call ledger (metadata recording and scheduled retention).
package usage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/digitalunknown/trip-planner-ai-proxy/internal/modules/pasteimport"
)

// Service records import calls and prunes old rows.
type Service struct {
	store     *Store
	retention time.Duration
	schedule  string
	now       func() time.Time
}

// NewService creates a Service backed by the given Store.
// retention <= 0 falls back to DefaultRetention; schedule is a standard 5-field cron expression.
func NewService(store *Store, retention time.Duration, schedule string) *Service {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Service{store: store, retention: retention, schedule: schedule, now: time.Now}
}

// Record stores the metadata of one call. It satisfies pasteimport.Recorder.
func (s *Service) Record(ctx context.Context, call pasteimport.Call) error {
	at := call.At
	if at.IsZero() {
		at = s.now()
	}
	return s.store.Insert(ctx, Entry{
		ID:        uuid.NewString(),
		RequestID: call.RequestID,
		Variant:   call.Variant,
		UID:       call.UID,
		Status:    call.Status,
		Outcome:   call.Outcome,
		ItemCount: call.ItemCount,
		LatencyMS: call.Latency.Milliseconds(),
		CreatedAt: at.UTC(),
	})
}

// Prune deletes rows older than the retention window measured from now.
func (s *Service) Prune(ctx context.Context, now time.Time) (int64, error) {
	return s.store.PruneBefore(ctx, now.Add(-s.retention))
}

// Summaries returns per-variant totals for the last window.
func (s *Service) Summaries(ctx context.Context, window time.Duration) ([]Summary, error) {
	return s.store.CountSince(ctx, s.now().Add(-window))
}

// RunRetention schedules Prune on the configured cron schedule and blocks until ctx is done.
func (s *Service) RunRetention(ctx context.Context) error {
	sched, err := cron.ParseStandard(s.schedule)
	if err != nil {
		return fmt.Errorf("usage: invalid prune schedule %q: %w", s.schedule, err)
	}

	c := cron.New()
	c.Schedule(sched, cron.FuncJob(func() {
		n, err := s.Prune(ctx, s.now())
		if err != nil {
			log.Printf("usage: prune failed: %v", err)
			return
		}
		log.Printf("usage: pruned %d import call rows older than %s", n, s.retention)
	}))
	c.Start()
	log.Printf("usage: retention job scheduled (%s, keep %s)", s.schedule, s.retention)

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
