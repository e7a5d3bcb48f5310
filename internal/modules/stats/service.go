package stats

import (
	"context"

	"github.com/digitalunknown/trip-planner-ai-proxy/internal/modules/pasteimport"
)

// Service counts import calls per variant.
type Service struct {
	store    *Store
	variants []string
}

// NewService creates a Service reporting on the given variants.
func NewService(store *Store, variants ...string) *Service {
	return &Service{store: store, variants: variants}
}

// Record satisfies pasteimport.Recorder.
func (s *Service) Record(ctx context.Context, call pasteimport.Call) error {
	return s.store.Incr(ctx, call.Variant, call.Outcome, call.Status)
}

// Snapshot returns the counters of every configured variant.
func (s *Service) Snapshot(ctx context.Context) (map[string]VariantStats, error) {
	out := make(map[string]VariantStats, len(s.variants))
	for _, v := range s.variants {
		vs, err := s.store.Get(ctx, v)
		if err != nil {
			return nil, err
		}
		out[v] = vs
	}
	return out, nil
}
