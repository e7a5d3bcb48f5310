// README: Call counters backed by Redis hashes.
package stats

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "stats:import:"
	fieldTotal    = "total"
	outcomePrefix = "outcome:"
	statusPrefix  = "status:"
)

type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

// Incr bumps the total, outcome and status counters of a variant in one round trip.
func (s *Store) Incr(ctx context.Context, variant, outcome string, status int) error {
	key := variantKey(variant)
	pipe := s.redis.Pipeline()
	pipe.HIncrBy(ctx, key, fieldTotal, 1)
	pipe.HIncrBy(ctx, key, outcomePrefix+outcome, 1)
	pipe.HIncrBy(ctx, key, statusPrefix+strconv.Itoa(status), 1)
	_, err := pipe.Exec(ctx)
	return err
}

// Get reads the counters of one variant. A variant with no calls yields zero counters.
func (s *Store) Get(ctx context.Context, variant string) (VariantStats, error) {
	fields, err := s.redis.HGetAll(ctx, variantKey(variant)).Result()
	if err != nil {
		return VariantStats{}, err
	}

	out := VariantStats{Outcomes: map[string]int64{}, Statuses: map[string]int64{}}
	for field, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return VariantStats{}, fmt.Errorf("stats: field %s of %s: %w", field, variant, err)
		}
		switch {
		case field == fieldTotal:
			out.Total = n
		case strings.HasPrefix(field, outcomePrefix):
			out.Outcomes[strings.TrimPrefix(field, outcomePrefix)] = n
		case strings.HasPrefix(field, statusPrefix):
			out.Statuses[strings.TrimPrefix(field, statusPrefix)] = n
		}
	}
	return out, nil
}

func variantKey(variant string) string {
	return keyPrefix + variant
}
