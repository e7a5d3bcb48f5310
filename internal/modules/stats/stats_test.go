package stats

import (
	"context"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitalunknown/trip-planner-ai-proxy/internal/modules/pasteimport"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestService_RecordAndSnapshot(t *testing.T) {
	client, mr := setupTestRedis(t)
	svc := NewService(NewStore(client), pasteimport.VariantExtract, pasteimport.VariantPlan)
	ctx := context.Background()

	calls := []pasteimport.Call{
		{Variant: pasteimport.VariantExtract, Status: http.StatusOK, Outcome: pasteimport.OutcomeOK},
		{Variant: pasteimport.VariantExtract, Status: http.StatusOK, Outcome: pasteimport.OutcomeOK},
		{Variant: pasteimport.VariantExtract, Status: http.StatusInternalServerError, Outcome: string(pasteimport.KindInvalidShape)},
	}
	for _, c := range calls {
		require.NoError(t, svc.Record(ctx, c))
	}

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	extract := snap[pasteimport.VariantExtract]
	assert.EqualValues(t, 3, extract.Total)
	assert.EqualValues(t, 2, extract.Outcomes["ok"])
	assert.EqualValues(t, 1, extract.Outcomes["invalid_shape"])
	assert.EqualValues(t, 2, extract.Statuses["200"])
	assert.EqualValues(t, 1, extract.Statuses["500"])

	plan, ok := snap[pasteimport.VariantPlan]
	require.True(t, ok)
	assert.Zero(t, plan.Total)
	assert.Empty(t, plan.Outcomes)

	assert.Equal(t, "3", mr.HGet("stats:import:extract", "total"))
}

func TestStore_GetRejectsCorruptCounter(t *testing.T) {
	client, mr := setupTestRedis(t)
	mr.HSet("stats:import:plan", "total", "lots")

	_, err := NewStore(client).Get(context.Background(), "plan")
	require.Error(t, err)
}

func TestService_RecordFailsWhenRedisDown(t *testing.T) {
	client, mr := setupTestRedis(t)
	mr.Close()

	err := NewService(NewStore(client)).Record(context.Background(), pasteimport.Call{Variant: "plan", Outcome: "ok", Status: 200})
	require.Error(t, err)
}
