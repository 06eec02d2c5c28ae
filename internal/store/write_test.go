package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recbook/recbook/internal/bus"
	"github.com/recbook/recbook/internal/record"
	"github.com/recbook/recbook/internal/testutil"
)

func TestAdd_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	added, err := s.Add(ctx, "A", "1")
	require.NoError(t, err)

	assert.Equal(t, int64(1), added.UserID, "first id on an empty store is 1")
	assert.NotEmpty(t, added.InternalID)
	assert.False(t, added.CreatedAt.IsZero())
	assert.NotEmpty(t, added.Created)
	assert.Nil(t, added.UpdatedAt)

	recs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "A", recs[0].Name)
	assert.Equal(t, "1", recs[0].Value)
	assert.Equal(t, added.InternalID, recs[0].InternalID)
}

func TestAdd_IDsStrictlyIncreaseAcrossDeletes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var assigned []int64
	for _, name := range []string{"a", "b", "c"} {
		rec, err := s.Add(ctx, name, "v")
		require.NoError(t, err)
		assigned = append(assigned, rec.UserID)
	}

	_, found, err := s.Delete(ctx, numericID(2))
	require.NoError(t, err)
	require.True(t, found)

	rec, err := s.Add(ctx, "d", "v")
	require.NoError(t, err)
	assigned = append(assigned, rec.UserID)

	for i := 1; i < len(assigned); i++ {
		assert.Greater(t, assigned[i], assigned[i-1],
			"every assigned id is strictly greater than all earlier ones")
	}
}

func TestAdd_EmitsEventAndSnapshot(t *testing.T) {
	b := bus.New()
	var events []bus.Event
	b.Subscribe(bus.KindAdd, func(e bus.Event) { events = append(events, e) })

	s := newTestStore(t, WithEventBus(b))
	sn := &countingSnapshotter{}
	s.SetSnapshotter(sn)

	added, err := s.Add(context.Background(), "A", "1")
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, added, events[0].Record)
	assert.Equal(t, 1, sn.calls)
}

func TestAdd_SnapshotFailureDoesNotFailAdd(t *testing.T) {
	s := newTestStore(t)
	s.SetSnapshotter(&countingSnapshotter{err: assert.AnError})
	ctx := context.Background()

	first, err := s.Add(ctx, "A", "1")
	require.NoError(t, err, "backup failure is logged, not propagated")

	// The counter increment survives the failed side effect.
	second, err := s.Add(ctx, "B", "2")
	require.NoError(t, err)
	assert.Equal(t, first.UserID+1, second.UserID)
}

func TestUpdate_ByUserID(t *testing.T) {
	clk := testutil.NewClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), time.Second)
	s := newTestStore(t, WithClock(clk.Now))
	ctx := context.Background()

	added, err := s.Add(ctx, "A", "1")
	require.NoError(t, err)

	updated, found, err := s.Update(ctx, numericID(added.UserID), "B", "2")
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, "B", updated.Name)
	assert.Equal(t, "2", updated.Value)
	assert.Equal(t, added.UserID, updated.UserID)
	assert.Equal(t, added.InternalID, updated.InternalID)
	assert.Equal(t, added.CreatedAt, updated.CreatedAt, "createdAt never changes")
	require.NotNil(t, updated.UpdatedAt)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt),
		"updatedAt is strictly after createdAt")
}

func TestUpdate_ByInternalID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	added, err := s.Add(ctx, "A", "1")
	require.NoError(t, err)

	updated, found, err := s.Update(ctx, opaqueID(added.InternalID), "B", "2")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "B", updated.Name)
}

func TestUpdate_NumericTokenNeverMatchesInternalID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	added, err := s.Add(ctx, "A", "1")
	require.NoError(t, err)

	// A numeric token resolves against user_id only.
	_, found, err := s.Update(ctx, numericID(999), "B", "2")
	require.NoError(t, err)
	assert.False(t, found)

	// An opaque token resolves against the internal id only, so a
	// foreign UUID matches nothing even with records present.
	_, found, err = s.Update(ctx, opaqueID("00000000-0000-7000-8000-000000000000"), "B", "2")
	require.NoError(t, err)
	assert.False(t, found)

	// The record is untouched by the misses.
	rec, found, err := s.Find(ctx, numericID(added.UserID))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "A", rec.Name)
}

func TestUpdate_InvalidToken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "A", "1")
	require.NoError(t, err)

	_, found, err := s.Update(ctx, record.ParseID("not-an-id"), "B", "2")
	require.NoError(t, err, "invalid tokens match nothing, they never error")
	assert.False(t, found)
}

func TestUpdate_NoSnapshot(t *testing.T) {
	// Documented quirk: update does not trigger a backup, only add and
	// delete do. This test pins the asymmetry so a change to it has to
	// be deliberate.
	s := newTestStore(t)
	ctx := context.Background()

	added, err := s.Add(ctx, "A", "1")
	require.NoError(t, err)

	sn := &countingSnapshotter{}
	s.SetSnapshotter(sn)

	_, found, err := s.Update(ctx, numericID(added.UserID), "B", "2")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 0, sn.calls, "update must not snapshot")
}

func TestUpdate_EmitsEvent(t *testing.T) {
	b := bus.New()
	var events []bus.Event
	b.Subscribe(bus.KindUpdate, func(e bus.Event) { events = append(events, e) })

	s := newTestStore(t, WithEventBus(b))
	ctx := context.Background()

	added, err := s.Add(ctx, "A", "1")
	require.NoError(t, err)

	_, _, err = s.Update(ctx, numericID(added.UserID), "B", "2")
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "B", events[0].Record.Name)
}

func TestDelete_ReturnsPriorState(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	added, err := s.Add(ctx, "A", "1")
	require.NoError(t, err)

	removed, found, err := s.Delete(ctx, numericID(added.UserID))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, added, removed)

	recs, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs, "deletion is permanent, no tombstone remains")
}

func TestDelete_NotFoundHasNoSideEffects(t *testing.T) {
	b := bus.New()
	var events []bus.Event
	b.Subscribe(bus.KindDelete, func(e bus.Event) { events = append(events, e) })

	s := newTestStore(t, WithEventBus(b))
	sn := &countingSnapshotter{}
	s.SetSnapshotter(sn)
	ctx := context.Background()

	_, found, err := s.Delete(ctx, numericID(99))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, events)
	assert.Equal(t, 0, sn.calls, "a miss must not trigger a backup")
}

func TestDelete_EmitsEventAndSnapshot(t *testing.T) {
	b := bus.New()
	var events []bus.Event
	b.Subscribe(bus.KindDelete, func(e bus.Event) { events = append(events, e) })

	s := newTestStore(t, WithEventBus(b))
	ctx := context.Background()

	added, err := s.Add(ctx, "A", "1")
	require.NoError(t, err)

	sn := &countingSnapshotter{}
	s.SetSnapshotter(sn)

	_, found, err := s.Delete(ctx, numericID(added.UserID))
	require.NoError(t, err)
	require.True(t, found)

	require.Len(t, events, 1)
	assert.Equal(t, added.UserID, events[0].Record.UserID)
	assert.Equal(t, 1, sn.calls)
}
