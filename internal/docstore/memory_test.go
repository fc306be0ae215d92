package docstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HASANPOWER/Spectra-App/internal/common"
)

func TestMemory_SetGetDelete(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "users/@AAA-111", map[string]any{"persona": "family"}))

	d, err := s.Get(ctx, "users/@AAA-111")
	require.NoError(t, err)
	assert.Equal(t, "@AAA-111", d.ID)
	assert.Equal(t, "family", d.StringField("persona"))

	require.NoError(t, s.Delete(ctx, "users/@AAA-111"))

	_, err = s.Get(ctx, "users/@AAA-111")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestMemory_DeleteAbsentIsNotAnError(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.Delete(context.Background(), "users/@ZZZ-999"))
}

func TestMemory_UpdateAbsentReturnsNotFound(t *testing.T) {
	s := NewMemory()
	err := s.Update(context.Background(), "chats/x", map[string]any{"chatName": "n"})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestMemory_MergePreservesOtherFields(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "chats/c1", map[string]any{"a": "1", "b": "2"}))
	require.NoError(t, s.Merge(ctx, "chats/c1", map[string]any{"b": "3"}))

	d, err := s.Get(ctx, "chats/c1")
	require.NoError(t, err)
	assert.Equal(t, "1", d.StringField("a"))
	assert.Equal(t, "3", d.StringField("b"))
}

func TestMemory_ServerTimestampResolvesWithClock(t *testing.T) {
	s := NewMemory()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }

	require.NoError(t, s.Set(context.Background(), "chats/c1", map[string]any{
		"updatedAt": ServerTimestamp,
	}))

	d, err := s.Get(context.Background(), "chats/c1")
	require.NoError(t, err)
	assert.Equal(t, now, d.TimeField("updatedAt"))
}

func TestMemory_SubscribeDeliversInitialAndUpdates(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	var mu sync.Mutex
	var snapshots [][]Document
	unsub, err := s.Subscribe(ctx, Query{Collection: "chats/c1/messages", OrderBy: "createdAt"}, func(docs []Document) {
		mu.Lock()
		snapshots = append(snapshots, docs)
		mu.Unlock()
	})
	require.NoError(t, err)
	defer unsub()

	mu.Lock()
	require.Len(t, snapshots, 1, "initial snapshot fires on subscribe")
	assert.Empty(t, snapshots[0])
	mu.Unlock()

	_, err = s.Add(ctx, "chats/c1/messages", map[string]any{
		"text":      "hi",
		"createdAt": ServerTimestamp,
	})
	require.NoError(t, err)

	mu.Lock()
	require.Len(t, snapshots, 2)
	assert.Equal(t, "hi", snapshots[1][0].StringField("text"))
	mu.Unlock()
}

func TestMemory_SubscribeFiltersAndOrder(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.Set(ctx, "chats/a", map[string]any{
		"participants": []string{"@AAA-111", "@BBB-222"},
		"updatedAt":    base.Add(time.Minute),
	}))
	require.NoError(t, s.Set(ctx, "chats/b", map[string]any{
		"participants": []string{"@AAA-111", "@CCC-333"},
		"updatedAt":    base.Add(2 * time.Minute),
	}))
	require.NoError(t, s.Set(ctx, "chats/c", map[string]any{
		"participants": []string{"@DDD-444", "@CCC-333"},
		"updatedAt":    base,
	}))

	var last []Document
	unsub, err := s.Subscribe(ctx, Query{
		Collection: "chats",
		Filters:    []Filter{{Field: "participants", Op: OpArrayContains, Value: "@AAA-111"}},
		OrderBy:    "updatedAt",
		Desc:       true,
	}, func(docs []Document) { last = docs })
	require.NoError(t, err)
	defer unsub()

	require.Len(t, last, 2)
	assert.Equal(t, "b", last[0].ID, "newest first")
	assert.Equal(t, "a", last[1].ID)
}

func TestMemory_UnsubscribeStopsCallbacksSynchronously(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	calls := 0
	unsub, err := s.Subscribe(ctx, Query{Collection: "chats"}, func([]Document) { calls++ })
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	unsub()

	require.NoError(t, s.Set(ctx, "chats/x", map[string]any{"a": "b"}))
	assert.Equal(t, 1, calls, "no delivery after unsubscribe returned")
}

func TestMemory_GetWrapsNotFoundForErrorsIs(t *testing.T) {
	s := NewMemory()
	_, err := s.Get(context.Background(), "users/@NOP-000")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
