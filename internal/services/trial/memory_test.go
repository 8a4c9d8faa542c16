package trial

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCreatesFreshSession(t *testing.T) {
	store := NewMemoryStore()

	s, err := store.GetOrCreateSession(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, 0, s.TrialQuestionsUsed)
	assert.False(t, s.HasCustomKey())
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	s, err := store.GetOrCreateSession(ctx, "s1")
	require.NoError(t, err)
	s.TrialQuestionsUsed = 99 // mutating the copy must not touch the store

	fresh, err := store.GetOrCreateSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.TrialQuestionsUsed)
}

// Two simultaneous trial-mode requests for the same session must both land:
// final count equals prior value + 2, no lost update.
func TestMemoryStoreConcurrentIncrements(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.GetOrCreateSession(ctx, "s1")
	require.NoError(t, err)
	require.NoError(t, store.RecordTrialUsage(ctx, "s1"))
	prior := 1

	const concurrent = 50
	var wg sync.WaitGroup
	wg.Add(concurrent)
	for i := 0; i < concurrent; i++ {
		go func() {
			defer wg.Done()
			_ = store.RecordTrialUsage(ctx, "s1")
		}()
	}
	wg.Wait()

	s, err := store.GetOrCreateSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, prior+concurrent, s.TrialQuestionsUsed)
}
