package trial

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTrialKey = "trial-key-abc"
	testLimit    = 5
)

func newTestResolver(t *testing.T) (*Resolver, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	sealer := NewSealer("test-secret")
	return NewResolver(store, sealer, testTrialKey, testLimit), store
}

func TestResolveFreshSessionUsesTrialKey(t *testing.T) {
	r, _ := newTestResolver(t)

	res, err := r.Resolve(context.Background(), "s1", "")
	require.NoError(t, err)

	assert.True(t, res.Credential.IsTrial())
	assert.Equal(t, testTrialKey, res.Credential.APIKey())
	assert.True(t, res.ConsumesTrial)
}

func TestResolveUnderLimitStaysOnTrial(t *testing.T) {
	r, store := newTestResolver(t)
	ctx := context.Background()

	_, err := store.GetOrCreateSession(ctx, "s1")
	require.NoError(t, err)
	for i := 0; i < testLimit-1; i++ {
		require.NoError(t, store.RecordTrialUsage(ctx, "s1"))
	}

	res, err := r.Resolve(ctx, "s1", "")
	require.NoError(t, err)
	assert.True(t, res.Credential.IsTrial())
	assert.True(t, res.ConsumesTrial)
}

func TestResolveAtLimitRejects(t *testing.T) {
	r, store := newTestResolver(t)
	ctx := context.Background()

	_, err := store.GetOrCreateSession(ctx, "s1")
	require.NoError(t, err)
	for i := 0; i < testLimit; i++ {
		require.NoError(t, store.RecordTrialUsage(ctx, "s1"))
	}

	_, err = r.Resolve(ctx, "s1", "")
	assert.ErrorIs(t, err, ErrTrialLimitReached)
}

func TestResolveSuppliedKeyIsAuthoritativeAndPermanent(t *testing.T) {
	r, store := newTestResolver(t)
	ctx := context.Background()

	// Supplying a key on this request selects it immediately.
	res, err := r.Resolve(ctx, "s1", "user-key-123")
	require.NoError(t, err)
	assert.Equal(t, KindUser, res.Credential.Kind())
	assert.Equal(t, "user-key-123", res.Credential.APIKey())
	assert.False(t, res.ConsumesTrial)

	// Subsequent requests without a key still use the stored key,
	// regardless of the trial counter.
	for i := 0; i < testLimit+2; i++ {
		require.NoError(t, store.RecordTrialUsage(ctx, "s1"))
	}

	res, err = r.Resolve(ctx, "s1", "")
	require.NoError(t, err)
	assert.Equal(t, KindUser, res.Credential.Kind())
	assert.Equal(t, "user-key-123", res.Credential.APIKey())
	assert.False(t, res.ConsumesTrial)
}

func TestResolveStoredKeyIsSealedAtRest(t *testing.T) {
	r, store := newTestResolver(t)
	ctx := context.Background()

	_, err := r.Resolve(ctx, "s1", "user-key-123")
	require.NoError(t, err)

	session, err := store.GetOrCreateSession(ctx, "s1")
	require.NoError(t, err)
	require.True(t, session.HasCustomKey())
	assert.NotContains(t, *session.CustomKey, "user-key-123")
}

func TestResolveBlankSuppliedKeyMeansNoKey(t *testing.T) {
	r, store := newTestResolver(t)
	ctx := context.Background()

	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"whitespace", " \t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Resolve(ctx, "fresh-"+tt.name, tt.key)
			require.NoError(t, err)
			assert.True(t, res.Credential.IsTrial(), "blank key must not become a user credential")
		})
	}

	// A blank key must never displace an already-stored key.
	_, err := r.Resolve(ctx, "s1", "user-key-123")
	require.NoError(t, err)

	res, err := r.Resolve(ctx, "s1", "   ")
	require.NoError(t, err)
	assert.Equal(t, KindUser, res.Credential.Kind())
	assert.Equal(t, "user-key-123", res.Credential.APIKey())

	session, err := store.GetOrCreateSession(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, session.HasCustomKey())
}

func TestResolveSuppliedKeyLeavesTrialCounter(t *testing.T) {
	r, store := newTestResolver(t)
	ctx := context.Background()

	_, err := store.GetOrCreateSession(ctx, "s1")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.RecordTrialUsage(ctx, "s1"))
	}

	_, err = r.Resolve(ctx, "s1", "user-key-123")
	require.NoError(t, err)

	session, err := store.GetOrCreateSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, session.TrialQuestionsUsed)
}

func TestResolveUnsealFailureDoesNotFallBackToTrial(t *testing.T) {
	store := NewMemoryStore()
	r := NewResolver(store, NewSealer("secret-a"), testTrialKey, testLimit)
	ctx := context.Background()

	_, err := r.Resolve(ctx, "s1", "user-key-123")
	require.NoError(t, err)

	// Same store, different server secret — the stored key can no longer
	// be unsealed.
	rotated := NewResolver(store, NewSealer("secret-b"), testTrialKey, testLimit)
	_, err = rotated.Resolve(ctx, "s1", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTrialLimitReached)
}
