package trial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealerRoundTrip(t *testing.T) {
	s := NewSealer("server-secret")

	sealed, err := s.Seal("AIza-some-user-key")
	require.NoError(t, err)
	assert.NotEqual(t, "AIza-some-user-key", sealed)

	opened, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "AIza-some-user-key", opened)
}

func TestSealerNoncesDiffer(t *testing.T) {
	s := NewSealer("server-secret")

	a, err := s.Seal("same-key")
	require.NoError(t, err)
	b, err := s.Seal("same-key")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "each Seal must use a fresh nonce")
}

func TestSealerWrongSecretFails(t *testing.T) {
	sealed, err := NewSealer("secret-a").Seal("key")
	require.NoError(t, err)

	_, err = NewSealer("secret-b").Open(sealed)
	assert.Error(t, err)
}

func TestSealerRejectsGarbage(t *testing.T) {
	s := NewSealer("server-secret")

	tests := []struct {
		name   string
		sealed string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"too short", "aGVsbG8="},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Open(tt.sealed)
			assert.Error(t, err)
		})
	}
}
