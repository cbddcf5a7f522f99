package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifiesRoundTrip(t *testing.T) {
	passwords := []string{"pw", "correct horse battery staple", "pässwörd", " spaced ", strings.Repeat("x", 200)}

	for _, pw := range passwords {
		stored, err := HashPassword(pw)
		require.NoError(t, err)
		assert.True(t, VerifyPassword(pw, stored), "password %q should verify", pw)
		assert.False(t, VerifyPassword(pw+"!", stored))
	}
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	first, err := HashPassword("pw")
	require.NoError(t, err)
	second, err := HashPassword("pw")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	salt, digest, ok := strings.Cut(first, ":")
	require.True(t, ok)
	assert.Len(t, salt, saltLen*2)
	assert.Len(t, digest, digestLen*2)
}

func TestVerifyPassword_MalformedStoredValue(t *testing.T) {
	valid, err := HashPassword("pw")
	require.NoError(t, err)
	salt, digest, _ := strings.Cut(valid, ":")

	cases := map[string]string{
		"empty":           "",
		"no separator":    salt + digest,
		"bad salt hex":    "zz:" + digest,
		"bad digest hex":  salt + ":zz",
		"short digest":    salt + ":abcd",
		"empty salt":      ":" + digest,
		"extra separator": salt + ":" + digest + ":" + digest,
	}

	for name, stored := range cases {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, VerifyPassword("pw", stored))
			})
		})
	}
}
