package auth

import (
	"errors"
	"testing"
	"time"

	"complaint-portal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIssuer(hours int) *TokenIssuer {
	return NewTokenIssuer(config.JWTConfig{Secret: "test-secret", ExpirationHours: hours})
}

func kindOf(t *testing.T, err error) TokenErrorKind {
	t.Helper()
	var tokenErr *TokenError
	require.True(t, errors.As(err, &tokenErr), "expected *TokenError, got %T", err)
	return tokenErr.Kind
}

func TestIssueValidate_RoundTrip(t *testing.T) {
	issuer := newIssuer(0)

	token, err := issuer.Issue("c-1", "Ann", "a@x.com")
	require.NoError(t, err)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "c-1", claims.ID)
	assert.Equal(t, "Ann", claims.Name)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Nil(t, claims.ExpiresAt)
}

func TestIssue_DeterministicWithoutExpiry(t *testing.T) {
	issuer := newIssuer(0)

	first, err := issuer.Issue("c-1", "Ann", "a@x.com")
	require.NoError(t, err)
	second, err := issuer.Issue("c-1", "Ann", "a@x.com")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestValidate_TamperedTokenFails(t *testing.T) {
	issuer := newIssuer(0)
	token, err := issuer.Issue("c-1", "Ann", "a@x.com")
	require.NoError(t, err)

	// The final character is skipped: its low bits are padding in raw
	// base64url and some substitutions decode to the same signature.
	for i := 0; i < len(token)-1; i++ {
		if token[i] == '.' {
			continue
		}
		b := []byte(token)
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}

		_, err := issuer.Validate(string(b))
		assert.Error(t, err, "flipped byte %d should invalidate the token", i)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := newIssuer(0).Issue("c-1", "Ann", "a@x.com")
	require.NoError(t, err)

	other := NewTokenIssuer(config.JWTConfig{Secret: "another-secret"})
	_, err = other.Validate(token)
	assert.Equal(t, InvalidSignature, kindOf(t, err))
}

func TestValidate_Malformed(t *testing.T) {
	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		_, err := newIssuer(0).Validate(raw)
		assert.Equal(t, Malformed, kindOf(t, err), "input %q", raw)
	}
}

func TestValidate_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{ID: "c-1", Name: "Ann", Email: "a@x.com"}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = newIssuer(0).Validate(hs512)
	assert.Equal(t, InvalidSignature, kindOf(t, err))

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = newIssuer(0).Validate(none)
	assert.Error(t, err)
}

func TestValidate_ExpiredToken(t *testing.T) {
	claims := &Claims{
		ID: "c-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newIssuer(1).Validate(token)
	assert.Equal(t, Expired, kindOf(t, err))
}

func TestIssue_WithExpiry(t *testing.T) {
	issuer := newIssuer(2)
	token, err := issuer.Issue("c-1", "Ann", "a@x.com")
	require.NoError(t, err)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidate_MissingID(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Name: "Ann"}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newIssuer(0).Validate(token)
	assert.Equal(t, Malformed, kindOf(t, err))
}
