package auth

import (
	"errors"
	"fmt"
	"time"

	"complaint-portal/config"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity carried by a session token.
type Claims struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type TokenErrorKind int

const (
	Malformed TokenErrorKind = iota
	InvalidSignature
	Expired
)

func (k TokenErrorKind) String() string {
	switch k {
	case InvalidSignature:
		return "invalid signature"
	case Expired:
		return "expired"
	default:
		return "malformed"
	}
}

// TokenError is returned by Validate; Kind tells expired tokens apart from
// forged or malformed ones.
type TokenError struct {
	Kind TokenErrorKind
	Err  error
}

func (e *TokenError) Error() string {
	if e.Err == nil {
		return "token " + e.Kind.String()
	}
	return fmt.Sprintf("token %s: %v", e.Kind, e.Err)
}

func (e *TokenError) Unwrap() error { return e.Err }

// TokenIssuer signs and validates HS256 tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a new TokenIssuer
func NewTokenIssuer(cfg config.JWTConfig) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(cfg.Secret),
		ttl:    time.Duration(cfg.ExpirationHours) * time.Hour,
	}
}

// Issue signs the identity claims with HS256. Without a configured TTL the
// token carries no time claims, so the output depends only on the secret and
// the identity.
func (s *TokenIssuer) Issue(id, name, email string) (string, error) {
	claims := &Claims{ID: id, Name: name, Email: email}
	if s.ttl > 0 {
		now := time.Now()
		claims.IssuedAt = jwt.NewNumericDate(now)
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate returns the claims of a well-formed, correctly signed token. All
// failures come back as *TokenError.
func (s *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, classify(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, &TokenError{Kind: Malformed, Err: errors.New("invalid claims")}
	}
	if claims.ID == "" {
		return nil, &TokenError{Kind: Malformed, Err: errors.New("missing id claim")}
	}

	return claims, nil
}

func classify(err error) *TokenError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
		return &TokenError{Kind: Expired, Err: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return &TokenError{Kind: InvalidSignature, Err: err}
	default:
		return &TokenError{Kind: Malformed, Err: err}
	}
}
