package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storeadmin/backend/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingSubject   = errors.New("missing subject in claims")
)

// SessionClaims carries the identity-provider session payload. The subject
// is the provider's user id, the same value the user webhook mirrors into
// the users table.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// SessionVerifier verifies dashboard session tokens. The tokens are minted
// by the identity provider's session layer with a shared HS256 secret; this
// service never issues them.
type SessionVerifier struct {
	secret []byte
	issuer string
	leeway time.Duration
}

// NewSessionVerifier creates a session verifier from config
func NewSessionVerifier(cfg config.SessionConfig) *SessionVerifier {
	return &SessionVerifier{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		leeway: cfg.Leeway,
	}
}

// Verify validates the token and returns the external user id it asserts
func (s *SessionVerifier) Verify(tokenString string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithLeeway(s.leeway),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return "", ErrTokenNotYetValid
		default:
			return "", ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrMissingSubject
	}

	return claims.Subject, nil
}

// Mint signs a session token for the given external user id. Used by tests
// and local tooling; production tokens come from the identity provider.
func (s *SessionVerifier) Mint(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
