package auth

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the identity bound to an authenticated session or request.
type Principal struct {
	UserID string
	Roles  []string
}

// TokenVerifier is the narrow contract against the identity service:
// validate a bearer token into a principal, or extract the subject without
// full validation for logging/diagnostic paths.
type TokenVerifier interface {
	Verify(token string) (Principal, error)
	ExtractUsername(token string) (string, error)
}

var ErrInvalidToken = errors.New("auth: invalid token")

type claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier validates HS256 bearer tokens issued by the identity service.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret is required")
	}
	return &JWTVerifier{secret: []byte(secret)}, nil
}

var _ TokenVerifier = (*JWTVerifier)(nil)

func (v *JWTVerifier) Verify(token string) (Principal, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Principal{}, errors.Join(ErrInvalidToken, err)
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.Subject == "" {
		return Principal{}, ErrInvalidToken
	}
	return Principal{UserID: c.Subject, Roles: c.Roles}, nil
}

// ExtractUsername returns the token subject without verifying the
// signature. Callers must not trust the result for authorization.
func (v *JWTVerifier) ExtractUsername(token string) (string, error) {
	parser := jwt.NewParser()
	var c claims
	if _, _, err := parser.ParseUnverified(token, &c); err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	if c.Subject == "" {
		return "", ErrInvalidToken
	}
	return c.Subject, nil
}

// BearerToken strips the "Bearer " scheme from an Authorization header
// value. Returns "" when the header does not carry a bearer token.
func BearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
