package security

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	authuc "example.com/storefront/app/internal/usecase/auth"
)

var ErrNoClaims = errors.New("token carries no claims")

// JWTInspector reads the claims of a storefront bearer token. The signature
// is not checked: the secret lives on the backend, and the claims are only
// used to show the username and to notice expiry early.
type JWTInspector struct {
	parser *jwt.Parser
}

func NewJWTInspector() *JWTInspector {
	return &JWTInspector{parser: jwt.NewParser()}
}

type jwtClaims struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

func (s *JWTInspector) Inspect(token string) (*authuc.Claims, error) {
	claims := &jwtClaims{}
	if _, _, err := s.parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}

	out := &authuc.Claims{Username: claims.Username}
	if out.Username == "" {
		out.Username = claims.Name
	}
	if out.Username == "" {
		out.Username = claims.Subject
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	if out.Username == "" && out.ExpiresAt.IsZero() {
		return nil, ErrNoClaims
	}
	return out, nil
}
