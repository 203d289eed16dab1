// Package authx inspects bearer tokens on the client side. The backend is
// the only party that validates signatures; the client merely looks at the
// exp claim to avoid hydrating a session it knows is stale.
package authx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expired reports whether token is a JWT whose exp claim lies before now.
//
// Opaque (non-JWT) tokens and JWTs without an exp claim are treated as not
// expired: the client cannot tell, so the next authenticated call decides.
func Expired(token string, now time.Time) bool {
	claims := &jwt.RegisteredClaims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Time.Before(now)
}
