// Package session owns the client's authentication state: who is signed in,
// with which token, whether an auth operation is in flight, and what the
// last failure was. All mutation goes through the Manager; everything else
// observes snapshots.
package session

import (
	"errors"

	"github.com/avesnin/inkpress-cli/internal/client/models"
)

// Validation failures, reported before any network round-trip.
var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrMissingEmail       = errors.New("email is required")
	ErrNotAuthenticated   = errors.New("you must be signed in to do that")
)

// Session is a point-in-time snapshot of authentication state.
//
// Invariant: User and Token are set and cleared together. Loading is true
// while a login, register, or profile update is in flight. Error holds the
// last auth-operation failure and is cleared when a new operation starts.
type Session struct {
	User    *models.User
	Token   string
	Loading bool
	Error   string
}

// Authenticated reports whether the session carries a signed-in identity.
func (s Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}
