// Package store persists the session credentials (bearer token and the
// cached user record) across process restarts, backed by a local SQLite
// database.
//
// The store is deliberately dumb: it never validates the token, checks
// expiry, or talks to the network. That is the session manager's job.
package store

import (
	"context"

	"github.com/avesnin/inkpress-cli/internal/client/models"
)

// Credentials is the pair the store persists. Either both fields are
// meaningful or the session is anonymous; Save and Clear always touch both.
type Credentials struct {
	Token string
	User  *models.User
}

// Repository is the durable credential store.
//
// Contract:
//   - Load: returns the persisted credentials; absent or unreadable entries
//     come back as zero values, never as an error the caller must handle
//     beyond treating the session as anonymous.
//   - Save: writes token and user together, atomically. Last write wins.
//   - Clear: removes both entries; clearing an empty store is a no-op.
type Repository interface {
	Load(ctx context.Context) (Credentials, error)
	Save(ctx context.Context, token string, user *models.User) error
	Clear(ctx context.Context) error
}
