package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/avesnin/inkpress-cli/internal/client/models"
	"github.com/avesnin/inkpress-cli/internal/dbx"
	"github.com/avesnin/inkpress-cli/internal/logging"
)

// Storage keys within the credentials table.
const (
	keyToken = "token"
	keyUser  = "user"
)

type SQLiteRepository struct {
	db  *sql.DB
	log logging.Logger
}

func NewSQLiteRepository(db *sql.DB, log logging.Logger) *SQLiteRepository {
	return &SQLiteRepository{db: db, log: log}
}

func (r *SQLiteRepository) get(ctx context.Context, q dbx.DBTX, key string) (string, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credentials[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) set(ctx context.Context, q dbx.DBTX, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set credentials[%s]: %w", key, err)
	}
	return nil
}

// Load reads the persisted token and user. A stored user record that no
// longer parses is logged and reported as absent rather than failing the
// startup path.
func (r *SQLiteRepository) Load(ctx context.Context) (Credentials, error) {
	token, err := r.get(ctx, r.db, keyToken)
	if err != nil {
		return Credentials{}, err
	}

	raw, err := r.get(ctx, r.db, keyUser)
	if err != nil {
		return Credentials{}, err
	}

	creds := Credentials{Token: token}
	if raw != "" {
		var u models.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			r.log.Warn(ctx, "stored user record is unreadable, treating as absent", "err", err)
		} else {
			creds.User = &u
		}
	}
	return creds, nil
}

// Save persists token and user in a single transaction so a crash cannot
// leave one half updated.
func (r *SQLiteRepository) Save(ctx context.Context, token string, user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user record: %w", err)
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := r.set(ctx, tx, keyToken, token); err != nil {
			return err
		}
		return r.set(ctx, tx, keyUser, string(raw))
	})
}

// Clear removes both entries. Idempotent.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE key IN (?, ?)`, keyToken, keyUser)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
