package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/soloauth/soloauth/internal/auth/domain"
	"github.com/soloauth/soloauth/internal/auth/store"
)

type usersRepo struct {
	db *sqlx.DB
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, username, password_hash, session_token, last_login, created_at, updated_at
		 FROM users WHERE username = ?`, username)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserBySessionToken(ctx context.Context, token string) (domain.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, username, password_hash, session_token, last_login, created_at, updated_at
		 FROM users WHERE session_token = ?`, token)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, session_token, last_login, created_at, updated_at)
		 VALUES (?, ?, ?, NULL, NULL, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, now, now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// ClaimSession is the compare-and-swap that enforces single-session-per-user.
// The WHERE clause makes the "still logged out" check and the token write one
// statement, so concurrent logins for the same user cannot both pass.
func (r *usersRepo) ClaimSession(ctx context.Context, userID, token string, loginAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET session_token = ?, last_login = ?, updated_at = ?
		 WHERE id = ? AND session_token IS NULL`,
		token, loginAt.UTC(), time.Now().UTC(), userID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrSessionHeld
	}
	return nil
}

func (r *usersRepo) ClearSessionByToken(ctx context.Context, token string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET session_token = NULL, updated_at = ?
		 WHERE session_token = ?`,
		time.Now().UTC(), token)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}
