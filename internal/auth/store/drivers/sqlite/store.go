package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/soloauth/soloauth/internal/auth/domain"
	"github.com/soloauth/soloauth/internal/auth/store"
	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sqlx.DB
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// A single session-claiming writer at a time keeps the conditional
	// update semantics simple under SQLite's database-level write lock.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Users() store.Users { return &usersRepo{db: s.db} }

// userRow mirrors the users table for sqlx scanning.
type userRow struct {
	ID           string         `db:"id"`
	Username     string         `db:"username"`
	PasswordHash string         `db:"password_hash"`
	SessionToken sql.NullString `db:"session_token"`
	LastLogin    sql.NullTime   `db:"last_login"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func mapUser(row userRow) domain.User {
	var token *string
	if row.SessionToken.Valid {
		v := row.SessionToken.String
		token = &v
	}

	var lastLogin *time.Time
	if row.LastLogin.Valid {
		v := row.LastLogin.Time
		lastLogin = &v
	}

	return domain.User{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		SessionToken: token,
		LastLogin:    lastLogin,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
