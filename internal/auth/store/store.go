package store

import (
	"context"
	"errors"
	"time"

	"github.com/soloauth/soloauth/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrSessionHeld is returned by ClaimSession when the user's session
	// column was not NULL at update time. It covers both an ordinary second
	// login and the loser of a concurrent login race.
	ErrSessionHeld = errors.New("store: session already held")
)

// Store is the root data access interface. Concrete drivers (sqlite) implement
// this. The session manager depends on this contract only; the engine behind
// it is an external collaborator.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByUsername looks a user up by exact username match.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserBySessionToken looks a user up by their live session token.
	GetUserBySessionToken(ctx context.Context, token string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID) with no
	// session and no last login. Returns ErrAlreadyExists on a duplicate
	// username.
	CreateUser(ctx context.Context, u domain.User) error

	// ClaimSession sets session_token and last_login in one conditional
	// update, succeeding only while session_token is still NULL. Two logins
	// racing for the same user cannot both succeed: the condition is
	// evaluated by the storage engine, not read-then-written by the caller.
	// Returns ErrSessionHeld when the row was not updated.
	ClaimSession(ctx context.Context, userID, token string, loginAt time.Time) error

	// ClearSessionByToken nulls the session token that matches. Returns
	// ErrNotFound when no live session carries the token, which makes a
	// repeated logout observable but harmless.
	ClearSessionByToken(ctx context.Context, token string) error
}
