package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/soloauth/soloauth/internal/auth/domain"
	"github.com/soloauth/soloauth/internal/auth/store"
	"github.com/soloauth/soloauth/pkg/cryptox"
	"github.com/soloauth/soloauth/pkg/idx"
	"github.com/soloauth/soloauth/pkg/jwtx"
	"github.com/soloauth/soloauth/pkg/slogx"
)

var (
	// ErrInvalidCredentials merges "unknown username" and "wrong password" so
	// callers cannot enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUsernameTaken      = errors.New("username_taken")
	ErrAlreadyLoggedIn    = errors.New("already_logged_in")
	ErrSessionNotFound    = errors.New("session_not_found")
)

// SessionService owns the single-session-per-user invariant. The store is the
// single source of truth for session state; nothing is cached between calls.
type SessionService struct {
	Store store.Store
	Codec *jwtx.Codec
}

// Register creates a new user with a hashed password, no session and no last
// login. An existing record with the same username is never mutated.
func (s *SessionService) Register(ctx context.Context, username, password string) error {
	if _, err := s.Store.Users().GetUserByUsername(ctx, username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("looking up username: %w", err)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	err = s.Store.Users().CreateUser(ctx, domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		// Lost a race with a concurrent Register for the same name; the
		// unique constraint is the authoritative check.
		return ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// Login authenticates the user and claims a fresh session token for them.
// On success the returned pair carries the signed bearer credential wrapping
// the new session token.
//
// A user with a live session is refused with ErrAlreadyLoggedIn; the existing
// token is never overwritten. The claim itself is a conditional update at the
// storage layer, so two concurrent logins for the same user resolve to one
// winner even though both passed the checks above it.
func (s *SessionService) Login(ctx context.Context, username, password string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, fmt.Errorf("looking up username: %w", err)
	}

	// Any verification error, including a corrupted stored hash, reads as a
	// plain mismatch.
	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		l.Info("password verification failed", "username", username)
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	if u.HasSession() {
		return domain.TokenPair{}, ErrAlreadyLoggedIn
	}

	now := time.Now()
	sessionToken := uuid.NewString()

	if err := s.Store.Users().ClaimSession(ctx, u.ID, sessionToken, now); err != nil {
		if errors.Is(err, store.ErrSessionHeld) {
			return domain.TokenPair{}, ErrAlreadyLoggedIn
		}
		return domain.TokenPair{}, fmt.Errorf("claiming session: %w", err)
	}

	access, err := s.Codec.Issue(u.Username, sessionToken, now)
	if err != nil {
		// Roll the claim back so a failed login leaves no live session.
		if clearErr := s.Store.Users().ClearSessionByToken(ctx, sessionToken); clearErr != nil {
			l.Error("failed to release session after signing error", "error", clearErr)
		}
		return domain.TokenPair{}, fmt.Errorf("signing bearer credential: %w", err)
	}

	l.Info("user logged in", "username", username)

	return domain.TokenPair{
		AccessToken:  access,
		TokenType:    "bearer",
		ExpiresIn:    s.Codec.TTL,
		SessionToken: sessionToken,
	}, nil
}

// Logout clears the session matching the token. A token that matches nothing,
// including one cleared by an earlier Logout, yields ErrSessionNotFound.
func (s *SessionService) Logout(ctx context.Context, sessionToken string) error {
	err := s.Store.Users().ClearSessionByToken(ctx, sessionToken)
	if errors.Is(err, store.ErrNotFound) {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	slogx.FromContext(ctx).Info("user logged out")
	return nil
}

// IsLoggedIn reports whether the token matches a live session.
func (s *SessionService) IsLoggedIn(ctx context.Context, sessionToken string) (bool, error) {
	_, err := s.Store.Users().GetUserBySessionToken(ctx, sessionToken)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up session: %w", err)
	}
	return true, nil
}

// GetUserBySessionToken resolves a live session token to its user.
func (s *SessionService) GetUserBySessionToken(ctx context.Context, sessionToken string) (domain.User, error) {
	u, err := s.Store.Users().GetUserBySessionToken(ctx, sessionToken)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrSessionNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("looking up session: %w", err)
	}
	return u, nil
}
