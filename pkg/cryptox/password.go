package cryptox

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with bcrypt using a fresh random
// salt. The returned string is self-describing (cost and salt are embedded),
// so it can be persisted as-is and verified later without extra bookkeeping.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt hash.
// It returns a non-nil error for a mismatch OR a malformed stored hash; callers
// must treat any error as "does not match" rather than a fatal condition, so a
// corrupted hash in the database degrades to an authentication failure.
func VerifyPassword(password, storedHash string) error {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password))
}
