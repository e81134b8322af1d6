package tokens

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/prevue-ai/interview-server/internal/infrastructure/cache"
)

// Purposes namespace the token keys so a reset token can never be redeemed
// as an invite and vice versa.
const (
	PurposePasswordReset = "pwreset"
)

// ResetTokenTTL is how long a password reset link stays valid.
const ResetTokenTTL = 15 * time.Minute

// Store issues and redeems single-use tokens. Only the SHA-256 of a token is
// stored, so a leaked cache dump cannot be replayed.
type Store struct {
	cache cache.Store
}

// NewStore creates a token store on the given cache backend
func NewStore(c cache.Store) *Store {
	return &Store{cache: c}
}

// Issue generates a random token bound to a subject and stores its hash with
// the given TTL. The raw token is returned exactly once.
func (s *Store) Issue(ctx context.Context, purpose, subject string, ttl time.Duration) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)

	if err := s.cache.Set(ctx, s.key(purpose, token), subject, ttl); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}

// Redeem validates a token and deletes it immediately (one-time use). It
// returns the subject the token was issued for.
func (s *Store) Redeem(ctx context.Context, purpose, token string) (string, bool, error) {
	key := s.key(purpose, token)

	subject, exists, err := s.cache.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	if !exists {
		return "", false, nil
	}

	if err := s.cache.Delete(ctx, key); err != nil {
		return "", false, err
	}
	return subject, true, nil
}

func (s *Store) key(purpose, token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%s:%s", purpose, hex.EncodeToString(sum[:]))
}
