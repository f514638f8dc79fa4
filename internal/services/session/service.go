package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/nextliferp/accountd/internal/dependencies/clock"
	"github.com/nextliferp/accountd/internal/model"
	"github.com/nextliferp/accountd/internal/storage"
)

// tokenBytes is the entropy of a session token (hex-encoded on the wire)
const tokenBytes = 32

// Config holds configuration for the session service
type Config struct {
	// TTL is how long issued tokens stay valid. Zero means tokens never
	// expire and remain valid until explicitly revoked.
	TTL time.Duration
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		TTL: 24 * time.Hour,
	}
}

// Service issues, resolves and revokes bearer tokens. Session records live
// in the durable store so they survive wherever the store does.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	ttl     time.Duration
}

// New creates a new session service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		ttl:     cfg.TTL,
	}
}

// Issue generates a fresh random token bound to the account and persists
// it. Accounts may hold any number of concurrent sessions.
func (s *Service) Issue(ctx context.Context, accountID model.AccountID) (*model.Session, error) {
	now := s.clock.Now()

	session := &model.Session{
		Token:     newToken(),
		AccountID: accountID,
		CreatedAt: now,
	}
	if s.ttl > 0 {
		session.ExpiresAt = now.Add(s.ttl)
	}

	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Resolve looks up a token and returns its session. Unknown and expired
// tokens both return ErrInvalidSession; expired sessions are removed.
func (s *Service) Resolve(ctx context.Context, token string) (*model.Session, error) {
	session, err := s.storage.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.Expired(s.clock.Now()) {
		_ = s.storage.DeleteSession(ctx, token)
		return nil, model.ErrInvalidSession
	}

	return session, nil
}

// Revoke removes a session. Revoking an unknown token is a no-op.
func (s *Service) Revoke(ctx context.Context, token string) error {
	return s.storage.DeleteSession(ctx, token)
}

// newToken generates a cryptographically random bearer token
// (32 random bytes, hex-encoded = 256 bits of entropy)
func newToken() string {
	b := make([]byte, tokenBytes)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
