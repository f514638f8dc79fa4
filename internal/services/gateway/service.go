package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/nextliferp/accountd/internal/model"
	"github.com/nextliferp/accountd/internal/services/account"
	"github.com/nextliferp/accountd/internal/services/playerstate"
	"github.com/nextliferp/accountd/internal/services/session"
)

// Config holds configuration for the auth gateway
type Config struct {
	// StorageTimeout bounds how long a single operation may wait on the
	// storage backend before failing with a server error
	StorageTimeout time.Duration
}

// DefaultConfig returns default gateway configuration
func DefaultConfig() Config {
	return Config{
		StorageTimeout: 5 * time.Second,
	}
}

// Service orchestrates the account, session and player state services.
// It enforces the authorization rule: a token authorizes only operations
// on the account it resolves to.
type Service struct {
	accounts *account.Service
	sessions *session.Service
	players  *playerstate.Service
	timeout  time.Duration
}

// New creates a new auth gateway
func New(accounts *account.Service, sessions *session.Service, players *playerstate.Service, cfg Config) *Service {
	if cfg.StorageTimeout == 0 {
		cfg.StorageTimeout = DefaultConfig().StorageTimeout
	}
	return &Service{
		accounts: accounts,
		sessions: sessions,
		players:  players,
		timeout:  cfg.StorageTimeout,
	}
}

// AuthResult is the outcome of a successful registration or login
type AuthResult struct {
	Account *model.Account
	Token   string
	Player  *model.PlayerState
}

// ValidationResult is the outcome of a token validation.
// Player may be nil when the account has no player record.
type ValidationResult struct {
	Valid   bool
	Message string
	Account *model.Account
	Player  *model.PlayerState
}

// Stats holds service-level counters for the health endpoint
type Stats struct {
	Users int
}

// Register creates an account with its initial session and player record.
// If the session or player record cannot be created the already-persisted
// records are rolled back, so no half-registered account survives.
func (g *Service) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	ctx, cancel := g.opCtx(ctx)
	defer cancel()

	acct, err := g.accounts.Create(ctx, username, email, password)
	if err != nil {
		return nil, err
	}

	sess, err := g.sessions.Issue(ctx, acct.ID)
	if err != nil {
		rctx, rcancel := g.compensationCtx(ctx)
		_ = g.accounts.Delete(rctx, acct.ID)
		rcancel()
		return nil, err
	}

	player, err := g.players.CreateDefault(ctx, acct.ID, acct.Username)
	if err != nil {
		rctx, rcancel := g.compensationCtx(ctx)
		_ = g.sessions.Revoke(rctx, sess.Token)
		_ = g.accounts.Delete(rctx, acct.ID)
		rcancel()
		return nil, err
	}

	return &AuthResult{
		Account: acct,
		Token:   sess.Token,
		Player:  player,
	}, nil
}

// Login authenticates by email and password, issues a fresh session and
// records the login time. A login never invalidates earlier sessions.
// An account left without a player record by some earlier fault gets a
// fresh default record persisted here rather than a synthesized view.
func (g *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	ctx, cancel := g.opCtx(ctx)
	defer cancel()

	acct, err := g.accounts.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	sess, err := g.sessions.Issue(ctx, acct.ID)
	if err != nil {
		return nil, err
	}

	player, err := g.players.TouchLogin(ctx, acct.ID)
	if errors.Is(err, model.ErrPlayerStateNotFound) {
		player, err = g.players.CreateDefault(ctx, acct.ID, acct.Username)
	}
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Account: acct,
		Token:   sess.Token,
		Player:  player,
	}, nil
}

// Validate resolves a token and loads its account and player record.
// An unknown token or a dangling session whose account is gone both
// report invalid; a missing player record is not an error.
func (g *Service) Validate(ctx context.Context, token string) (*ValidationResult, error) {
	ctx, cancel := g.opCtx(ctx)
	defer cancel()

	sess, err := g.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrInvalidSession) {
			return &ValidationResult{Valid: false, Message: "Invalid token"}, nil
		}
		return nil, err
	}

	acct, err := g.accounts.FindByID(ctx, sess.AccountID)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return &ValidationResult{Valid: false, Message: "User not found"}, nil
		}
		return nil, err
	}

	player, err := g.players.Get(ctx, acct.ID)
	if err != nil && !errors.Is(err, model.ErrPlayerStateNotFound) {
		return nil, err
	}

	return &ValidationResult{
		Valid:   true,
		Message: "Token is valid",
		Account: acct,
		Player:  player,
	}, nil
}

// Logout revokes a session token. Unknown tokens are a no-op.
func (g *Service) Logout(ctx context.Context, token string) error {
	ctx, cancel := g.opCtx(ctx)
	defer cancel()

	return g.sessions.Revoke(ctx, token)
}

// GetPlayerData returns the player record for an account. When a token is
// supplied it must resolve to that same account. Without a token the read
// proceeds unauthenticated: player records double as public profiles.
func (g *Service) GetPlayerData(ctx context.Context, accountID model.AccountID, token string) (*model.PlayerState, error) {
	ctx, cancel := g.opCtx(ctx)
	defer cancel()

	if token != "" {
		if err := g.authorize(ctx, accountID, token); err != nil {
			return nil, err
		}
	}

	return g.players.Get(ctx, accountID)
}

// UpdatePlayerData applies a whitelisted field update to the account's
// player record. The token is mandatory and must resolve to the account.
func (g *Service) UpdatePlayerData(ctx context.Context, accountID model.AccountID, token string, updates map[string]any) (*model.PlayerState, error) {
	ctx, cancel := g.opCtx(ctx)
	defer cancel()

	if err := g.authorize(ctx, accountID, token); err != nil {
		return nil, err
	}

	return g.players.ApplyUpdate(ctx, accountID, updates)
}

// Stats reports service counters
func (g *Service) Stats(ctx context.Context) (Stats, error) {
	ctx, cancel := g.opCtx(ctx)
	defer cancel()

	users, err := g.accounts.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Users: users}, nil
}

// authorize checks that the token resolves to exactly the given account.
// Invalid tokens and tokens for other accounts both fail the same way.
func (g *Service) authorize(ctx context.Context, accountID model.AccountID, token string) error {
	sess, err := g.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrInvalidSession) {
			return model.ErrUnauthorized
		}
		return err
	}
	if sess.AccountID != accountID {
		return model.ErrUnauthorized
	}
	return nil
}

func (g *Service) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, g.timeout)
}

// compensationCtx gives rollback work its own deadline. The failure being
// rolled back may be ctx hitting the storage deadline, so the compensating
// deletes cannot run on ctx itself.
func (g *Service) compensationCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), g.timeout)
}
