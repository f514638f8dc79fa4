package storage

import (
	"context"

	"github.com/nextliferp/accountd/internal/model"
)

// Storage defines the interface for data persistence.
//
// Implementations must make CreateAccount atomic: the uniqueness checks on
// username and email and the insert happen as a single unit, so two
// concurrent registrations with the same username cannot both succeed.
// Lookups are exhaustive regardless of how many records exist.
type Storage interface {
	// Account operations
	CreateAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)
	DeleteAccount(ctx context.Context, id model.AccountID) error
	CountAccounts(ctx context.Context) (int, error)

	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error

	// Player state operations
	SavePlayerState(ctx context.Context, state *model.PlayerState) error
	GetPlayerState(ctx context.Context, accountID model.AccountID) (*model.PlayerState, error)
	DeletePlayerState(ctx context.Context, accountID model.AccountID) error
}
