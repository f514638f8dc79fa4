package account

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/nextliferp/accountd/internal/dependencies/clock"
	"github.com/nextliferp/accountd/internal/model"
	"github.com/nextliferp/accountd/internal/storage"
)

// Validation limits for new accounts
const (
	MinUsernameLength = 3
	MinPasswordLength = 4
)

// Service is the credential store: it owns account records, enforces
// username/email uniqueness and verifies passwords
type Service struct {
	storage storage.Storage
	clock   clock.Clock
}

// New creates a new account service
func New(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
	}
}

// Create validates the input, hashes the password and persists a new
// account. Uniqueness of username and email is enforced atomically by
// the storage layer.
func (s *Service) Create(ctx context.Context, username, email, password string) (*model.Account, error) {
	if len(username) < MinUsernameLength {
		return nil, model.NewValidationError("Username must be at least 3 characters")
	}
	if len(password) < MinPasswordLength {
		return nil, model.NewValidationError("Password must be at least 4 characters")
	}
	if !strings.Contains(email, "@") {
		return nil, model.NewValidationError("Invalid email format")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		ID:           newAccountID(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// VerifyPassword authenticates an account by email and password.
// Unknown email and wrong password both return ErrInvalidCredentials so
// the caller cannot tell which one failed.
func (s *Service) VerifyPassword(ctx context.Context, email, password string) (*model.Account, error) {
	account, err := s.storage.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return account, nil
}

// FindByID retrieves an account by its id
func (s *Service) FindByID(ctx context.Context, id model.AccountID) (*model.Account, error) {
	return s.storage.GetAccount(ctx, id)
}

// Delete removes an account. Used by the gateway to roll back a partially
// completed registration.
func (s *Service) Delete(ctx context.Context, id model.AccountID) error {
	return s.storage.DeleteAccount(ctx, id)
}

// Count returns the number of registered accounts
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.storage.CountAccounts(ctx)
}

// newAccountID generates an opaque account id (8 random bytes, hex)
func newAccountID() model.AccountID {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return model.AccountID(hex.EncodeToString(b))
}
