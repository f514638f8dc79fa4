package memory

import (
	"context"
	"sync"

	"github.com/nextliferp/accountd/internal/model"
	"github.com/nextliferp/accountd/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// All tables live behind a single RWMutex, which also makes the
// check-uniqueness + insert in CreateAccount atomic.
type Storage struct {
	mu sync.RWMutex

	accounts      map[model.AccountID]*model.Account
	usernameIndex map[string]model.AccountID
	emailIndex    map[string]model.AccountID
	sessions      map[string]*model.Session
	playerStates  map[model.AccountID]*model.PlayerState
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts:      make(map[model.AccountID]*model.Account),
		usernameIndex: make(map[string]model.AccountID),
		emailIndex:    make(map[string]model.AccountID),
		sessions:      make(map[string]*model.Session),
		playerStates:  make(map[model.AccountID]*model.PlayerState),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) CreateAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.usernameIndex[account.Username]; ok {
		return model.ErrUsernameTaken
	}
	if _, ok := s.emailIndex[account.Email]; ok {
		return model.ErrEmailTaken
	}

	cp := *account
	s.accounts[account.ID] = &cp
	s.usernameIndex[account.Username] = account.ID
	s.emailIndex[account.Email] = account.ID
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	cp := *account
	return &cp, nil
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	cp := *account
	return &cp, nil
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	cp := *account
	return &cp, nil
}

func (s *Storage) DeleteAccount(ctx context.Context, id model.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil
	}
	delete(s.usernameIndex, account.Username)
	delete(s.emailIndex, account.Email)
	delete(s.accounts, id)
	return nil
}

func (s *Storage) CountAccounts(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts), nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *session
	s.sessions[session.Token] = &cp
	return nil
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, model.ErrInvalidSession
	}
	cp := *session
	return &cp, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Player state operations

func (s *Storage) SavePlayerState(ctx context.Context, state *model.PlayerState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *state
	s.playerStates[state.AccountID] = &cp
	return nil
}

func (s *Storage) GetPlayerState(ctx context.Context, accountID model.AccountID) (*model.PlayerState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.playerStates[accountID]
	if !ok {
		return nil, model.ErrPlayerStateNotFound
	}
	cp := *state
	return &cp, nil
}

func (s *Storage) DeletePlayerState(ctx context.Context, accountID model.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.playerStates, accountID)
	return nil
}
