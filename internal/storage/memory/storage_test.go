package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/nextliferp/accountd/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) account(id, username, email string) *model.Account {
	return &model.Account{
		ID:           model.AccountID(id),
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Account tests

func (s *StorageSuite) TestCreateAndGetAccount() {
	err := s.storage.CreateAccount(s.ctx, s.account("acct-1", "alice", "a@x.com"))
	s.Require().NoError(err)

	acct, err := s.storage.GetAccount(s.ctx, "acct-1")
	s.Require().NoError(err)
	s.Equal("alice", acct.Username)
	s.Equal("a@x.com", acct.Email)
}

func (s *StorageSuite) TestGetAccountNotFound() {
	_, err := s.storage.GetAccount(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestCreateAccountRejectsDuplicateUsername() {
	err := s.storage.CreateAccount(s.ctx, s.account("acct-1", "alice", "a@x.com"))
	s.Require().NoError(err)

	err = s.storage.CreateAccount(s.ctx, s.account("acct-2", "alice", "b@y.com"))
	s.ErrorIs(err, model.ErrUsernameTaken)
}

func (s *StorageSuite) TestCreateAccountRejectsDuplicateEmail() {
	err := s.storage.CreateAccount(s.ctx, s.account("acct-1", "alice", "a@x.com"))
	s.Require().NoError(err)

	err = s.storage.CreateAccount(s.ctx, s.account("acct-2", "bob", "a@x.com"))
	s.ErrorIs(err, model.ErrEmailTaken)
}

func (s *StorageSuite) TestFailedCreateLeavesNoIndexEntries() {
	err := s.storage.CreateAccount(s.ctx, s.account("acct-1", "alice", "a@x.com"))
	s.Require().NoError(err)

	// Duplicate username must not reserve the new email
	err = s.storage.CreateAccount(s.ctx, s.account("acct-2", "alice", "b@y.com"))
	s.Require().ErrorIs(err, model.ErrUsernameTaken)

	err = s.storage.CreateAccount(s.ctx, s.account("acct-3", "bob", "b@y.com"))
	s.NoError(err)
}

func (s *StorageSuite) TestGetAccountByEmail() {
	_ = s.storage.CreateAccount(s.ctx, s.account("acct-1", "alice", "a@x.com"))

	acct, err := s.storage.GetAccountByEmail(s.ctx, "a@x.com")
	s.Require().NoError(err)
	s.Equal(model.AccountID("acct-1"), acct.ID)

	_, err = s.storage.GetAccountByEmail(s.ctx, "nobody@x.com")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestGetAccountByUsername() {
	_ = s.storage.CreateAccount(s.ctx, s.account("acct-1", "alice", "a@x.com"))

	acct, err := s.storage.GetAccountByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.AccountID("acct-1"), acct.ID)

	_, err = s.storage.GetAccountByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestDeleteAccountFreesIndexes() {
	_ = s.storage.CreateAccount(s.ctx, s.account("acct-1", "alice", "a@x.com"))

	err := s.storage.DeleteAccount(s.ctx, "acct-1")
	s.Require().NoError(err)

	_, err = s.storage.GetAccount(s.ctx, "acct-1")
	s.ErrorIs(err, model.ErrAccountNotFound)

	err = s.storage.CreateAccount(s.ctx, s.account("acct-2", "alice", "a@x.com"))
	s.NoError(err)
}

func (s *StorageSuite) TestDeleteAccountUnknownIsNoop() {
	err := s.storage.DeleteAccount(s.ctx, "nonexistent")
	s.NoError(err)
}

func (s *StorageSuite) TestCountAccounts() {
	count, err := s.storage.CountAccounts(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, count)

	_ = s.storage.CreateAccount(s.ctx, s.account("acct-1", "alice", "a@x.com"))
	_ = s.storage.CreateAccount(s.ctx, s.account("acct-2", "bob", "b@x.com"))

	count, err = s.storage.CountAccounts(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *StorageSuite) TestConcurrentCreateAccountSameUsername() {
	const workers = 16

	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			acct := s.account(string(rune('a'+n)), "alice", "a@x.com")
			results <- s.storage.CreateAccount(s.ctx, acct)
		}(i)
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		}
	}
	s.Equal(1, succeeded)
}

func (s *StorageSuite) TestReturnedAccountIsACopy() {
	_ = s.storage.CreateAccount(s.ctx, s.account("acct-1", "alice", "a@x.com"))

	acct, _ := s.storage.GetAccount(s.ctx, "acct-1")
	acct.Username = "mallory"

	stored, _ := s.storage.GetAccount(s.ctx, "acct-1")
	s.Equal("alice", stored.Username)
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	sess := &model.Session{
		Token:     "tok-1",
		AccountID: "acct-1",
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	err := s.storage.SaveSession(s.ctx, sess)
	s.Require().NoError(err)

	got, err := s.storage.GetSession(s.ctx, "tok-1")
	s.Require().NoError(err)
	s.Equal(model.AccountID("acct-1"), got.AccountID)
}

func (s *StorageSuite) TestGetSessionUnknownToken() {
	_, err := s.storage.GetSession(s.ctx, "never-issued")
	s.ErrorIs(err, model.ErrInvalidSession)
}

func (s *StorageSuite) TestDeleteSession() {
	_ = s.storage.SaveSession(s.ctx, &model.Session{Token: "tok-1", AccountID: "acct-1"})

	err := s.storage.DeleteSession(s.ctx, "tok-1")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "tok-1")
	s.ErrorIs(err, model.ErrInvalidSession)
}

// Player state tests

func (s *StorageSuite) TestSaveAndGetPlayerState() {
	state := model.NewPlayerState("acct-1", "alice", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	err := s.storage.SavePlayerState(s.ctx, state)
	s.Require().NoError(err)

	got, err := s.storage.GetPlayerState(s.ctx, "acct-1")
	s.Require().NoError(err)
	s.Equal("alice", got.Username)
	s.Equal(model.DefaultCity, got.City)
}

func (s *StorageSuite) TestGetPlayerStateNotFound() {
	_, err := s.storage.GetPlayerState(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerStateNotFound)
}

func (s *StorageSuite) TestSavePlayerStateOverwrites() {
	state := model.NewPlayerState("acct-1", "alice", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	_ = s.storage.SavePlayerState(s.ctx, state)

	state.Money = 5000
	_ = s.storage.SavePlayerState(s.ctx, state)

	got, err := s.storage.GetPlayerState(s.ctx, "acct-1")
	s.Require().NoError(err)
	s.Equal(5000, got.Money)
}

func (s *StorageSuite) TestDeletePlayerState() {
	state := model.NewPlayerState("acct-1", "alice", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	_ = s.storage.SavePlayerState(s.ctx, state)

	err := s.storage.DeletePlayerState(s.ctx, "acct-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayerState(s.ctx, "acct-1")
	s.ErrorIs(err, model.ErrPlayerStateNotFound)
}
