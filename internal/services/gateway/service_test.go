package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/nextliferp/accountd/internal/dependencies/mocks"
	"github.com/nextliferp/accountd/internal/model"
	"github.com/nextliferp/accountd/internal/services/account"
	"github.com/nextliferp/accountd/internal/services/playerstate"
	"github.com/nextliferp/accountd/internal/services/session"
	"github.com/nextliferp/accountd/internal/storage"
	"github.com/nextliferp/accountd/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = s.newGateway(s.storage)
	s.ctx = context.Background()
}

func (s *ServiceSuite) newGateway(store storage.Storage) *Service {
	accounts := account.New(store, s.clock)
	sessions := session.New(store, s.clock, session.DefaultConfig())
	players := playerstate.New(store, s.clock)
	return New(accounts, sessions, players, DefaultConfig())
}

// Register tests

func (s *ServiceSuite) TestRegisterCreatesAccountSessionAndPlayer() {
	result, err := s.service.Register(s.ctx, "alice", "a@x.com", "pass1")
	s.Require().NoError(err)

	s.NotEmpty(result.Token)
	s.Equal("alice", result.Account.Username)
	s.Equal(1, result.Player.Level)
	s.Equal(1000, result.Player.Money)
	s.Equal("Los Santos", result.Player.City)

	// All three records exist under the same account id
	_, err = s.storage.GetAccount(s.ctx, result.Account.ID)
	s.NoError(err)
	sess, err := s.storage.GetSession(s.ctx, result.Token)
	s.Require().NoError(err)
	s.Equal(result.Account.ID, sess.AccountID)
	_, err = s.storage.GetPlayerState(s.ctx, result.Account.ID)
	s.NoError(err)
}

func (s *ServiceSuite) TestRegisterDuplicateUsername() {
	_, err := s.service.Register(s.ctx, "alice", "a@x.com", "pass1")
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "alice", "b@y.com", "pass2")
	s.ErrorIs(err, model.ErrUsernameTaken)
}

func (s *ServiceSuite) TestRegisterDuplicateEmail() {
	_, err := s.service.Register(s.ctx, "alice", "a@x.com", "pass1")
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "bob", "a@x.com", "pass2")
	s.ErrorIs(err, model.ErrEmailTaken)
}

func (s *ServiceSuite) TestRegisterValidationError() {
	_, err := s.service.Register(s.ctx, "al", "a@x.com", "pass1")

	var ve *model.ValidationError
	s.ErrorAs(err, &ve)
}

func (s *ServiceSuite) TestRegisterRollsBackOnPlayerStateFailure() {
	store := &failingStorage{Storage: s.storage, failSavePlayerState: true}
	gw := s.newGateway(store)

	_, err := gw.Register(s.ctx, "alice", "a@x.com", "pass1")
	s.Require().Error(err)

	// Neither account nor session survive, so the username is free again
	_, err = s.storage.GetAccountByUsername(s.ctx, "alice")
	s.ErrorIs(err, model.ErrAccountNotFound)

	_, err = s.service.Register(s.ctx, "alice", "a@x.com", "pass1")
	s.NoError(err)
}

func (s *ServiceSuite) TestRegisterRollsBackOnSessionFailure() {
	store := &failingStorage{Storage: s.storage, failSaveSession: true}
	gw := s.newGateway(store)

	_, err := gw.Register(s.ctx, "alice", "a@x.com", "pass1")
	s.Require().Error(err)

	_, err = s.storage.GetAccountByUsername(s.ctx, "alice")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *ServiceSuite) TestRegisterRollsBackAfterStorageDeadline() {
	store := &deadlineStorage{Storage: s.storage}
	accounts := account.New(store, s.clock)
	sessions := session.New(store, s.clock, session.DefaultConfig())
	players := playerstate.New(store, s.clock)
	gw := New(accounts, sessions, players, Config{StorageTimeout: 50 * time.Millisecond})

	// The player-state write stalls until the storage deadline fires, so
	// the rollback starts with the operation context already expired
	_, err := gw.Register(s.ctx, "alice", "a@x.com", "pass1")
	s.Require().ErrorIs(err, context.DeadlineExceeded)

	_, err = s.storage.GetAccountByUsername(s.ctx, "alice")
	s.ErrorIs(err, model.ErrAccountNotFound)

	_, err = s.service.Register(s.ctx, "alice", "a@x.com", "pass1")
	s.NoError(err)
}

// Login tests

func (s *ServiceSuite) TestLoginRoundTrip() {
	reg, err := s.service.Register(s.ctx, "alice", "a@x.com", "pass1")
	s.Require().NoError(err)

	login, err := s.service.Login(s.ctx, "a@x.com", "pass1")
	s.Require().NoError(err)

	s.Equal(reg.Account.ID, login.Account.ID)
	s.NotEqual(reg.Token, login.Token) // fresh token per login
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	_, _ = s.service.Register(s.ctx, "alice", "a@x.com", "pass1")

	_, err := s.service.Login(s.ctx, "a@x.com", "wrong")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginDoesNotInvalidateEarlierTokens() {
	reg, _ := s.service.Register(s.ctx, "alice", "a@x.com", "pass1")
	_, _ = s.service.Login(s.ctx, "a@x.com", "pass1")

	result, err := s.service.Validate(s.ctx, reg.Token)
	s.Require().NoError(err)
	s.True(result.Valid)
}

func (s *ServiceSuite) TestLoginTouchesLastLogin() {
	reg, _ := s.service.Register(s.ctx, "alice", "a@x.com", "pass1")
	registered := s.clock.CurrentTime

	s.clock.Advance(2 * time.Hour)
	login, err := s.service.Login(s.ctx, "a@x.com", "pass1")
	s.Require().NoError(err)

	s.Equal(registered.Add(2*time.Hour), login.Player.LastLogin)
	s.Equal(reg.Player.CreatedAt, login.Player.CreatedAt)
}

func (s *ServiceSuite) TestLoginRepairsMissingPlayerState() {
	reg, _ := s.service.Register(s.ctx, "alice", "a@x.com", "pass1")

	// Simulate inconsistency from a prior partial failure
	err := s.storage.DeletePlayerState(s.ctx, reg.Account.ID)
	s.Require().NoError(err)

	login, err := s.service.Login(s.ctx, "a@x.com", "pass1")
	s.Require().NoError(err)
	s.Equal(1, login.Player.Level)

	// The repaired record is persisted, not just synthesized for the response
	state, err := s.storage.GetPlayerState(s.ctx, reg.Account.ID)
	s.Require().NoError(err)
	s.Equal("alice", state.Username)
}

// Validate tests

func (s *ServiceSuite) TestValidateKnownToken() {
	reg, _ := s.service.Register(s.ctx, "alice", "a@x.com", "pass1")

	result, err := s.service.Validate(s.ctx, reg.Token)
	s.Require().NoError(err)

	s.True(result.Valid)
	s.Equal(reg.Account.ID, result.Account.ID)
	s.Equal("alice", result.Account.Username)
	s.NotNil(result.Player)
}

func (s *ServiceSuite) TestValidateUnknownToken() {
	result, err := s.service.Validate(s.ctx, "never-issued")
	s.Require().NoError(err)

	s.False(result.Valid)
	s.Nil(result.Account)
}

func (s *ServiceSuite) TestValidateFailsClosedWhenAccountMissing() {
	reg, _ := s.service.Register(s.ctx, "alice", "a@x.com", "pass1")

	err := s.storage.DeleteAccount(s.ctx, reg.Account.ID)
	s.Require().NoError(err)

	result, err := s.service.Validate(s.ctx, reg.Token)
	s.Require().NoError(err)
	s.False(result.Valid)
}

func (s *ServiceSuite) TestValidateMissingPlayerStateIsNotAnError() {
	reg, _ := s.service.Register(s.ctx, "alice", "a@x.com", "pass1")
	_ = s.storage.DeletePlayerState(s.ctx, reg.Account.ID)

	result, err := s.service.Validate(s.ctx, reg.Token)
	s.Require().NoError(err)
	s.True(result.Valid)
	s.Nil(result.Player)
}

// Logout tests

func (s *ServiceSuite) TestLogoutRevokesToken() {
	reg, _ := s.service.Register(s.ctx, "alice", "a@x.com", "pass1")

	err := s.service.Logout(s.ctx, reg.Token)
	s.Require().NoError(err)

	result, err := s.service.Validate(s.ctx, reg.Token)
	s.Require().NoError(err)
	s.False(result.Valid)
}

// GetPlayerData tests

func (s *ServiceSuite) TestGetPlayerDataWithOwnToken() {
	reg, _ := s.service.Register(s.ctx, "alice", "a@x.com", "pass1")

	player, err := s.service.GetPlayerData(s.ctx, reg.Account.ID, reg.Token)
	s.Require().NoError(err)
	s.Equal("alice", player.Username)
}

func (s *ServiceSuite) TestGetPlayerDataWithoutTokenIsPublic() {
	reg, _ := s.service.Register(s.ctx, "alice", "a@x.com", "pass1")

	player, err := s.service.GetPlayerData(s.ctx, reg.Account.ID, "")
	s.Require().NoError(err)
	s.Equal("alice", player.Username)
}

func (s *ServiceSuite) TestGetPlayerDataWithForeignToken() {
	alice, _ := s.service.Register(s.ctx, "alice", "a@x.com", "pass1")
	bob, _ := s.service.Register(s.ctx, "bob", "b@x.com", "pass2")

	_, err := s.service.GetPlayerData(s.ctx, alice.Account.ID, bob.Token)
	s.ErrorIs(err, model.ErrUnauthorized)
}

func (s *ServiceSuite) TestGetPlayerDataNotFound() {
	_, err := s.service.GetPlayerData(s.ctx, "nonexistent", "")
	s.ErrorIs(err, model.ErrPlayerStateNotFound)
}

// UpdatePlayerData tests

func (s *ServiceSuite) TestUpdatePlayerDataWithOwnToken() {
	reg, _ := s.service.Register(s.ctx, "alice", "a@x.com", "pass1")

	player, err := s.service.UpdatePlayerData(s.ctx, reg.Account.ID, reg.Token, map[string]any{
		"money": 500,
	})
	s.Require().NoError(err)
	s.Equal(500, player.Money)
}

func (s *ServiceSuite) TestUpdatePlayerDataRequiresToken() {
	reg, _ := s.service.Register(s.ctx, "alice", "a@x.com", "pass1")

	_, err := s.service.UpdatePlayerData(s.ctx, reg.Account.ID, "", map[string]any{
		"money": 500,
	})
	s.ErrorIs(err, model.ErrUnauthorized)
}

func (s *ServiceSuite) TestUpdatePlayerDataForeignTokenLeavesStateUnchanged() {
	alice, _ := s.service.Register(s.ctx, "alice", "a@x.com", "pass1")
	bob, _ := s.service.Register(s.ctx, "bob", "b@x.com", "pass2")

	_, err := s.service.UpdatePlayerData(s.ctx, alice.Account.ID, bob.Token, map[string]any{
		"money": 1,
	})
	s.ErrorIs(err, model.ErrUnauthorized)

	state, err := s.storage.GetPlayerState(s.ctx, alice.Account.ID)
	s.Require().NoError(err)
	s.Equal(1000, state.Money)
}

// Stats tests

func (s *ServiceSuite) TestStatsCountsUsers() {
	_, _ = s.service.Register(s.ctx, "alice", "a@x.com", "pass1")
	_, _ = s.service.Register(s.ctx, "bob", "b@x.com", "pass2")

	stats, err := s.service.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, stats.Users)
}

// failingStorage wraps a real storage and injects faults
type failingStorage struct {
	storage.Storage
	failSaveSession     bool
	failSavePlayerState bool
}

var errStorageDown = errors.New("storage down")

func (f *failingStorage) SaveSession(ctx context.Context, session *model.Session) error {
	if f.failSaveSession {
		return errStorageDown
	}
	return f.Storage.SaveSession(ctx, session)
}

func (f *failingStorage) SavePlayerState(ctx context.Context, state *model.PlayerState) error {
	if f.failSavePlayerState {
		return errStorageDown
	}
	return f.Storage.SavePlayerState(ctx, state)
}

// deadlineStorage stalls player-state writes until the context deadline
// and, like a real backend, refuses any call on an expired context
type deadlineStorage struct {
	storage.Storage
}

func (d *deadlineStorage) SavePlayerState(ctx context.Context, state *model.PlayerState) error {
	<-ctx.Done()
	return ctx.Err()
}

func (d *deadlineStorage) DeleteAccount(ctx context.Context, id model.AccountID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.Storage.DeleteAccount(ctx, id)
}

func (d *deadlineStorage) DeleteSession(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.Storage.DeleteSession(ctx, token)
}
