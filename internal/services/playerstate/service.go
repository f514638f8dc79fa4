package playerstate

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/nextliferp/accountd/internal/dependencies/clock"
	"github.com/nextliferp/accountd/internal/model"
	"github.com/nextliferp/accountd/internal/storage"
)

// updateWhitelist is the fixed set of fields callers may change through
// ApplyUpdate. Anything else (credential fields in particular) is
// silently ignored.
var updateWhitelist = map[string]struct{}{
	"level":      {},
	"money":      {},
	"city":       {},
	"last_login": {},
}

// Service owns the per-account game state records
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	// mu serializes read-modify-write cycles so a whole update call is
	// atomic: two concurrent multi-field updates cannot interleave
	mu sync.Mutex
}

// New creates a new player state service
func New(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
	}
}

// CreateDefault initializes and persists a player record with starting
// values for a new account
func (s *Service) CreateDefault(ctx context.Context, accountID model.AccountID, username string) (*model.PlayerState, error) {
	state := model.NewPlayerState(accountID, username, s.clock.Now())
	if err := s.storage.SavePlayerState(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Get retrieves the player record for an account
func (s *Service) Get(ctx context.Context, accountID model.AccountID) (*model.PlayerState, error) {
	return s.storage.GetPlayerState(ctx, accountID)
}

// TouchLogin sets last_login to now and returns the updated record.
// Returns ErrPlayerStateNotFound if no record exists; whether that is
// treated as a no-op or repaired is the caller's policy.
func (s *Service) TouchLogin(ctx context.Context, accountID model.AccountID) (*model.PlayerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.storage.GetPlayerState(ctx, accountID)
	if err != nil {
		return nil, err
	}

	state.LastLogin = s.clock.Now()
	if err := s.storage.SavePlayerState(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// ApplyUpdate applies whitelisted fields from updates to the account's
// player record and returns the result. Non-whitelisted keys are ignored;
// a whitelisted key with a value of the wrong type is a validation error.
func (s *Service) ApplyUpdate(ctx context.Context, accountID model.AccountID, updates map[string]any) (*model.PlayerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.storage.GetPlayerState(ctx, accountID)
	if err != nil {
		return nil, err
	}

	for key, value := range updates {
		if _, ok := updateWhitelist[key]; !ok {
			continue
		}
		if err := applyField(state, key, value); err != nil {
			return nil, err
		}
	}

	if err := s.storage.SavePlayerState(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Delete removes the player record for an account
func (s *Service) Delete(ctx context.Context, accountID model.AccountID) error {
	return s.storage.DeletePlayerState(ctx, accountID)
}

func applyField(state *model.PlayerState, key string, value any) error {
	switch key {
	case "level":
		n, ok := intValue(value)
		if !ok {
			return model.NewValidationError("level must be an integer")
		}
		state.Level = n
	case "money":
		n, ok := intValue(value)
		if !ok {
			return model.NewValidationError("money must be an integer")
		}
		state.Money = n
	case "city":
		str, ok := value.(string)
		if !ok {
			return model.NewValidationError("city must be a string")
		}
		state.City = str
	case "last_login":
		t, err := timeValue(value)
		if err != nil {
			return model.NewValidationError("last_login must be an RFC3339 timestamp")
		}
		state.LastLogin = t
	}
	return nil
}

// intValue accepts the numeric forms a JSON decode can produce
func intValue(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

func timeValue(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		return time.Parse(time.RFC3339, v)
	default:
		return time.Time{}, fmt.Errorf("unsupported time value %T", value)
	}
}
