package model

import "time"

// Default values for a freshly created player record
const (
	DefaultLevel = 1
	DefaultMoney = 1000
	DefaultCity  = "Los Santos"
)

// PlayerState is the mutable game-progress record, exactly one per account
type PlayerState struct {
	AccountID AccountID
	Username  string // denormalized copy of the account username
	Level     int
	Money     int
	City      string
	CreatedAt time.Time
	LastLogin time.Time
}

// NewPlayerState creates a player record with starting values
func NewPlayerState(accountID AccountID, username string, now time.Time) *PlayerState {
	return &PlayerState{
		AccountID: accountID,
		Username:  username,
		Level:     DefaultLevel,
		Money:     DefaultMoney,
		City:      DefaultCity,
		CreatedAt: now,
		LastLogin: now,
	}
}
