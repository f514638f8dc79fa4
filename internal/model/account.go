package model

import "time"

// AccountID uniquely identifies an account across the system
type AccountID string

// Account represents a registered identity with credentials
type Account struct {
	ID           AccountID
	Username     string // unique, case-sensitive (immutable)
	Email        string // unique login address
	PasswordHash string // bcrypt hash, never cleartext
	CreatedAt    time.Time
}
