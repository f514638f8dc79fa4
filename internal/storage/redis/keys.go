package redis

import (
	"fmt"

	"github.com/nextliferp/accountd/internal/model"
)

// Key prefix for all account-service data
const keyPrefix = "rpauth"

// Key generation functions for each entity type

// accountKey returns the Redis key for an Account
func accountKey(id model.AccountID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> account_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// emailIndexKey returns the Redis key for the email -> account_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// sessionKey returns the Redis key for a Session
func sessionKey(token string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, token)
}

// playerStateKey returns the Redis key for a PlayerState
func playerStateKey(accountID model.AccountID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, accountID)
}

// accountCountKey returns the Redis key for the account counter
func accountCountKey() string {
	return fmt.Sprintf("%s:count:accounts", keyPrefix)
}
