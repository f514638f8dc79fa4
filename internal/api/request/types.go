package request

// RegisterRequest is the request body for creating an account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ValidateRequest is the request body for validating a token
type ValidateRequest struct {
	AuthToken string `json:"auth_token"`
}

// LogoutRequest is the request body for revoking a token
type LogoutRequest struct {
	AuthToken string `json:"auth_token"`
}

// PlayerDataRequest is the request body for fetching player data.
// AuthToken is optional; when present it must belong to UserID.
type PlayerDataRequest struct {
	UserID    string `json:"user_id"`
	AuthToken string `json:"auth_token,omitempty"`
}

// UpdatePlayerRequest is the request body for updating player data
type UpdatePlayerRequest struct {
	UserID    string         `json:"user_id"`
	AuthToken string         `json:"auth_token"`
	Updates   map[string]any `json:"updates"`
}
