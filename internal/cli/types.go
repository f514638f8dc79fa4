package cli

// PlayerData is a player record as returned by the API
type PlayerData struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Level     int    `json:"level"`
	Money     int    `json:"money"`
	City      string `json:"city"`
	CreatedAt string `json:"created_at"`
	LastLogin string `json:"last_login"`
}

// AuthResult is the response from register and login
type AuthResult struct {
	Success    bool       `json:"success"`
	Message    string     `json:"message"`
	AuthToken  string     `json:"auth_token"`
	UserID     string     `json:"user_id"`
	Username   string     `json:"username"`
	PlayerData PlayerData `json:"player_data"`
}

// ValidateResult is the response from token validation
type ValidateResult struct {
	Success    bool       `json:"success"`
	Valid      bool       `json:"valid"`
	Message    string     `json:"message"`
	UserID     string     `json:"user_id"`
	Username   string     `json:"username"`
	PlayerData PlayerData `json:"player_data"`
}

// PlayerDataResult is the response from fetching player data
type PlayerDataResult struct {
	Success    bool       `json:"success"`
	PlayerData PlayerData `json:"player_data"`
}

// UpdateResult is the response from updating player data
type UpdateResult struct {
	Success    bool       `json:"success"`
	Message    string     `json:"message"`
	PlayerData PlayerData `json:"player_data"`
}

// MessageResult is a bare success-plus-message response
type MessageResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthResult is the response from the health endpoint
type HealthResult struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	UsersCount int    `json:"users_count"`
	Timestamp  string `json:"timestamp"`
}
