package response

import (
	"time"

	"github.com/nextliferp/accountd/internal/model"
	"github.com/nextliferp/accountd/internal/services/gateway"
)

// PlayerData represents a player record in API responses
type PlayerData struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Level     int       `json:"level"`
	Money     int       `json:"money"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
	LastLogin time.Time `json:"last_login"`
}

// PlayerDataFromModel converts a model.PlayerState to a response PlayerData
func PlayerDataFromModel(p *model.PlayerState) PlayerData {
	return PlayerData{
		UserID:    string(p.AccountID),
		Username:  p.Username,
		Level:     p.Level,
		Money:     p.Money,
		City:      p.City,
		CreatedAt: p.CreatedAt,
		LastLogin: p.LastLogin,
	}
}

// AuthResponse is the response for register and login
type AuthResponse struct {
	Success    bool       `json:"success"`
	Message    string     `json:"message"`
	AuthToken  string     `json:"auth_token"`
	UserID     string     `json:"user_id"`
	Username   string     `json:"username"`
	PlayerData PlayerData `json:"player_data"`
}

// AuthResponseFromResult creates an AuthResponse from a gateway result
func AuthResponseFromResult(r *gateway.AuthResult, message string) AuthResponse {
	return AuthResponse{
		Success:    true,
		Message:    message,
		AuthToken:  r.Token,
		UserID:     string(r.Account.ID),
		Username:   r.Account.Username,
		PlayerData: PlayerDataFromModel(r.Player),
	}
}

// ValidateResponse is the response for token validation.
// PlayerData is an empty object when the account has no player record.
type ValidateResponse struct {
	Success    bool   `json:"success"`
	Valid      bool   `json:"valid"`
	Message    string `json:"message"`
	UserID     string `json:"user_id,omitempty"`
	Username   string `json:"username,omitempty"`
	PlayerData any    `json:"player_data,omitempty"`
}

// ValidateResponseFromResult creates a ValidateResponse from a gateway result
func ValidateResponseFromResult(r *gateway.ValidationResult) ValidateResponse {
	resp := ValidateResponse{
		Success: true,
		Valid:   r.Valid,
		Message: r.Message,
	}
	if !r.Valid {
		return resp
	}

	resp.UserID = string(r.Account.ID)
	resp.Username = r.Account.Username
	if r.Player != nil {
		resp.PlayerData = PlayerDataFromModel(r.Player)
	} else {
		resp.PlayerData = struct{}{}
	}
	return resp
}

// PlayerDataResponse is the response for fetching player data
type PlayerDataResponse struct {
	Success    bool       `json:"success"`
	PlayerData PlayerData `json:"player_data"`
}

// UpdateResponse is the response for updating player data
type UpdateResponse struct {
	Success    bool       `json:"success"`
	Message    string     `json:"message"`
	PlayerData PlayerData `json:"player_data"`
}

// MessageResponse is a bare success-plus-message response
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthResponse is the response for the health endpoint
type HealthResponse struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	UsersCount int    `json:"users_count"`
	Timestamp  string `json:"timestamp"`
}
