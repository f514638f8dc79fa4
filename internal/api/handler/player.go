package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nextliferp/accountd/internal/api/apierr"
	"github.com/nextliferp/accountd/internal/api/request"
	"github.com/nextliferp/accountd/internal/api/response"
	"github.com/nextliferp/accountd/internal/model"
	"github.com/nextliferp/accountd/internal/services/gateway"
)

// PlayerHandler handles player data endpoints
type PlayerHandler struct {
	gateway *gateway.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(gateway *gateway.Service) *PlayerHandler {
	return &PlayerHandler{
		gateway: gateway,
	}
}

// GetPlayerData handles POST /player_data.
// The token is optional: untokened reads are public profile lookups.
func (h *PlayerHandler) GetPlayerData(w http.ResponseWriter, r *http.Request) {
	var req request.PlayerDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("No data received"))
		return
	}

	if req.UserID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("user_id is required"))
		return
	}

	player, err := h.gateway.GetPlayerData(r.Context(),
		model.AccountID(strings.TrimSpace(req.UserID)),
		strings.TrimSpace(req.AuthToken),
	)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerDataResponse{
		Success:    true,
		PlayerData: response.PlayerDataFromModel(player),
	})
}

// UpdatePlayerData handles POST /update_player. The token is mandatory
// and must resolve to the account being updated.
func (h *PlayerHandler) UpdatePlayerData(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("No data received"))
		return
	}

	if req.UserID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("user_id is required"))
		return
	}

	player, err := h.gateway.UpdatePlayerData(r.Context(),
		model.AccountID(strings.TrimSpace(req.UserID)),
		strings.TrimSpace(req.AuthToken),
		req.Updates,
	)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UpdateResponse{
		Success:    true,
		Message:    "Player data updated",
		PlayerData: response.PlayerDataFromModel(player),
	})
}
