package handler

import (
	"net/http"

	"github.com/mcoot/restadmin/internal/api/response"
	"github.com/mcoot/restadmin/internal/services/whitelist"
)

// PlayerHandler handles connected-player endpoints
type PlayerHandler struct {
	whitelistService *whitelist.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(whitelistService *whitelist.Service) *PlayerHandler {
	return &PlayerHandler{
		whitelistService: whitelistService,
	}
}

// List handles GET /players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.whitelistService.ConnectedPlayers(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProfilesFromModel(players))
}
