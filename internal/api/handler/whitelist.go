package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/restadmin/internal/api/response"
	"github.com/mcoot/restadmin/internal/services/whitelist"
)

// IDOrNameVar is the route variable holding a UUID or player name
const IDOrNameVar = "id_or_name"

// WhitelistHandler handles whitelist endpoints
type WhitelistHandler struct {
	whitelistService *whitelist.Service
}

// NewWhitelistHandler creates a new whitelist handler
func NewWhitelistHandler(whitelistService *whitelist.Service) *WhitelistHandler {
	return &WhitelistHandler{
		whitelistService: whitelistService,
	}
}

// List handles GET /whitelist
func (h *WhitelistHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.whitelistService.Names(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}

	response.JSON(w, http.StatusOK, names)
}

// Check handles GET /whitelist/{id_or_name}
func (h *WhitelistHandler) Check(w http.ResponseWriter, r *http.Request) {
	idOrName := mux.Vars(r)[IDOrNameVar]

	_, ok, err := h.whitelistService.IsWhitelisted(r.Context(), idOrName)
	if err != nil {
		writeResolveError(w, err, idOrName, http.StatusBadRequest)
		return
	}

	response.JSON(w, http.StatusOK, ok)
}

// Add handles POST /whitelist/{id_or_name}
func (h *WhitelistHandler) Add(w http.ResponseWriter, r *http.Request) {
	idOrName := mux.Vars(r)[IDOrNameVar]

	profile, err := h.whitelistService.Add(r.Context(), idOrName)
	if err != nil {
		writeResolveError(w, err, idOrName, http.StatusBadRequest)
		return
	}

	response.JSON(w, http.StatusOK, response.ProfileFromModel(profile))
}

// Remove handles DELETE /whitelist/{id_or_name}
// Unlike Check and Add, an unresolvable identifier is a 500 here.
func (h *WhitelistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	idOrName := mux.Vars(r)[IDOrNameVar]

	profile, err := h.whitelistService.Remove(r.Context(), idOrName)
	if err != nil {
		writeResolveError(w, err, idOrName, http.StatusInternalServerError)
		return
	}

	response.JSON(w, http.StatusOK, response.ProfileFromModel(profile))
}
