package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"zone37/internal/delivery/http/helpers"
	"zone37/internal/domain"
)

// CreateFactionRequest is the request body for POST /admin/games/{gameID}/factions.
type CreateFactionRequest struct {
	Name       string `json:"name"`
	Capacity   int    `json:"capacity"`
	Registered int    `json:"registered"`
}

// Validate implements Validator.
func (c CreateFactionRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.Capacity < 0 {
		errs = append(errs, "capacity must be zero or greater")
	}
	if c.Registered < 0 {
		errs = append(errs, "registered must be zero or greater")
	}
	return errs
}

// UpdateFactionRequest is the request body for PATCH /admin/games/{gameID}/factions/{factionID}.
type UpdateFactionRequest struct {
	Name       *string `json:"name"`
	Capacity   *int    `json:"capacity"`
	Registered *int    `json:"registered"`
}

// Validate implements Validator.
func (u UpdateFactionRequest) Validate() []string {
	if u.Name == nil && u.Capacity == nil && u.Registered == nil {
		return []string{"at least one field is required"}
	}
	return nil
}

// FactionSuccessResponse is the success envelope for single-faction endpoints.
type FactionSuccessResponse struct {
	Data  *domain.Faction   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListFactionsSuccessResponse is the success envelope for GET /games/{gameID}/factions (200).
type ListFactionsSuccessResponse struct {
	Data  []*domain.Faction `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type FactionController struct {
	Logger  *slog.Logger
	Service domain.FactionService
}

func NewFactionController(logger *slog.Logger, svc domain.FactionService) *FactionController {
	return &FactionController{
		Logger:  logger,
		Service: svc,
	}
}

// ListFactions godoc
// @Summary List factions
// @Tags games
// @Produce json
// @Param gameID path string true "Game ID (UUID)"
// @Success 200 {object} controllers.ListFactionsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /games/{gameID}/factions [get]
func (c *FactionController) ListFactions(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathUUID(w, r, "gameID")
	if !ok {
		return
	}
	factions, err := c.Service.ListFactions(r.Context(), gameID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "game not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, factions)
}

// CreateFaction godoc
// @Summary Create a faction
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gameID path string true "Game ID (UUID)"
// @Param body body CreateFactionRequest true "Faction data"
// @Success 201 {object} controllers.FactionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/games/{gameID}/factions [post]
func (c *FactionController) CreateFaction(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathUUID(w, r, "gameID")
	if !ok {
		return
	}
	var req CreateFactionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	faction := domain.NewFaction(gameID, req.Name, req.Capacity, req.Registered, time.Time{}, time.Time{})
	if err := c.Service.CreateFaction(r.Context(), faction); err != nil {
		writeServiceError(w, r, c.Logger, err, "game not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, faction)
}

// UpdateFaction godoc
// @Summary Update a faction
// @Description Updates name, capacity or registered player count.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gameID path string true "Game ID (UUID)"
// @Param factionID path string true "Faction ID (UUID)"
// @Param body body UpdateFactionRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.FactionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/games/{gameID}/factions/{factionID} [patch]
func (c *FactionController) UpdateFaction(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathUUID(w, r, "gameID")
	if !ok {
		return
	}
	factionID, ok := pathUUID(w, r, "factionID")
	if !ok {
		return
	}
	var req UpdateFactionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	upd := domain.FactionUpdate{Name: req.Name, Capacity: req.Capacity, Registered: req.Registered}
	faction, err := c.Service.UpdateFaction(r.Context(), gameID, factionID, upd)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "faction not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, faction)
}

// DeleteFaction godoc
// @Summary Delete a faction
// @Tags admin
// @Security BearerAuth
// @Param gameID path string true "Game ID (UUID)"
// @Param factionID path string true "Faction ID (UUID)"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/games/{gameID}/factions/{factionID} [delete]
func (c *FactionController) DeleteFaction(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathUUID(w, r, "gameID")
	if !ok {
		return
	}
	factionID, ok := pathUUID(w, r, "factionID")
	if !ok {
		return
	}
	if err := c.Service.DeleteFaction(r.Context(), gameID, factionID); err != nil {
		writeServiceError(w, r, c.Logger, err, "faction not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
