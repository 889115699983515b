package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"zone37/internal/delivery/http/helpers"
	"zone37/internal/domain"
)

// CreateGameRequest is the request body for POST /admin/games. The slug is derived from the
// name when omitted.
type CreateGameRequest struct {
	Name         string               `json:"name"`
	Slug         string               `json:"slug"`
	Description  string               `json:"description"`
	Location     string               `json:"location"`
	Date         *time.Time           `json:"date"`
	PricePeriods []domain.PricePeriod `json:"price_periods"`
}

// Validate implements Validator.
func (c CreateGameRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// UpdateGameRequest is the request body for PATCH /admin/games/{gameID}. Omitted fields are unchanged.
type UpdateGameRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	Date        *time.Time `json:"date"`
}

// Validate implements Validator.
func (u UpdateGameRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if u.toDomain().Empty() {
		errs = append(errs, "at least one field is required")
	}
	return errs
}

func (u UpdateGameRequest) toDomain() domain.GameUpdate {
	return domain.GameUpdate{Name: u.Name, Description: u.Description, Location: u.Location, Date: u.Date}
}

// GameSuccessResponse is the success response envelope for single-game endpoints.
type GameSuccessResponse struct {
	Data  *domain.Game      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListGamesResponse is the data payload of GET /games.
type ListGamesResponse struct {
	Games      []*domain.Game         `json:"games"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListGamesSuccessResponse is the success response envelope for GET /games (200).
type ListGamesSuccessResponse struct {
	Data  ListGamesResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AvailabilitySuccessResponse is the success response envelope for GET /games/{gameID}/availability (200).
type AvailabilitySuccessResponse struct {
	Data  *domain.Availability `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type GameController struct {
	Logger  *slog.Logger
	Service domain.GameService
}

func NewGameController(logger *slog.Logger, svc domain.GameService) *GameController {
	return &GameController{
		Logger:  logger,
		Service: svc,
	}
}

// ListGames godoc
// @Summary List games
// @Description Paginated list of games with their price tiers and current price.
// @Tags games
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListGamesSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /games [get]
func (c *GameController) ListGames(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	games, total, err := c.Service.ListGames(r.Context(), params)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "game not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListGamesResponse{
		Games:      games,
		Pagination: helpers.NewPaginationMeta(params, total),
	})
}

// GetGame godoc
// @Summary Get a game
// @Description Returns a game by ID or slug, with its price tiers and the price in effect now.
// @Tags games
// @Produce json
// @Param game path string true "Game ID (UUID) or slug"
// @Success 200 {object} controllers.GameSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /games/{game} [get]
func (c *GameController) GetGame(w http.ResponseWriter, r *http.Request) {
	idOrSlug := r.PathValue("game")
	if idOrSlug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing game")
		return
	}
	game, err := c.Service.GetGame(r.Context(), idOrSlug)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "game not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, game)
}

// GetAvailability godoc
// @Summary Game availability
// @Description Open player slots per faction and in total.
// @Tags games
// @Produce json
// @Param gameID path string true "Game ID (UUID)"
// @Success 200 {object} controllers.AvailabilitySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /games/{gameID}/availability [get]
func (c *GameController) GetAvailability(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathUUID(w, r, "gameID")
	if !ok {
		return
	}
	availability, err := c.Service.Availability(r.Context(), gameID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "game not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, availability)
}

// CreateGame godoc
// @Summary Create a game
// @Description Creates a game with an optional initial pricing schedule. An invalid schedule is rejected with 422.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param game body CreateGameRequest true "Game data"
// @Success 201 {object} controllers.GameSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (slug taken)"
// @Failure 422 {object} helpers.APIResponse "error.code: invalid_schedule"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/games [post]
func (c *GameController) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	game := domain.NewGame(req.Name, req.Slug, req.Description, req.Location, req.Date, req.PricePeriods, time.Time{}, time.Time{})
	if err := c.Service.CreateGame(r.Context(), game); err != nil {
		writeServiceError(w, r, c.Logger, err, "game not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, game)
}

// UpdateGame godoc
// @Summary Update a game
// @Description Updates name, description, location or date. Pricing is saved through the pricing endpoint.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gameID path string true "Game ID (UUID)"
// @Param body body UpdateGameRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.GameSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/games/{gameID} [patch]
func (c *GameController) UpdateGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathUUID(w, r, "gameID")
	if !ok {
		return
	}
	var req UpdateGameRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	game, err := c.Service.UpdateGame(r.Context(), gameID, req.toDomain())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "game not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, game)
}

// DeleteGame godoc
// @Summary Delete a game
// @Description Deletes the game with its price tiers and factions.
// @Tags admin
// @Security BearerAuth
// @Param gameID path string true "Game ID (UUID)"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/games/{gameID} [delete]
func (c *GameController) DeleteGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathUUID(w, r, "gameID")
	if !ok {
		return
	}
	if err := c.Service.DeleteGame(r.Context(), gameID); err != nil {
		writeServiceError(w, r, c.Logger, err, "game not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
