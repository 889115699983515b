package controllers

import (
	"log/slog"
	"net/http"

	"zone37/internal/delivery/http/helpers"
	"zone37/internal/delivery/http/middleware"
	"zone37/internal/domain"
)

// ScheduleRequest carries the schedule currently shown in the admin form.
type ScheduleRequest struct {
	Periods []domain.PricePeriod `json:"periods"`
}

// IndexedScheduleRequest is the body of the insert and remove editor endpoints.
type IndexedScheduleRequest struct {
	Periods []domain.PricePeriod `json:"periods"`
	Index   *int                 `json:"index"`
}

// Validate implements Validator.
func (i IndexedScheduleRequest) Validate() []string {
	if i.Index == nil {
		return []string{"index is required"}
	}
	return nil
}

// SetFieldRequest is the body of POST /admin/pricing/field. Value is the raw form input.
type SetFieldRequest struct {
	Periods []domain.PricePeriod `json:"periods"`
	Index   *int                 `json:"index"`
	Field   domain.PriceField    `json:"field"`
	Value   string               `json:"value"`
}

// Validate implements Validator.
func (s SetFieldRequest) Validate() []string {
	var errs []string
	if s.Index == nil {
		errs = append(errs, "index is required")
	}
	if !s.Field.Valid() {
		errs = append(errs, "field must be one of starts, ends, price")
	}
	return errs
}

// ScheduleEditSuccessResponse is the success envelope of the editor endpoints.
type ScheduleEditSuccessResponse struct {
	Data  domain.ScheduleEdit `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ValidationSuccessResponse is the success envelope of POST /admin/pricing/validate.
type ValidationSuccessResponse struct {
	Data  domain.ValidationResult `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

type PricingController struct {
	Logger *slog.Logger
	Editor domain.PricingEditor
	Games  domain.GameService
}

func NewPricingController(logger *slog.Logger, editor domain.PricingEditor, games domain.GameService) *PricingController {
	return &PricingController{
		Logger: logger,
		Editor: editor,
		Games:  games,
	}
}

// SavePricing godoc
// @Summary Save a game's pricing schedule
// @Description Replaces the game's price tiers. Schedules failing validation are not stored and come back as 422 with the failing reason and 1-based period_index in error.details.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gameID path string true "Game ID (UUID)"
// @Param body body ScheduleRequest true "Complete schedule"
// @Success 200 {object} controllers.GameSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: invalid_schedule"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/games/{gameID}/pricing [put]
func (c *PricingController) SavePricing(w http.ResponseWriter, r *http.Request) {
	gameID, ok := pathUUID(w, r, "gameID")
	if !ok {
		return
	}
	var req ScheduleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	game, err := c.Games.SavePricing(r.Context(), gameID, req.Periods)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "game not found")
		return
	}
	adminID, _ := middleware.AdminIDFromContext(r.Context())
	c.Logger.InfoContext(r.Context(), "pricing saved", "game_id", gameID, "periods", len(game.PricePeriods), "admin_id", adminID)
	helpers.WriteJSONSuccess(w, http.StatusOK, game)
}

// Append godoc
// @Summary Append a price tier
// @Description Adds a tier after the last one (or a default tier starting now) and returns the new schedule with its validation.
// @Tags pricing-editor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ScheduleRequest true "Current schedule"
// @Success 200 {object} controllers.ScheduleEditSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /admin/pricing/append [post]
func (c *PricingController) Append(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Editor.Append(req.Periods))
}

// Insert godoc
// @Summary Insert a price tier
// @Description Inserts a tier before the one at index, splitting the gap to its predecessor.
// @Tags pricing-editor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body IndexedScheduleRequest true "Current schedule and 0-based index"
// @Success 200 {object} controllers.ScheduleEditSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /admin/pricing/insert [post]
func (c *PricingController) Insert(w http.ResponseWriter, r *http.Request) {
	var req IndexedScheduleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	edit, err := c.Editor.Insert(req.Periods, *req.Index)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, edit)
}

// SetField godoc
// @Summary Edit a price tier field
// @Description Sets starts, ends or price of the tier at index from raw form input. Moving a boundary moves the adjacent tier's matching boundary.
// @Tags pricing-editor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SetFieldRequest true "Current schedule, index, field and raw value"
// @Success 200 {object} controllers.ScheduleEditSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /admin/pricing/field [post]
func (c *PricingController) SetField(w http.ResponseWriter, r *http.Request) {
	var req SetFieldRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	edit, err := c.Editor.SetField(req.Periods, *req.Index, req.Field, req.Value)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, edit)
}

// Remove godoc
// @Summary Remove a price tier
// @Description Removes the tier at index and closes the gap. The only remaining tier cannot be removed.
// @Tags pricing-editor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body IndexedScheduleRequest true "Current schedule and 0-based index"
// @Success 200 {object} controllers.ScheduleEditSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /admin/pricing/remove [post]
func (c *PricingController) Remove(w http.ResponseWriter, r *http.Request) {
	var req IndexedScheduleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	edit, err := c.Editor.Remove(req.Periods, *req.Index)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, edit)
}

// Validate godoc
// @Summary Validate a pricing schedule
// @Description Checks a schedule without storing it.
// @Tags pricing-editor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ScheduleRequest true "Schedule to check"
// @Success 200 {object} controllers.ValidationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /admin/pricing/validate [post]
func (c *PricingController) Validate(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Editor.Validate(req.Periods))
}
