package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"zone37/internal/delivery/http/controllers"
	"zone37/internal/delivery/http/middleware"
	"zone37/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Health   *controllers.HealthController
	Games    *controllers.GameController
	Pricing  *controllers.PricingController
	Factions *controllers.FactionController
}

// NewRouter initializes the HTTP router with all application routes.
// Every /admin route requires a bearer token carrying the admin role.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	admin := middleware.RequireAuth(verifier, logger)

	// Public
	mux.HandleFunc("GET /health", c.Health.Health)
	mux.HandleFunc("GET /games", c.Games.ListGames)
	mux.HandleFunc("GET /games/{game}", c.Games.GetGame)
	mux.HandleFunc("GET /games/{gameID}/factions", c.Factions.ListFactions)
	mux.HandleFunc("GET /games/{gameID}/availability", c.Games.GetAvailability)

	// Games
	mux.HandleFunc("POST /admin/games", admin(c.Games.CreateGame))
	mux.HandleFunc("PATCH /admin/games/{gameID}", admin(c.Games.UpdateGame))
	mux.HandleFunc("DELETE /admin/games/{gameID}", admin(c.Games.DeleteGame))
	mux.HandleFunc("PUT /admin/games/{gameID}/pricing", admin(c.Pricing.SavePricing))

	// Schedule editor
	mux.HandleFunc("POST /admin/pricing/append", admin(c.Pricing.Append))
	mux.HandleFunc("POST /admin/pricing/insert", admin(c.Pricing.Insert))
	mux.HandleFunc("POST /admin/pricing/field", admin(c.Pricing.SetField))
	mux.HandleFunc("POST /admin/pricing/remove", admin(c.Pricing.Remove))
	mux.HandleFunc("POST /admin/pricing/validate", admin(c.Pricing.Validate))

	// Factions
	mux.HandleFunc("POST /admin/games/{gameID}/factions", admin(c.Factions.CreateFaction))
	mux.HandleFunc("PATCH /admin/games/{gameID}/factions/{factionID}", admin(c.Factions.UpdateFaction))
	mux.HandleFunc("DELETE /admin/games/{gameID}/factions/{factionID}", admin(c.Factions.DeleteFaction))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with CORS and request logging.
func NewHandler(mux http.Handler, corsOrigins []string, logger *slog.Logger) http.Handler {
	return middleware.LoggingMiddleware(logger, middleware.CORS(corsOrigins, mux))
}
