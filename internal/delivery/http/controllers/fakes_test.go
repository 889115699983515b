package controllers

import (
	"context"
	"io"
	"log/slog"

	"zone37/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	gameUUID    = "8f4c3a5e-2b1d-4c6e-9a7f-0d1e2f3a4b5c"
	factionUUID = "1a2b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d"
)

// fakeGameService implements domain.GameService for handler tests.
type fakeGameService struct {
	game         *domain.Game
	games        []*domain.Game
	total        int
	availability *domain.Availability
	err          error

	lastCreated   *domain.Game
	lastIDOrSlug  string
	lastParams    domain.PaginationParams
	lastUpdateID  string
	lastUpdate    domain.GameUpdate
	lastDeleteID  string
	lastPricingID string
	lastPeriods   []domain.PricePeriod
}

func (f *fakeGameService) CreateGame(ctx context.Context, game *domain.Game) error {
	f.lastCreated = game
	if f.err != nil {
		return f.err
	}
	game.ID = gameUUID
	return nil
}

func (f *fakeGameService) GetGame(ctx context.Context, idOrSlug string) (*domain.Game, error) {
	f.lastIDOrSlug = idOrSlug
	return f.game, f.err
}

func (f *fakeGameService) ListGames(ctx context.Context, params domain.PaginationParams) ([]*domain.Game, int, error) {
	f.lastParams = params
	return f.games, f.total, f.err
}

func (f *fakeGameService) UpdateGame(ctx context.Context, id string, upd domain.GameUpdate) (*domain.Game, error) {
	f.lastUpdateID = id
	f.lastUpdate = upd
	return f.game, f.err
}

func (f *fakeGameService) DeleteGame(ctx context.Context, id string) error {
	f.lastDeleteID = id
	return f.err
}

func (f *fakeGameService) SavePricing(ctx context.Context, id string, periods []domain.PricePeriod) (*domain.Game, error) {
	f.lastPricingID = id
	f.lastPeriods = periods
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Game{ID: id, PricePeriods: periods}, nil
}

func (f *fakeGameService) Availability(ctx context.Context, id string) (*domain.Availability, error) {
	return f.availability, f.err
}

// fakeFactionService implements domain.FactionService for handler tests.
type fakeFactionService struct {
	factions []*domain.Faction
	faction  *domain.Faction
	err      error

	lastCreated   *domain.Faction
	lastGameID    string
	lastFactionID string
	lastUpdate    domain.FactionUpdate
}

func (f *fakeFactionService) CreateFaction(ctx context.Context, faction *domain.Faction) error {
	f.lastCreated = faction
	if f.err != nil {
		return f.err
	}
	faction.ID = factionUUID
	return nil
}

func (f *fakeFactionService) ListFactions(ctx context.Context, gameID string) ([]*domain.Faction, error) {
	f.lastGameID = gameID
	return f.factions, f.err
}

func (f *fakeFactionService) UpdateFaction(ctx context.Context, gameID, factionID string, upd domain.FactionUpdate) (*domain.Faction, error) {
	f.lastGameID, f.lastFactionID, f.lastUpdate = gameID, factionID, upd
	return f.faction, f.err
}

func (f *fakeFactionService) DeleteFaction(ctx context.Context, gameID, factionID string) error {
	f.lastGameID, f.lastFactionID = gameID, factionID
	return f.err
}
