package domain

import (
	"context"
	"time"
)

// Game is an airsoft game (event) listed on the site, with its dynamic pricing schedule.
// swagger:model Game
type Game struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	Description  string        `json:"description"`
	Location     string        `json:"location"`
	Date         *time.Time    `json:"date,omitempty"`
	PricePeriods []PricePeriod `json:"price_periods"`
	// CurrentPrice is derived from PricePeriods on every read; it is never stored.
	CurrentPrice *int      `json:"current_price,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewGame returns a new Game with the given fields. ID is typically set by the repository on create.
func NewGame(name, slug, description, location string, date *time.Time, periods []PricePeriod, createdAt, updatedAt time.Time) *Game {
	return &Game{
		Name:         name,
		Slug:         slug,
		Description:  description,
		Location:     location,
		Date:         date,
		PricePeriods: periods,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// GameUpdate holds optional game fields for a partial update; nil fields are unchanged.
type GameUpdate struct {
	Name        *string
	Description *string
	Location    *string
	Date        *time.Time
}

// Empty reports whether no field is set.
func (u GameUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Location == nil && u.Date == nil
}

// GameRepository defines the interface for game and pricing schedule storage.
type GameRepository interface {
	Create(ctx context.Context, game *Game) error
	GetByID(ctx context.Context, id string) (*Game, error)
	GetBySlug(ctx context.Context, slug string) (*Game, error)
	List(ctx context.Context, params PaginationParams) ([]*Game, int, error)
	Update(ctx context.Context, id string, upd GameUpdate) (*Game, error)
	Delete(ctx context.Context, id string) error
	ListPricePeriods(ctx context.Context, gameID string) ([]PricePeriod, error)
	ReplacePricePeriods(ctx context.Context, gameID string, periods []PricePeriod) error
}

// GameCache caches game records for the public pages. Keys are game IDs or slugs.
type GameCache interface {
	Get(ctx context.Context, key string) (*Game, bool)
	Set(ctx context.Context, game *Game)
	Invalidate(ctx context.Context, game *Game)
}

// GameService defines the business logic for games and their pricing schedules.
type GameService interface {
	CreateGame(ctx context.Context, game *Game) error
	GetGame(ctx context.Context, idOrSlug string) (*Game, error)
	ListGames(ctx context.Context, params PaginationParams) ([]*Game, int, error)
	UpdateGame(ctx context.Context, id string, upd GameUpdate) (*Game, error)
	DeleteGame(ctx context.Context, id string) error
	SavePricing(ctx context.Context, id string, periods []PricePeriod) (*Game, error)
	Availability(ctx context.Context, id string) (*Availability, error)
}
