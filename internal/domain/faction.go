package domain

import (
	"context"
	"time"
)

// Faction is a side players sign up for in a game. Capacity bounds its player slots.
// swagger:model Faction
type Faction struct {
	ID         string    `json:"id"`
	GameID     string    `json:"game_id"`
	Name       string    `json:"name"`
	Capacity   int       `json:"capacity"`
	Registered int       `json:"registered"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewFaction returns a new Faction with the given fields. ID is typically set by the repository on create.
func NewFaction(gameID, name string, capacity, registered int, createdAt, updatedAt time.Time) *Faction {
	return &Faction{
		GameID:     gameID,
		Name:       name,
		Capacity:   capacity,
		Registered: registered,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}

// FactionUpdate holds optional faction fields for a partial update.
type FactionUpdate struct {
	Name       *string
	Capacity   *int
	Registered *int
}

// FactionAvailability is the slot breakdown of a single faction.
type FactionAvailability struct {
	FactionID  string `json:"faction_id"`
	Name       string `json:"name"`
	Capacity   int    `json:"capacity"`
	Registered int    `json:"registered"`
	Available  int    `json:"available"`
	Full       bool   `json:"full"`
}

// Availability aggregates open slots across all factions of a game.
// swagger:model Availability
type Availability struct {
	GameID          string                `json:"game_id"`
	Factions        []FactionAvailability `json:"factions"`
	TotalCapacity   int                   `json:"total_capacity"`
	TotalRegistered int                   `json:"total_registered"`
	TotalAvailable  int                   `json:"total_available"`
	SoldOut         bool                  `json:"sold_out"`
}

// FactionRepository defines the interface for faction storage.
type FactionRepository interface {
	Create(ctx context.Context, faction *Faction) error
	GetByID(ctx context.Context, id string) (*Faction, error)
	ListByGameID(ctx context.Context, gameID string) ([]*Faction, error)
	Update(ctx context.Context, id string, upd FactionUpdate) (*Faction, error)
	Delete(ctx context.Context, id string) error
}

// FactionService defines the business logic for managing a game's factions.
type FactionService interface {
	CreateFaction(ctx context.Context, faction *Faction) error
	ListFactions(ctx context.Context, gameID string) ([]*Faction, error)
	UpdateFaction(ctx context.Context, gameID, factionID string, upd FactionUpdate) (*Faction, error)
	DeleteFaction(ctx context.Context, gameID, factionID string) error
}
