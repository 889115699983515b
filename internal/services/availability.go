package services

import "zone37/internal/domain"

// CalculateAvailability sums open slots across a game's factions. Overbooked factions
// count as full, never negative. A game without factions is sold out.
func CalculateAvailability(gameID string, factions []*domain.Faction) *domain.Availability {
	a := &domain.Availability{
		GameID:   gameID,
		Factions: make([]domain.FactionAvailability, 0, len(factions)),
	}
	for _, f := range factions {
		available := max(f.Capacity-f.Registered, 0)
		a.Factions = append(a.Factions, domain.FactionAvailability{
			FactionID:  f.ID,
			Name:       f.Name,
			Capacity:   f.Capacity,
			Registered: f.Registered,
			Available:  available,
			Full:       available == 0,
		})
		a.TotalCapacity += f.Capacity
		a.TotalRegistered += f.Registered
		a.TotalAvailable += available
	}
	a.SoldOut = a.TotalAvailable == 0
	return a
}
