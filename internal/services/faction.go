package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"zone37/internal/clock"
	"zone37/internal/domain"
)

type factionService struct {
	gameRepo       domain.GameRepository
	factionRepo    domain.FactionRepository
	clock          clock.Clock
	contextTimeout time.Duration
}

func NewFactionService(gameRepo domain.GameRepository, factionRepo domain.FactionRepository, clk clock.Clock, timeout time.Duration) domain.FactionService {
	return &factionService{
		gameRepo:       gameRepo,
		factionRepo:    factionRepo,
		clock:          clk,
		contextTimeout: timeout,
	}
}

func (s *factionService) CreateFaction(ctx context.Context, faction *domain.Faction) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	faction.Name = strings.TrimSpace(faction.Name)
	if faction.Name == "" {
		return fmt.Errorf("faction name is required")
	}
	if faction.Capacity < 0 || faction.Registered < 0 {
		return domain.ErrInvalidCapacity
	}
	if err := s.ensureGame(ctx, faction.GameID); err != nil {
		return err
	}

	now := s.clock.Now()
	faction.CreatedAt = now
	faction.UpdatedAt = now
	return s.factionRepo.Create(ctx, faction)
}

func (s *factionService) ListFactions(ctx context.Context, gameID string) ([]*domain.Faction, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.ensureGame(ctx, gameID); err != nil {
		return nil, err
	}
	factions, err := s.factionRepo.ListByGameID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list factions: %w", err)
	}
	if factions == nil {
		factions = []*domain.Faction{}
	}
	return factions, nil
}

func (s *factionService) UpdateFaction(ctx context.Context, gameID, factionID string, upd domain.FactionUpdate) (*domain.Faction, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, fmt.Errorf("faction name is required")
		}
		upd.Name = &name
	}
	if (upd.Capacity != nil && *upd.Capacity < 0) || (upd.Registered != nil && *upd.Registered < 0) {
		return nil, domain.ErrInvalidCapacity
	}
	if _, err := s.factionOfGame(ctx, gameID, factionID); err != nil {
		return nil, err
	}
	updated, err := s.factionRepo.Update(ctx, factionID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update faction: %w", err)
	}
	return updated, nil
}

func (s *factionService) DeleteFaction(ctx context.Context, gameID, factionID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.factionOfGame(ctx, gameID, factionID); err != nil {
		return err
	}
	if err := s.factionRepo.Delete(ctx, factionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete faction: %w", err)
	}
	return nil
}

func (s *factionService) ensureGame(ctx context.Context, gameID string) error {
	if _, err := s.gameRepo.GetByID(ctx, gameID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get game: %w", err)
	}
	return nil
}

// factionOfGame loads a faction and hides factions of other games behind ErrNotFound.
func (s *factionService) factionOfGame(ctx context.Context, gameID, factionID string) (*domain.Faction, error) {
	f, err := s.factionRepo.GetByID(ctx, factionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get faction: %w", err)
	}
	if f.GameID != gameID {
		return nil, domain.ErrNotFound
	}
	return f, nil
}
