package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"zone37/internal/clock"
	"zone37/internal/domain"
	"zone37/internal/pricing"
)

type gameService struct {
	gameRepo       domain.GameRepository
	factionRepo    domain.FactionRepository
	cache          domain.GameCache
	emailService   domain.EmailService
	notifyEmail    string
	clock          clock.Clock
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewGameService returns a GameService. notifyEmail receives a message whenever a game's
// pricing is saved; leave it empty to disable notifications.
func NewGameService(gameRepo domain.GameRepository,
	factionRepo domain.FactionRepository,
	cache domain.GameCache,
	emailService domain.EmailService,
	notifyEmail string,
	clk clock.Clock,
	logger *slog.Logger,
	timeout time.Duration,
) domain.GameService {
	return &gameService{
		gameRepo:       gameRepo,
		factionRepo:    factionRepo,
		cache:          cache,
		emailService:   emailService,
		notifyEmail:    notifyEmail,
		clock:          clk,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *gameService) CreateGame(ctx context.Context, game *domain.Game) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	game.Name = strings.TrimSpace(game.Name)
	if game.Name == "" {
		return domain.ErrGameNameRequired
	}
	source := game.Slug
	if source == "" {
		source = game.Name
	}
	game.Slug = slug.Make(source)
	if game.Slug == "" {
		return fmt.Errorf("%w: %q", domain.ErrInvalidSlug, source)
	}

	game.PricePeriods = normalizePeriods(game.PricePeriods)
	if result := pricing.Validate(game.PricePeriods); !result.Valid {
		return &domain.ScheduleError{Result: result}
	}

	now := s.clock.Now()
	game.CreatedAt = now
	game.UpdatedAt = now

	if err := s.gameRepo.Create(ctx, game); err != nil {
		return err
	}
	s.setCurrentPrice(game)
	return nil
}

func (s *gameService) GetGame(ctx context.Context, idOrSlug string) (*domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if game, ok := s.cache.Get(ctx, idOrSlug); ok {
		s.setCurrentPrice(game)
		return game, nil
	}

	var (
		game *domain.Game
		err  error
	)
	if _, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		game, err = s.gameRepo.GetByID(ctx, idOrSlug)
	} else {
		game, err = s.gameRepo.GetBySlug(ctx, strings.ToLower(idOrSlug))
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get game: %w", err)
	}
	if err := s.loadPeriods(ctx, game); err != nil {
		return nil, err
	}
	s.cache.Set(ctx, game)
	s.setCurrentPrice(game)
	return game, nil
}

func (s *gameService) ListGames(ctx context.Context, params domain.PaginationParams) ([]*domain.Game, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	games, total, err := s.gameRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list games: %w", err)
	}
	if games == nil {
		games = []*domain.Game{}
	}
	for _, g := range games {
		if err := s.loadPeriods(ctx, g); err != nil {
			return nil, 0, err
		}
		s.setCurrentPrice(g)
	}
	return games, total, nil
}

func (s *gameService) UpdateGame(ctx context.Context, id string, upd domain.GameUpdate) (*domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, domain.ErrGameNameRequired
		}
		upd.Name = &name
	}
	game, err := s.gameRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update game: %w", err)
	}
	if err := s.loadPeriods(ctx, game); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, game)
	s.setCurrentPrice(game)
	return game, nil
}

func (s *gameService) DeleteGame(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get game: %w", err)
	}
	if err := s.gameRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete game: %w", err)
	}
	s.cache.Invalidate(ctx, game)
	return nil
}

// SavePricing replaces a game's schedule. A schedule that fails validation is never
// stored; the caller gets a *domain.ScheduleError carrying the verdict.
func (s *gameService) SavePricing(ctx context.Context, id string, periods []domain.PricePeriod) (*domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	periods = normalizePeriods(periods)
	if result := pricing.Validate(periods); !result.Valid {
		return nil, &domain.ScheduleError{Result: result}
	}

	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get game: %w", err)
	}
	if err := s.gameRepo.ReplacePricePeriods(ctx, id, periods); err != nil {
		return nil, fmt.Errorf("replace price periods: %w", err)
	}
	game.PricePeriods = periods
	game.UpdatedAt = s.clock.Now()
	s.cache.Invalidate(ctx, game)
	s.notifyPricingUpdated(ctx, game)
	s.setCurrentPrice(game)
	return game, nil
}

func (s *gameService) Availability(ctx context.Context, id string) (*domain.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.gameRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get game: %w", err)
	}
	factions, err := s.factionRepo.ListByGameID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list factions: %w", err)
	}
	return CalculateAvailability(id, factions), nil
}

func (s *gameService) loadPeriods(ctx context.Context, game *domain.Game) error {
	periods, err := s.gameRepo.ListPricePeriods(ctx, game.ID)
	if err != nil {
		return fmt.Errorf("list price periods: %w", err)
	}
	if periods == nil {
		periods = []domain.PricePeriod{}
	}
	game.PricePeriods = periods
	return nil
}

func (s *gameService) setCurrentPrice(game *domain.Game) {
	game.CurrentPrice = nil
	if price, ok := pricing.CurrentPrice(game.PricePeriods, s.clock.Now()); ok {
		game.CurrentPrice = &price
	}
}

func (s *gameService) notifyPricingUpdated(ctx context.Context, game *domain.Game) {
	if s.notifyEmail == "" || s.emailService == nil {
		return
	}
	data := &domain.PricingUpdatedEmailData{
		Email:    s.notifyEmail,
		GameName: game.Name,
		GameSlug: game.Slug,
		Periods:  game.PricePeriods,
		SavedAt:  s.clock.Now(),
	}
	if err := s.emailService.SendPricingUpdated(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "pricing notification failed", "game_id", game.ID, "err", err)
	}
}

// normalizePeriods copies periods with their bounds in UTC.
func normalizePeriods(periods []domain.PricePeriod) []domain.PricePeriod {
	out := make([]domain.PricePeriod, len(periods))
	for i, p := range periods {
		out[i] = domain.PricePeriod{Starts: p.Starts.UTC(), Price: p.Price}
		if p.Ends != nil {
			ends := p.Ends.UTC()
			out[i].Ends = &ends
		}
	}
	return out
}
