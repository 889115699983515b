package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"zone37/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeGameRepo is an in-memory GameRepository for tests.
type fakeGameRepo struct {
	byID       map[string]*domain.Game
	periods    map[string][]domain.PricePeriod
	err        error // if set, Create returns this error
	replaceErr error
	replaced   int
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{
		byID:    make(map[string]*domain.Game),
		periods: make(map[string][]domain.PricePeriod),
	}
}

// add stores a game with a fresh UUID and returns it.
func (f *fakeGameRepo) add(name, slug string, periods []domain.PricePeriod) *domain.Game {
	g := &domain.Game{ID: uuid.NewString(), Name: name, Slug: slug}
	f.byID[g.ID] = g
	f.periods[g.ID] = periods
	return g
}

func (f *fakeGameRepo) Create(ctx context.Context, g *domain.Game) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.byID {
		if existing.Slug == g.Slug {
			return domain.ErrDuplicateSlug
		}
	}
	g.ID = uuid.NewString()
	stored := *g
	f.byID[g.ID] = &stored
	f.periods[g.ID] = g.PricePeriods
	return nil
}

func (f *fakeGameRepo) GetByID(ctx context.Context, id string) (*domain.Game, error) {
	if g, ok := f.byID[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeGameRepo) GetBySlug(ctx context.Context, slug string) (*domain.Game, error) {
	for _, g := range f.byID {
		if g.Slug == slug {
			cp := *g
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeGameRepo) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Game, int, error) {
	var out []*domain.Game
	for _, g := range f.byID {
		cp := *g
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	total := len(out)
	start := min(params.Offset(), total)
	end := min(start+params.Limit(), total)
	return out[start:end], total, nil
}

func (f *fakeGameRepo) Update(ctx context.Context, id string, upd domain.GameUpdate) (*domain.Game, error) {
	g, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Name != nil {
		g.Name = *upd.Name
	}
	if upd.Description != nil {
		g.Description = *upd.Description
	}
	if upd.Location != nil {
		g.Location = *upd.Location
	}
	if upd.Date != nil {
		g.Date = upd.Date
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGameRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	delete(f.periods, id)
	return nil
}

func (f *fakeGameRepo) ListPricePeriods(ctx context.Context, gameID string) ([]domain.PricePeriod, error) {
	return f.periods[gameID], nil
}

func (f *fakeGameRepo) ReplacePricePeriods(ctx context.Context, gameID string, periods []domain.PricePeriod) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced++
	f.periods[gameID] = periods
	return nil
}

// fakeFactionRepo is an in-memory FactionRepository for tests.
type fakeFactionRepo struct {
	byID   map[string]*domain.Faction
	nextID int
	err    error
}

func newFakeFactionRepo() *fakeFactionRepo {
	return &fakeFactionRepo{byID: make(map[string]*domain.Faction), nextID: 1}
}

func (f *fakeFactionRepo) Create(ctx context.Context, fa *domain.Faction) error {
	if f.err != nil {
		return f.err
	}
	fa.ID = fmt.Sprintf("faction-%d", f.nextID)
	f.nextID++
	cp := *fa
	f.byID[fa.ID] = &cp
	return nil
}

func (f *fakeFactionRepo) GetByID(ctx context.Context, id string) (*domain.Faction, error) {
	if fa, ok := f.byID[id]; ok {
		cp := *fa
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeFactionRepo) ListByGameID(ctx context.Context, gameID string) ([]*domain.Faction, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Faction
	for _, fa := range f.byID {
		if fa.GameID == gameID {
			cp := *fa
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeFactionRepo) Update(ctx context.Context, id string, upd domain.FactionUpdate) (*domain.Faction, error) {
	fa, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Name != nil {
		fa.Name = *upd.Name
	}
	if upd.Capacity != nil {
		fa.Capacity = *upd.Capacity
	}
	if upd.Registered != nil {
		fa.Registered = *upd.Registered
	}
	cp := *fa
	return &cp, nil
}

func (f *fakeFactionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeGameCache is an in-memory GameCache recording invalidations.
type fakeGameCache struct {
	entries     map[string]*domain.Game
	invalidated []string
}

func newFakeGameCache() *fakeGameCache {
	return &fakeGameCache{entries: make(map[string]*domain.Game)}
}

func (c *fakeGameCache) Get(ctx context.Context, key string) (*domain.Game, bool) {
	g, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	cp := *g
	return &cp, true
}

func (c *fakeGameCache) Set(ctx context.Context, g *domain.Game) {
	cp := *g
	c.entries[g.ID] = &cp
	c.entries[g.Slug] = &cp
}

func (c *fakeGameCache) Invalidate(ctx context.Context, g *domain.Game) {
	delete(c.entries, g.ID)
	delete(c.entries, g.Slug)
	c.invalidated = append(c.invalidated, g.ID)
}

// fakeEmailService records pricing notifications.
type fakeEmailService struct {
	sent []*domain.PricingUpdatedEmailData
	err  error
}

func (f *fakeEmailService) SendPricingUpdated(ctx context.Context, data *domain.PricingUpdatedEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}
