package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"zone37/internal/domain"
)

const gameColumns = `id, name, slug, description, location, date, created_at, updated_at`

type gameRepository struct {
	DB *sql.DB
}

func NewGameRepository(db *sql.DB) domain.GameRepository {
	return &gameRepository{
		DB: db,
	}
}

// Create inserts the game and its price periods in one transaction and sets game.ID.
func (r *gameRepository) Create(ctx context.Context, g *domain.Game) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO games (name, slug, description, location, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query, g.Name, g.Slug, g.Description, g.Location, nullTime(g.Date), g.CreatedAt, g.UpdatedAt).Scan(&g.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrDuplicateSlug
		}
		return err
	}
	if err := insertPricePeriods(ctx, tx, g.ID, g.PricePeriods); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *gameRepository) GetByID(ctx context.Context, id string) (*domain.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`
	return scanGame(r.DB.QueryRowContext(ctx, query, id))
}

func (r *gameRepository) GetBySlug(ctx context.Context, slug string) (*domain.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE slug = $1`
	return scanGame(r.DB.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(slug))))
}

func (r *gameRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Game, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + gameColumns + `
		FROM games
		ORDER BY date NULLS LAST, created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	games := make([]*domain.Game, 0)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, 0, err
		}
		games = append(games, g)
	}
	return games, total, rows.Err()
}

func (r *gameRepository) Update(ctx context.Context, id string, upd domain.GameUpdate) (*domain.Game, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if upd.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *upd.Name)
		n++
	}
	if upd.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *upd.Description)
		n++
	}
	if upd.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *upd.Location)
		n++
	}
	if upd.Date != nil {
		setClauses = append(setClauses, fmt.Sprintf("date = $%d", n))
		args = append(args, *upd.Date)
		n++
	}
	if n == 1 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE games SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, gameColumns)
	return scanGame(r.DB.QueryRowContext(ctx, query, args...))
}

// Delete removes the game; price periods and factions go with it (ON DELETE CASCADE).
func (r *gameRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *gameRepository) ListPricePeriods(ctx context.Context, gameID string) ([]domain.PricePeriod, error) {
	query := `
		SELECT starts_at, ends_at, price
		FROM game_price_periods
		WHERE game_id = $1
		ORDER BY position
	`
	rows, err := r.DB.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	periods := make([]domain.PricePeriod, 0)
	for rows.Next() {
		var p domain.PricePeriod
		var endsNull sql.NullTime
		if err := rows.Scan(&p.Starts, &endsNull, &p.Price); err != nil {
			return nil, err
		}
		p.Starts = p.Starts.UTC()
		if endsNull.Valid {
			ends := endsNull.Time.UTC()
			p.Ends = &ends
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// ReplacePricePeriods swaps the whole schedule of a game atomically.
func (r *gameRepository) ReplacePricePeriods(ctx context.Context, gameID string, periods []domain.PricePeriod) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM game_price_periods WHERE game_id = $1`, gameID); err != nil {
		return err
	}
	if err := insertPricePeriods(ctx, tx, gameID, periods); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE games SET updated_at = NOW() WHERE id = $1`, gameID); err != nil {
		return err
	}
	return tx.Commit()
}

func insertPricePeriods(ctx context.Context, tx *sql.Tx, gameID string, periods []domain.PricePeriod) error {
	query := `
		INSERT INTO game_price_periods (game_id, position, starts_at, ends_at, price)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i, p := range periods {
		if _, err := tx.ExecContext(ctx, query, gameID, i, p.Starts, nullTime(p.Ends), p.Price); err != nil {
			return fmt.Errorf("insert price period %d: %w", i+1, err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*domain.Game, error) {
	g := &domain.Game{}
	var dateNull sql.NullTime
	err := row.Scan(&g.ID, &g.Name, &g.Slug, &g.Description, &g.Location, &dateNull, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if dateNull.Valid {
		g.Date = &dateNull.Time
	}
	return g, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
