package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"zone37/internal/domain"
)

const factionColumns = `id, game_id, name, capacity, registered, created_at, updated_at`

type factionRepository struct {
	DB *sql.DB
}

func NewFactionRepository(db *sql.DB) domain.FactionRepository {
	return &factionRepository{
		DB: db,
	}
}

func (r *factionRepository) Create(ctx context.Context, f *domain.Faction) error {
	query := `
		INSERT INTO factions (game_id, name, capacity, registered, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, f.GameID, f.Name, f.Capacity, f.Registered, f.CreatedAt, f.UpdatedAt).Scan(&f.ID)
}

func (r *factionRepository) GetByID(ctx context.Context, id string) (*domain.Faction, error) {
	query := `SELECT ` + factionColumns + ` FROM factions WHERE id = $1`
	return scanFaction(r.DB.QueryRowContext(ctx, query, id))
}

func (r *factionRepository) ListByGameID(ctx context.Context, gameID string) ([]*domain.Faction, error) {
	query := `
		SELECT ` + factionColumns + `
		FROM factions
		WHERE game_id = $1
		ORDER BY name
	`
	rows, err := r.DB.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	factions := make([]*domain.Faction, 0)
	for rows.Next() {
		f, err := scanFaction(rows)
		if err != nil {
			return nil, err
		}
		factions = append(factions, f)
	}
	return factions, rows.Err()
}

func (r *factionRepository) Update(ctx context.Context, id string, upd domain.FactionUpdate) (*domain.Faction, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if upd.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *upd.Name)
		n++
	}
	if upd.Capacity != nil {
		setClauses = append(setClauses, fmt.Sprintf("capacity = $%d", n))
		args = append(args, *upd.Capacity)
		n++
	}
	if upd.Registered != nil {
		setClauses = append(setClauses, fmt.Sprintf("registered = $%d", n))
		args = append(args, *upd.Registered)
		n++
	}
	if n == 1 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE factions SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, factionColumns)
	return scanFaction(r.DB.QueryRowContext(ctx, query, args...))
}

func (r *factionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM factions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanFaction(row rowScanner) (*domain.Faction, error) {
	f := &domain.Faction{}
	err := row.Scan(&f.ID, &f.GameID, &f.Name, &f.Capacity, &f.Registered, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}
