package postgres

import (
	"context"
	"database/sql"
	"testing"

	"zone37/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var factionRowColumns = []string{"id", "game_id", "name", "capacity", "registered", "created_at", "updated_at"}

func TestFactionRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO factions \(game_id, name, capacity, registered, created_at, updated_at\)`).
		WithArgs("game-1", "Blue", 40, 0, repoCreated, repoCreated).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("faction-1"))

	f := domain.NewFaction("game-1", "Blue", 40, 0, repoCreated, repoCreated)
	require.NoError(t, NewFactionRepository(db).Create(context.Background(), f))
	assert.Equal(t, "faction-1", f.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFactionRepository_GetByID(t *testing.T) {
	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM factions WHERE id`).
					WithArgs("faction-1").
					WillReturnRows(sqlmock.NewRows(factionRowColumns).
						AddRow("faction-1", "game-1", "Blue", 40, 12, repoCreated, repoCreated))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM factions WHERE id`).
					WithArgs("faction-1").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewFactionRepository(db).GetByID(context.Background(), "faction-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 12, got.Registered)
			assert.Equal(t, "game-1", got.GameID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFactionRepository_ListByGameID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM factions\s+WHERE game_id = \$1\s+ORDER BY name`).
		WithArgs("game-1").
		WillReturnRows(sqlmock.NewRows(factionRowColumns).
			AddRow("faction-1", "game-1", "Blue", 40, 12, repoCreated, repoCreated).
			AddRow("faction-2", "game-1", "Red", 40, 40, repoCreated, repoCreated))

	got, err := NewFactionRepository(db).ListByGameID(context.Background(), "game-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Red", got[1].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFactionRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	capacity, registered := 50, 20
	mock.ExpectQuery(`UPDATE factions SET updated_at = NOW\(\), capacity = \$1, registered = \$2\s+WHERE id = \$3`).
		WithArgs(50, 20, "faction-1").
		WillReturnRows(sqlmock.NewRows(factionRowColumns).
			AddRow("faction-1", "game-1", "Blue", 50, 20, repoCreated, repoCreated))

	got, err := NewFactionRepository(db).Update(context.Background(), "faction-1", domain.FactionUpdate{Capacity: &capacity, Registered: &registered})
	require.NoError(t, err)
	assert.Equal(t, 50, got.Capacity)
	assert.Equal(t, 20, got.Registered)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFactionRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM factions WHERE id`).
		WithArgs("faction-9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewFactionRepository(db).Delete(context.Background(), "faction-9")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
