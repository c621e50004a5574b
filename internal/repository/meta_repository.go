package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const balanceKey = "held_balance"

// MetaRepository persists small engine-level values, currently only the
// held balance mirror.
type MetaRepository struct {
	db *sqlx.DB
}

func NewMetaRepository(db *sqlx.DB) *MetaRepository {
	return &MetaRepository{db: db}
}

// SetBalance stores the engine's held balance.
func (r *MetaRepository) SetBalance(ctx context.Context, balance uint64) error {
	query := `
		INSERT INTO engine_meta (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`
	if _, err := r.db.ExecContext(ctx, query, balanceKey, int64(balance)); err != nil {
		return fmt.Errorf("failed to set balance: %w", err)
	}
	return nil
}

// GetBalance reads the stored balance; a fresh database reports zero.
func (r *MetaRepository) GetBalance(ctx context.Context) (uint64, error) {
	var value int64
	err := r.db.GetContext(ctx, &value, `SELECT value FROM engine_meta WHERE key = $1`, balanceKey)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return uint64(value), nil
}
