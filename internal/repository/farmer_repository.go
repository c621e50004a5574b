package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jayanth2212/AgriSure/internal/models"
)

type FarmerRepository struct {
	db *sqlx.DB
}

func NewFarmerRepository(db *sqlx.DB) *FarmerRepository {
	return &FarmerRepository{db: db}
}

// Upsert writes a farmer record, replacing the mutable fields on
// conflict. Identity fields never change after registration.
func (r *FarmerRepository) Upsert(ctx context.Context, farmer *models.Farmer) error {
	query := `
		INSERT INTO farmer (id, identity_hash, name, location, trust_score, is_blacklisted, registered_at)
		VALUES (:id, :identity_hash, :name, :location, :trust_score, :is_blacklisted, :registered_at)
		ON CONFLICT (id) DO UPDATE SET
			trust_score = EXCLUDED.trust_score,
			is_blacklisted = EXCLUDED.is_blacklisted
	`
	if _, err := r.db.NamedExecContext(ctx, query, farmer); err != nil {
		return fmt.Errorf("failed to upsert farmer: %w", err)
	}
	return nil
}

// GetByID retrieves a farmer by account id.
func (r *FarmerRepository) GetByID(ctx context.Context, id string) (*models.Farmer, error) {
	var farmer models.Farmer
	query := `
		SELECT id, identity_hash, name, location, trust_score, is_blacklisted, registered_at
		FROM farmer
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &farmer, query, id); err != nil {
		return nil, fmt.Errorf("failed to get farmer by id: %w", err)
	}
	return &farmer, nil
}

// List retrieves every farmer record, for engine state reload at boot.
func (r *FarmerRepository) List(ctx context.Context) ([]models.Farmer, error) {
	var farmers []models.Farmer
	query := `
		SELECT id, identity_hash, name, location, trust_score, is_blacklisted, registered_at
		FROM farmer
		ORDER BY registered_at
	`
	if err := r.db.SelectContext(ctx, &farmers, query); err != nil {
		return nil, fmt.Errorf("failed to list farmers: %w", err)
	}
	return farmers, nil
}
