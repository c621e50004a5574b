package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jayanth2212/AgriSure/internal/geo"
	"github.com/jayanth2212/AgriSure/internal/models"
)

type PolicyRepository struct {
	db *sqlx.DB
}

func NewPolicyRepository(db *sqlx.DB) *PolicyRepository {
	return &PolicyRepository{db: db}
}

// policyRow augments a policy with the EWKB-encoded parcel center for
// geometry-aware storage.
type policyRow struct {
	*models.Policy
	CenterEWKB []byte `db:"center_ewkb"`
}

// Upsert writes a policy record. Status is the only field that changes
// after issuance; the parcel center geometry is derived from the
// immutable coordinates at write time.
func (r *PolicyRepository) Upsert(ctx context.Context, policy *models.Policy) error {
	parcel := geo.Parcel{LatE6: policy.LatE6, LonE6: policy.LonE6, AreaSqm: policy.AreaSqm}
	center, err := parcel.EWKB()
	if err != nil {
		return fmt.Errorf("failed to encode policy parcel center: %w", err)
	}

	query := `
		INSERT INTO policy (
			id, farmer_id, crop_type, area_sqm, lat_e6, lon_e6, sowing_date,
			coverage_amount, premium_paid, start_date, end_date, status, geo_hash,
			center_ewkb
		) VALUES (
			:id, :farmer_id, :crop_type, :area_sqm, :lat_e6, :lon_e6, :sowing_date,
			:coverage_amount, :premium_paid, :start_date, :end_date, :status, :geo_hash,
			:center_ewkb
		)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status
	`
	if _, err := r.db.NamedExecContext(ctx, query, policyRow{Policy: policy, CenterEWKB: center}); err != nil {
		return fmt.Errorf("failed to upsert policy: %w", err)
	}
	return nil
}

// GetByID retrieves a policy by id.
func (r *PolicyRepository) GetByID(ctx context.Context, id uint64) (*models.Policy, error) {
	var policy models.Policy
	query := `
		SELECT id, farmer_id, crop_type, area_sqm, lat_e6, lon_e6, sowing_date,
		       coverage_amount, premium_paid, start_date, end_date, status, geo_hash
		FROM policy
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &policy, query, id); err != nil {
		return nil, fmt.Errorf("failed to get policy by id: %w", err)
	}
	return &policy, nil
}

// GetByFarmerID retrieves all policies owned by a farmer.
func (r *PolicyRepository) GetByFarmerID(ctx context.Context, farmerID string) ([]models.Policy, error) {
	var policies []models.Policy
	query := `
		SELECT id, farmer_id, crop_type, area_sqm, lat_e6, lon_e6, sowing_date,
		       coverage_amount, premium_paid, start_date, end_date, status, geo_hash
		FROM policy
		WHERE farmer_id = $1
		ORDER BY id
	`
	if err := r.db.SelectContext(ctx, &policies, query, farmerID); err != nil {
		return nil, fmt.Errorf("failed to get policies by farmer id: %w", err)
	}
	return policies, nil
}

// List retrieves every policy record, for engine state reload at boot.
func (r *PolicyRepository) List(ctx context.Context) ([]models.Policy, error) {
	var policies []models.Policy
	query := `
		SELECT id, farmer_id, crop_type, area_sqm, lat_e6, lon_e6, sowing_date,
		       coverage_amount, premium_paid, start_date, end_date, status, geo_hash
		FROM policy
		ORDER BY id
	`
	if err := r.db.SelectContext(ctx, &policies, query); err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	return policies, nil
}
