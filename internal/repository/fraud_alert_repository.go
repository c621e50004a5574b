package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jayanth2212/AgriSure/internal/models"
)

type FraudAlertRepository struct {
	db *sqlx.DB
}

func NewFraudAlertRepository(db *sqlx.DB) *FraudAlertRepository {
	return &FraudAlertRepository{db: db}
}

// Insert appends an alert. Alerts are append-only; a conflicting id
// means the entry was already mirrored and is skipped.
func (r *FraudAlertRepository) Insert(ctx context.Context, alert *models.FraudAlert) error {
	query := `
		INSERT INTO fraud_alert (
			id, farmer_id, policy_id, claim_id, indicators,
			risk_level, requires_investigation, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query,
		alert.ID, alert.FarmerID, alert.PolicyID, alert.ClaimID,
		pq.Array(alert.Indicators), alert.RiskLevel, alert.RequiresInvestigation, alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fraud alert: %w", err)
	}
	return nil
}

// List retrieves every alert in id order, for engine state reload.
func (r *FraudAlertRepository) List(ctx context.Context) ([]models.FraudAlert, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, farmer_id, policy_id, claim_id, indicators,
		       risk_level, requires_investigation, created_at
		FROM fraud_alert
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list fraud alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.FraudAlert
	for rows.Next() {
		var alert models.FraudAlert
		if err := rows.Scan(
			&alert.ID, &alert.FarmerID, &alert.PolicyID, &alert.ClaimID,
			pq.Array(&alert.Indicators), &alert.RiskLevel, &alert.RequiresInvestigation, &alert.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan fraud alert: %w", err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fraud alerts: %w", err)
	}
	return alerts, nil
}
