package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/jayanth2212/AgriSure/internal/models"
)

// claimCacheTTL bounds staleness of the read-side snapshot cache.
const claimCacheTTL = 5 * time.Minute

// ClaimRepository persists claims and keeps a read-through snapshot
// cache in Redis for the read interface. The cache is advisory; the
// database is authoritative and a nil redis client disables caching.
type ClaimRepository struct {
	db          *sqlx.DB
	redisClient *redis.Client
}

func NewClaimRepository(db *sqlx.DB, redisClient *redis.Client) *ClaimRepository {
	return &ClaimRepository{db: db, redisClient: redisClient}
}

func claimCacheKey(id uint64) string {
	return fmt.Sprintf("claim:%d", id)
}

// Upsert writes a claim record and invalidates its cached snapshot.
func (r *ClaimRepository) Upsert(ctx context.Context, claim *models.Claim) error {
	query := `
		INSERT INTO claim (
			id, policy_id, farmer_id, damage_type, claim_date, claimed_amount,
			evidence_handle, ai_report_handle, fraud_score, status,
			investigator_id, investigated_at, investigation_report,
			rejection_reason, payout_amount, payout_date
		) VALUES (
			:id, :policy_id, :farmer_id, :damage_type, :claim_date, :claimed_amount,
			:evidence_handle, :ai_report_handle, :fraud_score, :status,
			:investigator_id, :investigated_at, :investigation_report,
			:rejection_reason, :payout_amount, :payout_date
		)
		ON CONFLICT (id) DO UPDATE SET
			ai_report_handle = EXCLUDED.ai_report_handle,
			fraud_score = EXCLUDED.fraud_score,
			status = EXCLUDED.status,
			investigator_id = EXCLUDED.investigator_id,
			investigated_at = EXCLUDED.investigated_at,
			investigation_report = EXCLUDED.investigation_report,
			rejection_reason = EXCLUDED.rejection_reason,
			payout_amount = EXCLUDED.payout_amount,
			payout_date = EXCLUDED.payout_date
	`
	if _, err := r.db.NamedExecContext(ctx, query, claim); err != nil {
		return fmt.Errorf("failed to upsert claim: %w", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Del(ctx, claimCacheKey(claim.ID)).Err(); err != nil {
			slog.Warn("failed to invalidate claim cache", "claim_id", claim.ID, "error", err)
		}
	}
	return nil
}

// GetByID retrieves a claim, serving from the snapshot cache when warm.
func (r *ClaimRepository) GetByID(ctx context.Context, id uint64) (*models.Claim, error) {
	if r.redisClient != nil {
		if data, err := r.redisClient.Get(ctx, claimCacheKey(id)).Bytes(); err == nil {
			var cached models.Claim
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	var claim models.Claim
	query := `
		SELECT id, policy_id, farmer_id, damage_type, claim_date, claimed_amount,
		       evidence_handle, ai_report_handle, fraud_score, status,
		       investigator_id, investigated_at, investigation_report,
		       rejection_reason, payout_amount, payout_date
		FROM claim
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &claim, query, id); err != nil {
		return nil, fmt.Errorf("failed to get claim by id: %w", err)
	}

	if r.redisClient != nil {
		if data, err := json.Marshal(&claim); err == nil {
			if err := r.redisClient.Set(ctx, claimCacheKey(id), data, claimCacheTTL).Err(); err != nil {
				slog.Warn("failed to cache claim", "claim_id", id, "error", err)
			}
		}
	}
	return &claim, nil
}

// GetByFarmerID retrieves a farmer's claims in ascending id order.
func (r *ClaimRepository) GetByFarmerID(ctx context.Context, farmerID string) ([]models.Claim, error) {
	var claims []models.Claim
	query := `
		SELECT id, policy_id, farmer_id, damage_type, claim_date, claimed_amount,
		       evidence_handle, ai_report_handle, fraud_score, status,
		       investigator_id, investigated_at, investigation_report,
		       rejection_reason, payout_amount, payout_date
		FROM claim
		WHERE farmer_id = $1
		ORDER BY id
	`
	if err := r.db.SelectContext(ctx, &claims, query, farmerID); err != nil {
		return nil, fmt.Errorf("failed to get claims by farmer id: %w", err)
	}
	return claims, nil
}

// List retrieves every claim record, for engine state reload at boot.
func (r *ClaimRepository) List(ctx context.Context) ([]models.Claim, error) {
	var claims []models.Claim
	query := `
		SELECT id, policy_id, farmer_id, damage_type, claim_date, claimed_amount,
		       evidence_handle, ai_report_handle, fraud_score, status,
		       investigator_id, investigated_at, investigation_report,
		       rejection_reason, payout_amount, payout_date
		FROM claim
		ORDER BY id
	`
	if err := r.db.SelectContext(ctx, &claims, query); err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	return claims, nil
}
