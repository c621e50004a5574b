package worker

import (
	"context"

	"github.com/jayanth2212/AgriSure/internal/models"
	"github.com/jayanth2212/AgriSure/internal/repository"
)

// PostgresStore adapts the repositories to the LedgerStore surface.
type PostgresStore struct {
	farmers  *repository.FarmerRepository
	policies *repository.PolicyRepository
	claims   *repository.ClaimRepository
	alerts   *repository.FraudAlertRepository
	meta     *repository.MetaRepository
}

func NewPostgresStore(
	farmers *repository.FarmerRepository,
	policies *repository.PolicyRepository,
	claims *repository.ClaimRepository,
	alerts *repository.FraudAlertRepository,
	meta *repository.MetaRepository,
) *PostgresStore {
	return &PostgresStore{
		farmers:  farmers,
		policies: policies,
		claims:   claims,
		alerts:   alerts,
		meta:     meta,
	}
}

func (s *PostgresStore) UpsertFarmer(ctx context.Context, farmer *models.Farmer) error {
	return s.farmers.Upsert(ctx, farmer)
}

func (s *PostgresStore) UpsertPolicy(ctx context.Context, policy *models.Policy) error {
	return s.policies.Upsert(ctx, policy)
}

func (s *PostgresStore) UpsertClaim(ctx context.Context, claim *models.Claim) error {
	return s.claims.Upsert(ctx, claim)
}

func (s *PostgresStore) InsertFraudAlert(ctx context.Context, alert *models.FraudAlert) error {
	return s.alerts.Insert(ctx, alert)
}

func (s *PostgresStore) SetBalance(ctx context.Context, balance uint64) error {
	return s.meta.SetBalance(ctx, balance)
}
