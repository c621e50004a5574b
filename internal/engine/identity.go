package engine

import (
	"fmt"

	"github.com/jayanth2212/AgriSure/internal/models"
)

// RegisterFarmer creates the identity record for a new participant.
// The identity hash is opaque to the engine; verification happens
// upstream. A given id registers exactly once.
func (e *Engine) RegisterFarmer(id, identityHash, name, location string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireRunningLocked(); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("%w: farmer id is empty", ErrInvalidInput)
	}
	if identityHash == "" {
		return ErrEmptyIdentityHash
	}
	if _, ok := e.farmers[id]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, id)
	}

	farmer := &models.Farmer{
		ID:           id,
		IdentityHash: identityHash,
		Name:         name,
		Location:     location,
		TrustScore:   models.TrustScoreInitial,
		RegisteredAt: e.now().Unix(),
	}
	e.farmers[id] = farmer

	e.record(models.EntryFarmerRegistered, func(entry *models.JournalEntry) {
		entry.Farmer = snapshotFarmer(farmer)
	})
	return nil
}

// GetFarmer returns a snapshot of the farmer record.
func (e *Engine) GetFarmer(id string) (models.Farmer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	farmer, ok := e.farmers[id]
	if !ok {
		return models.Farmer{}, fmt.Errorf("%w: %s", ErrNotRegistered, id)
	}
	return *farmer, nil
}

// IsEligible reports whether the farmer may initiate ledger operations:
// registered and not blacklisted.
func (e *Engine) IsEligible(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	farmer, ok := e.farmers[id]
	return ok && !farmer.IsBlacklisted
}

// eligibleFarmerLocked resolves a farmer and enforces the eligibility
// precondition shared by every farmer-initiated action.
func (e *Engine) eligibleFarmerLocked(id string) (*models.Farmer, error) {
	farmer, ok := e.farmers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, id)
	}
	if farmer.IsBlacklisted {
		return nil, fmt.Errorf("%w: %s", ErrBlacklisted, id)
	}
	return farmer, nil
}

// increaseTrustLocked raises the trust score, clamping at the maximum.
// Returns the delta actually applied so a rolled-back payout can undo
// exactly what it did. Journaling is the caller's concern.
func (e *Engine) increaseTrustLocked(farmer *models.Farmer, delta int64) int64 {
	applied := delta
	if farmer.TrustScore+delta > models.TrustScoreMax {
		applied = models.TrustScoreMax - farmer.TrustScore
	}
	farmer.TrustScore += applied
	return applied
}

// decreaseTrustLocked lowers the trust score, flooring at zero. The
// score never goes negative. Journaling is the caller's concern.
func (e *Engine) decreaseTrustLocked(farmer *models.Farmer, delta int64) {
	if delta > farmer.TrustScore {
		delta = farmer.TrustScore
	}
	farmer.TrustScore -= delta
}
