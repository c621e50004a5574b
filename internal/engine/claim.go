package engine

import (
	"fmt"
	"sort"

	"github.com/jayanth2212/AgriSure/internal/models"
)

// SubmitClaim opens a damage claim against one of the caller's active
// policies. The policy moves to CLAIMED immediately and stays there for
// good: even if this claim is later rejected, no further claim can be
// submitted against the policy. Expiry is checked here, passively,
// against the current time. Returns the new claim id.
func (e *Engine) SubmitClaim(farmerID string, req models.SubmitClaimRequest) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireRunningLocked(); err != nil {
		return 0, err
	}
	if _, err := e.eligibleFarmerLocked(farmerID); err != nil {
		return 0, err
	}
	policy, ok := e.policies[req.PolicyID]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrPolicyNotFound, req.PolicyID)
	}
	if policy.FarmerID != farmerID {
		return 0, fmt.Errorf("%w: policy %d", ErrNotPolicyOwner, req.PolicyID)
	}
	if policy.Status != models.PolicyActive {
		return 0, fmt.Errorf("%w: policy %d is %s", ErrPolicyNotActive, policy.ID, policy.Status)
	}
	now := e.now().Unix()
	if now > policy.EndDate {
		return 0, fmt.Errorf("%w: policy %d ended at %d", ErrPolicyExpired, policy.ID, policy.EndDate)
	}
	if req.ClaimedAmount == 0 {
		return 0, fmt.Errorf("%w: claimed amount must be positive", ErrInvalidInput)
	}
	if req.ClaimedAmount > policy.CoverageAmount {
		return 0, fmt.Errorf("%w: claimed %d, coverage %d", ErrAmountOverCoverage, req.ClaimedAmount, policy.CoverageAmount)
	}

	claim := &models.Claim{
		ID:             e.nextClaimID,
		PolicyID:       policy.ID,
		FarmerID:       farmerID,
		DamageType:     req.DamageType,
		ClaimDate:      now,
		ClaimedAmount:  req.ClaimedAmount,
		EvidenceHandle: req.EvidenceHandle,
		Status:         models.ClaimSubmitted,
	}
	e.nextClaimID++
	e.claims[claim.ID] = claim
	policy.Status = models.PolicyClaimed

	e.record(models.EntryClaimSubmitted, func(entry *models.JournalEntry) {
		entry.Claim = snapshotClaim(claim)
		entry.Policy = snapshotPolicy(policy)
	})
	return claim.ID, nil
}

// GetClaim returns a snapshot of the claim record.
func (e *Engine) GetClaim(id uint64) (models.Claim, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	claim, ok := e.claims[id]
	if !ok {
		return models.Claim{}, fmt.Errorf("%w: %d", ErrClaimNotFound, id)
	}
	return *snapshotClaim(claim), nil
}

// ClaimIDsByFarmer lists the farmer's claim ids in ascending order.
func (e *Engine) ClaimIDsByFarmer(farmerID string) []uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	var ids []uint64
	for id, claim := range e.claims {
		if claim.FarmerID == farmerID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
