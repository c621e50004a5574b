package engine

import (
	"fmt"
	"sort"

	"github.com/jayanth2212/AgriSure/internal/geo"
	"github.com/jayanth2212/AgriSure/internal/models"
)

// CreatePolicy issues a policy over a land parcel. The parcel key is
// derived from (lat, lon, area) and consumed permanently: it is never
// released, not even if the policy later expires or is cancelled.
// AmountPaid must cover the premium computed from the farmer's current
// trust score. Returns the new policy id.
func (e *Engine) CreatePolicy(farmerID string, req models.CreatePolicyRequest) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireRunningLocked(); err != nil {
		return 0, err
	}
	farmer, err := e.eligibleFarmerLocked(farmerID)
	if err != nil {
		return 0, err
	}
	if req.CoverageAmount == 0 {
		return 0, fmt.Errorf("%w: coverage amount must be positive", ErrInvalidInput)
	}
	if req.DurationDays == 0 {
		return 0, fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	parcel := geo.Parcel{LatE6: req.LatE6, LonE6: req.LonE6, AreaSqm: req.AreaSqm}
	if err := parcel.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	key := parcel.Key()
	if holder, taken := e.parcels[key]; taken {
		return 0, fmt.Errorf("%w: parcel %s held by policy %d", ErrParcelTaken, key, holder)
	}

	required := Premium(req.CoverageAmount, req.CropType, farmer.TrustScore)
	if req.AmountPaid < required {
		return 0, fmt.Errorf("%w: paid %d, required %d", ErrInsufficientPremium, req.AmountPaid, required)
	}

	now := e.now().Unix()
	policy := &models.Policy{
		ID:             e.nextPolicyID,
		FarmerID:       farmerID,
		CropType:       req.CropType,
		AreaSqm:        req.AreaSqm,
		LatE6:          req.LatE6,
		LonE6:          req.LonE6,
		SowingDate:     req.SowingDate,
		CoverageAmount: req.CoverageAmount,
		PremiumPaid:    req.AmountPaid,
		StartDate:      now,
		EndDate:        now + int64(req.DurationDays)*86400,
		Status:         models.PolicyActive,
		GeoHash:        key,
	}
	e.nextPolicyID++
	e.policies[policy.ID] = policy
	e.parcels[key] = policy.ID
	e.balance += req.AmountPaid

	e.record(models.EntryPolicyCreated, func(entry *models.JournalEntry) {
		entry.Policy = snapshotPolicy(policy)
	})
	e.recordBalanceLocked()
	return policy.ID, nil
}

// GetPolicy returns a snapshot of the policy record.
func (e *Engine) GetPolicy(id uint64) (models.Policy, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	policy, ok := e.policies[id]
	if !ok {
		return models.Policy{}, fmt.Errorf("%w: %d", ErrPolicyNotFound, id)
	}
	return *policy, nil
}

// PolicyIDsByFarmer lists the farmer's policy ids in ascending order.
func (e *Engine) PolicyIDsByFarmer(farmerID string) []uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	var ids []uint64
	for id, policy := range e.policies {
		if policy.FarmerID == farmerID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ParcelTaken reports whether a parcel key has been consumed.
func (e *Engine) ParcelTaken(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, ok := e.parcels[key]
	return ok
}
