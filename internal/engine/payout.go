package engine

import (
	"fmt"
	"log/slog"

	"github.com/jayanth2212/AgriSure/internal/models"
)

// payoutPlan captures exactly what one payout commit changed so a
// failed transfer can be rolled back mutation for mutation.
type payoutPlan struct {
	claimID      uint64
	recipient    string
	amount       uint64
	trustApplied int64
}

// ExecutePayout settles an approved claim. The normal path pays claims
// synchronously at approval time; this entry point retries a claim
// whose transfer previously failed. Effect-before-interaction ordering
// is mandatory: the claim is marked PAID and every internal mutation is
// committed before the external transfer runs, so a reentrant call
// observes a non-approved claim and the in-flight guard.
func (e *Engine) ExecutePayout(claimID uint64) error {
	e.mu.Lock()

	if err := e.requireRunningLocked(); err != nil {
		e.mu.Unlock()
		return err
	}
	claim, ok := e.claims[claimID]
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrClaimNotFound, claimID)
	}
	if claim.Status != models.ClaimApproved || claim.PayoutAmount == 0 {
		e.mu.Unlock()
		return fmt.Errorf("%w: claim %d is %s", ErrNotApproved, claimID, claim.Status)
	}
	plan, err := e.commitPayoutLocked(claim)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.mu.Unlock()

	return e.settle(plan)
}

// commitPayoutLocked commits every internal effect of a payout while
// the lock is held: PAID status, payout date, the clean-claim trust
// bonus and the balance deduction. The transfer itself runs later,
// unlocked, against already-committed state. The in-flight guard stays
// armed until settle releases it on one of its exit paths.
func (e *Engine) commitPayoutLocked(claim *models.Claim) (*payoutPlan, error) {
	if e.payoutInFlight {
		return nil, fmt.Errorf("%w: claim %d", ErrReentrantPayout, claim.ID)
	}
	if e.balance < claim.PayoutAmount {
		return nil, fmt.Errorf("%w: balance %d, payout %d", ErrInsufficientFunds, e.balance, claim.PayoutAmount)
	}

	now := e.now().Unix()
	claim.Status = models.ClaimPaid
	claim.PayoutDate = &now

	var applied int64
	if claim.FraudScore < trustBonusThreshold {
		if farmer, ok := e.farmers[claim.FarmerID]; ok {
			applied = e.increaseTrustLocked(farmer, trustBonus)
		}
	}
	e.balance -= claim.PayoutAmount
	e.payoutInFlight = true

	return &payoutPlan{
		claimID:      claim.ID,
		recipient:    claim.FarmerID,
		amount:       claim.PayoutAmount,
		trustApplied: applied,
	}, nil
}

// settle runs the external value transfer for a committed payout. On
// success the journal mirrors the final state; on failure every
// mutation of the commit is undone and the claim returns to APPROVED,
// retryable via ExecutePayout. Must be called without the lock held.
func (e *Engine) settle(plan *payoutPlan) error {
	transferErr := e.transferor.Transfer(plan.recipient, plan.amount)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.payoutInFlight = false

	claim := e.claims[plan.claimID]
	if transferErr != nil {
		claim.Status = models.ClaimApproved
		claim.PayoutDate = nil
		e.balance += plan.amount
		if plan.trustApplied != 0 {
			if farmer, ok := e.farmers[plan.recipient]; ok {
				farmer.TrustScore -= plan.trustApplied
			}
		}
		slog.Error("payout transfer failed, rolled back",
			"claim_id", plan.claimID,
			"recipient", plan.recipient,
			"amount", plan.amount,
			"error", transferErr,
		)
		return fmt.Errorf("%w: claim %d: %v", ErrTransferFailed, plan.claimID, transferErr)
	}

	e.record(models.EntryClaimPaid, func(entry *models.JournalEntry) {
		entry.Claim = snapshotClaim(claim)
	})
	e.recordBalanceLocked()
	if plan.trustApplied != 0 {
		if farmer, ok := e.farmers[plan.recipient]; ok {
			e.record(models.EntryTrustAdjusted, func(entry *models.JournalEntry) {
				entry.Farmer = snapshotFarmer(farmer)
			})
		}
	}
	slog.Info("payout settled",
		"claim_id", plan.claimID,
		"recipient", plan.recipient,
		"amount", plan.amount,
	)
	return nil
}
