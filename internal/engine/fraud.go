package engine

import (
	"fmt"
	"sort"

	"github.com/jayanth2212/AgriSure/internal/models"
)

// Fraud-score thresholds. Risk levels drive alerting only; the
// approval thresholds drive state transitions.
const (
	alertThreshold       int64 = 500
	autoApproveThreshold int64 = 300
	fraudulentThreshold  int64 = 800
	trustBonusThreshold  int64 = 200

	trustPenalty int64 = 100
	trustBonus   int64 = 20
)

// riskLevelFor maps a fraud score to its risk classification. The
// thresholds are cumulative; the highest one exceeded wins.
func riskLevelFor(score int64) models.RiskLevel {
	level := models.RiskLow
	if score > 600 {
		level = models.RiskMedium
	}
	if score > 800 {
		level = models.RiskHigh
	}
	if score > 850 {
		level = models.RiskCritical
	}
	return level
}

// SubmitFraudAnalysis ingests the oracle verdict for a submitted claim.
// The claim moves to UNDER_REVIEW; a fraud alert is raised when the
// score crosses the alert threshold or the oracle demands a field
// investigation. Low-score claims with no investigation flag are
// approved immediately for the full claimed amount and paid out in the
// same call.
func (e *Engine) SubmitFraudAnalysis(caller string, claimID uint64, req models.FraudAnalysisRequest) error {
	e.mu.Lock()

	if err := e.requireRunningLocked(); err != nil {
		e.mu.Unlock()
		return err
	}
	if caller != e.cfg.OracleID {
		e.mu.Unlock()
		return fmt.Errorf("%w: only the oracle may submit fraud analysis", ErrUnauthorized)
	}
	if req.FraudScore < models.FraudScoreMin || req.FraudScore > models.FraudScoreMax {
		e.mu.Unlock()
		return fmt.Errorf("%w: fraud score %d out of range", ErrInvalidInput, req.FraudScore)
	}
	claim, ok := e.claims[claimID]
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrClaimNotFound, claimID)
	}
	if claim.Status != models.ClaimSubmitted {
		e.mu.Unlock()
		return fmt.Errorf("%w: claim %d is %s, want %s", ErrWrongClaimState, claimID, claim.Status, models.ClaimSubmitted)
	}

	claim.FraudScore = req.FraudScore
	claim.AIReportHandle = req.AIReportHandle
	claim.Status = models.ClaimUnderReview
	e.record(models.EntryClaimUnderReview, func(entry *models.JournalEntry) {
		entry.Claim = snapshotClaim(claim)
	})

	if req.FraudScore > alertThreshold || req.RequiresInvestigation {
		e.raiseAlertLocked(claim, req)
	}

	var plan *payoutPlan
	if req.FraudScore < autoApproveThreshold && !req.RequiresInvestigation {
		var err error
		plan, err = e.approveLocked(claim, claim.ClaimedAmount)
		if err != nil {
			e.mu.Unlock()
			return err
		}
	}
	e.mu.Unlock()

	if plan != nil {
		return e.settle(plan)
	}
	return nil
}

// SubmitInvestigationReport ingests the investigator verdict for a
// claim under review. Approval with a positive amount pays the claim
// out in the same call; anything else rejects it.
func (e *Engine) SubmitInvestigationReport(caller string, claimID uint64, req models.InvestigationReportRequest) error {
	e.mu.Lock()

	if err := e.requireRunningLocked(); err != nil {
		e.mu.Unlock()
		return err
	}
	if caller != e.cfg.InvestigatorID {
		e.mu.Unlock()
		return fmt.Errorf("%w: only the investigator may submit reports", ErrUnauthorized)
	}
	claim, ok := e.claims[claimID]
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrClaimNotFound, claimID)
	}
	if claim.Status != models.ClaimUnderReview {
		e.mu.Unlock()
		return fmt.Errorf("%w: claim %d is %s, want %s", ErrWrongClaimState, claimID, claim.Status, models.ClaimUnderReview)
	}

	now := e.now().Unix()
	investigator := caller
	report := req.Report
	claim.InvestigatorID = &investigator
	claim.InvestigatedAt = &now
	claim.InvestigationReport = &report

	var plan *payoutPlan
	if req.Approved && req.ApprovedAmount > 0 {
		var err error
		plan, err = e.approveLocked(claim, req.ApprovedAmount)
		if err != nil {
			e.mu.Unlock()
			return err
		}
	} else {
		e.rejectLocked(claim, "insufficient evidence")
	}
	e.mu.Unlock()

	if plan != nil {
		return e.settle(plan)
	}
	return nil
}

// raiseAlertLocked appends a fraud alert for the claim with the next
// sequential alert id.
func (e *Engine) raiseAlertLocked(claim *models.Claim, req models.FraudAnalysisRequest) {
	alert := &models.FraudAlert{
		ID:                    e.nextAlertID,
		FarmerID:              claim.FarmerID,
		PolicyID:              claim.PolicyID,
		ClaimID:               claim.ID,
		Indicators:            append([]string(nil), req.Indicators...),
		RiskLevel:             riskLevelFor(req.FraudScore),
		RequiresInvestigation: req.RequiresInvestigation,
		CreatedAt:             e.now().Unix(),
	}
	e.nextAlertID++
	e.alerts[alert.ID] = alert

	e.record(models.EntryFraudAlertRaised, func(entry *models.JournalEntry) {
		entry.Alert = snapshotAlert(alert)
	})
}

// approveLocked moves the claim to APPROVED with the given payout
// amount, then commits the payout. The returned plan is settled by the
// caller after the lock is released; the approval itself survives a
// failed settlement.
func (e *Engine) approveLocked(claim *models.Claim, amount uint64) (*payoutPlan, error) {
	claim.Status = models.ClaimApproved
	claim.PayoutAmount = amount
	e.record(models.EntryClaimApproved, func(entry *models.JournalEntry) {
		entry.Claim = snapshotClaim(claim)
	})
	return e.commitPayoutLocked(claim)
}

// rejectLocked moves the claim to REJECTED, escalating to FRAUDULENT
// when the stored fraud score crossed the fraudulent threshold. The
// escalation costs the farmer trust and can blacklist them for good.
func (e *Engine) rejectLocked(claim *models.Claim, reason string) {
	claim.Status = models.ClaimRejected
	claim.RejectionReason = &reason
	e.record(models.EntryClaimRejected, func(entry *models.JournalEntry) {
		entry.Claim = snapshotClaim(claim)
	})

	if claim.FraudScore <= fraudulentThreshold {
		return
	}
	claim.Status = models.ClaimFraudulent
	e.record(models.EntryClaimFraudulent, func(entry *models.JournalEntry) {
		entry.Claim = snapshotClaim(claim)
	})

	farmer, ok := e.farmers[claim.FarmerID]
	if !ok {
		return
	}
	e.decreaseTrustLocked(farmer, trustPenalty)
	e.record(models.EntryTrustAdjusted, func(entry *models.JournalEntry) {
		entry.Farmer = snapshotFarmer(farmer)
	})
	if farmer.TrustScore < e.cfg.MinimumTrustScore && !farmer.IsBlacklisted {
		farmer.IsBlacklisted = true
		e.record(models.EntryFarmerBlacklisted, func(entry *models.JournalEntry) {
			entry.Farmer = snapshotFarmer(farmer)
		})
	}
}

// GetFraudAlert returns a snapshot of an alert record.
func (e *Engine) GetFraudAlert(id uint64) (models.FraudAlert, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	alert, ok := e.alerts[id]
	if !ok {
		return models.FraudAlert{}, fmt.Errorf("%w: %d", ErrAlertNotFound, id)
	}
	return *snapshotAlert(alert), nil
}

// FraudAlertIDs lists every alert id in ascending order.
func (e *Engine) FraudAlertIDs() []uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	ids := make([]uint64, 0, len(e.alerts))
	for id := range e.alerts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
