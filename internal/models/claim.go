package models

// ============================================================================
// DAMAGE CLAIMS
// ============================================================================

// Claim tracks one damage claim from submission to a terminal state.
// EvidenceHandle and AIReportHandle are opaque references into external
// storage; the engine never dereferences them.
type Claim struct {
	ID                  uint64      `json:"id" db:"id"`
	PolicyID            uint64      `json:"policy_id" db:"policy_id"`
	FarmerID            string      `json:"farmer_id" db:"farmer_id"`
	DamageType          DamageType  `json:"damage_type" db:"damage_type"`
	ClaimDate           int64       `json:"claim_date" db:"claim_date"`
	ClaimedAmount       uint64      `json:"claimed_amount" db:"claimed_amount"`
	EvidenceHandle      string      `json:"evidence_handle" db:"evidence_handle"`
	AIReportHandle      string      `json:"ai_report_handle" db:"ai_report_handle"`
	FraudScore          int64       `json:"fraud_score" db:"fraud_score"`
	Status              ClaimStatus `json:"status" db:"status"`
	InvestigatorID      *string     `json:"investigator_id,omitempty" db:"investigator_id"`
	InvestigatedAt      *int64      `json:"investigated_at,omitempty" db:"investigated_at"`
	InvestigationReport *string     `json:"investigation_report,omitempty" db:"investigation_report"`
	RejectionReason     *string     `json:"rejection_reason,omitempty" db:"rejection_reason"`
	PayoutAmount        uint64      `json:"payout_amount" db:"payout_amount"`
	PayoutDate          *int64      `json:"payout_date,omitempty" db:"payout_date"`
}

// SubmitClaimRequest carries the farmer-supplied claim parameters.
type SubmitClaimRequest struct {
	PolicyID       uint64     `json:"policy_id"`
	DamageType     DamageType `json:"damage_type"`
	ClaimedAmount  uint64     `json:"claimed_amount"`
	EvidenceHandle string     `json:"evidence_handle"`
}

// FraudAnalysisRequest is the oracle verdict for a submitted claim.
type FraudAnalysisRequest struct {
	FraudScore            int64    `json:"fraud_score"`
	AIReportHandle        string   `json:"ai_report_handle"`
	Indicators            []string `json:"indicators"`
	RequiresInvestigation bool     `json:"requires_investigation"`
}

// InvestigationReportRequest is the investigator verdict for a claim
// under review.
type InvestigationReportRequest struct {
	Approved       bool   `json:"approved"`
	ApprovedAmount uint64 `json:"approved_amount"`
	Report         string `json:"report"`
}
