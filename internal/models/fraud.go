package models

// ============================================================================
// FRAUD ALERTS
// ============================================================================

// FraudAlert is an append-only audit record raised when the oracle
// verdict for a claim crosses the alerting thresholds. Alerts are never
// mutated after creation.
type FraudAlert struct {
	ID                    uint64    `json:"id" db:"id"`
	FarmerID              string    `json:"farmer_id" db:"farmer_id"`
	PolicyID              uint64    `json:"policy_id" db:"policy_id"`
	ClaimID               uint64    `json:"claim_id" db:"claim_id"`
	Indicators            []string  `json:"indicators" db:"indicators"`
	RiskLevel             RiskLevel `json:"risk_level" db:"risk_level"`
	RequiresInvestigation bool      `json:"requires_investigation" db:"requires_investigation"`
	CreatedAt             int64     `json:"created_at" db:"created_at"`
}
