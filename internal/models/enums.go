package models

type PolicyStatus string

const (
	PolicyActive    PolicyStatus = "active"
	PolicyClaimed   PolicyStatus = "claimed"
	PolicyExpired   PolicyStatus = "expired"
	PolicyCancelled PolicyStatus = "cancelled"
)

type ClaimStatus string

const (
	ClaimSubmitted   ClaimStatus = "submitted"
	ClaimUnderReview ClaimStatus = "under_review"
	ClaimApproved    ClaimStatus = "approved"
	ClaimRejected    ClaimStatus = "rejected"
	ClaimPaid        ClaimStatus = "paid"
	ClaimFraudulent  ClaimStatus = "fraudulent"
)

// IsTerminal reports whether no further transition can leave the status.
func (s ClaimStatus) IsTerminal() bool {
	return s == ClaimPaid || s == ClaimRejected || s == ClaimFraudulent
}

// RiskLevel classifies a claim by its fraud score. It drives alerting
// only, never state transitions.
type RiskLevel int

const (
	RiskLow      RiskLevel = 1
	RiskMedium   RiskLevel = 2
	RiskHigh     RiskLevel = 3
	RiskCritical RiskLevel = 4
)

type DamageType string

const (
	DamageDrought DamageType = "drought"
	DamageFlood   DamageType = "flood"
	DamageHail    DamageType = "hail"
	DamagePest    DamageType = "pest"
	DamageFire    DamageType = "fire"
	DamageOther   DamageType = "other"
)

// Trust score bounds. Every adjustment clamps into this range.
const (
	TrustScoreMin     int64 = 0
	TrustScoreMax     int64 = 1000
	TrustScoreInitial int64 = 700
)

// Fraud score bounds as supplied by the oracle.
const (
	FraudScoreMin int64 = 0
	FraudScoreMax int64 = 1000
)
