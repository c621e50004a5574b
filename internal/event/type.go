package event

// ClaimEventModel is the lifecycle notification consumed by the
// notification service.
type ClaimEventModel struct {
	ClaimID  uint64 `json:"claim_id"`
	PolicyID uint64 `json:"policy_id"`
	FarmerID string `json:"farmer_id"`
	Status   string `json:"status"`
	Amount   uint64 `json:"amount,omitempty"`
}

// DisbursementModel is the payout instruction consumed by the external
// disbursement service. The engine has already committed the claim as
// paid when this message is published.
type DisbursementModel struct {
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

const (
	ClaimEventQueue   string = "claim_lifecycle_events"
	DisbursementQueue string = "payout_disbursements"
)
