package models

// ============================================================================
// FARMER IDENTITY
// ============================================================================

// Farmer is one registered participant. Records are created once and
// never deleted; TrustScore and IsBlacklisted are the only mutable
// fields and only the engine mutates them.
type Farmer struct {
	ID            string `json:"id" db:"id"`
	IdentityHash  string `json:"identity_hash" db:"identity_hash"`
	Name          string `json:"name" db:"name"`
	Location      string `json:"location" db:"location"`
	TrustScore    int64  `json:"trust_score" db:"trust_score"`
	IsBlacklisted bool   `json:"is_blacklisted" db:"is_blacklisted"`
	RegisteredAt  int64  `json:"registered_at" db:"registered_at"`
}
