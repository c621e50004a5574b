package models

import (
	"time"

	"github.com/google/uuid"
)

// JournalEntryKind names the ledger mutation a journal entry mirrors.
type JournalEntryKind string

const (
	EntryFarmerRegistered  JournalEntryKind = "farmer_registered"
	EntryTrustAdjusted     JournalEntryKind = "trust_adjusted"
	EntryFarmerBlacklisted JournalEntryKind = "farmer_blacklisted"
	EntryPolicyCreated     JournalEntryKind = "policy_created"
	EntryClaimSubmitted    JournalEntryKind = "claim_submitted"
	EntryClaimUnderReview  JournalEntryKind = "claim_under_review"
	EntryClaimApproved     JournalEntryKind = "claim_approved"
	EntryClaimRejected     JournalEntryKind = "claim_rejected"
	EntryClaimFraudulent   JournalEntryKind = "claim_fraudulent"
	EntryClaimPaid         JournalEntryKind = "claim_paid"
	EntryFraudAlertRaised  JournalEntryKind = "fraud_alert_raised"
	EntryBalanceChanged    JournalEntryKind = "balance_changed"
)

// JournalEntry is an outward mirror of one committed ledger mutation.
// The record pointers are snapshot copies taken at commit time, so the
// persistor can write them without racing the ledger. At most one of
// each record type is set per entry.
type JournalEntry struct {
	ID     uuid.UUID        `json:"id"`
	Kind   JournalEntryKind `json:"kind"`
	At     time.Time        `json:"at"`
	Farmer *Farmer          `json:"farmer,omitempty"`
	Policy *Policy          `json:"policy,omitempty"`
	Claim  *Claim           `json:"claim,omitempty"`
	Alert  *FraudAlert      `json:"alert,omitempty"`

	// Balance carries the engine's held balance after the mutation,
	// set on balance_changed entries only.
	Balance *uint64 `json:"balance,omitempty"`
}
