package engine

import "errors"

// Sentinel errors for every precondition the ledger enforces. Call
// sites wrap them with context; callers match with errors.Is.
var (
	ErrPaused             = errors.New("engine is paused")
	ErrUnauthorized       = errors.New("caller not authorized")
	ErrInvalidInput       = errors.New("invalid input")
	ErrAlreadyRegistered  = errors.New("farmer already registered")
	ErrNotRegistered      = errors.New("farmer not registered")
	ErrEmptyIdentityHash  = errors.New("identity hash is empty")
	ErrBlacklisted        = errors.New("farmer is blacklisted")
	ErrParcelTaken        = errors.New("land parcel already insured")
	ErrInsufficientPremium = errors.New("attached amount below required premium")
	ErrPolicyNotFound     = errors.New("policy not found")
	ErrNotPolicyOwner     = errors.New("caller does not own policy")
	ErrPolicyNotActive    = errors.New("policy is not active")
	ErrPolicyExpired      = errors.New("policy coverage period has ended")
	ErrAmountOverCoverage = errors.New("claimed amount exceeds coverage")
	ErrClaimNotFound      = errors.New("claim not found")
	ErrWrongClaimState    = errors.New("claim is not in the required state")
	ErrNotApproved        = errors.New("claim is not approved for payout")
	ErrReentrantPayout    = errors.New("payout already in flight")
	ErrInsufficientFunds  = errors.New("engine balance below payout amount")
	ErrAlertNotFound      = errors.New("fraud alert not found")
	ErrTransferFailed     = errors.New("value transfer failed")
)
