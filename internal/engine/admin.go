package engine

import (
	"fmt"
	"log/slog"
)

// Administrative entry points. These stay available while the engine is
// paused; nothing else does.

func (e *Engine) requireAdminLocked(caller string) error {
	if caller != e.cfg.AdminID {
		return fmt.Errorf("%w: admin only", ErrUnauthorized)
	}
	return nil
}

// Pause stops every non-administrative mutating entry point.
func (e *Engine) Pause(caller string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireAdminLocked(caller); err != nil {
		return err
	}
	e.paused = true
	slog.Warn("engine paused", "admin", caller)
	return nil
}

// Unpause resumes normal operation.
func (e *Engine) Unpause(caller string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireAdminLocked(caller); err != nil {
		return err
	}
	e.paused = false
	slog.Info("engine unpaused", "admin", caller)
	return nil
}

// Paused reports the pause switch.
func (e *Engine) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

// RotateOracle replaces the configured oracle identity.
func (e *Engine) RotateOracle(caller, newOracleID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireAdminLocked(caller); err != nil {
		return err
	}
	if newOracleID == "" {
		return fmt.Errorf("%w: oracle id is empty", ErrInvalidInput)
	}
	old := e.cfg.OracleID
	e.cfg.OracleID = newOracleID
	slog.Info("oracle rotated", "old", old, "new", newOracleID)
	return nil
}

// Deposit capitalizes the payout reserve. Premiums alone do not cover
// approved claims; the insurer tops the pool up through this entry
// point.
func (e *Engine) Deposit(caller string, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.requireAdminLocked(caller); err != nil {
		return err
	}
	if amount == 0 {
		return fmt.Errorf("%w: deposit amount must be positive", ErrInvalidInput)
	}
	e.balance += amount
	e.recordBalanceLocked()
	slog.Info("reserve deposited", "admin", caller, "amount", amount)
	return nil
}

// Withdraw transfers the engine's entire held balance to the admin. The
// balance is zeroed before the transfer and restored if it fails.
func (e *Engine) Withdraw(caller string) (uint64, error) {
	e.mu.Lock()
	if err := e.requireAdminLocked(caller); err != nil {
		e.mu.Unlock()
		return 0, err
	}
	amount := e.balance
	if amount == 0 {
		e.mu.Unlock()
		return 0, fmt.Errorf("%w: balance is zero", ErrInsufficientFunds)
	}
	e.balance = 0
	e.mu.Unlock()

	if err := e.transferor.Transfer(caller, amount); err != nil {
		e.mu.Lock()
		e.balance += amount
		e.mu.Unlock()
		return 0, fmt.Errorf("%w: withdraw: %v", ErrTransferFailed, err)
	}
	e.mu.Lock()
	e.recordBalanceLocked()
	e.mu.Unlock()
	slog.Info("balance withdrawn", "admin", caller, "amount", amount)
	return amount, nil
}
