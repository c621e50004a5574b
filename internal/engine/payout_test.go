package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayanth2212/AgriSure/internal/models"
)

// approvedClaim drives a claim to APPROVED with a failed first transfer
// so payout tests can exercise ExecutePayout directly.
func approvedClaim(t *testing.T, eng *Engine, transferor *fakeTransferor) uint64 {
	t.Helper()
	claimID := submittedClaim(t, eng, 40_000)

	transferor.failErr = errors.New("disbursement channel down")
	err := eng.SubmitFraudAnalysis(testOracle, claimID, analysisRequest(150))
	require.ErrorIs(t, err, ErrTransferFailed)
	transferor.failErr = nil
	transferor.calls = nil

	claim, err := eng.GetClaim(claimID)
	require.NoError(t, err)
	require.Equal(t, models.ClaimApproved, claim.Status)
	return claimID
}

// ============================================================================
// PAYOUT EXECUTION
// ============================================================================

func TestExecutePayout_SettlesApprovedClaim(t *testing.T) {
	eng, transferor := newTestEngine(t)
	claimID := approvedClaim(t, eng, transferor)
	balanceBefore := eng.Balance()

	require.NoError(t, eng.ExecutePayout(claimID))

	claim, err := eng.GetClaim(claimID)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimPaid, claim.Status)
	require.NotNil(t, claim.PayoutDate)
	assert.Equal(t, int64(1_700_000_000), *claim.PayoutDate)

	require.Len(t, transferor.calls, 1)
	assert.Equal(t, transferCall{recipient: testFarmer, amount: 40_000}, transferor.calls[0])
	assert.Equal(t, balanceBefore-40_000, eng.Balance())
}

func TestExecutePayout_RequiresApprovedStatus(t *testing.T) {
	eng, _ := newTestEngine(t)
	claimID := submittedClaim(t, eng, 40_000)

	err := eng.ExecutePayout(claimID)
	require.ErrorIs(t, err, ErrNotApproved)
}

func TestExecutePayout_SecondCallFails(t *testing.T) {
	eng, _ := newTestEngine(t)
	claimID := submittedClaim(t, eng, 40_000)
	require.NoError(t, eng.SubmitFraudAnalysis(testOracle, claimID, analysisRequest(150)))

	claim, err := eng.GetClaim(claimID)
	require.NoError(t, err)
	require.Equal(t, models.ClaimPaid, claim.Status)

	// The claim is no longer APPROVED, so a second payout is impossible.
	err = eng.ExecutePayout(claimID)
	require.ErrorIs(t, err, ErrNotApproved)
}

// ============================================================================
// FAILURE ATOMICITY
// ============================================================================

func TestExecutePayout_FailedTransferRollsBackEverything(t *testing.T) {
	eng, transferor := newTestEngine(t)
	claimID := approvedClaim(t, eng, transferor)
	balanceBefore := eng.Balance()
	farmerBefore, err := eng.GetFarmer(testFarmer)
	require.NoError(t, err)

	transferor.failErr = errors.New("disbursement channel down")
	err = eng.ExecutePayout(claimID)
	require.ErrorIs(t, err, ErrTransferFailed)

	claim, err := eng.GetClaim(claimID)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimApproved, claim.Status, "claim returns to APPROVED")
	assert.Nil(t, claim.PayoutDate)
	assert.Equal(t, balanceBefore, eng.Balance(), "balance deduction is undone")

	farmerAfter, err := eng.GetFarmer(testFarmer)
	require.NoError(t, err)
	assert.Equal(t, farmerBefore.TrustScore, farmerAfter.TrustScore, "trust bonus is undone")

	// The claim stays retryable.
	transferor.failErr = nil
	require.NoError(t, eng.ExecutePayout(claimID))
	claim, err = eng.GetClaim(claimID)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimPaid, claim.Status)
	assert.Equal(t, farmerBefore.TrustScore+20, mustFarmer(t, eng, testFarmer).TrustScore)
}

func TestExecutePayout_InsufficientReserveFails(t *testing.T) {
	eng, transferor := newTestEngine(t)
	claimID := approvedClaim(t, eng, transferor)

	// Drain the reserve; the payout must now fail before any mutation.
	_, err := eng.Withdraw(testAdmin)
	require.NoError(t, err)

	err = eng.ExecutePayout(claimID)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	claim, err := eng.GetClaim(claimID)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimApproved, claim.Status)
	assert.Nil(t, claim.PayoutDate)
}

// ============================================================================
// REENTRANCY
// ============================================================================

func TestExecutePayout_ReentrantCallIsRejected(t *testing.T) {
	eng, transferor := newTestEngine(t)
	claimID := approvedClaim(t, eng, transferor)

	var reentrantErr error
	var observedStatus models.ClaimStatus
	transferor.reenter = func() {
		// State is already committed when the untrusted callee runs.
		claim, err := eng.GetClaim(claimID)
		require.NoError(t, err)
		observedStatus = claim.Status

		reentrantErr = eng.ExecutePayout(claimID)
	}

	require.NoError(t, eng.ExecutePayout(claimID))

	assert.Equal(t, models.ClaimPaid, observedStatus, "reentrant caller observes a non-APPROVED claim")
	require.Error(t, reentrantErr)
	assert.True(t,
		errors.Is(reentrantErr, ErrNotApproved) || errors.Is(reentrantErr, ErrReentrantPayout),
		"reentrant payout is rejected, got: %v", reentrantErr)
	assert.Len(t, transferor.calls, 1, "only one transfer ever leaves the engine")
}

func TestCommitPayout_GuardBlocksWhileInFlight(t *testing.T) {
	eng, transferor := newTestEngine(t)
	claimID := approvedClaim(t, eng, transferor)

	eng.mu.Lock()
	eng.payoutInFlight = true
	eng.mu.Unlock()

	err := eng.ExecutePayout(claimID)
	require.ErrorIs(t, err, ErrReentrantPayout)

	eng.mu.Lock()
	eng.payoutInFlight = false
	eng.mu.Unlock()
	require.NoError(t, eng.ExecutePayout(claimID))
}

// ============================================================================
// JOURNAL
// ============================================================================

func TestPayout_JournalRecordsOnlyFinalState(t *testing.T) {
	eng, transferor := newTestEngine(t)
	journal := &recordingJournal{}
	eng.journal = journal
	claimID := approvedClaim(t, eng, transferor)

	journal.entries = nil
	transferor.failErr = errors.New("disbursement channel down")
	require.ErrorIs(t, eng.ExecutePayout(claimID), ErrTransferFailed)
	assert.Empty(t, journal.entries, "rolled-back payout leaves no journal trace")

	transferor.failErr = nil
	require.NoError(t, eng.ExecutePayout(claimID))
	kinds := journal.kinds()
	require.Contains(t, kinds, models.EntryClaimPaid)
	require.Contains(t, kinds, models.EntryTrustAdjusted)
	require.Contains(t, kinds, models.EntryBalanceChanged)
}

func mustFarmer(t *testing.T, eng *Engine, id string) models.Farmer {
	t.Helper()
	farmer, err := eng.GetFarmer(id)
	require.NoError(t, err)
	return farmer
}
