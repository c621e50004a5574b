package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayanth2212/AgriSure/internal/models"
)

// ============================================================================
// PAUSE SWITCH
// ============================================================================

func TestPause_BlocksMutatingEntryPoints(t *testing.T) {
	eng, _ := newTestEngine(t)
	registerTestFarmer(t, eng, testFarmer)
	policyID := createTestPolicy(t, eng, testFarmer, 0)
	claimID := submitTestClaim(t, eng, testFarmer, policyID, 500)

	require.NoError(t, eng.Pause(testAdmin))
	require.True(t, eng.Paused())

	require.ErrorIs(t, eng.RegisterFarmer(testFarmer2, "h", "n", "l"), ErrPaused)
	_, err := eng.CreatePolicy(testFarmer, testPolicyRequest())
	require.ErrorIs(t, err, ErrPaused)
	_, err = eng.SubmitClaim(testFarmer, models.SubmitClaimRequest{PolicyID: policyID, ClaimedAmount: 1})
	require.ErrorIs(t, err, ErrPaused)
	require.ErrorIs(t, eng.SubmitFraudAnalysis(testOracle, claimID, analysisRequest(100)), ErrPaused)
	require.ErrorIs(t, eng.SubmitInvestigationReport(testInvestigator, claimID, models.InvestigationReportRequest{}), ErrPaused)
	require.ErrorIs(t, eng.ExecutePayout(claimID), ErrPaused)

	// Reads keep working while paused.
	_, err = eng.GetClaim(claimID)
	require.NoError(t, err)

	require.NoError(t, eng.Unpause(testAdmin))
	require.False(t, eng.Paused())
	require.NoError(t, eng.RegisterFarmer(testFarmer2, "h", "n", "l"))
}

func TestPause_AdminOnly(t *testing.T) {
	eng, _ := newTestEngine(t)
	require.ErrorIs(t, eng.Pause(testFarmer), ErrUnauthorized)
	require.ErrorIs(t, eng.Unpause(testOracle), ErrUnauthorized)
	assert.False(t, eng.Paused())
}

// ============================================================================
// ORACLE ROTATION
// ============================================================================

func TestRotateOracle(t *testing.T) {
	eng, _ := newTestEngine(t)
	claimID := submittedClaim(t, eng, 10_000)

	require.ErrorIs(t, eng.RotateOracle(testOracle, "acct-new-oracle"), ErrUnauthorized)
	require.ErrorIs(t, eng.RotateOracle(testAdmin, ""), ErrInvalidInput)

	require.NoError(t, eng.RotateOracle(testAdmin, "acct-new-oracle"))

	// The old oracle loses access, the new one gains it.
	require.ErrorIs(t, eng.SubmitFraudAnalysis(testOracle, claimID, analysisRequest(400)), ErrUnauthorized)
	require.NoError(t, eng.SubmitFraudAnalysis("acct-new-oracle", claimID, analysisRequest(400)))
}

// ============================================================================
// TREASURY
// ============================================================================

func TestDeposit(t *testing.T) {
	eng, _ := newTestEngine(t)

	require.ErrorIs(t, eng.Deposit(testFarmer, 100), ErrUnauthorized)
	require.ErrorIs(t, eng.Deposit(testAdmin, 0), ErrInvalidInput)

	require.NoError(t, eng.Deposit(testAdmin, 1_000))
	require.NoError(t, eng.Deposit(testAdmin, 500))
	assert.Equal(t, uint64(1_500), eng.Balance())
}

func TestWithdraw_TransfersEntireBalance(t *testing.T) {
	eng, transferor := newTestEngine(t)
	require.NoError(t, eng.Deposit(testAdmin, 2_500))

	amount, err := eng.Withdraw(testAdmin)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_500), amount)
	assert.Equal(t, uint64(0), eng.Balance())
	require.Len(t, transferor.calls, 1)
	assert.Equal(t, transferCall{recipient: testAdmin, amount: 2_500}, transferor.calls[0])

	// Nothing left to withdraw.
	_, err = eng.Withdraw(testAdmin)
	require.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestWithdraw_FailedTransferRestoresBalance(t *testing.T) {
	eng, transferor := newTestEngine(t)
	require.NoError(t, eng.Deposit(testAdmin, 2_500))

	transferor.failErr = errors.New("disbursement channel down")
	_, err := eng.Withdraw(testAdmin)
	require.ErrorIs(t, err, ErrTransferFailed)
	assert.Equal(t, uint64(2_500), eng.Balance())
}

func TestWithdraw_AdminOnly(t *testing.T) {
	eng, _ := newTestEngine(t)
	_, err := eng.Withdraw(testOracle)
	require.ErrorIs(t, err, ErrUnauthorized)
}
