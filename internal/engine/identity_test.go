package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayanth2212/AgriSure/internal/models"
)

// ============================================================================
// REGISTRATION
// ============================================================================

func TestRegisterFarmer_CreatesRecord(t *testing.T) {
	eng, _ := newTestEngine(t)

	require.NoError(t, eng.RegisterFarmer(testFarmer, "hash-1", "Nguyen Van A", "Mekong Delta"))

	farmer, err := eng.GetFarmer(testFarmer)
	require.NoError(t, err)
	assert.Equal(t, models.TrustScoreInitial, farmer.TrustScore)
	assert.False(t, farmer.IsBlacklisted)
	assert.Equal(t, "hash-1", farmer.IdentityHash)
	assert.Equal(t, int64(1_700_000_000), farmer.RegisteredAt)
}

func TestRegisterFarmer_DuplicateFails(t *testing.T) {
	eng, _ := newTestEngine(t)
	registerTestFarmer(t, eng, testFarmer)

	err := eng.RegisterFarmer(testFarmer, "other-hash", "Someone Else", "Elsewhere")
	require.ErrorIs(t, err, ErrAlreadyRegistered)

	// The original record is untouched.
	farmer, err := eng.GetFarmer(testFarmer)
	require.NoError(t, err)
	assert.Equal(t, "hash-"+testFarmer, farmer.IdentityHash)
}

func TestRegisterFarmer_EmptyIdentityHashFails(t *testing.T) {
	eng, _ := newTestEngine(t)

	err := eng.RegisterFarmer(testFarmer, "", "No Hash", "Nowhere")
	require.ErrorIs(t, err, ErrEmptyIdentityHash)
	assert.False(t, eng.IsEligible(testFarmer))
}

func TestRegisterFarmer_EmptyIDFails(t *testing.T) {
	eng, _ := newTestEngine(t)
	require.ErrorIs(t, eng.RegisterFarmer("", "hash", "n", "l"), ErrInvalidInput)
}

// ============================================================================
// ELIGIBILITY
// ============================================================================

func TestIsEligible(t *testing.T) {
	eng, _ := newTestEngine(t)

	assert.False(t, eng.IsEligible(testFarmer), "unregistered farmer is not eligible")

	registerTestFarmer(t, eng, testFarmer)
	assert.True(t, eng.IsEligible(testFarmer))

	eng.mu.Lock()
	eng.farmers[testFarmer].IsBlacklisted = true
	eng.mu.Unlock()
	assert.False(t, eng.IsEligible(testFarmer), "blacklisted farmer is not eligible")
}

// ============================================================================
// TRUST CLAMPING
// ============================================================================

func TestTrustAdjustments_StayInRange(t *testing.T) {
	eng, _ := newTestEngine(t)
	registerTestFarmer(t, eng, testFarmer)

	eng.mu.Lock()
	farmer := eng.farmers[testFarmer]

	applied := eng.increaseTrustLocked(farmer, 400)
	assert.Equal(t, int64(300), applied, "increase clamps at the maximum")
	assert.Equal(t, models.TrustScoreMax, farmer.TrustScore)

	eng.decreaseTrustLocked(farmer, 1500)
	assert.Equal(t, models.TrustScoreMin, farmer.TrustScore, "decrease floors at zero, never negative")

	applied = eng.increaseTrustLocked(farmer, 20)
	assert.Equal(t, int64(20), applied)
	assert.Equal(t, int64(20), farmer.TrustScore)
	eng.mu.Unlock()
}
