package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayanth2212/AgriSure/internal/models"
)

// ============================================================================
// POLICY ISSUANCE
// ============================================================================

func TestCreatePolicy_IssuesActivePolicy(t *testing.T) {
	eng, _ := newTestEngine(t)
	registerTestFarmer(t, eng, testFarmer)

	id, err := eng.CreatePolicy(testFarmer, testPolicyRequest())
	require.NoError(t, err)
	require.Equal(t, uint64(1), id, "policy ids are sequential from 1")

	policy, err := eng.GetPolicy(id)
	require.NoError(t, err)
	assert.Equal(t, models.PolicyActive, policy.Status)
	assert.Equal(t, testFarmer, policy.FarmerID)
	assert.Equal(t, int64(1_700_000_000), policy.StartDate)
	assert.Equal(t, int64(1_700_000_000+120*86400), policy.EndDate)
	assert.NotEmpty(t, policy.GeoHash)
	assert.True(t, eng.ParcelTaken(policy.GeoHash))
	assert.Equal(t, uint64(3_900), eng.Balance(), "attached premium is held by the engine")
}

func TestCreatePolicy_RequiresRegistration(t *testing.T) {
	eng, _ := newTestEngine(t)

	_, err := eng.CreatePolicy(testFarmer, testPolicyRequest())
	require.ErrorIs(t, err, ErrNotRegistered)
}

func TestCreatePolicy_RejectsBlacklistedFarmer(t *testing.T) {
	eng, _ := newTestEngine(t)
	registerTestFarmer(t, eng, testFarmer)
	eng.mu.Lock()
	eng.farmers[testFarmer].IsBlacklisted = true
	eng.mu.Unlock()

	_, err := eng.CreatePolicy(testFarmer, testPolicyRequest())
	require.ErrorIs(t, err, ErrBlacklisted)
}

func TestCreatePolicy_ValidatesInputs(t *testing.T) {
	eng, _ := newTestEngine(t)
	registerTestFarmer(t, eng, testFarmer)

	tests := []struct {
		name   string
		mutate func(*models.CreatePolicyRequest)
	}{
		{"zero coverage", func(r *models.CreatePolicyRequest) { r.CoverageAmount = 0 }},
		{"zero duration", func(r *models.CreatePolicyRequest) { r.DurationDays = 0 }},
		{"zero area", func(r *models.CreatePolicyRequest) { r.AreaSqm = 0 }},
		{"latitude out of range", func(r *models.CreatePolicyRequest) { r.LatE6 = 91_000_000 }},
		{"longitude out of range", func(r *models.CreatePolicyRequest) { r.LonE6 = -181_000_000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testPolicyRequest()
			tt.mutate(&req)
			_, err := eng.CreatePolicy(testFarmer, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Equal(t, uint64(0), eng.Balance(), "failed issuance holds no value")
}

func TestCreatePolicy_InsufficientPremiumFails(t *testing.T) {
	eng, _ := newTestEngine(t)
	registerTestFarmer(t, eng, testFarmer)

	req := testPolicyRequest()
	req.AmountPaid = 3_899 // one below the required 3 900 at trust 700
	_, err := eng.CreatePolicy(testFarmer, req)
	require.ErrorIs(t, err, ErrInsufficientPremium)

	req.AmountPaid = 10_000 // overpayment is accepted and held
	id, err := eng.CreatePolicy(testFarmer, req)
	require.NoError(t, err)
	policy, err := eng.GetPolicy(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000), policy.PremiumPaid)
}

// ============================================================================
// PARCEL DEDUPLICATION
// ============================================================================

func TestCreatePolicy_DuplicateParcelFails(t *testing.T) {
	eng, _ := newTestEngine(t)
	registerTestFarmer(t, eng, testFarmer)
	registerTestFarmer(t, eng, testFarmer2)

	_, err := eng.CreatePolicy(testFarmer, testPolicyRequest())
	require.NoError(t, err)

	// Same (lat, lon, area) from a different farmer still collides.
	_, err = eng.CreatePolicy(testFarmer2, testPolicyRequest())
	require.ErrorIs(t, err, ErrParcelTaken)

	// A different area on the same coordinates is a different parcel.
	req := testPolicyRequest()
	req.AreaSqm++
	_, err = eng.CreatePolicy(testFarmer2, req)
	require.NoError(t, err)
}

func TestParcelConsumption_SurvivesClaimLock(t *testing.T) {
	// Parcel keys are permanent: the policy leaving ACTIVE status does
	// not release its parcel.
	eng, _ := newTestEngine(t)
	registerTestFarmer(t, eng, testFarmer)

	policyID := createTestPolicy(t, eng, testFarmer, 0)
	submitTestClaim(t, eng, testFarmer, policyID, 500)

	policy, err := eng.GetPolicy(policyID)
	require.NoError(t, err)
	require.Equal(t, models.PolicyClaimed, policy.Status)

	_, err = eng.CreatePolicy(testFarmer, testPolicyRequest())
	require.ErrorIs(t, err, ErrParcelTaken)
}

// ============================================================================
// READS
// ============================================================================

func TestPolicyIDsByFarmer_AscendingAndFiltered(t *testing.T) {
	eng, _ := newTestEngine(t)
	registerTestFarmer(t, eng, testFarmer)
	registerTestFarmer(t, eng, testFarmer2)

	first := createTestPolicy(t, eng, testFarmer, 0)
	other := createTestPolicy(t, eng, testFarmer2, 1)
	second := createTestPolicy(t, eng, testFarmer, 2)

	assert.Equal(t, []uint64{first, second}, eng.PolicyIDsByFarmer(testFarmer))
	assert.Equal(t, []uint64{other}, eng.PolicyIDsByFarmer(testFarmer2))
	assert.Empty(t, eng.PolicyIDsByFarmer("acct-nobody"))
}
