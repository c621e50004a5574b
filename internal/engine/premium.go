package engine

// Premium computes the required premium for a coverage amount given the
// farmer's trust score. Pure integer arithmetic:
//
//	base      = coverage * 3 / 100
//	surcharge = base * ((1000 - trust) / 10) / 100
//
// A farmer at maximum trust pays the base rate; lower trust adds up to
// a 100% surcharge. cropType is part of the pricing interface but does
// not currently influence the formula; it is accepted as-is so the
// signature stays stable when crop risk weighting lands.
func Premium(coverage uint64, cropType string, trustScore int64) uint64 {
	_ = cropType

	base := coverage * 3 / 100
	trustAdjustmentPct := uint64(1000-clampTrust(trustScore)) / 10
	return base + base*trustAdjustmentPct/100
}

func clampTrust(trust int64) int64 {
	if trust < 0 {
		return 0
	}
	if trust > 1000 {
		return 1000
	}
	return trust
}
