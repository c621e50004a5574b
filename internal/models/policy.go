package models

// ============================================================================
// LAND-PARCEL POLICIES
// ============================================================================

// Policy insures a single land parcel for one coverage window.
// Coordinates are signed fixed-point degrees scaled by 1e6. Status is
// the only field that changes after issuance.
type Policy struct {
	ID             uint64       `json:"id" db:"id"`
	FarmerID       string       `json:"farmer_id" db:"farmer_id"`
	CropType       string       `json:"crop_type" db:"crop_type"`
	AreaSqm        uint64       `json:"area_sqm" db:"area_sqm"`
	LatE6          int64        `json:"lat_e6" db:"lat_e6"`
	LonE6          int64        `json:"lon_e6" db:"lon_e6"`
	SowingDate     int64        `json:"sowing_date" db:"sowing_date"`
	CoverageAmount uint64       `json:"coverage_amount" db:"coverage_amount"`
	PremiumPaid    uint64       `json:"premium_paid" db:"premium_paid"`
	StartDate      int64        `json:"start_date" db:"start_date"`
	EndDate        int64        `json:"end_date" db:"end_date"`
	Status         PolicyStatus `json:"status" db:"status"`
	GeoHash        string       `json:"geo_hash" db:"geo_hash"`
}

// CreatePolicyRequest carries the farmer-supplied issuance parameters.
// AmountPaid is the value attached to the call and must cover the
// computed premium.
type CreatePolicyRequest struct {
	CropType       string `json:"crop_type"`
	AreaSqm        uint64 `json:"area_sqm"`
	LatE6          int64  `json:"lat_e6"`
	LonE6          int64  `json:"lon_e6"`
	SowingDate     int64  `json:"sowing_date"`
	CoverageAmount uint64 `json:"coverage_amount"`
	DurationDays   uint64 `json:"duration_days"`
	AmountPaid     uint64 `json:"amount_paid"`
}
