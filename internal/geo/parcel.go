// Package geo derives the deterministic parcel keys used to prevent
// double-insuring the same field.
package geo

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
)

// Coordinates are fixed-point degrees scaled by 1e6 (WGS84).
const (
	coordScale = 1e6
	maxLatE6   = 90 * 1000000
	maxLonE6   = 180 * 1000000
)

// Parcel identifies one insured field by its center coordinate and area.
type Parcel struct {
	LatE6   int64
	LonE6   int64
	AreaSqm uint64
}

// Validate checks the coordinate range and that the parcel has a
// positive area.
func (p Parcel) Validate() error {
	if p.LatE6 < -maxLatE6 || p.LatE6 > maxLatE6 {
		return fmt.Errorf("latitude %s out of range", formatFixed(p.LatE6))
	}
	if p.LonE6 < -maxLonE6 || p.LonE6 > maxLonE6 {
		return fmt.Errorf("longitude %s out of range", formatFixed(p.LonE6))
	}
	if p.AreaSqm == 0 {
		return fmt.Errorf("parcel area must be positive")
	}
	return nil
}

// Key encodes (lat, lon, area) into the canonical parcel key. Two calls
// with the same inputs always produce the same key; the key never
// changes format because consumed keys are stored forever.
func (p Parcel) Key() string {
	return "geo:" + formatFixed(p.LatE6) + ":" + formatFixed(p.LonE6) + ":" + strconv.FormatUint(p.AreaSqm, 10)
}

// Point returns the parcel center as a WGS84 point in degrees.
func (p Parcel) Point() *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{
		float64(p.LonE6) / coordScale,
		float64(p.LatE6) / coordScale,
	}).SetSRID(4326)
}

// EWKB encodes the parcel center for geometry-aware storage. The
// durable mirror persists it alongside the raw coordinates so the data
// can be queried as geometry without re-deriving points.
func (p Parcel) EWKB() ([]byte, error) {
	data, err := ewkb.Marshal(p.Point(), binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("failed to encode parcel center: %w", err)
	}
	return data, nil
}

// formatFixed renders a fixed-point coordinate, handling the sign for
// both positive and negative values in one place.
func formatFixed(v int64) string {
	return strconv.FormatInt(v, 10)
}
