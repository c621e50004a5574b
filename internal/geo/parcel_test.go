package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
)

func TestParcelKey_Deterministic(t *testing.T) {
	p := Parcel{LatE6: 10_762_622, LonE6: 106_660_172, AreaSqm: 5_000}
	assert.Equal(t, "geo:10762622:106660172:5000", p.Key())
	assert.Equal(t, p.Key(), p.Key())
}

func TestParcelKey_SignedCoordinates(t *testing.T) {
	p := Parcel{LatE6: -33_868_820, LonE6: 151_209_290, AreaSqm: 750}
	assert.Equal(t, "geo:-33868820:151209290:750", p.Key())

	q := Parcel{LatE6: 51_507_351, LonE6: -127_579, AreaSqm: 750}
	assert.Equal(t, "geo:51507351:-127579:750", q.Key())
}

func TestParcelKey_DiscriminatesAllComponents(t *testing.T) {
	base := Parcel{LatE6: 1, LonE6: 2, AreaSqm: 3}
	variants := []Parcel{
		{LatE6: 2, LonE6: 2, AreaSqm: 3},
		{LatE6: 1, LonE6: 3, AreaSqm: 3},
		{LatE6: 1, LonE6: 2, AreaSqm: 4},
		// Sign matters: (-1, 2) and (1, -2) are different fields.
		{LatE6: -1, LonE6: 2, AreaSqm: 3},
	}
	for _, v := range variants {
		assert.NotEqual(t, base.Key(), v.Key(), "%+v must not collide with %+v", v, base)
	}
}

func TestParcelValidate(t *testing.T) {
	require.NoError(t, Parcel{LatE6: 90_000_000, LonE6: -180_000_000, AreaSqm: 1}.Validate())

	assert.Error(t, Parcel{LatE6: 90_000_001, LonE6: 0, AreaSqm: 1}.Validate())
	assert.Error(t, Parcel{LatE6: 0, LonE6: 180_000_001, AreaSqm: 1}.Validate())
	assert.Error(t, Parcel{LatE6: 0, LonE6: 0, AreaSqm: 0}.Validate())
}

func TestParcelPoint(t *testing.T) {
	p := Parcel{LatE6: 10_762_622, LonE6: 106_660_172, AreaSqm: 5_000}
	point := p.Point()
	require.NotNil(t, point)
	assert.Equal(t, 4326, point.SRID())
	assert.InDelta(t, 106.660172, point.X(), 1e-9)
	assert.InDelta(t, 10.762622, point.Y(), 1e-9)
}

func TestParcelEWKB_RoundTrips(t *testing.T) {
	p := Parcel{LatE6: -33_868_820, LonE6: 151_209_290, AreaSqm: 750}

	data, err := p.EWKB()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := ewkb.Unmarshal(data)
	require.NoError(t, err)
	point, ok := decoded.(*geom.Point)
	require.True(t, ok, "decoded geometry is a point")
	assert.Equal(t, 4326, point.SRID())
	assert.InDelta(t, 151.209290, point.X(), 1e-9)
	assert.InDelta(t, -33.868820, point.Y(), 1e-9)
}
