package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWKTPoint(t *testing.T) {
	shape, err := ParseWKT("POINT (2.3522 48.8566)")
	require.NoError(t, err)
	assert.Equal(t, ShapeKindPoint, shape.Kind)
	require.Len(t, shape.Points, 1)
	assert.InDelta(t, 48.8566, shape.Points[0].Lat, 1e-9)
	assert.InDelta(t, 2.3522, shape.Points[0].Lon, 1e-9)
}

func TestParseWKTLineString(t *testing.T) {
	shape, err := ParseWKT("LINESTRING (2.35 48.85, 2.36 48.86, 2.37 48.87)")
	require.NoError(t, err)
	assert.Equal(t, ShapeKindLineString, shape.Kind)
	require.Len(t, shape.Points, 3)
	assert.InDelta(t, 48.87, shape.Points[2].Lat, 1e-9)
}

func TestParseWKTRejectsUnknownGeometry(t *testing.T) {
	_, err := ParseWKT("POLYGON ((0 0, 1 0, 1 1, 0 0))")
	assert.Error(t, err)
}

func TestParseWKTRejectsMalformed(t *testing.T) {
	for _, bad := range []string{
		"POINT 2.3 48.8",
		"POINT (2.3)",
		"LINESTRING (2.3 48.8)",
		"",
	} {
		_, err := ParseWKT(bad)
		assert.Error(t, err, bad)
	}
}

func TestWriteWKTRoundTrip(t *testing.T) {
	for _, wkt := range []string{
		"POINT (2.3522 48.8566)",
		"LINESTRING (2.35 48.85, 2.36 48.86)",
	} {
		shape, err := ParseWKT(wkt)
		require.NoError(t, err)
		again, err := ParseWKT(WriteWKT(shape))
		require.NoError(t, err)
		assert.Equal(t, shape, again)
	}
}
