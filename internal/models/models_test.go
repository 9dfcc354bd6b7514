package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/ewkb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoPointRoundTripThroughHexEWKB(t *testing.T) {
	p := NewGeoPoint(33.7741, -13.9626)

	v, err := p.Value()
	require.NoError(t, err)
	hexStr, ok := v.(string)
	require.True(t, ok)

	var got GeoPoint
	require.NoError(t, got.Scan(hexStr))
	assert.InDelta(t, 33.7741, got.Lng(), 1e-9)
	assert.InDelta(t, -13.9626, got.Lat(), 1e-9)
}

func TestGeoPointScanRawBytes(t *testing.T) {
	raw, err := ewkb.Marshal(orb.Point{35.0, -15.8}, SRIDWGS84)
	require.NoError(t, err)

	var got GeoPoint
	require.NoError(t, got.Scan(raw))
	assert.Equal(t, GeoPoint{35.0, -15.8}, got)
}

func TestGeoPointScanRejectsOtherGeometry(t *testing.T) {
	raw, err := ewkb.Marshal(orb.LineString{{0, 0}, {1, 1}}, SRIDWGS84)
	require.NoError(t, err)

	var got GeoPoint
	assert.Error(t, got.Scan(raw))
	assert.Error(t, got.Scan(42))
}

func TestLayerFileKeys(t *testing.T) {
	id := uuid.MustParse("7f0c5c1e-7b1d-4c55-9d43-1a7d2cbe01aa")
	rev := uuid.MustParse("0b6f3a52-31c4-4d8e-a7a0-52f1d6c0e9b3")
	dbf := LayerFileKey(id, rev, "roads.dbf")
	l := &Layer{ID: id, Shapefile: LayerFileKey(id, rev, "/tmp/roads.shp"), DbfFile: &dbf}

	assert.Equal(t, "shapefiles/7f0c5c1e-7b1d-4c55-9d43-1a7d2cbe01aa/0b6f3a52-31c4-4d8e-a7a0-52f1d6c0e9b3/roads.shp", l.Shapefile)
	assert.Equal(t, "trash/"+l.Shapefile, TrashKey(l.Shapefile))
	assert.Equal(t, []string{l.Shapefile, dbf}, l.FileKeys())

	k, ok := l.FileKey("dbf")
	assert.True(t, ok)
	assert.Equal(t, dbf, k)

	_, ok = l.FileKey("prj")
	assert.False(t, ok)
	_, ok = l.FileKey("exe")
	assert.False(t, ok)
}

func TestValidGeometryType(t *testing.T) {
	assert.True(t, ValidGeometryType(GeometryMultiPolygon))
	assert.False(t, ValidGeometryType("GeometryCollection"))
	assert.False(t, ValidGeometryType(""))
}
