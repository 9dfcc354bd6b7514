package models

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/ewkb"
)

// SRIDWGS84 is the spatial reference every stored facility point uses.
const SRIDWGS84 = 4326

// GeoPoint is a PostGIS geometry(Point,4326) column. Coordinates are [lng, lat].
type GeoPoint orb.Point

func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{lng, lat}
}

func (p GeoPoint) Lng() float64 { return p[0] }
func (p GeoPoint) Lat() float64 { return p[1] }

// GormDataType tells gorm's migrator which column type to create.
func (GeoPoint) GormDataType() string {
	return "geometry(Point,4326)"
}

// Value writes the point as hex EWKB, which PostGIS accepts as geometry input.
func (p GeoPoint) Value() (driver.Value, error) {
	return ewkb.MarshalToHex(orb.Point(p), SRIDWGS84)
}

// Scan reads hex or raw EWKB as returned by PostGIS for geometry columns.
func (p *GeoPoint) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*p = GeoPoint{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("geopoint: unsupported scan type %T", src)
	}

	data := raw
	if decoded, err := hex.DecodeString(string(raw)); err == nil {
		data = decoded
	}
	geom, _, err := ewkb.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("geopoint: %w", err)
	}
	pt, ok := geom.(orb.Point)
	if !ok {
		return fmt.Errorf("geopoint: expected Point, got %s", geom.GeoJSONType())
	}
	*p = GeoPoint(pt)
	return nil
}
