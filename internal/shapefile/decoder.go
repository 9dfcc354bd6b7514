// Package shapefile turns an ESRI shapefile bundle into layer metadata and a
// GeoJSON FeatureCollection.
package shapefile

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// DefaultSRID is used when the bundle carries no .prj or the .prj has no EPSG code.
const DefaultSRID = 4326

const (
	headerSize = 100
	fileCode   = 9994
)

// DecodeError wraps any failure while reading a bundle so callers can report it
// as bad input instead of a server fault.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// Feature is a GeoJSON Feature. Geometry is nil for null shapes.
type Feature struct {
	Type       string            `json:"type"`
	Geometry   *geojson.Geometry `json:"geometry"`
	Properties map[string]any    `json:"properties"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Result is everything derived from one decoded bundle.
type Result struct {
	GeometryType string
	SRID         int
	Bounds       []float64
	Collection   FeatureCollection
}

func (r *Result) FeatureCount() int {
	return len(r.Collection.Features)
}

// GeoJSON marshals the feature collection.
func (r *Result) GeoJSON() ([]byte, error) {
	return json.Marshal(r.Collection)
}

// Decode reads the shapefile at shpPath together with the .dbf and .prj files
// sharing its base name, when present.
func Decode(shpPath string) (res *Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			res = nil
			err = &DecodeError{Err: fmt.Errorf("corrupt shapefile: %v", p)}
		}
	}()

	if err := checkHeader(shpPath); err != nil {
		return nil, &DecodeError{Err: err}
	}

	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, &DecodeError{Err: errors.Wrap(err, "open shapefile")}
	}
	defer reader.Close()

	geomType, err := geometryTypeName(reader.GeometryType)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	base := strings.TrimSuffix(shpPath, filepath.Ext(shpPath))
	srid := DefaultSRID
	if prj, err := os.ReadFile(base + ".prj"); err == nil {
		if code, ok := SRIDFromPRJ(string(prj)); ok {
			srid = code
		}
	}

	var fields []shp.Field
	if _, err := os.Stat(base + ".dbf"); err == nil {
		fields = reader.Fields()
	}

	box := reader.BBox()
	res = &Result{
		GeometryType: geomType,
		SRID:         srid,
		Bounds:       []float64{box.MinX, box.MinY, box.MaxX, box.MaxY},
		Collection: FeatureCollection{
			Type:     "FeatureCollection",
			Features: []Feature{},
		},
	}

	for reader.Next() {
		row, shape := reader.Shape()
		geom, err := toGeometry(shape)
		if err != nil {
			return nil, &DecodeError{Err: errors.Wrapf(err, "record %d", row)}
		}

		props := make(map[string]any, len(fields))
		for i, f := range fields {
			props[f.String()] = typedValue(f, reader.ReadAttribute(row, i))
		}

		feature := Feature{Type: "Feature", Properties: props}
		if geom != nil {
			feature.Geometry = geojson.NewGeometry(geom)
		}
		res.Collection.Features = append(res.Collection.Features, feature)
	}

	return res, nil
}

// checkHeader rejects files that are not shapefiles before the reader sees them.
func checkHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open shapefile")
	}
	defer f.Close()

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(f, header); err != nil {
		return fmt.Errorf("not a valid shapefile: header is shorter than %d bytes", headerSize)
	}
	if code := binary.BigEndian.Uint32(header[0:4]); code != fileCode {
		return fmt.Errorf("not a valid shapefile: unexpected file code %d", code)
	}
	return nil
}

func geometryTypeName(t shp.ShapeType) (string, error) {
	switch t {
	case shp.POINT, shp.POINTZ, shp.POINTM:
		return "Point", nil
	case shp.POLYLINE, shp.POLYLINEZ, shp.POLYLINEM:
		return "LineString", nil
	case shp.POLYGON, shp.POLYGONZ, shp.POLYGONM:
		return "Polygon", nil
	case shp.MULTIPOINT, shp.MULTIPOINTZ, shp.MULTIPOINTM:
		return "MultiPoint", nil
	}
	return "", fmt.Errorf("unsupported shape type %d", t)
}
