package shapefile

import (
	"fmt"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
)

// toGeometry converts a shapefile record into an orb geometry. Z and M values
// are dropped. A nil geometry is returned for null shapes.
func toGeometry(s shp.Shape) (orb.Geometry, error) {
	switch g := s.(type) {
	case *shp.Null:
		return nil, nil
	case *shp.Point:
		return orb.Point{g.X, g.Y}, nil
	case *shp.PointZ:
		return orb.Point{g.X, g.Y}, nil
	case *shp.PointM:
		return orb.Point{g.X, g.Y}, nil
	case *shp.MultiPoint:
		return multiPoint(g.Points), nil
	case *shp.MultiPointZ:
		return multiPoint(g.Points), nil
	case *shp.MultiPointM:
		return multiPoint(g.Points), nil
	case *shp.PolyLine:
		return lines(g.Parts, g.Points)
	case *shp.PolyLineZ:
		return lines(g.Parts, g.Points)
	case *shp.PolyLineM:
		return lines(g.Parts, g.Points)
	case *shp.Polygon:
		return polygons(g.Parts, g.Points)
	case *shp.PolygonZ:
		return polygons(g.Parts, g.Points)
	case *shp.PolygonM:
		return polygons(g.Parts, g.Points)
	}
	return nil, fmt.Errorf("unsupported shape %T", s)
}

func multiPoint(pts []shp.Point) orb.MultiPoint {
	mp := make(orb.MultiPoint, len(pts))
	for i, p := range pts {
		mp[i] = orb.Point{p.X, p.Y}
	}
	return mp
}

func splitParts(parts []int32, pts []shp.Point) ([][]orb.Point, error) {
	out := make([][]orb.Point, 0, len(parts))
	for i, start := range parts {
		end := int32(len(pts))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || start > end || int(end) > len(pts) {
			return nil, fmt.Errorf("part %d has invalid point range [%d:%d]", i, start, end)
		}
		part := make([]orb.Point, 0, end-start)
		for _, p := range pts[start:end] {
			part = append(part, orb.Point{p.X, p.Y})
		}
		out = append(out, part)
	}
	return out, nil
}

// lines yields a LineString for single-part records and a MultiLineString otherwise.
func lines(parts []int32, pts []shp.Point) (orb.Geometry, error) {
	split, err := splitParts(parts, pts)
	if err != nil {
		return nil, err
	}
	switch len(split) {
	case 0:
		return nil, nil
	case 1:
		return orb.LineString(split[0]), nil
	}
	mls := make(orb.MultiLineString, len(split))
	for i, p := range split {
		mls[i] = orb.LineString(p)
	}
	return mls, nil
}

// polygons groups rings into polygons. Shapefile outer rings run clockwise and
// holes counter-clockwise; each hole belongs to the preceding outer ring. Rings
// are rewound to the GeoJSON convention (exterior counter-clockwise).
func polygons(parts []int32, pts []shp.Point) (orb.Geometry, error) {
	split, err := splitParts(parts, pts)
	if err != nil {
		return nil, err
	}

	var polys orb.MultiPolygon
	for _, p := range split {
		ring := orb.Ring(p)
		switch {
		case ring.Orientation() == orb.CW:
			ring.Reverse()
			polys = append(polys, orb.Polygon{ring})
		case len(polys) == 0:
			polys = append(polys, orb.Polygon{ring})
		default:
			ring.Reverse()
			last := len(polys) - 1
			polys[last] = append(polys[last], ring)
		}
	}

	switch len(polys) {
	case 0:
		return nil, nil
	case 1:
		return polys[0], nil
	}
	return polys, nil
}
