package shapefile

import (
	"fmt"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
)

// fromShape converts a shapefile record into an orb geometry. Null shapes produce nil.
func fromShape(s shp.Shape) (orb.Geometry, error) {
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
		return toMultiPoint(g.Points), nil
	case *shp.MultiPointZ:
		return toMultiPoint(g.Points), nil
	case *shp.MultiPointM:
		return toMultiPoint(g.Points), nil
	case *shp.PolyLine:
		return toLines(g.Parts, g.Points), nil
	case *shp.PolyLineZ:
		return toLines(g.Parts, g.Points), nil
	case *shp.PolyLineM:
		return toLines(g.Parts, g.Points), nil
	case *shp.Polygon:
		return toPolygons(g.Parts, g.Points), nil
	case *shp.PolygonZ:
		return toPolygons(g.Parts, g.Points), nil
	case *shp.PolygonM:
		return toPolygons(g.Parts, g.Points), nil
	default:
		return nil, fmt.Errorf("shapefile: unsupported shape %T", s)
	}
}

func toMultiPoint(points []shp.Point) orb.MultiPoint {
	res := make(orb.MultiPoint, len(points))
	for i, p := range points {
		res[i] = orb.Point{p.X, p.Y}
	}
	return res
}

// splitParts divides a flat point list at the given part offsets
func splitParts(parts []int32, points []shp.Point) [][]orb.Point {
	res := make([][]orb.Point, 0, len(parts))
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		part := make([]orb.Point, 0, end-start)
		for _, p := range points[start:end] {
			part = append(part, orb.Point{p.X, p.Y})
		}
		res = append(res, part)
	}
	return res
}

func toLines(parts []int32, points []shp.Point) orb.Geometry {
	split := splitParts(parts, points)
	if len(split) == 1 {
		return orb.LineString(split[0])
	}
	res := make(orb.MultiLineString, len(split))
	for i, part := range split {
		res[i] = orb.LineString(part)
	}
	return res
}

// toPolygons groups rings into polygons. Clockwise rings start a new polygon and
// counter-clockwise rings are holes of the preceding one.
func toPolygons(parts []int32, points []shp.Point) orb.Geometry {
	var res orb.MultiPolygon
	for _, part := range splitParts(parts, points) {
		ring := orb.Ring(part)
		if ring.Orientation() == orb.CCW && len(res) > 0 {
			last := len(res) - 1
			res[last] = append(res[last], ring)
			continue
		}
		res = append(res, orb.Polygon{ring})
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

// shapeType returns the shapefile type able to hold g
func shapeType(g orb.Geometry) (shp.ShapeType, error) {
	switch g.(type) {
	case orb.Point:
		return shp.POINT, nil
	case orb.MultiPoint:
		return shp.MULTIPOINT, nil
	case orb.LineString, orb.MultiLineString:
		return shp.POLYLINE, nil
	case orb.Polygon, orb.MultiPolygon, orb.Bound:
		return shp.POLYGON, nil
	default:
		return shp.NULL, fmt.Errorf("shapefile: unsupported geometry %T", g)
	}
}

func toShpPoints(points []orb.Point) []shp.Point {
	res := make([]shp.Point, len(points))
	for i, p := range points {
		res[i] = shp.Point{X: p.X(), Y: p.Y()}
	}
	return res
}

// orient returns a copy of ring with the requested orientation
func orient(ring orb.Ring, o orb.Orientation) []orb.Point {
	res := orb.Ring(append([]orb.Point{}, ring...))
	if res.Orientation() != o {
		res.Reverse()
	}
	return res
}

// toShape converts an orb geometry into a shapefile record. Outer rings are written
// clockwise and holes counter-clockwise.
func toShape(g orb.Geometry) shp.Shape {
	switch v := g.(type) {
	case nil:
		return &shp.Null{}
	case orb.Point:
		return &shp.Point{X: v.X(), Y: v.Y()}
	case orb.MultiPoint:
		points := toShpPoints(v)
		return &shp.MultiPoint{Box: shp.BBoxFromPoints(points), NumPoints: int32(len(points)), Points: points}
	case orb.LineString:
		return shp.NewPolyLine([][]shp.Point{toShpPoints(v)})
	case orb.MultiLineString:
		parts := make([][]shp.Point, len(v))
		for i, line := range v {
			parts[i] = toShpPoints(line)
		}
		return shp.NewPolyLine(parts)
	case orb.Bound:
		return toShape(v.ToPolygon())
	case orb.Polygon:
		return toShape(orb.MultiPolygon{v})
	case orb.MultiPolygon:
		var parts [][]shp.Point
		for _, poly := range v {
			for r, ring := range poly {
				o := orb.CW
				if r > 0 {
					o = orb.CCW
				}
				parts = append(parts, toShpPoints(orient(ring, o)))
			}
		}
		poly := shp.Polygon(*shp.NewPolyLine(parts))
		return &poly
	default:
		return &shp.Null{}
	}
}
