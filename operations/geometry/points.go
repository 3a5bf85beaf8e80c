package geometry

import (
	"fmt"
	"math"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/errors"
	"github.com/go-sif/geoprep/operations/transform"
	"github.com/go-sif/geoprep/table"
	"github.com/hashicorp/go-multierror"
	"github.com/paulmach/orb"
)

const (
	// LatitudeColumn is the name given to the latitude column of a table used to make points
	LatitudeColumn = "LATITUDE"
	// LongitudeColumn is the name given to the longitude column of a table used to make points
	LongitudeColumn = "LONGITUDE"
)

// PointsResult is the outcome of MakePoints
type PointsResult struct {
	Table   *table.Table   // the source table, with its coordinate columns renamed
	Spatial *table.Spatial // one point per row of Table, with x = longitude and y = latitude
	Invalid error          // one InvalidCoordinateError per row given a nil geometry, or nil
}

// MakePoints builds a point dataset from the latitude and longitude columns of t.
// Coordinates must be finite numbers. When strict is false, rows with unusable
// coordinates receive a nil geometry and are reported in PointsResult.Invalid;
// otherwise the first such row fails the operation. An existing GEOMETRY column is
// overwritten in place. An undefined crs defaults to geoprep.DefaultPointCRS.
func MakePoints(t *table.Table, lat, lon string, crs geoprep.CRS, strict bool) (*PointsResult, error) {
	if transform.NormalizeName(lat) == transform.NormalizeName(lon) {
		return nil, fmt.Errorf("latitude and longitude must be different columns, both were %s", lat)
	}
	renamed, err := t.To(
		transform.RenameColumn(lat, LatitudeColumn),
		transform.RenameColumn(lon, LongitudeColumn),
	)
	if err != nil {
		return nil, err
	}
	if !crs.IsDefined() {
		crs = geoprep.DefaultPointCRS
	}

	var invalid *multierror.Error
	points, err := renamed.To(
		transform.ResetColumn(table.GeometryColumnName, &geoprep.GeometryColumnType{}),
		transform.Map(func(row geoprep.Row) error {
			y, yErr := coordinate(row, LatitudeColumn)
			x, xErr := coordinate(row, LongitudeColumn)
			if err := multierror.Append(yErr, xErr).ErrorOrNil(); err != nil {
				if strict {
					return err
				}
				invalid = multierror.Append(invalid, err.(*multierror.Error).Errors...)
				return nil
			}
			return row.Set(table.GeometryColumnName, orb.Point{x, y})
		}),
	)
	if err != nil {
		return nil, err
	}
	spatial, err := table.NewSpatial(points, table.GeometryColumnName, crs)
	if err != nil {
		return nil, err
	}
	return &PointsResult{Table: renamed, Spatial: spatial, Invalid: invalid.ErrorOrNil()}, nil
}

func coordinate(row geoprep.Row, colName string) (float64, error) {
	v, err := row.Get(colName)
	if err != nil {
		return 0, err
	}
	f, err := (&geoprep.Float64ColumnType{}).Coerce(v)
	if err != nil || f == nil || math.IsNaN(f.(float64)) || math.IsInf(f.(float64), 0) {
		return 0, errors.InvalidCoordinateError{Row: row.Index(), Column: colName, Value: v}
	}
	return f.(float64), nil
}

// SetCRS labels a Spatial dataset with a coordinate reference system. Coordinates
// are not transformed. An undefined crs defaults to geoprep.DefaultRelabelCRS.
func SetCRS(crs geoprep.CRS) table.SpatialOperation {
	return func(s *table.Spatial) (*table.Spatial, error) {
		if !crs.IsDefined() {
			crs = geoprep.DefaultRelabelCRS
		}
		return s.WithCRS(crs), nil
	}
}
