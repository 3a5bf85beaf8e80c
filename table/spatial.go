package table

import (
	"fmt"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/errors"
	"github.com/paulmach/orb"
)

// GeometryColumnName is the default name of the geometry column of a Spatial dataset
const GeometryColumnName = "GEOMETRY"

// Spatial is a Table with exactly one geometry column and one coordinate reference system.
// The CRS is metadata; coordinates are never reprojected.
type Spatial struct {
	*Table
	geometryColumn string
	crs            geoprep.CRS
}

// NewSpatial wraps t, whose column geometryColumn must be of GeometryColumnType
func NewSpatial(t *Table, geometryColumn string, crs geoprep.CRS) (*Spatial, error) {
	colType, err := t.ColumnType(geometryColumn)
	if err != nil {
		return nil, err
	}
	if !geoprep.IsGeometry(colType) {
		return nil, errors.IncompatibleTypeError{Column: geometryColumn, Expected: "geometry", Actual: colType.Name()}
	}
	numGeometries := 0
	for _, other := range t.ColumnTypes() {
		if geoprep.IsGeometry(other) {
			numGeometries++
		}
	}
	if numGeometries > 1 {
		return nil, fmt.Errorf("Spatial datasets may hold only one geometry column, found %d", numGeometries)
	}
	return &Spatial{Table: t, geometryColumn: geometryColumn, crs: crs}, nil
}

// GeometryColumn returns the name of the geometry column
func (s *Spatial) GeometryColumn() string {
	return s.geometryColumn
}

// CRS returns the coordinate reference system of this dataset
func (s *Spatial) CRS() geoprep.CRS {
	return s.crs
}

// WithCRS returns a copy of this dataset labelled with a different CRS
func (s *Spatial) WithCRS(crs geoprep.CRS) *Spatial {
	res := s.Clone()
	res.crs = crs
	return res
}

// WithTable returns a dataset with this dataset's geometry column name and CRS over t
func (s *Spatial) WithTable(t *Table) (*Spatial, error) {
	return NewSpatial(t, s.geometryColumn, s.crs)
}

// Clone returns a deep copy of this dataset
func (s *Spatial) Clone() *Spatial {
	return &Spatial{Table: s.Table.Clone(), geometryColumn: s.geometryColumn, crs: s.crs}
}

// Geometry returns the geometry of row i, which may be nil
func (s *Spatial) Geometry(i int) (orb.Geometry, error) {
	v, err := s.Value(i, s.geometryColumn)
	if err != nil || v == nil {
		return nil, err
	}
	return v.(orb.Geometry), nil
}

// AttributeNames returns the names of every column but the geometry column
func (s *Spatial) AttributeNames() []string {
	names := s.ColumnNames()
	res := make([]string, 0, len(names))
	for _, name := range names {
		if name != s.geometryColumn {
			res = append(res, name)
		}
	}
	return res
}
