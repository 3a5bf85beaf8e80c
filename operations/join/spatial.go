package join

import (
	"fmt"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/errors"
	"github.com/go-sif/geoprep/table"
)

const (
	// IndexRightColumn holds, for each row of a left or inner spatial join, the position of the matched row of the other dataset
	IndexRightColumn = "INDEX_RIGHT"
	// IndexLeftColumn holds, for each row of a right spatial join, the position of the matched row of the held dataset
	IndexLeftColumn = "INDEX_LEFT"

	spatialLeftSuffix  = "_LEFT"
	spatialRightSuffix = "_RIGHT"
)

// Spatial joins other to a Spatial dataset wherever "held <predicate> other" holds.
// Left and inner joins keep the held geometry and CRS and add IndexRightColumn; right
// joins keep other's geometry and CRS and add IndexLeftColumn. Attribute names present
// on both sides are suffixed with _LEFT and _RIGHT. Outer joins are not supported.
func Spatial(other *table.Spatial, mode geoprep.JoinMode, predicate geoprep.SpatialPredicate) table.SpatialOperation {
	return func(held *table.Spatial) (*table.Spatial, error) {
		if other == nil {
			return nil, errNoOther
		}
		switch mode {
		case geoprep.LeftJoin, geoprep.RightJoin, geoprep.InnerJoin:
		default:
			return nil, fmt.Errorf("spatial joins support left, right and inner modes, not %q", mode)
		}
		switch predicate {
		case geoprep.Intersects, geoprep.Within, geoprep.Contains:
		default:
			return nil, fmt.Errorf("unknown spatial predicate %q", predicate)
		}
		leftGeoms, err := prepareAll(held)
		if err != nil {
			return nil, err
		}
		rightGeoms, err := prepareAll(other)
		if err != nil {
			return nil, err
		}

		var lrows, rrows []int
		if mode == geoprep.RightJoin {
			for r := range rightGeoms {
				found := false
				for l := range leftGeoms {
					if matches(leftGeoms[l], rightGeoms[r], predicate) {
						lrows = append(lrows, l)
						rrows = append(rrows, r)
						found = true
					}
				}
				if !found {
					lrows = append(lrows, -1)
					rrows = append(rrows, r)
				}
			}
		} else {
			for l := range leftGeoms {
				found := false
				for r := range rightGeoms {
					if matches(leftGeoms[l], rightGeoms[r], predicate) {
						lrows = append(lrows, l)
						rrows = append(rrows, r)
						found = true
					}
				}
				if !found && mode == geoprep.LeftJoin {
					lrows = append(lrows, l)
					rrows = append(rrows, -1)
				}
			}
		}
		return assembleSpatial(held, other, mode, lrows, rrows)
	}
}

func prepareAll(s *table.Spatial) ([]*preparedGeometry, error) {
	res := make([]*preparedGeometry, s.NumRows())
	for i := range res {
		g, err := s.Geometry(i)
		if err != nil {
			return nil, err
		}
		res[i], err = prepare(g)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return res, nil
}

type columnBuilder struct {
	names  []string
	types  []geoprep.ColumnType
	values [][]interface{}
}

func (b *columnBuilder) add(name string, colType geoprep.ColumnType, values []interface{}) {
	b.names = append(b.names, name)
	b.types = append(b.types, colType)
	b.values = append(b.values, values)
}

// addFrom copies the named columns of t, suffixing those in collide
func (b *columnBuilder) addFrom(t *table.Table, names []string, collide map[string]bool, suffix string) error {
	for _, name := range names {
		colType, err := t.ColumnType(name)
		if err != nil {
			return err
		}
		values, err := t.Column(name)
		if err != nil {
			return err
		}
		outName := name
		if collide[name] {
			outName = name + suffix
		}
		b.add(outName, colType, values)
	}
	return nil
}

func positions(rows []int) []interface{} {
	res := make([]interface{}, len(rows))
	for i, r := range rows {
		if r != -1 {
			res[i] = int64(r)
		}
	}
	return res
}

func assembleSpatial(held, other *table.Spatial, mode geoprep.JoinMode, lrows, rrows []int) (*table.Spatial, error) {
	left, err := held.Table.Take(lrows)
	if err != nil {
		return nil, err
	}
	right, err := other.Table.Take(rrows)
	if err != nil {
		return nil, err
	}
	collide := make(map[string]bool)
	rightAttrs := make(map[string]bool)
	for _, name := range other.AttributeNames() {
		rightAttrs[name] = true
	}
	for _, name := range held.AttributeNames() {
		if rightAttrs[name] {
			collide[name] = true
		}
	}

	b := &columnBuilder{}
	var geometryColumn string
	var crs geoprep.CRS
	if mode == geoprep.RightJoin {
		if err := b.addFrom(left, held.AttributeNames(), collide, spatialLeftSuffix); err != nil {
			return nil, err
		}
		b.add(IndexLeftColumn, &geoprep.Int64ColumnType{}, positions(lrows))
		if err := b.addFrom(right, other.ColumnNames(), collide, spatialRightSuffix); err != nil {
			return nil, err
		}
		geometryColumn, crs = other.GeometryColumn(), other.CRS()
	} else {
		if err := b.addFrom(left, held.ColumnNames(), collide, spatialLeftSuffix); err != nil {
			return nil, err
		}
		b.add(IndexRightColumn, &geoprep.Int64ColumnType{}, positions(rrows))
		if err := b.addFrom(right, other.AttributeNames(), collide, spatialRightSuffix); err != nil {
			return nil, err
		}
		geometryColumn, crs = held.GeometryColumn(), held.CRS()
	}
	t, err := table.FromColumns(b.names, b.types, b.values)
	if err != nil {
		return nil, err
	}
	return table.NewSpatial(t, geometryColumn, crs)
}

// SpatialToTableByGeoID inner-joins a table to a Spatial dataset on their GEOID
// columns, which are compared as numbers. Identifiers which are not numbers fail
// the join. The geometry column and CRS of the held dataset are kept, and other is
// never modified.
func SpatialToTableByGeoID(other *table.Table) table.SpatialOperation {
	return func(held *table.Spatial) (*table.Spatial, error) {
		const key = "GEOID"
		if other == nil {
			return nil, errNoOther
		}
		leftKey, ok := resolve(held.Table, key)
		if !ok {
			return nil, errors.KeyNotFoundError{Key: key, Side: "left"}
		}
		rightKey, ok := resolve(other, key)
		if !ok {
			return nil, errors.KeyNotFoundError{Key: key, Side: "right"}
		}
		left, err := numericKey(held.Table, leftKey)
		if err != nil {
			return nil, err
		}
		right, err := numericKey(other, rightKey)
		if err != nil {
			return nil, err
		}
		if rightKey != leftKey {
			if err := right.RenameColumn(rightKey, leftKey); err != nil {
				return nil, err
			}
		}
		joined, err := Table(right, leftKey, geoprep.InnerJoin)(left)
		if err != nil {
			return nil, err
		}
		geometryColumn := held.GeometryColumn()
		if !joined.HasColumn(geometryColumn) {
			// the geometry column collided with a column of other
			if err := joined.RenameColumn(geometryColumn+leftSuffix, geometryColumn); err != nil {
				return nil, err
			}
		}
		return table.NewSpatial(joined, geometryColumn, held.CRS())
	}
}

// numericKey returns a copy of t whose key column is strictly converted to float64
func numericKey(t *table.Table, key string) (*table.Table, error) {
	res := t.Clone()
	values, err := res.Column(key)
	if err != nil {
		return nil, err
	}
	if err := res.SetColumn(key, &geoprep.Float64ColumnType{}, values); err != nil {
		return nil, err
	}
	return res, nil
}
