package collection

import (
	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/operations/join"
	"github.com/go-sif/geoprep/table"
)

// JoinTable joins table i with other on key, replacing table i with the result.
// other is only read.
func (c *Collection) JoinTable(i int, other *table.Table, key string, mode geoprep.JoinMode) error {
	return c.applyTable("join_table", i, join.Table(other, key, mode))
}

// SpatialJoin joins spatial dataset i with other wherever predicate holds between
// their geometries, replacing dataset i with the result. other is only read.
func (c *Collection) SpatialJoin(i int, other *table.Spatial, mode geoprep.JoinMode, predicate geoprep.SpatialPredicate) error {
	if s, err := c.Spatial(i); err == nil && other != nil && s.CRS() != other.CRS() {
		c.log.Warnf("spatial join of spatial[%d] (%s) with a dataset in %s: coordinates are compared as-is", i, s.CRS(), other.CRS())
	}
	return c.applySpatial("spatial_join", i, join.Spatial(other, mode, predicate))
}

// JoinSpatialToTableByGeoID inner joins spatial dataset i with other on their numeric GEOID columns
func (c *Collection) JoinSpatialToTableByGeoID(i int, other *table.Table) error {
	return c.applySpatial("join_spatial_by_geoid", i, join.SpatialToTableByGeoID(other))
}
