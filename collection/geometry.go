package collection

import (
	"time"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/internal/util"
	"github.com/go-sif/geoprep/operations/geometry"
	"github.com/hashicorp/go-multierror"
)

// MakePoints builds a point dataset from the latitude and longitude columns of table i
// and appends it, returning its index. Table i keeps its rows, with the coordinate
// columns renamed to LATITUDE and LONGITUDE.
//
// By default, rows with unusable coordinates receive a nil geometry; the new index is
// then returned together with an error listing them. WithStrictCoordinates makes the
// first such row fail the whole operation instead.
func (c *Collection) MakePoints(i int, lat, lon string, crs geoprep.CRS) (int, error) {
	const op = "make_points"
	start := time.Now()
	t, err := c.Table(i)
	if err != nil {
		return -1, c.finish(op, kindTable, i, start, err)
	}
	res, err := geometry.MakePoints(t, lat, lon, crs, c.strictCoordinates)
	if err != nil {
		return -1, c.finish(op, kindTable, i, start, err)
	}
	c.tables[i] = res.Table
	idx := c.AppendSpatial(res.Spatial)
	c.log.Infof("made %d points from table[%d] as spatial[%d], crs %s", res.Spatial.NumRows(), i, idx, res.Spatial.CRS())
	if res.Invalid != nil {
		if merr, ok := res.Invalid.(*multierror.Error); ok {
			c.addRows(op, "invalid", len(merr.Errors))
			c.log.Warnf("%d rows of table[%d] have no point:\n%s", len(merr.Errors), i, util.FormatMultiError(merr.Errors))
		}
	}
	return idx, c.finish(op, kindTable, i, start, res.Invalid)
}

// SetCRS relabels the coordinate reference system of spatial dataset i. Coordinates are
// not reprojected.
func (c *Collection) SetCRS(i int, crs geoprep.CRS) error {
	return c.applySpatial("set_crs", i, geometry.SetCRS(crs))
}
