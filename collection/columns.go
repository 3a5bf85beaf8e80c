package collection

import (
	"fmt"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/operations/transform"
	"github.com/go-sif/geoprep/table"
)

// RemoveColumns removes the named columns of table i
func (c *Collection) RemoveColumns(i int, names ...string) error {
	return c.applyTable("remove_columns", i, transform.RemoveColumns(names...))
}

// RemoveColumnsAt removes the columns of table i at the given positions, all
// interpreted against the schema before any is removed
func (c *Collection) RemoveColumnsAt(i int, indices ...int) error {
	return c.applyTable("remove_columns_at", i, transform.RemoveColumnsAt(indices...))
}

// RemoveLastColumn removes the final column of table i
func (c *Collection) RemoveLastColumn(i int) error {
	return c.applyTable("remove_last_column", i, transform.RemoveLastColumn())
}

// RemoveSpatialColumns removes attribute columns of spatial dataset i. The geometry
// column cannot be removed.
func (c *Collection) RemoveSpatialColumns(i int, names ...string) error {
	guard := func(s *table.Spatial) (*table.Spatial, error) {
		for _, name := range names {
			if name == s.GeometryColumn() || (!s.HasColumn(name) && transform.NormalizeName(name) == transform.NormalizeName(s.GeometryColumn())) {
				return nil, fmt.Errorf("the geometry column %s cannot be removed", s.GeometryColumn())
			}
		}
		return s, nil
	}
	return c.applySpatial("remove_spatial_columns", i, guard, table.OnTable(transform.RemoveColumns(names...)))
}

// RenameColumn renames a column of table i. The new name is normalized.
func (c *Collection) RenameColumn(i int, oldName, newName string) error {
	return c.applyTable("rename_column", i, transform.RenameColumn(oldName, newName))
}

// CastToString converts every column of table i to strings
func (c *Collection) CastToString(i int) error {
	return c.applyTable("cast_to_string", i, transform.CastToString())
}

// CastAllToFloat converts every column of table i to floats. If any value cannot be
// parsed, the table is left unchanged and every failing column is reported.
func (c *Collection) CastAllToFloat(i int) error {
	return c.applyTable("cast_all_to_float", i, transform.CastAllToFloat())
}

// CastColumnToNumeric converts one column of table i to numbers, replacing unparsable
// values with nil
func (c *Collection) CastColumnToNumeric(i int, col string) error {
	return c.applyTable("cast_column_to_numeric", i, transform.CastColumnToNumeric(col))
}

// Standardize replaces every numeric column of table i but exclude with its standard
// score (value-mean)/stddev
func (c *Collection) Standardize(i int, exclude string) error {
	return c.applyTable("standardize", i, transform.Standardize(exclude))
}

// FilterRows removes the rows of table i whose value in col satisfies "value cmp
// threshold". Rows with missing or non-numeric values are kept and reported.
func (c *Collection) FilterRows(i int, col string, cmp geoprep.Comparison, threshold string) (transform.FilterStats, error) {
	const op = "filter_rows"
	var stats transform.FilterStats
	err := c.applyTable(op, i, transform.FilterRows(col, cmp, threshold, &stats))
	if err != nil {
		return stats, err
	}
	c.addRows(op, "removed", stats.Removed)
	c.addRows(op, "skipped", stats.Skipped)
	if stats.Skipped > 0 {
		c.log.Warnf("filter on %s kept %d rows of table[%d] with missing or non-numeric values", col, stats.Skipped, i)
	}
	c.log.Infof("filter %s %s %s removed %d rows of table[%d]", col, cmp, threshold, stats.Removed, i)
	return stats, nil
}
