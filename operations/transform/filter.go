package transform

import (
	"strconv"
	"strings"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/errors"
	"github.com/go-sif/geoprep/table"
)

// FilterStats reports the outcome of a FilterRows operation
type FilterStats struct {
	Removed int // rows matching the comparison
	Skipped int // rows kept because their value was missing or not a number
}

// FilterRows removes every row whose value in colName satisfies "value cmp threshold",
// preserving the order of the remaining rows. Missing or non-numeric values never
// match. If stats is non-nil, it receives the outcome.
func FilterRows(colName string, cmp geoprep.Comparison, threshold string, stats *FilterStats) table.Operation {
	return func(t *table.Table) (*table.Table, error) {
		limit, err := strconv.ParseFloat(strings.TrimSpace(threshold), 64)
		if err != nil {
			return nil, errors.InvalidThresholdError{Threshold: threshold}
		}
		resolved, ok := resolveColumn(t, colName)
		if !ok {
			return nil, errors.ColumnNotFoundError{Name: colName}
		}
		res := t.Clone()
		skipped := 0
		removed, err := res.Filter(func(row geoprep.Row) (bool, error) {
			v, err := row.Get(resolved)
			if err != nil {
				return false, err
			}
			f, ok := geoprep.ToFloat64(v)
			if !ok {
				skipped++
				return false, nil
			}
			return cmp.Evaluate(f, limit), nil
		})
		if err != nil {
			return nil, err
		}
		if stats != nil {
			stats.Removed = removed
			stats.Skipped = skipped
		}
		return res, nil
	}
}

// Filter removes Rows for which fn returns true
func Filter(fn geoprep.FilterOperation) table.Operation {
	return func(t *table.Table) (*table.Table, error) {
		res := t.Clone()
		if _, err := res.Filter(fn); err != nil {
			return nil, err
		}
		return res, nil
	}
}
