package derive

import (
	"fmt"
	"math"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/errors"
	"github.com/go-sif/geoprep/operations/transform"
	"github.com/go-sif/geoprep/table"
)

// TransformPrefix is prepended to a column name to name its rescaled values
const TransformPrefix = "TRANSF_"

// percentScale converts percentages to proportions
const percentScale = 100.0

// Transform rescales colName and appends the result as TRANSF_<COL>. Values are
// divided by 100; zeros are then replaced by a quarter of the smallest positive
// value, and the natural log (or log-odds, for logit) is taken. Negative values
// produce NaN. Missing values stay missing.
func Transform(colName string, kind geoprep.TransformKind) table.Operation {
	return func(t *table.Table) (*table.Table, error) {
		if kind != geoprep.LogTransform && kind != geoprep.LogitTransform {
			return nil, fmt.Errorf("unknown transform %q", kind)
		}
		name, values, present, err := numericColumn(t, colName)
		if err != nil {
			return nil, err
		}
		minPositive := math.Inf(1)
		for i, v := range values {
			values[i] = v / percentScale
			if present[i] && values[i] > 0 && values[i] < minPositive {
				minPositive = values[i]
			}
		}
		if math.IsInf(minPositive, 1) {
			return nil, errors.NoPositiveValuesError{Column: name}
		}
		floor := minPositive / 2
		res := make([]interface{}, len(values))
		for i, v := range values {
			if !present[i] {
				continue
			}
			if v == 0 {
				v = floor / 2
			}
			if kind == geoprep.LogitTransform {
				res[i] = math.Log(v / (1 - v))
			} else {
				res[i] = math.Log(v)
			}
		}
		return transform.WithColumn(TransformPrefix+name, &geoprep.Float64ColumnType{}, res)(t)
	}
}
