package transform

import (
	"math"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/errors"
	"github.com/go-sif/geoprep/table"
	"gonum.org/v1/gonum/stat"
)

// Standardize replaces every numeric column, except exclude, with its z-score
// (v-mean)/stddev using the sample standard deviation. Columns without spread
// become 0. Missing values stay missing and do not contribute to the moments.
// An empty exclude standardizes every numeric column.
func Standardize(exclude string) table.Operation {
	return func(t *table.Table) (*table.Table, error) {
		if exclude != "" {
			resolved, ok := resolveColumn(t, exclude)
			if !ok {
				return nil, errors.ColumnNotFoundError{Name: exclude}
			}
			exclude = resolved
		}
		res := t.Clone()
		types := res.ColumnTypes()
		for i, name := range res.ColumnNames() {
			if name == exclude || !geoprep.IsNumeric(types[i]) {
				continue
			}
			values, err := res.Column(name)
			if err != nil {
				return nil, err
			}
			if err := res.SetColumn(name, &geoprep.Float64ColumnType{}, zScores(values)); err != nil {
				return nil, err
			}
		}
		return res, nil
	}
}

func zScores(values []interface{}) []interface{} {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := geoprep.ToFloat64(v); ok {
			present = append(present, f)
		}
	}
	var mean, std float64
	if len(present) > 1 {
		mean, std = stat.MeanStdDev(present, nil)
	} else if len(present) == 1 {
		mean = present[0]
	}
	res := make([]interface{}, len(values))
	for i, v := range values {
		f, ok := geoprep.ToFloat64(v)
		if !ok {
			continue
		}
		if std == 0 || math.IsNaN(std) {
			res[i] = 0.0
		} else {
			res[i] = (f - mean) / std
		}
	}
	return res
}
