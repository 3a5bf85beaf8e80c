package transform

import (
	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/errors"
	"github.com/go-sif/geoprep/table"
	"github.com/hashicorp/go-multierror"
)

// CastToString converts every column to strings. Missing values stay missing.
func CastToString() table.Operation {
	return func(t *table.Table) (*table.Table, error) {
		res := t.Clone()
		for _, name := range res.ColumnNames() {
			values, err := res.Column(name)
			if err != nil {
				return nil, err
			}
			if err := res.SetColumn(name, &geoprep.VarStringColumnType{}, values); err != nil {
				return nil, err
			}
		}
		return res, nil
	}
}

// CastAllToFloat converts every column to float64. Any value which cannot be
// converted fails the operation; the first failing value of each column is reported.
func CastAllToFloat() table.Operation {
	return func(t *table.Table) (*table.Table, error) {
		res := t.Clone()
		var errs *multierror.Error
		for _, name := range res.ColumnNames() {
			values, err := res.Column(name)
			if err != nil {
				return nil, err
			}
			if err := res.SetColumn(name, &geoprep.Float64ColumnType{}, values); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
		if err := errs.ErrorOrNil(); err != nil {
			return nil, err
		}
		return res, nil
	}
}

// CastColumnToNumeric converts one column to float64. Values which cannot be
// converted become missing.
func CastColumnToNumeric(colName string) table.Operation {
	return func(t *table.Table) (*table.Table, error) {
		resolved, ok := resolveColumn(t, colName)
		if !ok {
			return nil, errors.ColumnNotFoundError{Name: colName}
		}
		res := t.Clone()
		values, err := res.Column(resolved)
		if err != nil {
			return nil, err
		}
		floatType := &geoprep.Float64ColumnType{}
		for i, v := range values {
			if f, err := floatType.Coerce(v); err != nil {
				values[i] = nil
			} else {
				values[i] = f
			}
		}
		if err := res.SetColumn(resolved, floatType, values); err != nil {
			return nil, err
		}
		return res, nil
	}
}
