package derive

import (
	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/errors"
	"github.com/go-sif/geoprep/operations/transform"
	"github.com/go-sif/geoprep/table"
)

// numericColumn resolves colName and returns its values as float64s, with
// present[i] false for missing values
func numericColumn(t *table.Table, colName string) (name string, values []float64, present []bool, err error) {
	name = colName
	if !t.HasColumn(name) {
		name = transform.NormalizeName(colName)
	}
	raw, err := t.Column(name)
	if err != nil {
		return "", nil, nil, errors.ColumnNotFoundError{Name: colName}
	}
	floatType := &geoprep.Float64ColumnType{}
	values = make([]float64, len(raw))
	present = make([]bool, len(raw))
	for i, v := range raw {
		if v == nil {
			continue
		}
		f, err := floatType.Coerce(v)
		if err != nil {
			return "", nil, nil, errors.TypeCoercionError{Column: name, Row: i, Type: floatType.Name(), Value: v}
		}
		values[i] = f.(float64)
		present[i] = true
	}
	return name, values, present, nil
}
