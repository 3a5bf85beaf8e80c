package transform

import (
	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/table"
)

// AddColumn appends a new, entirely missing column with a specific type and name
func AddColumn(colName string, colType geoprep.ColumnType) table.Operation {
	return func(t *table.Table) (*table.Table, error) {
		return WithColumn(colName, colType, make([]interface{}, t.NumRows()))(t)
	}
}

// WithColumn appends a new column holding values, which must have one entry per row
func WithColumn(colName string, colType geoprep.ColumnType, values []interface{}) table.Operation {
	return func(t *table.Table) (*table.Table, error) {
		res := t.Clone()
		if err := res.AddColumn(colName, colType, values); err != nil {
			return nil, err
		}
		return res, nil
	}
}

// ResetColumn empties colName and gives it colType, keeping its position. A missing
// column is appended, as with AddColumn.
func ResetColumn(colName string, colType geoprep.ColumnType) table.Operation {
	return func(t *table.Table) (*table.Table, error) {
		if !t.HasColumn(colName) {
			return AddColumn(colName, colType)(t)
		}
		res := t.Clone()
		if err := res.SetColumn(colName, colType, make([]interface{}, t.NumRows())); err != nil {
			return nil, err
		}
		return res, nil
	}
}
