package table

import (
	"fmt"
	"strings"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/errors"
	"github.com/paulmach/orb"
)

// rowImpl is a view of a single row of a Table
type rowImpl struct {
	table *Table
	idx   int
}

// Index returns the position of this Row within its table
func (r *rowImpl) Index() int {
	return r.idx
}

// Schema returns a read-only copy of the schema for a row
func (r *rowImpl) Schema() geoprep.Schema {
	return r.table.schema.Clone()
}

// ToString returns a string representation of this row
func (r *rowImpl) ToString() string {
	var res strings.Builder
	fmt.Fprint(&res, "{")
	r.table.schema.ForEachColumn(func(name string, col geoprep.Column) error {
		var val string
		v := r.table.cols[col.Index()][r.idx]
		if v == nil {
			val = "nil"
		} else {
			val = col.Type().ToString(v)
		}
		fmt.Fprintf(&res, "\"%s\": %s,", name, val)
		return nil
	})
	fmt.Fprint(&res, "}")
	return res.String()
}

// IsNil returns true iff the given column value is nil in this row. If an error occurs, this function will return false.
func (r *rowImpl) IsNil(colName string) bool {
	col, err := r.table.schema.GetColumn(colName)
	if err != nil {
		return false
	}
	return r.table.cols[col.Index()][r.idx] == nil
}

// SetNil sets the given column value to nil within this row
func (r *rowImpl) SetNil(colName string) error {
	col, err := r.table.schema.GetColumn(colName)
	if err != nil {
		return err
	}
	r.table.cols[col.Index()][r.idx] = nil
	return nil
}

// value fetches a non-nil value and checks that it is of the expected column type
func (r *rowImpl) value(colName string, expected geoprep.ColumnType) (interface{}, error) {
	col, err := r.table.schema.GetColumn(colName)
	if err != nil {
		return nil, err
	}
	if expected != nil && col.Type().Name() != expected.Name() {
		return nil, errors.IncompatibleTypeError{Column: colName, Expected: expected.Name(), Actual: col.Type().Name()}
	}
	v := r.table.cols[col.Index()][r.idx]
	if v == nil {
		return nil, errors.NilValueError{Name: colName}
	}
	return v, nil
}

// Get returns the value of any column as an interface{}, if it exists. Missing values are returned as nil, without error.
func (r *rowImpl) Get(colName string) (col interface{}, err error) {
	c, err := r.table.schema.GetColumn(colName)
	if err != nil {
		return nil, err
	}
	return r.table.cols[c.Index()][r.idx], nil
}

// GetBool retrieves a single bool from the column with the given name
func (r *rowImpl) GetBool(colName string) (col bool, err error) {
	v, err := r.value(colName, &geoprep.BoolColumnType{})
	if err != nil {
		return
	}
	col = v.(bool)
	return
}

// GetInt64 retrieves a single int64 from the column with the given name
func (r *rowImpl) GetInt64(colName string) (col int64, err error) {
	v, err := r.value(colName, &geoprep.Int64ColumnType{})
	if err != nil {
		return
	}
	col = v.(int64)
	return
}

// GetFloat64 retrieves a single float64 from the column with the given name. Int64 columns are widened.
func (r *rowImpl) GetFloat64(colName string) (col float64, err error) {
	v, err := r.value(colName, nil)
	if err != nil {
		return
	}
	col, ok := geoprep.ToFloat64(v)
	if !ok {
		c, _ := r.table.schema.GetColumn(colName)
		err = errors.IncompatibleTypeError{Column: colName, Expected: "float64", Actual: c.Type().Name()}
	}
	return
}

// GetVarString retrieves a single string from the column with the given name
func (r *rowImpl) GetVarString(colName string) (col string, err error) {
	v, err := r.value(colName, &geoprep.VarStringColumnType{})
	if err != nil {
		return
	}
	col = v.(string)
	return
}

// GetGeometry retrieves a single geometry from the column with the given name
func (r *rowImpl) GetGeometry(colName string) (col orb.Geometry, err error) {
	v, err := r.value(colName, &geoprep.GeometryColumnType{})
	if err != nil {
		return
	}
	col = v.(orb.Geometry)
	return
}

// Set coerces value to the column's type and stores it
func (r *rowImpl) Set(colName string, value interface{}) (err error) {
	col, err := r.table.schema.GetColumn(colName)
	if err != nil {
		return err
	}
	coerced, err := col.Type().Coerce(value)
	if err != nil {
		return errors.TypeCoercionError{Column: colName, Row: r.idx, Type: col.Type().Name(), Value: value}
	}
	r.table.cols[col.Index()][r.idx] = coerced
	return nil
}
