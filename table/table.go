package table

import (
	"fmt"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/errors"
	"github.com/go-sif/geoprep/internal/util"
	"github.com/go-sif/geoprep/schema"
	"github.com/gofrs/uuid"
	"github.com/paulmach/orb"
)

// Table is an in-memory, column-major tabular dataset. Every column holds
// exactly NumRows values, each either nil or of the Go type its ColumnType produces.
type Table struct {
	id     string
	schema geoprep.Schema
	cols   [][]interface{}
	nrows  int
}

// CreateTable produces an empty Table with the given Schema
func CreateTable(s geoprep.Schema) *Table {
	s = s.Clone()
	return &Table{
		id:     uuid.Must(uuid.NewV4()).String(),
		schema: s,
		cols:   make([][]interface{}, s.NumColumns()),
	}
}

// FromColumns produces a Table from parallel column names, types and values.
// Values are coerced to their column types.
func FromColumns(names []string, types []geoprep.ColumnType, values [][]interface{}) (*Table, error) {
	if len(names) != len(types) || len(names) != len(values) {
		return nil, fmt.Errorf("FromColumns requires equal numbers of names (%d), types (%d) and value columns (%d)", len(names), len(types), len(values))
	}
	s := schema.CreateSchema()
	for i, name := range names {
		if _, err := s.CreateColumn(name, types[i]); err != nil {
			return nil, err
		}
	}
	t := CreateTable(s)
	if len(values) > 0 {
		t.nrows = len(values[0])
	}
	for i, col := range values {
		if len(col) != t.nrows {
			return nil, fmt.Errorf("Column %s has %d values, expected %d", names[i], len(col), t.nrows)
		}
		coerced, err := coerceColumn(names[i], types[i], col)
		if err != nil {
			return nil, err
		}
		t.cols[i] = coerced
	}
	return t, nil
}

func coerceColumn(name string, colType geoprep.ColumnType, values []interface{}) ([]interface{}, error) {
	res := make([]interface{}, len(values))
	for i, v := range values {
		c, err := colType.Coerce(v)
		if err != nil {
			return nil, errors.TypeCoercionError{Column: name, Row: i, Type: colType.Name(), Value: v}
		}
		res[i] = c
	}
	return res, nil
}

// ID returns the unique identifier of this Table
func (t *Table) ID() string {
	return t.id
}

// Schema returns a read-only copy of the Schema of this Table
func (t *Table) Schema() geoprep.Schema {
	return t.schema.Clone()
}

// NumRows returns the number of rows in this Table
func (t *Table) NumRows() int {
	return t.nrows
}

// NumColumns returns the number of columns in this Table
func (t *Table) NumColumns() int {
	return t.schema.NumColumns()
}

// ColumnNames returns the names of the columns of this Table, in order
func (t *Table) ColumnNames() []string {
	return t.schema.ColumnNames()
}

// ColumnTypes returns the types of the columns of this Table, in order
func (t *Table) ColumnTypes() []geoprep.ColumnType {
	return t.schema.ColumnTypes()
}

// HasColumn returns true iff this Table has a column with the given name
func (t *Table) HasColumn(name string) bool {
	return t.schema.HasColumn(name)
}

// ColumnType returns the type of the named column
func (t *Table) ColumnType(name string) (geoprep.ColumnType, error) {
	col, err := t.schema.GetColumn(name)
	if err != nil {
		return nil, err
	}
	return col.Type(), nil
}

// Column returns a copy of the values of the named column
func (t *Table) Column(name string) ([]interface{}, error) {
	col, err := t.schema.GetColumn(name)
	if err != nil {
		return nil, err
	}
	res := make([]interface{}, t.nrows)
	copy(res, t.cols[col.Index()])
	return res, nil
}

// Value returns a single value, which is nil when missing
func (t *Table) Value(row int, name string) (interface{}, error) {
	col, err := t.schema.GetColumn(name)
	if err != nil {
		return nil, err
	}
	if row < 0 || row >= t.nrows {
		return nil, errors.IndexOutOfRangeError{Kind: "row", Index: row, Len: t.nrows}
	}
	return t.cols[col.Index()][row], nil
}

// Row returns a view of the row at index i. Setters on the view modify this Table.
func (t *Table) Row(i int) (geoprep.Row, error) {
	if i < 0 || i >= t.nrows {
		return nil, errors.IndexOutOfRangeError{Kind: "row", Index: i, Len: t.nrows}
	}
	return &rowImpl{table: t, idx: i}, nil
}

// AppendRow adds a row to the end of this Table. Values are given in column order and coerced to the column types.
func (t *Table) AppendRow(values ...interface{}) error {
	if len(values) != t.NumColumns() {
		return fmt.Errorf("AppendRow received %d values for %d columns", len(values), t.NumColumns())
	}
	types := t.schema.ColumnTypes()
	names := t.schema.ColumnNames()
	coerced := make([]interface{}, len(values))
	for i, v := range values {
		c, err := types[i].Coerce(v)
		if err != nil {
			return errors.TypeCoercionError{Column: names[i], Row: t.nrows, Type: types[i].Name(), Value: v}
		}
		coerced[i] = c
	}
	for i, c := range coerced {
		t.cols[i] = append(t.cols[i], c)
	}
	t.nrows++
	return nil
}

// Clone returns a deep copy of this Table, with a new identifier
func (t *Table) Clone() *Table {
	cols := make([][]interface{}, len(t.cols))
	for i, col := range t.cols {
		cols[i] = make([]interface{}, len(col))
		for j, v := range col {
			if g, ok := v.(orb.Geometry); ok {
				v = orb.Clone(g)
			}
			cols[i][j] = v
		}
	}
	return &Table{
		id:     uuid.Must(uuid.NewV4()).String(),
		schema: t.schema.Clone(),
		cols:   cols,
		nrows:  t.nrows,
	}
}

// AddColumn appends a new column with the given values, coerced to colType
func (t *Table) AddColumn(name string, colType geoprep.ColumnType, values []interface{}) error {
	if t.schema.HasColumn(name) {
		return errors.DuplicateColumnError{Name: name}
	}
	if t.NumColumns() > 0 && len(values) != t.nrows {
		return fmt.Errorf("Column %s has %d values, expected %d", name, len(values), t.nrows)
	}
	coerced, err := coerceColumn(name, colType, values)
	if err != nil {
		return err
	}
	if _, err := t.schema.CreateColumn(name, colType); err != nil {
		return err
	}
	t.cols = append(t.cols, coerced)
	t.nrows = len(coerced)
	return nil
}

// SetColumn replaces the type and values of an existing column
func (t *Table) SetColumn(name string, colType geoprep.ColumnType, values []interface{}) error {
	col, err := t.schema.GetColumn(name)
	if err != nil {
		return err
	}
	if len(values) != t.nrows {
		return fmt.Errorf("Column %s has %d values, expected %d", name, len(values), t.nrows)
	}
	coerced, err := coerceColumn(name, colType, values)
	if err != nil {
		return err
	}
	if _, err := t.schema.SetColumnType(name, colType); err != nil {
		return err
	}
	t.cols[col.Index()] = coerced
	return nil
}

// RemoveColumn deletes the named column
func (t *Table) RemoveColumn(name string) error {
	col, err := t.schema.GetColumn(name)
	if err != nil {
		return err
	}
	idx := col.Index()
	if _, err := t.schema.RemoveColumn(name); err != nil {
		return err
	}
	t.cols = append(t.cols[:idx], t.cols[idx+1:]...)
	return nil
}

// RenameColumn renames a column, keeping its position and values
func (t *Table) RenameColumn(oldName, newName string) error {
	_, err := t.schema.RenameColumn(oldName, newName)
	return err
}

// Map runs fn over every row in order, stopping at the first error
func (t *Table) Map(fn geoprep.MapOperation) error {
	safe := util.SafeMapOperation(fn)
	for i := 0; i < t.nrows; i++ {
		if err := safe(&rowImpl{table: t, idx: i}); err != nil {
			return err
		}
	}
	return nil
}

// Filter removes every row for which fn returns true, preserving the order of the
// remaining rows, and returns the number of rows removed
func (t *Table) Filter(fn geoprep.FilterOperation) (int, error) {
	safe := util.SafeFilterOperation(fn)
	keep := make([]int, 0, t.nrows)
	for i := 0; i < t.nrows; i++ {
		remove, err := safe(&rowImpl{table: t, idx: i})
		if err != nil {
			return 0, err
		}
		if !remove {
			keep = append(keep, i)
		}
	}
	removed := t.nrows - len(keep)
	for c, col := range t.cols {
		kept := make([]interface{}, len(keep))
		for j, r := range keep {
			kept[j] = col[r]
		}
		t.cols[c] = kept
	}
	t.nrows = len(keep)
	return removed, nil
}

// Take produces a new Table with the same Schema whose rows are copies of the rows
// at the given indices, in order. An index of -1 produces a row of nils.
func (t *Table) Take(indices []int) (*Table, error) {
	res := CreateTable(t.schema)
	for c, col := range t.cols {
		taken := make([]interface{}, len(indices))
		for j, r := range indices {
			if r == -1 {
				continue
			}
			if r < 0 || r >= t.nrows {
				return nil, errors.IndexOutOfRangeError{Kind: "row", Index: r, Len: t.nrows}
			}
			taken[j] = col[r]
		}
		res.cols[c] = taken
	}
	res.nrows = len(indices)
	return res, nil
}
