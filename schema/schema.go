package schema

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/errors"
)

// column describes the index and type of a field in a Row.
type column struct {
	idx     int
	colType geoprep.ColumnType
}

// Clone returns a copy of this Column
func (c *column) Clone() geoprep.Column {
	return &column{c.idx, c.colType}
}

// Index returns the index of this Column within a Schema
func (c *column) Index() int {
	return c.idx
}

// SetIndex modifies the index of this Column within a Schema
func (c *column) SetIndex(newIndex int) {
	c.idx = newIndex
}

// Type returns the ColumnType of this Column
func (c *column) Type() geoprep.ColumnType {
	return c.colType
}

// Schema is an ordered mapping from column names to Columns.
type schema struct {
	schema map[string]geoprep.Column
}

// CreateSchema is a factory for Schemas
func CreateSchema() geoprep.Schema {
	return &schema{
		schema: make(map[string]geoprep.Column),
	}
}

// Equals returns nil iff this and another Schema have the same names, in the same order, with the same types
func (s *schema) Equals(otherSchema geoprep.Schema) error {
	if s.NumColumns() != otherSchema.NumColumns() {
		return fmt.Errorf("Schemas have unequal numbers of columns")
	}
	return s.ForEachColumn(func(name string, col geoprep.Column) error {
		otherCol, err := otherSchema.GetColumn(name)
		if err != nil {
			return err
		}
		if col.Index() != otherCol.Index() {
			return fmt.Errorf("Column %s indices do not match", name)
		}
		if reflect.TypeOf(col.Type()) != reflect.TypeOf(otherCol.Type()) {
			return fmt.Errorf("Column %s types do not match", name)
		}
		return nil
	})
}

// Clone returns a copy of this Schema
func (s *schema) Clone() geoprep.Schema {
	newSchema := make(map[string]geoprep.Column, len(s.schema))
	for k, v := range s.schema {
		newSchema[k] = v.Clone()
	}
	return &schema{schema: newSchema}
}

// NumColumns returns the number of columns in this Schema
func (s *schema) NumColumns() int {
	return len(s.schema)
}

// GetColumn returns the Column with the given name
func (s *schema) GetColumn(colName string) (col geoprep.Column, err error) {
	col, ok := s.schema[colName]
	if !ok {
		err = errors.ColumnNotFoundError{Name: colName}
	}
	return
}

// HasColumn returns true iff this schema contains a column with the given name
func (s *schema) HasColumn(colName string) bool {
	_, ok := s.schema[colName]
	return ok
}

// CreateColumn defines a new column at the end of the Schema
func (s *schema) CreateColumn(colName string, columnType geoprep.ColumnType) (newSchema geoprep.Schema, err error) {
	if s.HasColumn(colName) {
		return nil, errors.DuplicateColumnError{Name: colName}
	}
	s.schema[colName] = &column{len(s.schema), columnType}
	return s, nil
}

// RenameColumn renames a column within the Schema, keeping its position
func (s *schema) RenameColumn(oldName string, newName string) (newSchema geoprep.Schema, err error) {
	col, err := s.GetColumn(oldName)
	if err != nil {
		return nil, err
	}
	if oldName == newName {
		return s, nil
	}
	if s.HasColumn(newName) {
		return nil, errors.DuplicateColumnError{Name: newName}
	}
	s.schema[newName] = col
	delete(s.schema, oldName)
	return s, nil
}

// RemoveColumn removes a column from the Schema, shifting the indices of the columns after it
func (s *schema) RemoveColumn(colName string) (geoprep.Schema, error) {
	col, err := s.GetColumn(colName)
	if err != nil {
		return nil, err
	}
	removed := col.Index()
	delete(s.schema, colName)
	for _, other := range s.schema {
		if other.Index() > removed {
			other.SetIndex(other.Index() - 1)
		}
	}
	return s, nil
}

// SetColumnType replaces the type of an existing column
func (s *schema) SetColumnType(colName string, columnType geoprep.ColumnType) (geoprep.Schema, error) {
	col, err := s.GetColumn(colName)
	if err != nil {
		return nil, err
	}
	s.schema[colName] = &column{col.Index(), columnType}
	return s, nil
}

// ColumnNames returns the names in the schema, in index order
func (s *schema) ColumnNames() []string {
	names := make([]string, len(s.schema))
	for k, v := range s.schema {
		names[v.Index()] = k
	}
	return names
}

// ColumnTypes returns the types in the schema, in index order
func (s *schema) ColumnTypes() []geoprep.ColumnType {
	types := make([]geoprep.ColumnType, len(s.schema))
	for _, v := range s.schema {
		types[v.Index()] = v.Type()
	}
	return types
}

// ForEachColumn iterates over the columns in this Schema, in order of column index.
func (s *schema) ForEachColumn(fn func(name string, col geoprep.Column) error) error {
	names := make([]string, 0, len(s.schema))
	for k := range s.schema {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		return s.schema[names[i]].Index() < s.schema[names[j]].Index()
	})
	for _, name := range names {
		err := fn(name, s.schema[name])
		if err != nil {
			return err
		}
	}
	return nil
}
