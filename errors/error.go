package errors

import (
	"fmt"
)

// NilValueError occurs when a value in a Row is null
type NilValueError struct{ Name string }

// Error returns a textual representation of this NilValueError
func (e NilValueError) Error() string {
	return fmt.Sprintf("Value for column %s is nil", e.Name)
}

// ColumnNotFoundError occurs when a named column does not exist in a dataset
type ColumnNotFoundError struct{ Name string }

// Error returns a textual representation of this ColumnNotFoundError
func (e ColumnNotFoundError) Error() string {
	return fmt.Sprintf("Column %s does not exist", e.Name)
}

// DuplicateColumnError occurs when a column would be created with the name of an existing column
type DuplicateColumnError struct{ Name string }

// Error returns a textual representation of this DuplicateColumnError
func (e DuplicateColumnError) Error() string {
	return fmt.Sprintf("Column %s already exists", e.Name)
}

// IndexOutOfRangeError occurs when a positional index (of a column, or of a dataset
// within a collection) is outside of [0, Len)
type IndexOutOfRangeError struct {
	Kind  string // what is being indexed, e.g. "column", "table", "spatial"
	Index int
	Len   int
}

// Error returns a textual representation of this IndexOutOfRangeError
func (e IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0, %d)", e.Kind, e.Index, e.Len)
}

// KeyNotFoundError occurs when a join key is missing from one side of a join
type KeyNotFoundError struct {
	Key  string
	Side string // "left" or "right"
}

// Error returns a textual representation of this KeyNotFoundError
func (e KeyNotFoundError) Error() string {
	return fmt.Sprintf("Join key %s does not exist in the %s dataset", e.Key, e.Side)
}

// InvalidThresholdError occurs when a filter threshold cannot be parsed as a number
type InvalidThresholdError struct{ Threshold string }

// Error returns a textual representation of this InvalidThresholdError
func (e InvalidThresholdError) Error() string {
	return fmt.Sprintf("Threshold %q is not numeric", e.Threshold)
}

// InvalidCoordinateError occurs when a latitude or longitude value of a row is not a usable number
type InvalidCoordinateError struct {
	Row    int
	Column string
	Value  interface{}
}

// Error returns a textual representation of this InvalidCoordinateError
func (e InvalidCoordinateError) Error() string {
	return fmt.Sprintf("Row %d: coordinate %s is invalid. Was: %#v", e.Row, e.Column, e.Value)
}

// TypeCoercionError occurs when a value cannot be converted to a column type
type TypeCoercionError struct {
	Column string
	Row    int
	Type   string
	Value  interface{}
}

// Error returns a textual representation of this TypeCoercionError
func (e TypeCoercionError) Error() string {
	return fmt.Sprintf("Column %s could not be coerced to %s at row %d. Was: %#v", e.Column, e.Type, e.Row, e.Value)
}

// IncompatibleTypeError occurs when an operation requires a column of a different type
type IncompatibleTypeError struct {
	Column   string
	Expected string
	Actual   string
}

// Error returns a textual representation of this IncompatibleTypeError
func (e IncompatibleTypeError) Error() string {
	return fmt.Sprintf("Column %s has type %s, expected %s", e.Column, e.Actual, e.Expected)
}

// EmptyColumnError occurs when a column holds too few usable values for an estimate
type EmptyColumnError struct {
	Column string
	Count  int
	Reason string
}

// Error returns a textual representation of this EmptyColumnError
func (e EmptyColumnError) Error() string {
	return fmt.Sprintf("Column %s cannot be estimated from %d values: %s", e.Column, e.Count, e.Reason)
}

// NoPositiveValuesError occurs when a log rescaling finds no strictly positive value to derive its floor from
type NoPositiveValuesError struct{ Column string }

// Error returns a textual representation of this NoPositiveValuesError
func (e NoPositiveValuesError) Error() string {
	return fmt.Sprintf("Column %s contains no positive values", e.Column)
}

// DatasetError attaches the location of a dataset within a collection to an error
type DatasetError struct {
	Kind  string // "table" or "spatial"
	Index int
	Op    string
	Err   error
}

// Error returns a textual representation of this DatasetError
func (e *DatasetError) Error() string {
	return fmt.Sprintf("%s %s[%d]: %v", e.Op, e.Kind, e.Index, e.Err)
}

// Unwrap returns the underlying error
func (e *DatasetError) Unwrap() error {
	return e.Err
}
