package geoprep

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// ColumnType is an interface which is implemented to define a supported column type.
// geoprep provides a variety of built-in types in this package. Values of every type
// may also be nil, which represents a missing value.
type ColumnType interface {
	Name() string                              // Name returns a short identifier for this type, used in logs
	ToString(v interface{}) string             // ToString produces a string representation of a value of this type
	Coerce(v interface{}) (interface{}, error) // Coerce converts a value of any built-in type into this type
}

// IsNumeric returns true iff colType stores numbers
func IsNumeric(colType ColumnType) bool {
	switch colType.(type) {
	case *Float64ColumnType, *Int64ColumnType:
		return true
	default:
		return false
	}
}

// IsGeometry returns true iff colType stores geometries
func IsGeometry(colType ColumnType) (isGeometry bool) {
	_, isGeometry = colType.(*GeometryColumnType)
	return
}

// ToFloat64 returns the numeric value of v, if it holds a number
func ToFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Float64ColumnType is a column type which stores a float64 value
type Float64ColumnType struct{}

// Name returns "float64"
func (b *Float64ColumnType) Name() string {
	return "float64"
}

// ToString produces a string representation of a value of a Float64ColumnType value
func (b *Float64ColumnType) ToString(v interface{}) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(v.(float64), 'f', -1, 64)
}

// Coerce converts v to a float64
func (b *Float64ColumnType) Coerce(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case float64:
		return t, nil
	case int64:
		return float64(t), nil
	case bool:
		if t {
			return 1.0, nil
		}
		return 0.0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", t)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("cannot coerce %T to %s", v, b.Name())
	}
}

// Int64ColumnType is a column type which stores an int64 value
type Int64ColumnType struct{}

// Name returns "int64"
func (b *Int64ColumnType) Name() string {
	return "int64"
}

// ToString produces a string representation of a value of an Int64ColumnType value
func (b *Int64ColumnType) ToString(v interface{}) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(v.(int64), 10)
}

// Coerce converts v to an int64. Floats must be whole numbers.
func (b *Int64ColumnType) Coerce(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case int64:
		return t, nil
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) || math.IsNaN(t) {
			return nil, fmt.Errorf("%v is not a whole number", t)
		}
		return int64(t), nil
	case bool:
		if t {
			return int64(1), nil
		}
		return int64(0), nil
	case string:
		s := strings.TrimSpace(t)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", t)
		}
		return b.Coerce(f)
	default:
		return nil, fmt.Errorf("cannot coerce %T to %s", v, b.Name())
	}
}

// BoolColumnType is a column type which stores a boolean value
type BoolColumnType struct{}

// Name returns "bool"
func (b *BoolColumnType) Name() string {
	return "bool"
}

// ToString produces a string representation of a value of a BoolColumnType value
func (b *BoolColumnType) ToString(v interface{}) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(v.(bool))
}

// Coerce converts v to a bool
func (b *BoolColumnType) Coerce(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return t, nil
	case int64:
		return t != 0, nil
	case float64:
		return t != 0, nil
	case string:
		bval, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean", t)
		}
		return bval, nil
	default:
		return nil, fmt.Errorf("cannot coerce %T to %s", v, b.Name())
	}
}

// VarStringColumnType is a column type which stores a variable-length string value
type VarStringColumnType struct{}

// Name returns "string"
func (b *VarStringColumnType) Name() string {
	return "string"
}

// ToString produces a string representation of a value of a VarStringColumnType value
func (b *VarStringColumnType) ToString(v interface{}) string {
	if v == nil {
		return ""
	}
	return v.(string)
}

// Coerce converts v to its string representation
func (b *VarStringColumnType) Coerce(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case bool:
		return strconv.FormatBool(t), nil
	case orb.Geometry:
		return wkt.MarshalString(t), nil
	default:
		return nil, fmt.Errorf("cannot coerce %T to %s", v, b.Name())
	}
}

// GeometryColumnType is a column type which stores an orb.Geometry. Geometries are
// opaque to non-spatial operations.
type GeometryColumnType struct{}

// Name returns "geometry"
func (b *GeometryColumnType) Name() string {
	return "geometry"
}

// ToString produces the WKT representation of a GeometryColumnType value
func (b *GeometryColumnType) ToString(v interface{}) string {
	if v == nil {
		return ""
	}
	return wkt.MarshalString(v.(orb.Geometry))
}

// Coerce accepts geometries, or parses WKT strings
func (b *GeometryColumnType) Coerce(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case orb.Geometry:
		return t, nil
	case string:
		g, err := wkt.Unmarshal(t)
		if err != nil {
			return nil, fmt.Errorf("%q is not a WKT geometry: %w", t, err)
		}
		return g, nil
	default:
		return nil, fmt.Errorf("cannot coerce %T to %s", v, b.Name())
	}
}

// CommonType returns a type able to hold values of both a and b. Integers widen to
// floats; any other disagreement falls back to strings.
func CommonType(a, b ColumnType) ColumnType {
	if a.Name() == b.Name() {
		return a
	}
	if IsNumeric(a) && IsNumeric(b) {
		return &Float64ColumnType{}
	}
	return &VarStringColumnType{}
}
