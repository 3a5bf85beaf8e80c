package geoprep

import (
	"fmt"
	"strings"
)

// FilterOperation - A generic function for determining whether or not a Row should be removed
type FilterOperation func(row Row) (remove bool, err error)

// MapOperation - A generic function for manipulating Rows in-place
type MapOperation func(row Row) error

// Comparison is the operator of a row filter
type Comparison int

const (
	// GreaterThan matches values strictly greater than the threshold
	GreaterThan Comparison = iota + 1
	// LessThan matches values strictly less than the threshold
	LessThan
	// GreaterOrEqual matches values greater than or equal to the threshold
	GreaterOrEqual
	// LessOrEqual matches values less than or equal to the threshold
	LessOrEqual
	// Equal matches values equal to the threshold
	Equal
)

// ParseComparison accepts the operator symbols >, <, >=, <=, == (or =),
// as well as the menu codes 1 to 5 in the same order
func ParseComparison(s string) (Comparison, error) {
	switch strings.TrimSpace(s) {
	case ">", "1":
		return GreaterThan, nil
	case "<", "2":
		return LessThan, nil
	case ">=", "3":
		return GreaterOrEqual, nil
	case "<=", "4":
		return LessOrEqual, nil
	case "==", "=", "5":
		return Equal, nil
	default:
		return 0, fmt.Errorf("unknown comparison operator %q", s)
	}
}

// Evaluate returns the result of "value <op> threshold"
func (c Comparison) Evaluate(value, threshold float64) bool {
	switch c {
	case GreaterThan:
		return value > threshold
	case LessThan:
		return value < threshold
	case GreaterOrEqual:
		return value >= threshold
	case LessOrEqual:
		return value <= threshold
	case Equal:
		return value == threshold
	default:
		return false
	}
}

func (c Comparison) String() string {
	switch c {
	case GreaterThan:
		return ">"
	case LessThan:
		return "<"
	case GreaterOrEqual:
		return ">="
	case LessOrEqual:
		return "<="
	case Equal:
		return "=="
	default:
		return fmt.Sprintf("Comparison(%d)", int(c))
	}
}

// JoinMode selects which unmatched rows survive a join
type JoinMode string

const (
	// LeftJoin keeps every row of the held dataset
	LeftJoin JoinMode = "left"
	// RightJoin keeps every row of the other dataset
	RightJoin JoinMode = "right"
	// InnerJoin keeps only matched rows
	InnerJoin JoinMode = "inner"
	// OuterJoin keeps every row of both datasets
	OuterJoin JoinMode = "outer"
)

// ParseJoinMode parses left, right, inner or outer
func ParseJoinMode(s string) (JoinMode, error) {
	m := JoinMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case LeftJoin, RightJoin, InnerJoin, OuterJoin:
		return m, nil
	default:
		return "", fmt.Errorf("unknown join mode %q", s)
	}
}

// SpatialPredicate is the geometric relationship tested by a spatial join
type SpatialPredicate string

const (
	// Intersects matches geometries sharing any point
	Intersects SpatialPredicate = "intersects"
	// Within matches held geometries lying inside the other geometry
	Within SpatialPredicate = "within"
	// Contains matches held geometries containing the other geometry
	Contains SpatialPredicate = "contains"
)

// ParseSpatialPredicate parses intersects, within or contains
func ParseSpatialPredicate(s string) (SpatialPredicate, error) {
	p := SpatialPredicate(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case Intersects, Within, Contains:
		return p, nil
	default:
		return "", fmt.Errorf("unknown spatial predicate %q", s)
	}
}

// TransformKind selects the rescaling applied by a value transform
type TransformKind string

const (
	// LogTransform applies the natural logarithm
	LogTransform TransformKind = "log"
	// LogitTransform applies the log-odds ln(v/(1-v))
	LogitTransform TransformKind = "logit"
)

// ParseTransformKind parses log or logit, or the menu codes 1 and 2
func ParseTransformKind(s string) (TransformKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "log", "1":
		return LogTransform, nil
	case "logit", "2":
		return LogitTransform, nil
	default:
		return "", fmt.Errorf("unknown transform %q", s)
	}
}
