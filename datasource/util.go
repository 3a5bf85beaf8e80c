package datasource

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/operations/transform"
	"github.com/go-sif/geoprep/table"
	"github.com/paulmach/orb"
)

// BuildTable produces a Table from raw, column-major values. Column types are
// inferred from the values (see InferType), except for the columns named in
// textColumns (compared after normalization), which always hold strings. Repeated
// names are disambiguated as NAME, NAME.1, NAME.2, ... (see dedupeNames)
func BuildTable(names []string, columns [][]interface{}, textColumns []string) (*table.Table, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("BuildTable received %d names for %d columns", len(names), len(columns))
	}
	text := make(map[string]bool, len(textColumns))
	for _, name := range textColumns {
		text[transform.NormalizeName(name)] = true
	}
	uniqueNames := dedupeNames(names)
	types := make([]geoprep.ColumnType, len(names))
	for i, name := range names {
		if text[transform.NormalizeName(name)] {
			types[i] = &geoprep.VarStringColumnType{}
		} else {
			types[i] = InferType(columns[i])
		}
	}
	return table.FromColumns(uniqueNames, types, columns)
}

// dedupeNames suffixes repeated names with .1, .2, ... A generated name which is
// already taken, by a header or by an earlier suffix, is suffixed in turn, so
// A,A,A.1 becomes A,A.1,A.1.1.
func dedupeNames(names []string) []string {
	counts := make(map[string]int, len(names))
	res := make([]string, len(names))
	for i, name := range names {
		n := counts[name]
		for n > 0 {
			counts[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
			n = counts[name]
		}
		res[i] = name
		counts[name] = n + 1
	}
	return res
}

// InferType returns the narrowest type able to hold every value. Strings which
// parse as integers, floats or the words true/false count as those types. A column
// with no values is a float column.
func InferType(values []interface{}) geoprep.ColumnType {
	var res geoprep.ColumnType
	for _, v := range values {
		vt := valueType(v)
		if vt == nil {
			continue
		}
		if res == nil {
			res = vt
		} else {
			res = geoprep.CommonType(res, vt)
		}
		if _, isString := res.(*geoprep.VarStringColumnType); isString {
			return res
		}
	}
	if res == nil {
		return &geoprep.Float64ColumnType{}
	}
	return res
}

func valueType(v interface{}) geoprep.ColumnType {
	switch t := v.(type) {
	case nil:
		return nil
	case int64:
		return &geoprep.Int64ColumnType{}
	case float64:
		return &geoprep.Float64ColumnType{}
	case bool:
		return &geoprep.BoolColumnType{}
	case orb.Geometry:
		return &geoprep.GeometryColumnType{}
	case string:
		s := strings.TrimSpace(t)
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			return &geoprep.Int64ColumnType{}
		}
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return &geoprep.Float64ColumnType{}
		}
		switch s {
		case "true", "True", "TRUE", "false", "False", "FALSE":
			return &geoprep.BoolColumnType{}
		}
		return &geoprep.VarStringColumnType{}
	default:
		return &geoprep.VarStringColumnType{}
	}
}
