package jsonl

import (
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"
)

// accumulator collects column-major values from JSON objects whose keys may vary between lines
type accumulator struct {
	names   []string
	index   map[string]int
	columns [][]interface{}
	rows    int
}

func newAccumulator() *accumulator {
	return &accumulator{index: make(map[string]int)}
}

// parseValue converts a gjson result into a raw column value
func parseValue(val gjson.Result) interface{} {
	switch val.Type {
	case gjson.Null:
		return nil
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		f := val.Float()
		if !strings.ContainsAny(val.Raw, ".eE") && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return val.Int()
		}
		return f
	case gjson.String:
		return val.String()
	default:
		return val.Raw
	}
}

// Parses a line of JSON into the accumulated columns
func (acc *accumulator) scanRow(conf *ParserConf, line int, rowString string) error {
	trimmed := strings.TrimSpace(rowString)
	if len(trimmed) == 0 || (conf.Comment != 0 && strings.HasPrefix(trimmed, string(conf.Comment))) {
		return nil
	}
	if !gjson.Valid(trimmed) {
		return fmt.Errorf("Line %d is not valid JSON", line)
	}
	obj := gjson.Parse(trimmed)
	if !obj.IsObject() {
		return fmt.Errorf("Line %d is not a JSON object", line)
	}
	obj.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		idx, ok := acc.index[name]
		if !ok {
			// a new column is missing from every earlier row
			idx = len(acc.names)
			acc.index[name] = idx
			acc.names = append(acc.names, name)
			acc.columns = append(acc.columns, make([]interface{}, acc.rows))
		}
		if len(acc.columns[idx]) == acc.rows {
			acc.columns[idx] = append(acc.columns[idx], parseValue(value))
		}
		return true
	})
	acc.rows++
	for i := range acc.columns {
		if len(acc.columns[i]) < acc.rows {
			acc.columns[i] = append(acc.columns[i], nil)
		}
	}
	return nil
}
