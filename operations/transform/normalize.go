package transform

import (
	"fmt"
	"strings"

	"github.com/go-sif/geoprep/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName trims surrounding whitespace and upper-cases a column name
func NormalizeName(name string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(name))
}

// resolveColumn finds a column by its exact name, falling back to its normalized name
func resolveColumn(t *table.Table, name string) (string, bool) {
	if t.HasColumn(name) {
		return name, true
	}
	normalized := NormalizeName(name)
	return normalized, t.HasColumn(normalized)
}

// NormalizeSchema trims and upper-cases column names and drops columns whose values
// are all missing. Names which collide once normalized receive a numeric suffix
// (NAME, NAME_1, NAME_2, ...). Applying NormalizeSchema twice has the same result as
// applying it once.
func NormalizeSchema() table.Operation {
	return func(t *table.Table) (*table.Table, error) {
		res := t.Clone()
		for _, name := range t.ColumnNames() {
			values, err := res.Column(name)
			if err != nil {
				return nil, err
			}
			if allNil(values) {
				if err := res.RemoveColumn(name); err != nil {
					return nil, err
				}
			}
		}
		// rename through temporary names, so that swaps like "a"/"A " cannot collide mid-way
		names := res.ColumnNames()
		temps := make([]string, len(names))
		for i, name := range names {
			temps[i] = fmt.Sprintf("\x00%d", i)
			if err := res.RenameColumn(name, temps[i]); err != nil {
				return nil, err
			}
		}
		taken := make(map[string]bool, len(names))
		for i, name := range names {
			target := NormalizeName(name)
			for suffix := 1; taken[target]; suffix++ {
				target = fmt.Sprintf("%s_%d", NormalizeName(name), suffix)
			}
			taken[target] = true
			if err := res.RenameColumn(temps[i], target); err != nil {
				return nil, err
			}
		}
		return res, nil
	}
}

func allNil(values []interface{}) bool {
	for _, v := range values {
		if v != nil {
			return false
		}
	}
	return true
}
