package transform

import (
	"sort"

	"github.com/go-sif/geoprep/errors"
	"github.com/go-sif/geoprep/table"
)

// RemoveColumns removes existing columns by name. Names are matched exactly, or after normalization.
func RemoveColumns(names ...string) table.Operation {
	return func(t *table.Table) (*table.Table, error) {
		res := t.Clone()
		for _, name := range names {
			resolved, ok := resolveColumn(res, name)
			if !ok {
				return nil, errors.ColumnNotFoundError{Name: name}
			}
			if err := res.RemoveColumn(resolved); err != nil {
				return nil, err
			}
		}
		return res, nil
	}
}

// RemoveColumnsAt removes existing columns by position. All indices refer to the
// column order before any removal, and duplicates are ignored.
func RemoveColumnsAt(indices ...int) table.Operation {
	return func(t *table.Table) (*table.Table, error) {
		names := t.ColumnNames()
		unique := make(map[int]bool, len(indices))
		for _, idx := range indices {
			if idx < 0 || idx >= len(names) {
				return nil, errors.IndexOutOfRangeError{Kind: "column", Index: idx, Len: len(names)}
			}
			unique[idx] = true
		}
		sorted := make([]int, 0, len(unique))
		for idx := range unique {
			sorted = append(sorted, idx)
		}
		sort.Ints(sorted)
		toRemove := make([]string, len(sorted))
		for i, idx := range sorted {
			toRemove[i] = names[idx]
		}
		return RemoveColumns(toRemove...)(t)
	}
}

// RemoveLastColumn removes the final column of a table
func RemoveLastColumn() table.Operation {
	return func(t *table.Table) (*table.Table, error) {
		return RemoveColumnsAt(t.NumColumns() - 1)(t)
	}
}
