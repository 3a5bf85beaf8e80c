package transform

import (
	"github.com/go-sif/geoprep/errors"
	"github.com/go-sif/geoprep/table"
)

// RenameColumn renames an existing column, keeping its position. The new name is normalized.
func RenameColumn(oldName string, newName string) table.Operation {
	return func(t *table.Table) (*table.Table, error) {
		resolved, ok := resolveColumn(t, oldName)
		if !ok {
			return nil, errors.ColumnNotFoundError{Name: oldName}
		}
		res := t.Clone()
		if err := res.RenameColumn(resolved, NormalizeName(newName)); err != nil {
			return nil, err
		}
		return res, nil
	}
}
