package transform

import (
	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/table"
)

// Map transforms every Row in-place, in order
func Map(fn geoprep.MapOperation) table.Operation {
	return func(t *table.Table) (*table.Table, error) {
		res := t.Clone()
		if err := res.Map(fn); err != nil {
			return nil, err
		}
		return res, nil
	}
}
