package util

import (
	"fmt"

	"github.com/go-sif/geoprep"
)

// SafeMapOperation wraps a MapOperation such that panics are recovered and nice error messages are constructed
func SafeMapOperation(mapOp geoprep.MapOperation) (safeMapOp geoprep.MapOperation) {
	return func(row geoprep.Row) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Map Panic: %w\nRow %d: %s\n%s", anErr, row.Index(), row.ToString(), GetTrace())
				} else {
					err = fmt.Errorf("Map Panic: %v\nRow %d: %s\n%s", r, row.Index(), row.ToString(), GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Map Error: %w\nRow %d: %s", err, row.Index(), row.ToString())
			}
		}()
		err = mapOp(row)
		return
	}
}

// SafeFilterOperation wraps a FilterOperation such that panics are recovered and nice error messages are constructed
func SafeFilterOperation(filterOp geoprep.FilterOperation) (safeFilterOp geoprep.FilterOperation) {
	return func(row geoprep.Row) (shouldFilter bool, err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Filter Panic: %w\nRow %d: %s\n%s", anErr, row.Index(), row.ToString(), GetTrace())
				} else {
					err = fmt.Errorf("Filter Panic: %v\nRow %d: %s\n%s", r, row.Index(), row.ToString(), GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Filter Error: %w\nRow %d: %s", err, row.Index(), row.ToString())
			}
		}()
		shouldFilter, err = filterOp(row)
		return
	}
}
