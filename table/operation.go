package table

// Operation computes a new Table from an existing one. Operations must not
// modify their input; they work on a Clone.
type Operation func(t *Table) (*Table, error)

// To applies a sequence of Operations to this Table, returning the final result
func (t *Table) To(ops ...Operation) (*Table, error) {
	next := t
	for _, op := range ops {
		res, err := op(next)
		if err != nil {
			return nil, err
		}
		next = res
	}
	return next, nil
}

// SpatialOperation computes a new Spatial dataset from an existing one, without modifying its input
type SpatialOperation func(s *Spatial) (*Spatial, error)

// To applies a sequence of SpatialOperations to this dataset, returning the final result
func (s *Spatial) To(ops ...SpatialOperation) (*Spatial, error) {
	next := s
	for _, op := range ops {
		res, err := op(next)
		if err != nil {
			return nil, err
		}
		next = res
	}
	return next, nil
}

// OnTable lifts a table Operation onto the attribute table of a Spatial dataset.
// The geometry column must survive the operation.
func OnTable(op Operation) SpatialOperation {
	return func(s *Spatial) (*Spatial, error) {
		res, err := op(s.Table)
		if err != nil {
			return nil, err
		}
		return s.WithTable(res)
	}
}
