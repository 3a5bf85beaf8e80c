package collection

import (
	"fmt"
	"time"

	"github.com/go-sif/geoprep/errors"
	"github.com/go-sif/geoprep/internal/stats"
	"github.com/go-sif/geoprep/logging"
	"github.com/go-sif/geoprep/table"
)

const (
	kindTable   = "table"
	kindSpatial = "spatial"
)

// Collection owns two ordered sequences of datasets: tables and spatial datasets
type Collection struct {
	storage           Storage
	tables            []*table.Table
	spatial           []*table.Spatial
	log               *logging.Logger
	stats             *stats.OperationStatistics
	strictCoordinates bool
}

// Option configures a Collection
type Option func(c *Collection)

// WithLogger sets the Logger receiving operation and warning messages
func WithLogger(l *logging.Logger) Option {
	return func(c *Collection) {
		c.log = l
	}
}

// WithStrictCoordinates makes MakePoints fail on the first row with unusable coordinates,
// instead of giving that row a nil geometry
func WithStrictCoordinates(strict bool) Option {
	return func(c *Collection) {
		c.strictCoordinates = strict
	}
}

// WithStats records operation counts, runtimes and affected rows
func WithStats(s *stats.OperationStatistics) Option {
	return func(c *Collection) {
		c.stats = s
	}
}

// New creates an empty Collection
func New(storage Storage, opts ...Option) *Collection {
	c := &Collection{storage: storage, log: logging.Discard()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NumTables returns the number of tabular datasets
func (c *Collection) NumTables() int {
	return len(c.tables)
}

// NumSpatial returns the number of spatial datasets
func (c *Collection) NumSpatial() int {
	return len(c.spatial)
}

// Table returns the tabular dataset at index i. It remains owned by the Collection
// and must not be modified.
func (c *Collection) Table(i int) (*table.Table, error) {
	if i < 0 || i >= len(c.tables) {
		return nil, errors.IndexOutOfRangeError{Kind: kindTable, Index: i, Len: len(c.tables)}
	}
	return c.tables[i], nil
}

// Spatial returns the spatial dataset at index i. It remains owned by the Collection
// and must not be modified.
func (c *Collection) Spatial(i int) (*table.Spatial, error) {
	if i < 0 || i >= len(c.spatial) {
		return nil, errors.IndexOutOfRangeError{Kind: kindSpatial, Index: i, Len: len(c.spatial)}
	}
	return c.spatial[i], nil
}

// finish records the outcome of an operation and wraps its error with the dataset location
func (c *Collection) finish(op string, kind string, i int, start time.Time, err error) error {
	if c.stats != nil {
		c.stats.EndOperation(op, start, err)
	}
	if err != nil {
		c.log.Debugf("%s %s[%d] failed after %s: %v", op, kind, i, time.Since(start), err)
		return &errors.DatasetError{Kind: kind, Index: i, Op: op, Err: err}
	}
	c.log.Debugf("%s %s[%d] done in %s", op, kind, i, time.Since(start))
	return nil
}

func (c *Collection) addRows(op string, kind string, n int) {
	if c.stats != nil {
		c.stats.AddRows(op, kind, n)
	}
}

// applyTable replaces table i with the result of ops
func (c *Collection) applyTable(op string, i int, ops ...table.Operation) error {
	start := time.Now()
	t, err := c.Table(i)
	if err == nil {
		c.log.Debugf("%s table[%d] (%s)", op, i, t.ID())
		var res *table.Table
		if res, err = t.To(ops...); err == nil {
			c.tables[i] = res
		}
	}
	return c.finish(op, kindTable, i, start, err)
}

// applySpatial replaces spatial dataset i with the result of ops
func (c *Collection) applySpatial(op string, i int, ops ...table.SpatialOperation) error {
	start := time.Now()
	s, err := c.Spatial(i)
	if err == nil {
		c.log.Debugf("%s spatial[%d] (%s)", op, i, s.ID())
		var res *table.Spatial
		if res, err = s.To(ops...); err == nil {
			c.spatial[i] = res
		}
	}
	return c.finish(op, kindSpatial, i, start, err)
}

func missingCollaborator(name string) error {
	return fmt.Errorf("no %s configured", name)
}
