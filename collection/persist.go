package collection

import (
	"context"
	"time"
)

// SaveTable writes the first tabular dataset to path
func (c *Collection) SaveTable(ctx context.Context, path string) error {
	const op = "save_table"
	start := time.Now()
	t, err := c.Table(0)
	if err == nil && c.storage.TableWriter == nil {
		err = missingCollaborator("table writer")
	}
	if err == nil {
		err = c.storage.TableWriter.WriteTable(ctx, path, t)
	}
	if err == nil {
		c.addRows(op, "written", t.NumRows())
		c.log.Infof("saved table[0] (%s) to %s", t.ID(), path)
	}
	return c.finish(op, kindTable, 0, start, err)
}

// SaveSpatial writes the first spatial dataset to path
func (c *Collection) SaveSpatial(ctx context.Context, path string) error {
	const op = "save_spatial"
	start := time.Now()
	s, err := c.Spatial(0)
	if err == nil && c.storage.SpatialWriter == nil {
		err = missingCollaborator("spatial writer")
	}
	if err == nil {
		err = c.storage.SpatialWriter.WriteSpatial(ctx, path, s)
	}
	if err == nil {
		c.addRows(op, "written", s.NumRows())
		c.log.Infof("saved spatial[0] (%s) to %s", s.ID(), path)
	}
	return c.finish(op, kindSpatial, 0, start, err)
}
