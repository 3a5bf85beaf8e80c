package collection

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-sif/geoprep/operations/transform"
	"github.com/go-sif/geoprep/table"
)

// TableSource describes the tabular input of AddTable
type TableSource struct {
	// Paths lists one file, or several files concatenated in order by column name
	Paths []string
	// Sheet selects a spreadsheet sheet of the single file in Paths. A workbook path
	// (.xlsx, .xlsm, .xls) with no Sheet reads its first sheet; any other path with
	// no Sheet is a delimited, JSON lines or SQLite file.
	Sheet string
	// Raw skips schema normalization of a single source. Concatenated sources are
	// always normalized so that their columns line up.
	Raw bool
}

// AddTable reads a tabular source, normalizes it and appends it, returning its index
func (c *Collection) AddTable(ctx context.Context, src TableSource) (int, error) {
	const op = "add_table"
	start := time.Now()
	idx := len(c.tables)
	t, err := c.readTableSource(ctx, src)
	if err == nil && !src.Raw {
		t, err = t.To(transform.NormalizeSchema())
	}
	if err == nil {
		c.tables = append(c.tables, t)
		c.addRows(op, "read", t.NumRows())
		c.log.Infof("added table[%d] (%s) from %v: %d rows, %d columns", idx, t.ID(), src.Paths, t.NumRows(), t.NumColumns())
	}
	return idx, c.finish(op, kindTable, idx, start, err)
}

func (c *Collection) readTableSource(ctx context.Context, src TableSource) (*table.Table, error) {
	if len(src.Paths) == 0 {
		return nil, fmt.Errorf("no source paths given")
	}
	if src.Sheet != "" || isWorkbook(src.Paths[0]) {
		if len(src.Paths) != 1 {
			return nil, fmt.Errorf("a spreadsheet sheet must come from exactly one file, got %d", len(src.Paths))
		}
		if c.storage.Sheets == nil {
			return nil, missingCollaborator("spreadsheet reader")
		}
		return c.storage.Sheets.ReadSheet(ctx, src.Paths[0], src.Sheet)
	}
	if c.storage.Tables == nil {
		return nil, missingCollaborator("table reader")
	}
	parts, err := c.storage.Tables.ReadTables(ctx, src.Paths)
	if err != nil {
		return nil, err
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return transform.Concat(parts...)
}

func isWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return true
	}
	return false
}

// AppendTable transfers ownership of t to the Collection, returning its index
func (c *Collection) AppendTable(t *table.Table, normalize bool) (int, error) {
	const op = "append_table"
	start := time.Now()
	idx := len(c.tables)
	var err error
	if normalize {
		t, err = t.To(transform.NormalizeSchema())
	}
	if err == nil {
		c.tables = append(c.tables, t)
	}
	return idx, c.finish(op, kindTable, idx, start, err)
}

// AppendSpatial transfers ownership of s to the Collection, returning its index
func (c *Collection) AppendSpatial(s *table.Spatial) int {
	c.spatial = append(c.spatial, s)
	return len(c.spatial) - 1
}

// AddTableFromURL fetches a tab-separated table, normalizes it and appends it. The
// GEOID column is read as text.
func (c *Collection) AddTableFromURL(ctx context.Context, url string) (int, error) {
	const op = "add_table_from_url"
	start := time.Now()
	idx := len(c.tables)
	var t *table.Table
	var err error
	if c.storage.Fetcher == nil {
		err = missingCollaborator("table fetcher")
	} else {
		t, err = c.storage.Fetcher.FetchTable(ctx, url)
	}
	if err == nil {
		t, err = t.To(transform.NormalizeSchema())
	}
	if err == nil {
		c.tables = append(c.tables, t)
		c.addRows(op, "read", t.NumRows())
		c.log.Infof("added table[%d] (%s) from %s: %d rows", idx, t.ID(), url, t.NumRows())
	}
	return idx, c.finish(op, kindTable, idx, start, err)
}

// AddSpatial reads a spatial dataset and appends it as-is; its column names are not normalized
func (c *Collection) AddSpatial(ctx context.Context, path string) (int, error) {
	const op = "add_spatial"
	start := time.Now()
	idx := len(c.spatial)
	var s *table.Spatial
	var err error
	if c.storage.Spatial == nil {
		err = missingCollaborator("spatial reader")
	} else {
		s, err = c.storage.Spatial.ReadSpatial(ctx, path)
	}
	if err == nil {
		c.spatial = append(c.spatial, s)
		c.addRows(op, "read", s.NumRows())
		c.log.Infof("added spatial[%d] (%s) from %s: %d features, crs %s", idx, s.ID(), path, s.NumRows(), s.CRS())
	}
	return idx, c.finish(op, kindSpatial, idx, start, err)
}
