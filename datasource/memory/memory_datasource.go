// Package memory provides a DataSource which serves datasets from memory: raw buffers
// parsed on read, or datasets registered directly. Datasets written to it are kept
// and can be retrieved by path.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/go-sif/geoprep/table"
)

// TableParser parses a buffer into a Table
type TableParser interface {
	Parse(r io.Reader) (*table.Table, error)
}

// DataSource is a set of buffers and datasets, addressed by path
type DataSource struct {
	parser  TableParser
	data    map[string][]byte
	tables  map[string]*table.Table
	spatial map[string]*table.Spatial
}

// CreateDataSource is a factory for DataSources. parser reads buffers added with AddBuffer.
func CreateDataSource(parser TableParser) *DataSource {
	return &DataSource{
		parser:  parser,
		data:    make(map[string][]byte),
		tables:  make(map[string]*table.Table),
		spatial: make(map[string]*table.Spatial),
	}
}

// SheetKey is the path under which a spreadsheet sheet is stored
func SheetKey(path string, sheet string) string {
	return path + "!" + sheet
}

// AddBuffer registers raw data, parsed each time path is read
func (m *DataSource) AddBuffer(path string, data []byte) {
	m.data[path] = data
}

// AddTable registers a Table under path (a file path, URL or SheetKey)
func (m *DataSource) AddTable(path string, t *table.Table) {
	m.tables[path] = t
}

// AddSpatial registers a Spatial dataset under path
func (m *DataSource) AddSpatial(path string, s *table.Spatial) {
	m.spatial[path] = s
}

// Table returns the Table registered or written under path
func (m *DataSource) Table(path string) (*table.Table, bool) {
	t, ok := m.tables[path]
	return t, ok
}

// Spatial returns the Spatial dataset registered or written under path
func (m *DataSource) Spatial(path string) (*table.Spatial, bool) {
	s, ok := m.spatial[path]
	return s, ok
}

func (m *DataSource) readTable(path string) (*table.Table, error) {
	if t, ok := m.tables[path]; ok {
		return t.Clone(), nil
	}
	if data, ok := m.data[path]; ok {
		return m.parser.Parse(bytes.NewReader(data))
	}
	return nil, fmt.Errorf("memory: %s does not exist", path)
}

// ReadTables returns copies of the Tables at paths, in order
func (m *DataSource) ReadTables(ctx context.Context, paths []string) ([]*table.Table, error) {
	res := make([]*table.Table, len(paths))
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := m.readTable(path)
		if err != nil {
			return nil, err
		}
		res[i] = t
	}
	return res, nil
}

// ReadSheet returns a copy of the Table registered under SheetKey(path, sheet)
func (m *DataSource) ReadSheet(ctx context.Context, path string, sheet string) (*table.Table, error) {
	return m.readTable(SheetKey(path, sheet))
}

// FetchTable returns a copy of the Table registered under url
func (m *DataSource) FetchTable(ctx context.Context, url string) (*table.Table, error) {
	return m.readTable(url)
}

// ReadSpatial returns a copy of the Spatial dataset at path
func (m *DataSource) ReadSpatial(ctx context.Context, path string) (*table.Spatial, error) {
	s, ok := m.spatial[path]
	if !ok {
		return nil, fmt.Errorf("memory: %s does not exist", path)
	}
	return s.Clone(), nil
}

// WriteTable keeps t under path
func (m *DataSource) WriteTable(ctx context.Context, path string, t *table.Table) error {
	m.tables[path] = t
	return nil
}

// WriteSpatial keeps s under path
func (m *DataSource) WriteSpatial(ctx context.Context, path string, s *table.Spatial) error {
	m.spatial[path] = s
	return nil
}
