package collection

import (
	"context"

	"github.com/go-sif/geoprep/table"
)

// TableReader reads one or more tabular files, returning them in the order of paths
type TableReader interface {
	ReadTables(ctx context.Context, paths []string) ([]*table.Table, error)
}

// SheetReader reads a single sheet of a spreadsheet. An empty sheet names the first one.
type SheetReader interface {
	ReadSheet(ctx context.Context, path string, sheet string) (*table.Table, error)
}

// SpatialReader reads a spatial dataset
type SpatialReader interface {
	ReadSpatial(ctx context.Context, path string) (*table.Spatial, error)
}

// TableFetcher retrieves a tab-separated table from a remote endpoint
type TableFetcher interface {
	FetchTable(ctx context.Context, url string) (*table.Table, error)
}

// TableWriter persists a tabular dataset
type TableWriter interface {
	WriteTable(ctx context.Context, path string, t *table.Table) error
}

// SpatialWriter persists a spatial dataset
type SpatialWriter interface {
	WriteSpatial(ctx context.Context, path string, s *table.Spatial) error
}

// Storage bundles the collaborators a Collection reads from and writes to. Operations
// needing a nil collaborator fail.
type Storage struct {
	Tables        TableReader
	Sheets        SheetReader
	Spatial       SpatialReader
	Fetcher       TableFetcher
	TableWriter   TableWriter
	SpatialWriter SpatialWriter
}
