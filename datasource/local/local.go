// Package local assembles the collection collaborators backed by the local filesystem
// and, for remote tables, HTTP.
package local

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/go-sif/geoprep/collection"
	"github.com/go-sif/geoprep/datasource/file"
	"github.com/go-sif/geoprep/datasource/geojson"
	"github.com/go-sif/geoprep/datasource/httpsource"
	"github.com/go-sif/geoprep/datasource/shapefile"
	"github.com/go-sif/geoprep/datasource/spreadsheet"
	"github.com/go-sif/geoprep/logging"
	"github.com/go-sif/geoprep/table"
)

// Conf configures the local collaborators
type Conf struct {
	File        file.Conf
	HTTP        httpsource.Config
	TextColumns []string // read as strings from every source
	Logger      *logging.Logger
}

// NewStorage builds a collection.Storage reading and writing local files
func NewStorage(conf *Conf) collection.Storage {
	log := conf.Logger
	if log == nil {
		log = logging.Discard()
	}
	fileConf := conf.File
	fileConf.TextColumns = append(append([]string{}, fileConf.TextColumns...), conf.TextColumns...)
	if fileConf.Logger == nil {
		fileConf.Logger = log
	}
	httpConf := conf.HTTP
	httpConf.TextColumns = append(append([]string{}, httpConf.TextColumns...), conf.TextColumns...)
	if httpConf.Logger == nil {
		httpConf.Logger = log
	}
	files := file.CreateDataSource(&fileConf)
	spatial := &spatialFiles{textColumns: conf.TextColumns}
	return collection.Storage{
		Tables:        files,
		Sheets:        &sheets{textColumns: conf.TextColumns},
		Spatial:       spatial,
		Fetcher:       httpsource.NewClient(&httpConf),
		TableWriter:   files,
		SpatialWriter: spatial,
	}
}

type sheets struct {
	textColumns []string
}

func (s *sheets) ReadSheet(ctx context.Context, path string, sheet string) (*table.Table, error) {
	return spreadsheet.ReadSheet(ctx, path, sheet, s.textColumns)
}

// spatialFiles chooses GeoJSON for .geojson and .json paths, and shapefiles otherwise
type spatialFiles struct {
	textColumns []string
}

func isGeoJSON(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return true
	default:
		return false
	}
}

func (s *spatialFiles) ReadSpatial(ctx context.Context, path string) (*table.Spatial, error) {
	if isGeoJSON(path) {
		return geojson.ReadSpatial(ctx, path, s.textColumns)
	}
	return shapefile.ReadSpatial(ctx, path, s.textColumns)
}

func (s *spatialFiles) WriteSpatial(ctx context.Context, path string, sp *table.Spatial) error {
	if isGeoJSON(path) {
		return geojson.WriteSpatial(ctx, path, sp)
	}
	return shapefile.WriteSpatial(ctx, path, sp)
}
