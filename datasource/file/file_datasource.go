package file

import (
	"context"
	"fmt"
	"os"

	"github.com/go-sif/geoprep/datasource/parser/dsv"
	"github.com/go-sif/geoprep/datasource/parser/jsonl"
	"github.com/go-sif/geoprep/datasource/sqlite"
	"github.com/go-sif/geoprep/logging"
	"github.com/go-sif/geoprep/table"
	"golang.org/x/sync/errgroup"
)

// Conf configures a file DataSource
type Conf struct {
	DSV         dsv.ParserConf   // Used for .csv, .txt and unrecognized extensions. .tsv files override the Delimiter.
	JSONL       jsonl.ParserConf // Used for .jsonl and .ndjson files
	TextColumns []string         // Columns which are always read as strings, in every format
	Logger      *logging.Logger  // Receives warnings. Defaults to discarding them.
}

// DataSource reads and writes Tables as files
type DataSource struct {
	dsvParser   *dsv.Parser
	tsvParser   *dsv.Parser
	jsonlParser *jsonl.Parser
	textColumns []string
	log         *logging.Logger
}

// CreateDataSource is a factory for DataSources
func CreateDataSource(conf *Conf) *DataSource {
	dsvConf := conf.DSV
	dsvConf.TextColumns = append(append([]string{}, dsvConf.TextColumns...), conf.TextColumns...)
	tsvConf := dsvConf
	tsvConf.Delimiter = '\t'
	jsonlConf := conf.JSONL
	jsonlConf.TextColumns = append(append([]string{}, jsonlConf.TextColumns...), conf.TextColumns...)
	log := conf.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &DataSource{
		dsvParser:   dsv.CreateParser(&dsvConf),
		tsvParser:   dsv.CreateParser(&tsvConf),
		jsonlParser: jsonl.CreateParser(&jsonlConf),
		textColumns: conf.TextColumns,
		log:         log,
	}
}

// ReadTables reads several files concurrently, returning their Tables in the order of paths.
// The first failure cancels the remaining reads.
func (fs *DataSource) ReadTables(ctx context.Context, paths []string) ([]*table.Table, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files to read")
	}
	results := make([]*table.Table, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			t, err := fs.ReadTable(gctx, path)
			if err != nil {
				return err
			}
			results[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ReadTable reads a single file. SQLite paths may name a table as "path#table".
func (fs *DataSource) ReadTable(ctx context.Context, path string) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dbPath, tableName := sqlite.SplitPath(path)
	if f, _ := detect(dbPath); f == formatSQLite {
		t, err := sqlite.ReadTable(ctx, dbPath, tableName, fs.textColumns)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return t, nil
	}
	loader := &loader{path: path, source: fs}
	return loader.Load()
}

// WriteTable writes t to a file, replacing it if it exists
func (fs *DataSource) WriteTable(ctx context.Context, path string, t *table.Table) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	dbPath, tableName := sqlite.SplitPath(path)
	f, comp := detect(dbPath)
	if f == formatSQLite {
		return sqlite.WriteTable(ctx, dbPath, tableName, t)
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	w, err := compress(out, comp)
	if err != nil {
		return err
	}
	switch f {
	case formatJSONL:
		err = fs.jsonlParser.Write(w, t)
	case formatTSV:
		err = fs.tsvParser.Write(w, t)
	default:
		err = fs.dsvParser.Write(w, t)
	}
	if err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
