package file

import (
	"fmt"
	"os"

	"github.com/go-sif/geoprep/table"
)

// loader is capable of loading a Table from a text file
type loader struct {
	path   string
	source *DataSource
}

// ToString returns a string representation of this loader
func (l *loader) ToString() string {
	return fmt.Sprintf("File loader filename: %s", l.path)
}

// Load parses the file, decompressing it if necessary. Errors name the loader.
func (l *loader) Load() (t *table.Table, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("%s: %w", l.ToString(), err)
		}
	}()
	f, err := os.Open(l.path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			l.source.log.Warnf("couldn't close file (%s): %v", l.ToString(), closeErr)
		}
	}()
	fmtKind, comp := detect(l.path)
	r, release, err := decompress(f, comp)
	if err != nil {
		return nil, err
	}
	defer release()
	switch fmtKind {
	case formatJSONL:
		return l.source.jsonlParser.Parse(r)
	case formatTSV:
		return l.source.tsvParser.Parse(r)
	default:
		return l.source.dsvParser.Parse(r)
	}
}
