package dsv

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/go-sif/geoprep/datasource"
	"github.com/go-sif/geoprep/table"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ParserConf configures a DSV Parser
type ParserConf struct {
	HeaderLines int      // The number of lines to ignore from the beginning of each file, before the line of column names. Defaults to 0.
	Delimiter   rune     // The delimiter separating columns in the file. Defaults to ,
	Comment     rune     // Lines beginning with the comment character are ignored. Cannot be equal to the Delimiter. Defaults to no comment character.
	NilValue    string   // A special string which represents nil values in the dataset, in addition to the empty string. Defaults to "" (the empty string).
	TextColumns []string // Columns which are always read as strings, such as identifiers with leading zeros
}

// Parser produces Tables from DSV data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new DSV Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	return &Parser{conf: conf}
}

// Parse reads DSV data with a header line of column names. A leading byte order mark is discarded.
func (p *Parser) Parse(r io.Reader) (*table.Table, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	reader.Comma = p.conf.Delimiter
	reader.Comment = p.conf.Comment
	reader.FieldsPerRecord = -1

	// ignore header lines, if configured to do so
	for i := 0; i < p.conf.HeaderLines; i++ {
		_, err := reader.Read()
		if err != nil {
			return nil, err
		}
	}

	header, err := reader.Read()
	if err == io.EOF {
		return table.FromColumns(nil, nil, nil)
	} else if err != nil {
		return nil, err
	}
	names := make([]string, len(header))
	copy(names, header)
	columns := make([][]interface{}, len(names))
	for line := 1; ; line++ {
		rowStrings, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if len(rowStrings) > len(names) {
			return nil, fmt.Errorf("Record %d has %d fields, but the header names %d columns", line, len(rowStrings), len(names))
		}
		scanRow(p.conf, rowStrings, columns)
	}
	return datasource.BuildTable(names, columns, p.conf.TextColumns)
}
