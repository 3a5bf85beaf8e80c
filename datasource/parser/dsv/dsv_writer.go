package dsv

import (
	"encoding/csv"
	"io"

	"github.com/go-sif/geoprep/table"
)

// Write serializes a Table as DSV data, with a header line of column names. Missing
// values are written as the configured NilValue and geometries as WKT.
func (p *Parser) Write(w io.Writer, t *table.Table) error {
	writer := csv.NewWriter(w)
	writer.Comma = p.conf.Delimiter
	if err := writer.Write(t.ColumnNames()); err != nil {
		return err
	}
	names := t.ColumnNames()
	types := t.ColumnTypes()
	record := make([]string, len(names))
	for i := 0; i < t.NumRows(); i++ {
		for c, name := range names {
			v, err := t.Value(i, name)
			if err != nil {
				return err
			}
			if v == nil {
				record[c] = p.conf.NilValue
			} else {
				record[c] = types[c].ToString(v)
			}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
