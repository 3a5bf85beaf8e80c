package jsonl

import (
	"io"
	"math"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/table"
	jsoniter "github.com/json-iterator/go"
)

// Write serializes a Table as JSON lines, one object per row. Missing values and
// non-finite numbers are written as null, and geometries as WKT strings.
func (p *Parser) Write(w io.Writer, t *table.Table) error {
	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(w)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)
	names := t.ColumnNames()
	types := t.ColumnTypes()
	for i := 0; i < t.NumRows(); i++ {
		stream.WriteObjectStart()
		for c, name := range names {
			if c > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(name)
			v, err := t.Value(i, name)
			if err != nil {
				return err
			}
			writeValue(stream, types[c], v)
		}
		stream.WriteObjectEnd()
		stream.WriteRaw("\n")
		if err := stream.Flush(); err != nil {
			return err
		}
	}
	return stream.Error
}

func writeValue(stream *jsoniter.Stream, colType geoprep.ColumnType, v interface{}) {
	switch t := v.(type) {
	case nil:
		stream.WriteNil()
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			stream.WriteNil()
		} else {
			stream.WriteFloat64(t)
		}
	case int64:
		stream.WriteInt64(t)
	case bool:
		stream.WriteBool(t)
	case string:
		stream.WriteString(t)
	default:
		stream.WriteString(colType.ToString(v))
	}
}
