// Package geojson reads and writes Spatial datasets as GeoJSON feature collections.
package geojson

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strings"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/datasource"
	"github.com/go-sif/geoprep/table"
	jsoniter "github.com/json-iterator/go"
	"github.com/paulmach/orb"
	orbjson "github.com/paulmach/orb/geojson"
	"github.com/tidwall/gjson"
)

// DefaultCRS is the CRS of GeoJSON documents which do not name one
const DefaultCRS geoprep.CRS = "EPSG:4326"

var crsNamePattern = regexp.MustCompile(`EPSG:+(\d+)$`)

// ReadSpatial reads a FeatureCollection. Properties become columns in order of first
// appearance; features lacking a property hold nil for it.
func ReadSpatial(ctx context.Context, path string, textColumns []string) (*table.Spatial, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw, textColumns)
}

// Parse decodes a FeatureCollection document
func Parse(raw []byte, textColumns []string) (*table.Spatial, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("geojson: invalid JSON")
	}
	doc := gjson.ParseBytes(raw)
	if doc.Get("type").String() != "FeatureCollection" {
		return nil, fmt.Errorf("geojson: expected a FeatureCollection, found %q", doc.Get("type").String())
	}
	var names []string
	index := make(map[string]int)
	var columns [][]interface{}
	geometries := []interface{}{}
	var ferr error
	doc.Get("features").ForEach(func(_, feature gjson.Result) bool {
		row := len(geometries)
		g, err := parseGeometry(feature.Get("geometry"))
		if err != nil {
			ferr = fmt.Errorf("geojson: feature %d: %w", row, err)
			return false
		}
		geometries = append(geometries, g)
		feature.Get("properties").ForEach(func(key, value gjson.Result) bool {
			name := key.String()
			idx, ok := index[name]
			if !ok {
				idx = len(names)
				index[name] = idx
				names = append(names, name)
				columns = append(columns, make([]interface{}, row))
			}
			if len(columns[idx]) == row {
				columns[idx] = append(columns[idx], propertyValue(value))
			}
			return true
		})
		for i := range columns {
			if len(columns[i]) == row {
				columns[i] = append(columns[i], nil)
			}
		}
		return true
	})
	if ferr != nil {
		return nil, ferr
	}
	t, err := datasource.BuildTable(names, columns, textColumns)
	if err != nil {
		return nil, err
	}
	if err := t.AddColumn(table.GeometryColumnName, &geoprep.GeometryColumnType{}, geometries); err != nil {
		return nil, err
	}
	crs := DefaultCRS
	if m := crsNamePattern.FindStringSubmatch(doc.Get("crs.properties.name").String()); m != nil {
		crs = geoprep.ParseCRS(m[1])
	}
	return table.NewSpatial(t, table.GeometryColumnName, crs)
}

func parseGeometry(raw gjson.Result) (orb.Geometry, error) {
	if !raw.Exists() || raw.Type == gjson.Null {
		return nil, nil
	}
	g, err := orbjson.UnmarshalGeometry([]byte(raw.Raw))
	if err != nil {
		return nil, err
	}
	return g.Geometry(), nil
}

func propertyValue(val gjson.Result) interface{} {
	switch val.Type {
	case gjson.Null:
		return nil
	case gjson.True, gjson.False:
		return val.Bool()
	case gjson.Number:
		f := val.Float()
		if !strings.ContainsAny(val.Raw, ".eE") && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return val.Int()
		}
		return f
	case gjson.String:
		return val.String()
	default:
		return val.Raw
	}
}

// WriteSpatial writes s as a FeatureCollection, replacing any existing file
func WriteSpatial(ctx context.Context, path string, s *table.Spatial) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(f, s)
}

// Write serializes s as a FeatureCollection. A CRS other than EPSG:4326 is recorded in
// a legacy "crs" member.
func Write(w io.Writer, s *table.Spatial) error {
	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(w)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)

	names := s.AttributeNames()
	stream.WriteObjectStart()
	stream.WriteObjectField("type")
	stream.WriteString("FeatureCollection")
	if code, ok := s.CRS().EPSG(); ok && s.CRS() != DefaultCRS {
		stream.WriteMore()
		stream.WriteObjectField("crs")
		stream.WriteRaw(fmt.Sprintf(`{"type":"name","properties":{"name":"urn:ogc:def:crs:EPSG::%d"}}`, code))
	}
	stream.WriteMore()
	stream.WriteObjectField("features")
	stream.WriteArrayStart()
	for i := 0; i < s.NumRows(); i++ {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectStart()
		stream.WriteObjectField("type")
		stream.WriteString("Feature")
		stream.WriteMore()
		stream.WriteObjectField("geometry")
		g, err := s.Geometry(i)
		if err != nil {
			return err
		}
		if g == nil {
			stream.WriteNil()
		} else {
			encoded, err := orbjson.NewGeometry(g).MarshalJSON()
			if err != nil {
				return err
			}
			stream.WriteRaw(string(encoded))
		}
		stream.WriteMore()
		stream.WriteObjectField("properties")
		stream.WriteObjectStart()
		for c, name := range names {
			if c > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(name)
			v, err := s.Value(i, name)
			if err != nil {
				return err
			}
			writeProperty(stream, v)
		}
		stream.WriteObjectEnd()
		stream.WriteObjectEnd()
		if err := stream.Flush(); err != nil {
			return err
		}
	}
	stream.WriteArrayEnd()
	stream.WriteObjectEnd()
	stream.WriteRaw("\n")
	if err := stream.Flush(); err != nil {
		return err
	}
	return stream.Error
}

func writeProperty(stream *jsoniter.Stream, v interface{}) {
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
		stream.WriteString(fmt.Sprint(t))
	}
}
