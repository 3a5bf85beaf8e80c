// Package shapefile reads and writes Spatial datasets as ESRI Shapefiles, with a .prj
// sidecar for the coordinate systems it knows.
package shapefile

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/datasource"
	"github.com/go-sif/geoprep/table"
	"github.com/jonas-p/go-shp"
)

// maxFieldName is the longest attribute name a dBase file can hold
const maxFieldName = 10

// ReadSpatial reads the shapefile at path. Character attributes are read as strings;
// numeric attributes are inferred.
func ReadSpatial(ctx context.Context, path string, textColumns []string) (*table.Spatial, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("shapefile: open %s: %w", path, err)
	}
	defer r.Close()

	fields := r.Fields()
	names := make([]string, len(fields))
	columns := make([][]interface{}, len(fields))
	text := append([]string{}, textColumns...)
	for i, f := range fields {
		names[i] = strings.TrimRight(f.String(), "\x00")
		if f.Fieldtype == 'C' || f.Fieldtype == 'D' {
			text = append(text, names[i])
		}
	}
	var geometries []interface{}
	for r.Next() {
		n, s := r.Shape()
		g, err := fromShape(s)
		if err != nil {
			return nil, err
		}
		geometries = append(geometries, g)
		for i, f := range fields {
			columns[i] = append(columns[i], attribute(f.Fieldtype, r.ReadAttribute(n, i)))
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("shapefile: read %s: %w", path, err)
	}
	t, err := datasource.BuildTable(names, columns, text)
	if err != nil {
		return nil, err
	}
	if geometries == nil {
		geometries = []interface{}{}
	}
	if err := t.AddColumn(table.GeometryColumnName, &geoprep.GeometryColumnType{}, geometries); err != nil {
		return nil, err
	}
	return table.NewSpatial(t, table.GeometryColumnName, readPRJ(path))
}

func attribute(fieldType byte, raw string) interface{} {
	v := strings.Trim(raw, " \x00")
	if v == "" {
		return nil
	}
	if fieldType == 'L' {
		switch v {
		case "T", "t", "Y", "y":
			return true
		case "F", "f", "N", "n":
			return false
		default:
			return nil
		}
	}
	return v
}

type field struct {
	name    string
	colType geoprep.ColumnType
	def     shp.Field
}

// fieldsFor derives dBase fields for the attribute columns of s, truncating names
// and making them unique
func fieldsFor(s *table.Spatial) []field {
	used := make(map[string]bool)
	names := s.AttributeNames()
	res := make([]field, 0, len(names))
	for _, name := range names {
		colType, _ := s.ColumnType(name)
		short := truncate(name, maxFieldName)
		for n := 1; used[short]; n++ {
			suffix := strconv.Itoa(n)
			short = truncate(name, maxFieldName-len(suffix)) + suffix
		}
		used[short] = true
		var def shp.Field
		switch colType.(type) {
		case *geoprep.Int64ColumnType:
			def = shp.NumberField(short, 18)
		case *geoprep.Float64ColumnType:
			def = shp.FloatField(short, 24, 12)
		case *geoprep.BoolColumnType:
			def = shp.StringField(short, 1)
			def.Fieldtype = 'L'
		default:
			def = shp.StringField(short, 254)
		}
		res = append(res, field{name: name, colType: colType, def: def})
	}
	if len(res) == 0 {
		res = append(res, field{name: "", def: shp.NumberField("FID", 10)})
	}
	return res
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// WriteSpatial writes s as a shapefile at path, replacing any existing one. Every
// non-nil geometry must map to the same shapefile type.
func WriteSpatial(ctx context.Context, path string, s *table.Spatial) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !strings.HasSuffix(strings.ToLower(path), ".shp") {
		path += ".shp"
	}
	kind := shp.NULL
	for i := 0; i < s.NumRows(); i++ {
		g, err := s.Geometry(i)
		if err != nil {
			return err
		}
		if g == nil {
			continue
		}
		gk, err := shapeType(g)
		if err != nil {
			return err
		}
		if kind == shp.NULL {
			kind = gk
		} else if kind != gk {
			return fmt.Errorf("shapefile: mixed geometry types at row %d", i)
		}
	}
	if kind == shp.NULL {
		kind = shp.POINT
	}

	w, err := shp.Create(path, kind)
	if err != nil {
		return fmt.Errorf("shapefile: create %s: %w", path, err)
	}
	fields := fieldsFor(s)
	defs := make([]shp.Field, len(fields))
	for i, f := range fields {
		defs[i] = f.def
	}
	if err := w.SetFields(defs); err != nil {
		w.Close()
		return err
	}
	for i := 0; i < s.NumRows(); i++ {
		g, _ := s.Geometry(i)
		n := int(w.Write(toShape(g)))
		for fi, f := range fields {
			v, err := attributeValue(s, i, f)
			if err != nil {
				w.Close()
				return err
			}
			if err := w.WriteAttribute(n, fi, v); err != nil {
				w.Close()
				return fmt.Errorf("shapefile: row %d column %s: %w", i, f.name, err)
			}
		}
	}
	w.Close()
	return writePRJ(path, s.CRS())
}

// attributeValue renders a cell as one of the value kinds the dBase writer accepts
func attributeValue(s *table.Spatial, row int, f field) (interface{}, error) {
	if f.name == "" {
		return row, nil
	}
	v, err := s.Value(row, f.name)
	if err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case nil:
		return "", nil
	case int64:
		return int(t), nil
	case float64:
		return t, nil
	case bool:
		if t {
			return "T", nil
		}
		return "F", nil
	default:
		return f.colType.ToString(t), nil
	}
}
