package geojson

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/table"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const counties = `{
  "type": "FeatureCollection",
  "crs": {"type": "name", "properties": {"name": "urn:ogc:def:crs:EPSG::4269"}},
  "features": [
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-86.6, 32.5]},
     "properties": {"GEOID": "01001", "POP": 55200, "SHARE": 0.25}},
    {"type": "Feature", "geometry": null,
     "properties": {"GEOID": "01003", "URBAN": true}}
  ]
}`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(counties), []string{"geoid"})
	require.Nil(t, err)
	require.Equal(t, geoprep.CRS("EPSG:4269"), s.CRS())
	require.Equal(t, []string{"GEOID", "POP", "SHARE", "URBAN"}, s.AttributeNames())
	geoids, _ := s.Column("GEOID")
	require.Equal(t, []interface{}{"01001", "01003"}, geoids)
	pops, _ := s.Column("POP")
	require.Equal(t, []interface{}{int64(55200), nil}, pops)
	urban, _ := s.Column("URBAN")
	require.Equal(t, []interface{}{nil, true}, urban)
	g, _ := s.Geometry(0)
	require.Equal(t, orb.Point{-86.6, 32.5}, g)
	g, _ = s.Geometry(1)
	require.Nil(t, g)
}

func TestParseRejectsOtherDocuments(t *testing.T) {
	_, err := Parse([]byte(`{"type": "Feature"}`), nil)
	require.NotNil(t, err)
	_, err = Parse([]byte(`{`), nil)
	require.NotNil(t, err)
}

func TestWriteAndReadSpatial(t *testing.T) {
	tbl, err := table.FromColumns(
		[]string{"NAME", "VALUE", table.GeometryColumnName},
		[]geoprep.ColumnType{&geoprep.VarStringColumnType{}, &geoprep.Float64ColumnType{}, &geoprep.GeometryColumnType{}},
		[][]interface{}{
			{"a", nil},
			{1.5, 2.5},
			{orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}, orb.Point{3, 4}},
		},
	)
	require.Nil(t, err)
	s, err := table.NewSpatial(tbl, table.GeometryColumnName, DefaultCRS)
	require.Nil(t, err)

	var buf bytes.Buffer
	require.Nil(t, Write(&buf, s))
	require.False(t, gjson.GetBytes(buf.Bytes(), "crs").Exists())
	require.Equal(t, int64(2), gjson.GetBytes(buf.Bytes(), "features.#").Int())

	path := filepath.Join(t.TempDir(), "out.geojson")
	require.Nil(t, WriteSpatial(context.Background(), path, s))
	res, err := ReadSpatial(context.Background(), path, nil)
	require.Nil(t, err)
	require.Equal(t, DefaultCRS, res.CRS())
	names, _ := res.Column("NAME")
	require.Equal(t, []interface{}{"a", nil}, names)
	values, _ := res.Column("VALUE")
	require.Equal(t, []interface{}{1.5, 2.5}, values)
	g, _ := res.Geometry(1)
	require.Equal(t, orb.Point{3, 4}, g)
}

func TestWriteRecordsNonDefaultCRS(t *testing.T) {
	tbl, err := table.FromColumns(
		[]string{table.GeometryColumnName},
		[]geoprep.ColumnType{&geoprep.GeometryColumnType{}},
		[][]interface{}{{orb.Point{1, 2}}},
	)
	require.Nil(t, err)
	s, err := table.NewSpatial(tbl, table.GeometryColumnName, geoprep.DefaultPointCRS)
	require.Nil(t, err)
	var buf bytes.Buffer
	require.Nil(t, Write(&buf, s))
	res, err := Parse(buf.Bytes(), nil)
	require.Nil(t, err)
	require.Equal(t, geoprep.DefaultPointCRS, res.CRS())
}
