package shapefile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/table"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func squares(t *testing.T) *table.Spatial {
	outer := orb.Ring{{0, 0}, {0, 4}, {4, 4}, {4, 0}, {0, 0}}
	hole := orb.Ring{{1, 1}, {2, 1}, {2, 2}, {1, 2}, {1, 1}}
	tbl, err := table.FromColumns(
		[]string{"GEOID", "POPULATION", "DENSITY", "URBAN", table.GeometryColumnName},
		[]geoprep.ColumnType{
			&geoprep.VarStringColumnType{}, &geoprep.Int64ColumnType{}, &geoprep.Float64ColumnType{},
			&geoprep.BoolColumnType{}, &geoprep.GeometryColumnType{},
		},
		[][]interface{}{
			{"01001", "01003"},
			{int64(55200), nil},
			{1.5, 2.25},
			{true, false},
			{orb.Polygon{outer, hole}, orb.Polygon{{{10, 10}, {11, 10}, {11, 11}, {10, 11}, {10, 10}}}},
		},
	)
	require.Nil(t, err)
	s, err := table.NewSpatial(tbl, table.GeometryColumnName, geoprep.ParseCRS("4326"))
	require.Nil(t, err)
	return s
}

func TestWriteAndReadShapefile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tracts.shp")
	require.Nil(t, WriteSpatial(ctx, path, squares(t)))
	_, err := os.Stat(filepath.Join(filepath.Dir(path), "tracts.prj"))
	require.Nil(t, err)

	res, err := ReadSpatial(ctx, path, nil)
	require.Nil(t, err)
	require.Equal(t, geoprep.CRS("EPSG:4326"), res.CRS())
	require.Equal(t, []string{"GEOID", "POPULATION", "DENSITY", "URBAN"}, res.AttributeNames())
	require.Equal(t, 2, res.NumRows())

	geoids, _ := res.Column("GEOID")
	require.Equal(t, []interface{}{"01001", "01003"}, geoids)
	pops, _ := res.Column("POPULATION")
	require.Equal(t, []interface{}{int64(55200), nil}, pops)
	densities, _ := res.Column("DENSITY")
	require.Equal(t, []interface{}{1.5, 2.25}, densities)
	urban, _ := res.Column("URBAN")
	require.Equal(t, []interface{}{true, false}, urban)

	g, err := res.Geometry(0)
	require.Nil(t, err)
	poly, ok := g.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, poly, 2)
	require.Equal(t, orb.CW, poly[0].Orientation())
	require.Equal(t, orb.CCW, poly[1].Orientation())
	require.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{4, 4}}, poly.Bound())
}

func TestWritePoints(t *testing.T) {
	ctx := context.Background()
	tbl, err := table.FromColumns(
		[]string{table.GeometryColumnName},
		[]geoprep.ColumnType{&geoprep.GeometryColumnType{}},
		[][]interface{}{{orb.Point{10, 20}, orb.Point{30, 40}}},
	)
	require.Nil(t, err)
	s, err := table.NewSpatial(tbl, table.GeometryColumnName, "")
	require.Nil(t, err)
	path := filepath.Join(t.TempDir(), "points")
	require.Nil(t, WriteSpatial(ctx, path, s))

	res, err := ReadSpatial(ctx, path+".shp", nil)
	require.Nil(t, err)
	require.False(t, res.CRS().IsDefined())
	g, _ := res.Geometry(1)
	require.Equal(t, orb.Point{30, 40}, g)
}

func TestFieldNamesAreTruncated(t *testing.T) {
	tbl, err := table.FromColumns(
		[]string{"MEDIAN_INCOME_2019", "MEDIAN_INCOME_2020", table.GeometryColumnName},
		[]geoprep.ColumnType{&geoprep.Float64ColumnType{}, &geoprep.Float64ColumnType{}, &geoprep.GeometryColumnType{}},
		[][]interface{}{{1.0}, {2.0}, {orb.Point{0, 0}}},
	)
	require.Nil(t, err)
	s, err := table.NewSpatial(tbl, table.GeometryColumnName, "")
	require.Nil(t, err)
	fields := fieldsFor(s)
	require.Equal(t, "MEDIAN_INC", fields[0].def.String())
	require.Equal(t, "MEDIAN_IN1", fields[1].def.String())
}

func TestMixedGeometryTypes(t *testing.T) {
	tbl, err := table.FromColumns(
		[]string{table.GeometryColumnName},
		[]geoprep.ColumnType{&geoprep.GeometryColumnType{}},
		[][]interface{}{{orb.Point{0, 0}, orb.LineString{{0, 0}, {1, 1}}}},
	)
	require.Nil(t, err)
	s, err := table.NewSpatial(tbl, table.GeometryColumnName, "")
	require.Nil(t, err)
	require.NotNil(t, WriteSpatial(context.Background(), filepath.Join(t.TempDir(), "mixed.shp"), s))
}
