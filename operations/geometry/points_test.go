package geometry

import (
	"math"
	"testing"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/errors"
	"github.com/go-sif/geoprep/table"
	"github.com/hashicorp/go-multierror"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func createCoordinates(t *testing.T, lats, lons []interface{}) *table.Table {
	tbl, err := table.FromColumns(
		[]string{"LAT", "LON"},
		[]geoprep.ColumnType{&geoprep.Float64ColumnType{}, &geoprep.Float64ColumnType{}},
		[][]interface{}{lats, lons},
	)
	require.Nil(t, err)
	return tbl
}

func TestMakePoints(t *testing.T) {
	tbl := createCoordinates(t, []interface{}{10.0, 30.0}, []interface{}{20.0, 40.0})
	res, err := MakePoints(tbl, "lat", "lon", geoprep.ParseCRS("epsg:4326"), false)
	require.Nil(t, err)
	require.Nil(t, res.Invalid)
	require.Equal(t, []string{LatitudeColumn, LongitudeColumn}, res.Table.ColumnNames())
	require.Equal(t, []string{"LAT", "LON"}, tbl.ColumnNames())
	require.Equal(t, geoprep.CRS("EPSG:4326"), res.Spatial.CRS())
	g, err := res.Spatial.Geometry(0)
	require.Nil(t, err)
	require.Equal(t, orb.Point{20, 10}, g)
	g, err = res.Spatial.Geometry(1)
	require.Nil(t, err)
	require.Equal(t, orb.Point{40, 30}, g)
}

func TestMakePointsDefaultCRS(t *testing.T) {
	tbl := createCoordinates(t, []interface{}{1.0}, []interface{}{2.0})
	res, err := MakePoints(tbl, "LAT", "LON", "", false)
	require.Nil(t, err)
	require.Equal(t, geoprep.DefaultPointCRS, res.Spatial.CRS())
}

func TestMakePointsLenient(t *testing.T) {
	tbl := createCoordinates(t, []interface{}{10.0, nil, math.NaN()}, []interface{}{20.0, 5.0, 6.0})
	res, err := MakePoints(tbl, "LAT", "LON", "", false)
	require.Nil(t, err)
	require.Equal(t, 3, res.Spatial.NumRows())
	g, _ := res.Spatial.Geometry(1)
	require.Nil(t, g)
	var merr *multierror.Error
	require.ErrorAs(t, res.Invalid, &merr)
	require.Len(t, merr.Errors, 2)
	var coordErr errors.InvalidCoordinateError
	require.ErrorAs(t, merr.Errors[1], &coordErr)
	require.Equal(t, 2, coordErr.Row)
	require.Equal(t, LatitudeColumn, coordErr.Column)
}

func TestMakePointsStrict(t *testing.T) {
	tbl := createCoordinates(t, []interface{}{10.0, nil}, []interface{}{20.0, 5.0})
	_, err := MakePoints(tbl, "LAT", "LON", "", true)
	require.ErrorAs(t, err, &errors.InvalidCoordinateError{})
}

func TestMakePointsMissingColumn(t *testing.T) {
	tbl := createCoordinates(t, []interface{}{10.0}, []interface{}{20.0})
	_, err := MakePoints(tbl, "Y", "LON", "", false)
	require.ErrorAs(t, err, &errors.ColumnNotFoundError{})
	_, err = MakePoints(tbl, "LAT", "lat", "", false)
	require.NotNil(t, err)
}

func TestMakePointsReplacesGeometryColumn(t *testing.T) {
	tbl, err := table.FromColumns(
		[]string{"LAT", table.GeometryColumnName, "LON"},
		[]geoprep.ColumnType{&geoprep.Float64ColumnType{}, &geoprep.VarStringColumnType{}, &geoprep.Float64ColumnType{}},
		[][]interface{}{{10.0}, {"POINT (0 0)"}, {20.0}},
	)
	require.Nil(t, err)
	res, err := MakePoints(tbl, "LAT", "LON", "", false)
	require.Nil(t, err)
	require.Equal(t, []string{LatitudeColumn, table.GeometryColumnName, LongitudeColumn}, res.Spatial.ColumnNames())
	g, err := res.Spatial.Geometry(0)
	require.Nil(t, err)
	require.Equal(t, orb.Point{20, 10}, g)
}

func TestSetCRS(t *testing.T) {
	tbl := createCoordinates(t, []interface{}{10.0}, []interface{}{20.0})
	res, err := MakePoints(tbl, "LAT", "LON", "", false)
	require.Nil(t, err)
	relabelled, err := res.Spatial.To(SetCRS(geoprep.ParseCRS("3857")))
	require.Nil(t, err)
	require.Equal(t, geoprep.CRS("EPSG:3857"), relabelled.CRS())
	g, _ := relabelled.Geometry(0)
	require.Equal(t, orb.Point{20, 10}, g)

	relabelled, err = res.Spatial.To(SetCRS(""))
	require.Nil(t, err)
	require.Equal(t, geoprep.DefaultRelabelCRS, relabelled.CRS())
}
