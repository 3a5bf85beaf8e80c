package table

import (
	"fmt"
	"testing"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/errors"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func createTestTable(t *testing.T) *Table {
	tbl, err := FromColumns(
		[]string{"ID", "NAME", "SCORE"},
		[]geoprep.ColumnType{&geoprep.Int64ColumnType{}, &geoprep.VarStringColumnType{}, &geoprep.Float64ColumnType{}},
		[][]interface{}{
			{int64(1), int64(2), int64(3)},
			{"a", "b", nil},
			{"1.5", 2.5, int64(4)},
		},
	)
	require.Nil(t, err)
	return tbl
}

func TestFromColumnsCoerces(t *testing.T) {
	tbl := createTestTable(t)
	require.Equal(t, 3, tbl.NumRows())
	require.Equal(t, []string{"ID", "NAME", "SCORE"}, tbl.ColumnNames())
	scores, err := tbl.Column("SCORE")
	require.Nil(t, err)
	require.Equal(t, []interface{}{1.5, 2.5, 4.0}, scores)
	require.NotEmpty(t, tbl.ID())
}

func TestFromColumnsRejectsBadValues(t *testing.T) {
	_, err := FromColumns([]string{"X"}, []geoprep.ColumnType{&geoprep.Float64ColumnType{}}, [][]interface{}{{"abc"}})
	require.ErrorAs(t, err, &errors.TypeCoercionError{})
}

func TestRowGetters(t *testing.T) {
	tbl := createTestTable(t)
	row, err := tbl.Row(2)
	require.Nil(t, err)
	require.Equal(t, 2, row.Index())
	id, err := row.GetInt64("ID")
	require.Nil(t, err)
	require.EqualValues(t, 3, id)
	widened, err := row.GetFloat64("ID")
	require.Nil(t, err)
	require.Equal(t, 3.0, widened)
	require.True(t, row.IsNil("NAME"))
	_, err = row.GetVarString("NAME")
	require.ErrorAs(t, err, &errors.NilValueError{})
	_, err = row.GetVarString("ID")
	require.ErrorAs(t, err, &errors.IncompatibleTypeError{})
	v, err := row.Get("NAME")
	require.Nil(t, err)
	require.Nil(t, v)
	_, err = tbl.Row(3)
	require.ErrorAs(t, err, &errors.IndexOutOfRangeError{})
}

func TestRowSetWritesThrough(t *testing.T) {
	tbl := createTestTable(t)
	row, err := tbl.Row(0)
	require.Nil(t, err)
	require.Nil(t, row.Set("SCORE", "9"))
	v, err := tbl.Value(0, "SCORE")
	require.Nil(t, err)
	require.Equal(t, 9.0, v)
	require.ErrorAs(t, row.Set("SCORE", "nine"), &errors.TypeCoercionError{})
	require.Nil(t, row.SetNil("SCORE"))
	require.True(t, row.IsNil("SCORE"))
}

func TestRowToString(t *testing.T) {
	tbl := createTestTable(t)
	row, err := tbl.Row(2)
	require.Nil(t, err)
	require.Equal(t, `{"ID": 3,"NAME": nil,"SCORE": 4,}`, row.ToString())
}

func TestCloneIsDeep(t *testing.T) {
	tbl := createTestTable(t)
	clone := tbl.Clone()
	require.NotEqual(t, tbl.ID(), clone.ID())
	row, _ := clone.Row(0)
	require.Nil(t, row.Set("NAME", "changed"))
	require.Nil(t, clone.RemoveColumn("ID"))
	v, _ := tbl.Value(0, "NAME")
	require.Equal(t, "a", v)
	require.Equal(t, 3, tbl.NumColumns())
}

func TestAddRemoveRenameColumn(t *testing.T) {
	tbl := createTestTable(t)
	require.Nil(t, tbl.AddColumn("FLAG", &geoprep.BoolColumnType{}, []interface{}{true, false, nil}))
	require.ErrorAs(t, tbl.AddColumn("FLAG", &geoprep.BoolColumnType{}, []interface{}{true, false, nil}), &errors.DuplicateColumnError{})
	require.NotNil(t, tbl.AddColumn("SHORT", &geoprep.BoolColumnType{}, []interface{}{true}))

	require.Nil(t, tbl.RemoveColumn("NAME"))
	require.Equal(t, []string{"ID", "SCORE", "FLAG"}, tbl.ColumnNames())
	flags, err := tbl.Column("FLAG")
	require.Nil(t, err)
	require.Equal(t, []interface{}{true, false, nil}, flags)

	require.Nil(t, tbl.RenameColumn("SCORE", "POINTS"))
	points, err := tbl.Column("POINTS")
	require.Nil(t, err)
	require.Equal(t, []interface{}{1.5, 2.5, 4.0}, points)
	require.ErrorAs(t, tbl.RemoveColumn("SCORE"), &errors.ColumnNotFoundError{})
}

func TestSetColumnChangesType(t *testing.T) {
	tbl := createTestTable(t)
	require.Nil(t, tbl.SetColumn("ID", &geoprep.VarStringColumnType{}, []interface{}{int64(1), int64(2), nil}))
	colType, err := tbl.ColumnType("ID")
	require.Nil(t, err)
	require.IsType(t, &geoprep.VarStringColumnType{}, colType)
	ids, _ := tbl.Column("ID")
	require.Equal(t, []interface{}{"1", "2", nil}, ids)
}

func TestFilterPreservesOrder(t *testing.T) {
	tbl := createTestTable(t)
	removed, err := tbl.Filter(func(row geoprep.Row) (bool, error) {
		id, err := row.GetInt64("ID")
		return id == 2, err
	})
	require.Nil(t, err)
	require.Equal(t, 1, removed)
	ids, _ := tbl.Column("ID")
	require.Equal(t, []interface{}{int64(1), int64(3)}, ids)
	names, _ := tbl.Column("NAME")
	require.Equal(t, []interface{}{"a", nil}, names)
}

func TestFilterRecoversPanics(t *testing.T) {
	tbl := createTestTable(t)
	_, err := tbl.Filter(func(row geoprep.Row) (bool, error) {
		panic(fmt.Errorf("boom"))
	})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "Filter Panic: boom")
	require.Equal(t, 3, tbl.NumRows())
}

func TestMap(t *testing.T) {
	tbl := createTestTable(t)
	err := tbl.Map(func(row geoprep.Row) error {
		score, err := row.GetFloat64("SCORE")
		if err != nil {
			return err
		}
		return row.Set("SCORE", score*2)
	})
	require.Nil(t, err)
	scores, _ := tbl.Column("SCORE")
	require.Equal(t, []interface{}{3.0, 5.0, 8.0}, scores)
}

func TestTake(t *testing.T) {
	tbl := createTestTable(t)
	taken, err := tbl.Take([]int{2, -1, 0, 0})
	require.Nil(t, err)
	require.Equal(t, 4, taken.NumRows())
	ids, _ := taken.Column("ID")
	require.Equal(t, []interface{}{int64(3), nil, int64(1), int64(1)}, ids)
	_, err = tbl.Take([]int{5})
	require.ErrorAs(t, err, &errors.IndexOutOfRangeError{})
}

func TestAppendRow(t *testing.T) {
	tbl := createTestTable(t)
	require.Nil(t, tbl.AppendRow("4", "d", nil))
	require.Equal(t, 4, tbl.NumRows())
	require.NotNil(t, tbl.AppendRow("x", "d", nil))
	require.NotNil(t, tbl.AppendRow(int64(1)))
	require.Equal(t, 4, tbl.NumRows())
}

func TestTo(t *testing.T) {
	tbl := createTestTable(t)
	drop := func(name string) Operation {
		return func(in *Table) (*Table, error) {
			out := in.Clone()
			return out, out.RemoveColumn(name)
		}
	}
	res, err := tbl.To(drop("ID"), drop("NAME"))
	require.Nil(t, err)
	require.Equal(t, []string{"SCORE"}, res.ColumnNames())
	require.Equal(t, 3, tbl.NumColumns())
	_, err = tbl.To(drop("MISSING"))
	require.ErrorAs(t, err, &errors.ColumnNotFoundError{})
}

func TestSpatial(t *testing.T) {
	tbl, err := FromColumns(
		[]string{"NAME", GeometryColumnName},
		[]geoprep.ColumnType{&geoprep.VarStringColumnType{}, &geoprep.GeometryColumnType{}},
		[][]interface{}{{"a", "b"}, {orb.Point{1, 2}, "POINT (3 4)"}},
	)
	require.Nil(t, err)
	s, err := NewSpatial(tbl, GeometryColumnName, geoprep.ParseCRS("4326"))
	require.Nil(t, err)
	require.Equal(t, geoprep.CRS("EPSG:4326"), s.CRS())
	require.Equal(t, []string{"NAME"}, s.AttributeNames())
	g, err := s.Geometry(1)
	require.Nil(t, err)
	require.Equal(t, orb.Point{3, 4}, g)

	relabelled := s.WithCRS(geoprep.DefaultPointCRS)
	require.Equal(t, geoprep.DefaultPointCRS, relabelled.CRS())
	require.Equal(t, geoprep.CRS("EPSG:4326"), s.CRS())

	_, err = NewSpatial(tbl, "NAME", "")
	require.ErrorAs(t, err, &errors.IncompatibleTypeError{})
}
