package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/table"
	"github.com/stretchr/testify/require"
)

func TestSplitPath(t *testing.T) {
	path, name := SplitPath("data/out.db#tracts")
	require.Equal(t, "data/out.db", path)
	require.Equal(t, "tracts", name)
	path, name = SplitPath("data/out.db")
	require.Equal(t, "data/out.db", path)
	require.Equal(t, DefaultTable, name)
}

func TestWriteAndReadTable(t *testing.T) {
	ctx := context.Background()
	tbl, err := table.FromColumns(
		[]string{"GEOID", "POP", "SHARE", "NAME"},
		[]geoprep.ColumnType{&geoprep.VarStringColumnType{}, &geoprep.Int64ColumnType{}, &geoprep.Float64ColumnType{}, &geoprep.VarStringColumnType{}},
		[][]interface{}{{"01001", "01003"}, {int64(10), nil}, {0.5, 1.5}, {"a \"quoted\" name", nil}},
	)
	require.Nil(t, err)
	path := filepath.Join(t.TempDir(), "out.db")
	require.Nil(t, WriteTable(ctx, path, "my table", tbl))
	// overwriting replaces the previous contents
	require.Nil(t, WriteTable(ctx, path, "my table", tbl))

	res, err := ReadTable(ctx, path, "my table", []string{"geoid"})
	require.Nil(t, err)
	require.Equal(t, tbl.ColumnNames(), res.ColumnNames())
	require.Equal(t, 2, res.NumRows())
	geoids, _ := res.Column("GEOID")
	require.Equal(t, []interface{}{"01001", "01003"}, geoids)
	pops, _ := res.Column("POP")
	require.Equal(t, []interface{}{int64(10), nil}, pops)
	names, _ := res.Column("NAME")
	require.Equal(t, []interface{}{"a \"quoted\" name", nil}, names)

	_, err = ReadTable(ctx, path, "missing", nil)
	require.NotNil(t, err)
}
