package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/table"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sampleTable(t *testing.T) *table.Table {
	tbl, err := table.FromColumns(
		[]string{"GEOID", "VALUE"},
		[]geoprep.ColumnType{&geoprep.VarStringColumnType{}, &geoprep.Float64ColumnType{}},
		[][]interface{}{{"01001", "01003", "01005"}, {1.5, nil, 3.25}},
	)
	require.Nil(t, err)
	return tbl
}

func TestDetect(t *testing.T) {
	f, c := detect("a/b.csv")
	require.Equal(t, formatDSV, f)
	require.Equal(t, compressionNone, c)
	f, c = detect("b.TSV.zst")
	require.Equal(t, formatTSV, f)
	require.Equal(t, compressionZstd, c)
	f, c = detect("b.ndjson.lz4")
	require.Equal(t, formatJSONL, f)
	require.Equal(t, compressionLZ4, c)
	f, _ = detect("b.sqlite3")
	require.Equal(t, formatSQLite, f)
	f, _ = detect("b.txt")
	require.Equal(t, formatDSV, f)
}

func TestRoundTripFormats(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fs := CreateDataSource(&Conf{TextColumns: []string{"GEOID"}})
	tbl := sampleTable(t)
	for _, name := range []string{"out.csv", "out.tsv", "out.jsonl", "out.csv.lz4", "out.tsv.zst", "out.db#values"} {
		path := filepath.Join(dir, name)
		require.Nil(t, fs.WriteTable(ctx, path, tbl), name)
		res, err := fs.ReadTable(ctx, path)
		require.Nil(t, err, name)
		require.Equal(t, []string{"GEOID", "VALUE"}, res.ColumnNames(), name)
		geoids, _ := res.Column("GEOID")
		require.Equal(t, []interface{}{"01001", "01003", "01005"}, geoids, name)
		values, _ := res.Column("VALUE")
		require.Equal(t, []interface{}{1.5, nil, 3.25}, values, name)
	}
}

func TestTSVUsesTabs(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.tsv")
	fs := CreateDataSource(&Conf{})
	require.Nil(t, fs.WriteTable(ctx, path, sampleTable(t)))
	raw, err := os.ReadFile(path)
	require.Nil(t, err)
	require.Contains(t, string(raw), "GEOID\tVALUE")
}

func TestReadTablesKeepsOrder(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	paths := make([]string, 0, 4)
	for i, content := range []string{"A\n1\n", "A\n1\n2\n", "A\n1\n2\n3\n", "A\n1\n2\n3\n4\n"} {
		path := filepath.Join(dir, string(rune('a'+i))+".csv")
		require.Nil(t, os.WriteFile(path, []byte(content), 0644))
		paths = append(paths, path)
	}
	fs := CreateDataSource(&Conf{})
	tables, err := fs.ReadTables(ctx, paths)
	require.Nil(t, err)
	require.Len(t, tables, 4)
	for i, tbl := range tables {
		require.Equal(t, i+1, tbl.NumRows())
	}
}

func TestReadTablesMissingFile(t *testing.T) {
	fs := CreateDataSource(&Conf{})
	missing := filepath.Join(t.TempDir(), "missing.csv")
	_, err := fs.ReadTables(context.Background(), []string{missing})
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Contains(t, err.Error(), "File loader filename: "+missing)
	_, err = fs.ReadTables(context.Background(), nil)
	require.NotNil(t, err)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fs := CreateDataSource(&Conf{})
	_, err := fs.ReadTable(ctx, "whatever.csv")
	require.ErrorIs(t, err, context.Canceled)
}
