package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-sif/geoprep/collection"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLocalStorageEndToEnd(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	input := filepath.Join(dir, "points.csv")
	require.Nil(t, os.WriteFile(input, []byte(" geoid ,lat,lon,empty\n01001,20,10,\n01003,40,30,\n"), 0644))

	c := collection.New(NewStorage(&Conf{TextColumns: []string{"GEOID"}}))
	idx, err := c.AddTable(ctx, collection.TableSource{Paths: []string{input}})
	require.Nil(t, err)
	tbl, _ := c.Table(idx)
	require.Equal(t, []string{"GEOID", "LAT", "LON"}, tbl.ColumnNames())

	sidx, err := c.MakePoints(idx, "lat", "lon", "")
	require.Nil(t, err)
	require.Equal(t, 0, sidx)

	for _, name := range []string{"out.geojson", "out.shp"} {
		path := filepath.Join(dir, name)
		require.Nil(t, c.SaveSpatial(ctx, path))
		_, err := c.AddSpatial(ctx, path)
		require.Nil(t, err)
	}
	require.Equal(t, 3, c.NumSpatial())
	reread, _ := c.Spatial(2)
	geoids, _ := reread.Column("GEOID")
	require.Equal(t, []interface{}{"01001", "01003"}, geoids)

	out := filepath.Join(dir, "out.tsv.zst")
	require.Nil(t, c.SaveTable(ctx, out))
	_, err = c.AddTable(ctx, collection.TableSource{Paths: []string{out}})
	require.Nil(t, err)
	require.Equal(t, 2, c.NumTables())
}
