package stats

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestOperationStatistics(t *testing.T) {
	s, err := NewOperationStatistics()
	require.Nil(t, err)
	start := time.Now()
	s.EndOperation("filter_rows", start, nil)
	s.EndOperation("filter_rows", start, nil)
	s.EndOperation("join_table", start, fmt.Errorf("boom"))
	s.AddRows("filter_rows", "removed", 3)
	s.AddRows("filter_rows", "removed", 0)

	require.Equal(t, 2.0, testutil.ToFloat64(s.operations.WithLabelValues("filter_rows", StatusOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(s.operations.WithLabelValues("join_table", StatusError)))
	require.Equal(t, 3.0, testutil.ToFloat64(s.rows.WithLabelValues("filter_rows", "removed")))
	require.Equal(t, 2, testutil.CollectAndCount(s.runtimes))
	require.False(t, s.GetStartTime().After(time.Now()))
}

func TestWriteToTextfile(t *testing.T) {
	s, err := NewOperationStatistics()
	require.Nil(t, err)
	s.EndOperation("add_table", time.Now(), nil)
	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.Nil(t, s.WriteToTextfile(path))
	data, err := os.ReadFile(path)
	require.Nil(t, err)
	require.Contains(t, string(data), `geoprep_operations_total{operation="add_table",status="ok"} 1`)
}
