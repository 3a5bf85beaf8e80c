package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.Nil(t, os.WriteFile(path, []byte("geoid,pop\n01001,10\n"), 0644))
	out, _, err := execute(t, "inspect", path)
	require.Nil(t, err)
	require.Contains(t, out, "rows: 1")
	require.Contains(t, out, "0\tGEOID\tstring")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "data.csv")
	require.Nil(t, os.WriteFile(input, []byte("a,b\n1,2\n3,4\n"), 0644))
	output := filepath.Join(dir, "out.csv")
	metrics := filepath.Join(dir, "metrics.prom")
	pipelinePath := filepath.Join(dir, "pipeline.yaml")
	require.Nil(t, os.WriteFile(pipelinePath, []byte(`
steps:
  - op: add_table
    paths: [`+input+`]
  - op: remove_columns
    columns: [b]
outputs:
  table: `+output+`
`), 0644))

	_, logs, err := execute(t, "run", "--pipeline", pipelinePath, "--metrics-out", metrics, "--log-level", "debug")
	require.Nil(t, err)
	require.Contains(t, logs, "remove_columns")
	data, err := os.ReadFile(output)
	require.Nil(t, err)
	require.Equal(t, "A\n1\n3\n", string(data))
	prom, err := os.ReadFile(metrics)
	require.Nil(t, err)
	require.Contains(t, string(prom), `geoprep_operations_total{operation="remove_columns",status="ok"} 1`)
}

func TestRunRequiresPipeline(t *testing.T) {
	_, _, err := execute(t, "run")
	require.NotNil(t, err)
}
