package jsonl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONLParser(t *testing.T) {
	data := strings.Join([]string{
		`{"name": "Sean", "index": 1, "score": 2.5, "meta": {"first": "Sean"}}`,
		`# a comment`,
		``,
		`{"name": "Chris", "index": 3, "active": true}`,
		`{"name": null, "index": 2, "score": 4}`,
	}, "\n")
	parser := CreateParser(&ParserConf{Comment: '#'})
	tbl, err := parser.Parse(strings.NewReader(data))
	require.Nil(t, err)
	require.Equal(t, []string{"name", "index", "score", "meta", "active"}, tbl.ColumnNames())
	require.Equal(t, 3, tbl.NumRows())

	names, _ := tbl.Column("name")
	require.Equal(t, []interface{}{"Sean", "Chris", nil}, names)
	index, _ := tbl.Column("index")
	require.Equal(t, []interface{}{int64(1), int64(3), int64(2)}, index)
	scores, _ := tbl.Column("score")
	require.Equal(t, []interface{}{2.5, nil, 4.0}, scores)
	meta, _ := tbl.Column("meta")
	require.Equal(t, []interface{}{`{"first": "Sean"}`, nil, nil}, meta)
	active, _ := tbl.Column("active")
	require.Equal(t, []interface{}{nil, true, nil}, active)
}

func TestJSONLParserTextColumns(t *testing.T) {
	parser := CreateParser(&ParserConf{TextColumns: []string{"geoid"}})
	tbl, err := parser.Parse(strings.NewReader(`{"GEOID": 1001}` + "\n" + `{"GEOID": "01003"}`))
	require.Nil(t, err)
	geoids, _ := tbl.Column("GEOID")
	require.Equal(t, []interface{}{"1001", "01003"}, geoids)
}

func TestJSONLParserInvalidLine(t *testing.T) {
	parser := CreateParser(&ParserConf{})
	_, err := parser.Parse(strings.NewReader("{\"a\": 1}\n[1, 2]\n"))
	require.NotNil(t, err)
	_, err = parser.Parse(strings.NewReader("{\"a\": \n"))
	require.NotNil(t, err)
}

func TestJSONLWriter(t *testing.T) {
	parser := CreateParser(&ParserConf{})
	tbl, err := parser.Parse(strings.NewReader(`{"a": 1, "b": "x"}` + "\n" + `{"a": 2}`))
	require.Nil(t, err)
	var buf bytes.Buffer
	require.Nil(t, parser.Write(&buf, tbl))
	require.Equal(t, "{\"a\":1,\"b\":\"x\"}\n{\"a\":2,\"b\":null}\n", buf.String())

	again, err := parser.Parse(&buf)
	require.Nil(t, err)
	require.Nil(t, again.Schema().Equals(tbl.Schema()))
}
