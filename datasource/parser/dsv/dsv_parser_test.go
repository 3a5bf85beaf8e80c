package dsv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-sif/geoprep"
	"github.com/stretchr/testify/require"
)

func TestDSVParser(t *testing.T) {
	data := "\ufeffgeoid,name,pop,share,flag\n01001,Autauga,55200,0.5,true\n01003,,NA,1,false\n# skipped\n01005,Barbour,24881\n"
	parser := CreateParser(&ParserConf{
		Comment:     '#',
		NilValue:    "NA",
		TextColumns: []string{"GEOID"},
	})
	tbl, err := parser.Parse(strings.NewReader(data))
	require.Nil(t, err)
	require.Equal(t, []string{"geoid", "name", "pop", "share", "flag"}, tbl.ColumnNames())
	require.Equal(t, 3, tbl.NumRows())

	geoids, _ := tbl.Column("geoid")
	require.Equal(t, []interface{}{"01001", "01003", "01005"}, geoids)
	pops, _ := tbl.Column("pop")
	require.Equal(t, []interface{}{int64(55200), nil, int64(24881)}, pops)
	shares, _ := tbl.Column("share")
	require.Equal(t, []interface{}{0.5, 1.0, nil}, shares)
	flags, _ := tbl.Column("flag")
	require.Equal(t, []interface{}{true, false, nil}, flags)
	names, _ := tbl.Column("name")
	require.Equal(t, []interface{}{"Autauga", nil, "Barbour"}, names)
	colType, _ := tbl.ColumnType("pop")
	require.IsType(t, &geoprep.Int64ColumnType{}, colType)
}

func TestDSVParserHeaderLinesAndDelimiter(t *testing.T) {
	data := "generated by a tool\na\tb\n1\tx\n"
	parser := CreateParser(&ParserConf{HeaderLines: 1, Delimiter: '\t'})
	tbl, err := parser.Parse(strings.NewReader(data))
	require.Nil(t, err)
	require.Equal(t, []string{"a", "b"}, tbl.ColumnNames())
	b, _ := tbl.Column("b")
	require.Equal(t, []interface{}{"x"}, b)
}

func TestDSVParserDuplicateHeaders(t *testing.T) {
	parser := CreateParser(&ParserConf{})
	tbl, err := parser.Parse(strings.NewReader("a,a,a\n1,2,3\n"))
	require.Nil(t, err)
	require.Equal(t, []string{"a", "a.1", "a.2"}, tbl.ColumnNames())

	tbl, err = parser.Parse(strings.NewReader("A,A,A.1\n1,2,3\n"))
	require.Nil(t, err)
	require.Equal(t, []string{"A", "A.1", "A.1.1"}, tbl.ColumnNames())
	values, _ := tbl.Column("A.1.1")
	require.Equal(t, []interface{}{int64(3)}, values)
}

func TestDSVParserRejectsLongRecords(t *testing.T) {
	parser := CreateParser(&ParserConf{})
	_, err := parser.Parse(strings.NewReader("a,b\n1,2,3\n"))
	require.NotNil(t, err)
}

func TestDSVParserEmptyInput(t *testing.T) {
	parser := CreateParser(&ParserConf{})
	tbl, err := parser.Parse(strings.NewReader(""))
	require.Nil(t, err)
	require.Equal(t, 0, tbl.NumColumns())
}

func TestDSVWriter(t *testing.T) {
	parser := CreateParser(&ParserConf{NilValue: "NA"})
	tbl, err := parser.Parse(strings.NewReader("A,B\n1,x y\n2.5,NA\n"))
	require.Nil(t, err)
	var buf bytes.Buffer
	require.Nil(t, parser.Write(&buf, tbl))
	require.Equal(t, "A,B\n1,x y\n2.5,NA\n", buf.String())
}
