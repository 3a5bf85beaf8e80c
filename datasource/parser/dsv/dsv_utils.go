package dsv

// Appends a record to column-major raw values. Short records are padded with nils.
func scanRow(conf *ParserConf, rowStrings []string, columns [][]interface{}) {
	for i := range columns {
		if i >= len(rowStrings) {
			columns[i] = append(columns[i], nil)
			continue
		}
		colVal := rowStrings[i]
		// check for a nil value
		if len(colVal) == 0 || colVal == conf.NilValue {
			columns[i] = append(columns[i], nil)
			continue
		}
		columns[i] = append(columns[i], colVal)
	}
}
