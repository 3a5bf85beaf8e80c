// Package spreadsheet reads Tables from sheets of .xlsx workbooks.
package spreadsheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-sif/geoprep/datasource"
	"github.com/go-sif/geoprep/table"
	"github.com/xuri/excelize/v2"
)

// CommentPrefix starts a comment in any cell. The comment runs to the end of the
// row: the rest of that cell and every later cell are ignored, and rows left
// without a value are skipped.
const CommentPrefix = "#"

// ReadSheet reads a single sheet of the workbook at path. The first row holding a
// value outside comments holds the column names. When sheet is empty, the first sheet of the workbook is read.
// Empty cells are missing values.
func ReadSheet(ctx context.Context, path string, sheet string, textColumns []string) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: open %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("spreadsheet: %s has no sheets", path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: sheet %q: %w", sheet, err)
	}

	var names []string
	var columns [][]interface{}
	for _, row := range rows {
		row = stripComment(row)
		if isBlank(row) {
			continue
		}
		if names == nil {
			names = make([]string, len(row))
			copy(names, row)
			columns = make([][]interface{}, len(names))
			continue
		}
		if len(row) > len(names) {
			// cells beyond the header are only an error when they hold something
			for _, cell := range row[len(names):] {
				if cell != "" {
					return nil, fmt.Errorf("spreadsheet: sheet %q: row has %d cells, header has %d", sheet, len(row), len(names))
				}
			}
		}
		for i := range columns {
			if i >= len(row) || row[i] == "" {
				columns[i] = append(columns[i], nil)
				continue
			}
			columns[i] = append(columns[i], row[i])
		}
	}
	return datasource.BuildTable(names, columns, textColumns)
}

func stripComment(row []string) []string {
	for i, cell := range row {
		if at := strings.Index(cell, CommentPrefix); at >= 0 {
			res := make([]string, i+1)
			copy(res, row[:i])
			res[i] = cell[:at]
			return res
		}
	}
	return row
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
