package transform

import (
	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/schema"
	"github.com/go-sif/geoprep/table"
)

// Concat stacks tables vertically, in order. Columns are matched by normalized name;
// a column absent from one part contributes missing values for that part's rows.
// When parts disagree on a column's type, integers widen to floats and any other
// disagreement falls back to strings. The result is normalized.
func Concat(parts ...*table.Table) (*table.Table, error) {
	normalized := make([]*table.Table, len(parts))
	unionSchema := schema.CreateSchema()
	for i, part := range parts {
		n, err := part.To(NormalizeSchema())
		if err != nil {
			return nil, err
		}
		normalized[i] = n
		names := n.ColumnNames()
		for j, colType := range n.ColumnTypes() {
			existing, err := unionSchema.GetColumn(names[j])
			if err != nil {
				if _, err := unionSchema.CreateColumn(names[j], colType); err != nil {
					return nil, err
				}
				continue
			}
			if _, err := unionSchema.SetColumnType(names[j], geoprep.CommonType(existing.Type(), colType)); err != nil {
				return nil, err
			}
		}
	}

	names := unionSchema.ColumnNames()
	types := unionSchema.ColumnTypes()
	values := make([][]interface{}, len(names))
	for _, part := range normalized {
		for c, name := range names {
			if !part.HasColumn(name) {
				values[c] = append(values[c], make([]interface{}, part.NumRows())...)
				continue
			}
			col, err := part.Column(name)
			if err != nil {
				return nil, err
			}
			values[c] = append(values[c], col...)
		}
	}
	res, err := table.FromColumns(names, types, values)
	if err != nil {
		return nil, err
	}
	return res.To(NormalizeSchema())
}
