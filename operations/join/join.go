package join

import (
	"fmt"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/errors"
	"github.com/go-sif/geoprep/operations/transform"
	"github.com/go-sif/geoprep/table"
)

const (
	leftSuffix  = "_X"
	rightSuffix = "_Y"
)

var errNoOther = fmt.Errorf("cannot join with a nil dataset")

// Table joins other to a Table on the column key, which must exist under the same
// (normalized) name on both sides. Duplicate keys produce every combination of
// matching rows. Rows of a left or inner join follow the order of the held table;
// rows of a right join follow other; an outer join lists the rows of a left join
// followed by the unmatched rows of other. Non-key columns present on both sides
// are suffixed with _X (held) and _Y (other). other is never modified.
func Table(other *table.Table, key string, mode geoprep.JoinMode) table.Operation {
	return func(held *table.Table) (*table.Table, error) {
		if other == nil {
			return nil, errNoOther
		}
		leftKey, ok := resolve(held, key)
		if !ok {
			return nil, errors.KeyNotFoundError{Key: key, Side: "left"}
		}
		rightKey, ok := resolve(other, key)
		if !ok {
			return nil, errors.KeyNotFoundError{Key: key, Side: "right"}
		}
		leftIdx, err := buildKeyIndex(held, leftKey)
		if err != nil {
			return nil, err
		}
		rightIdx, err := buildKeyIndex(other, rightKey)
		if err != nil {
			return nil, err
		}

		var lrows, rrows []int
		switch mode {
		case geoprep.LeftJoin, geoprep.InnerJoin, geoprep.OuterJoin:
			matchedRight := make([]bool, other.NumRows())
			for l := 0; l < held.NumRows(); l++ {
				var matches []int
				if leftIdx.present[l] {
					matches = rightIdx.lookup(leftIdx.keys[l])
				}
				for _, r := range matches {
					lrows = append(lrows, l)
					rrows = append(rrows, r)
					matchedRight[r] = true
				}
				if len(matches) == 0 && mode != geoprep.InnerJoin {
					lrows = append(lrows, l)
					rrows = append(rrows, -1)
				}
			}
			if mode == geoprep.OuterJoin {
				for r, matched := range matchedRight {
					if !matched {
						lrows = append(lrows, -1)
						rrows = append(rrows, r)
					}
				}
			}
		case geoprep.RightJoin:
			for r := 0; r < other.NumRows(); r++ {
				var matches []int
				if rightIdx.present[r] {
					matches = leftIdx.lookup(rightIdx.keys[r])
				}
				for _, l := range matches {
					lrows = append(lrows, l)
					rrows = append(rrows, r)
				}
				if len(matches) == 0 {
					lrows = append(lrows, -1)
					rrows = append(rrows, r)
				}
			}
		default:
			return nil, fmt.Errorf("unknown join mode %q", mode)
		}
		return assemble(held, other, leftKey, rightKey, lrows, rrows)
	}
}

func resolve(t *table.Table, name string) (string, bool) {
	if t.HasColumn(name) {
		return name, true
	}
	normalized := transform.NormalizeName(name)
	return normalized, t.HasColumn(normalized)
}

// assemble builds the joined table from matched row positions, where -1 marks a missing side
func assemble(held, other *table.Table, leftKey, rightKey string, lrows, rrows []int) (*table.Table, error) {
	res, err := held.Take(lrows)
	if err != nil {
		return nil, err
	}
	right, err := other.Take(rrows)
	if err != nil {
		return nil, err
	}

	// the key column holds whichever side is present
	leftKeyType, _ := held.ColumnType(leftKey)
	rightKeyType, _ := other.ColumnType(rightKey)
	keys, _ := res.Column(leftKey)
	rightKeys, _ := right.Column(rightKey)
	for i, l := range lrows {
		if l == -1 {
			keys[i] = rightKeys[i]
		}
	}
	if err := res.SetColumn(leftKey, geoprep.CommonType(leftKeyType, rightKeyType), keys); err != nil {
		return nil, err
	}

	names := right.ColumnNames()
	types := right.ColumnTypes()
	for i, name := range names {
		if name == rightKey {
			continue
		}
		outName := name
		if res.HasColumn(name) {
			if err := res.RenameColumn(name, name+leftSuffix); err != nil {
				return nil, err
			}
			outName = name + rightSuffix
		}
		values, err := right.Column(name)
		if err != nil {
			return nil, err
		}
		if err := res.AddColumn(outName, types[i], values); err != nil {
			return nil, err
		}
	}
	return res, nil
}
