package collection

import (
	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/operations/derive"
)

// EstimateProbability appends <COL>_PROB to table i, holding a kernel density estimate
// of col evaluated at each row's position
func (c *Collection) EstimateProbability(i int, col string) error {
	return c.applyTable("estimate_probability", i, derive.EstimateProbability(col))
}

// Transform appends TRANSF_<COL> to table i, holding the log or logit of col/100
func (c *Collection) Transform(i int, col string, kind geoprep.TransformKind) error {
	return c.applyTable("transform", i, derive.Transform(col, kind))
}
