package derive

import (
	"math"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/errors"
	"github.com/go-sif/geoprep/operations/transform"
	"github.com/go-sif/geoprep/table"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ProbabilitySuffix is appended to a column name to name its estimated density
const ProbabilitySuffix = "_PROB"

// EstimateProbability fits a Gaussian kernel density estimate to the present values
// of colName, using Scott's rule for the bandwidth, and appends <COL>_PROB holding
// the density evaluated at each row's position (0, 1, 2, ...) rather than at its value.
func EstimateProbability(colName string) table.Operation {
	return func(t *table.Table) (*table.Table, error) {
		name, values, present, err := numericColumn(t, colName)
		if err != nil {
			return nil, err
		}
		sample := make([]float64, 0, len(values))
		for i, v := range values {
			if present[i] {
				sample = append(sample, v)
			}
		}
		if len(sample) < 2 {
			return nil, errors.EmptyColumnError{Column: name, Count: len(sample), Reason: "at least two values are required"}
		}
		bandwidth := stat.StdDev(sample, nil) * math.Pow(float64(len(sample)), -1.0/5.0)
		if bandwidth == 0 || math.IsNaN(bandwidth) {
			return nil, errors.EmptyColumnError{Column: name, Count: len(sample), Reason: "values have no spread"}
		}
		kernels := make([]distuv.Normal, len(sample))
		for i, v := range sample {
			kernels[i] = distuv.Normal{Mu: v, Sigma: bandwidth}
		}
		density := make([]interface{}, t.NumRows())
		for k := range density {
			var sum float64
			for _, kernel := range kernels {
				sum += kernel.Prob(float64(k))
			}
			density[k] = sum / float64(len(kernels))
		}
		return transform.WithColumn(name+ProbabilitySuffix, &geoprep.Float64ColumnType{}, density)(t)
	}
}
