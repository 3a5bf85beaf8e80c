package join

import (
	"github.com/go-sif/geoprep"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	tgeo "github.com/tidwall/geojson"
)

// preparedGeometry pairs a bounding box, used to discard candidates cheaply, with
// an indexed geometry used for the exact planar test
type preparedGeometry struct {
	bound  orb.Bound
	object tgeo.Object
}

func prepare(g orb.Geometry) (*preparedGeometry, error) {
	if g == nil {
		return nil, nil
	}
	data, err := geojson.NewGeometry(g).MarshalJSON()
	if err != nil {
		return nil, err
	}
	obj, err := tgeo.Parse(string(data), tgeo.DefaultParseOptions)
	if err != nil {
		return nil, err
	}
	return &preparedGeometry{bound: g.Bound(), object: obj}, nil
}

// matches tests "held <predicate> other". Missing geometries never match.
func matches(held, other *preparedGeometry, predicate geoprep.SpatialPredicate) bool {
	if held == nil || other == nil {
		return false
	}
	if !held.bound.Intersects(other.bound) {
		return false
	}
	switch predicate {
	case geoprep.Within:
		return held.object.Within(other.object)
	case geoprep.Contains:
		return held.object.Contains(other.object)
	case geoprep.Intersects:
		return held.object.Intersects(other.object)
	}
	return false
}
