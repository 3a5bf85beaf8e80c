package config

import (
	"fmt"

	"github.com/go-sif/geoprep"
)

// Step kinds
const (
	OpAddTable             = "add_table"
	OpAddTableFromURL      = "add_table_from_url"
	OpAddSpatial           = "add_spatial"
	OpRemoveColumns        = "remove_columns"
	OpRemoveColumnsAt      = "remove_columns_at"
	OpRemoveLastColumn     = "remove_last_column"
	OpRemoveSpatialColumns = "remove_spatial_columns"
	OpRenameColumn         = "rename_column"
	OpCastToString         = "cast_to_string"
	OpCastAllToFloat       = "cast_all_to_float"
	OpCastColumnToNumeric  = "cast_column_to_numeric"
	OpStandardize          = "standardize"
	OpFilterRows           = "filter_rows"
	OpJoinTable            = "join_table"
	OpSpatialJoin          = "spatial_join"
	OpJoinByGeoID          = "join_spatial_by_geoid"
	OpMakePoints           = "make_points"
	OpSetCRS               = "set_crs"
	OpEstimateProbability  = "estimate_probability"
	OpTransform            = "transform"
)

// Step is a single operation on the collection. Which fields apply depends on Op.
type Step struct {
	Op string `yaml:"op"`
	// Index of the dataset operated on: a table, or a spatial dataset for the spatial steps
	Index int `yaml:"index"`
	// Other is the index of the dataset joined with: a table for join_table and
	// join_spatial_by_geoid, a spatial dataset for spatial_join
	Other int `yaml:"other"`

	Paths []string `yaml:"paths"`
	Sheet string   `yaml:"sheet"`
	Raw   bool     `yaml:"raw"`
	URL   string   `yaml:"url"`
	Path  string   `yaml:"path"`

	Columns   []string `yaml:"columns"`
	Positions []int    `yaml:"positions"`
	Column    string   `yaml:"column"`
	From      string   `yaml:"from"`
	To        string   `yaml:"to"`
	Exclude   string   `yaml:"exclude"`

	Operator  string `yaml:"operator"`
	Threshold string `yaml:"threshold"`

	Key       string `yaml:"key"`
	Mode      string `yaml:"mode"`
	Predicate string `yaml:"predicate"`

	Latitude  string `yaml:"latitude"`
	Longitude string `yaml:"longitude"`
	CRS       string `yaml:"crs"`
	Kind      string `yaml:"kind"`
}

func required(field string, ok bool) error {
	if ok {
		return nil
	}
	return fmt.Errorf("%s is required", field)
}

// Validate checks that the fields Op needs are present and parseable
func (s *Step) Validate() error {
	if s.Index < 0 {
		return fmt.Errorf("index must not be negative")
	}
	switch s.Op {
	case OpAddTable:
		return required("paths", len(s.Paths) > 0)
	case OpAddTableFromURL:
		return required("url", s.URL != "")
	case OpAddSpatial:
		return required("path", s.Path != "")
	case OpRemoveColumns, OpRemoveSpatialColumns:
		return required("columns", len(s.Columns) > 0)
	case OpRemoveColumnsAt:
		return required("positions", len(s.Positions) > 0)
	case OpRemoveLastColumn, OpCastToString, OpCastAllToFloat:
		return nil
	case OpRenameColumn:
		if err := required("from", s.From != ""); err != nil {
			return err
		}
		return required("to", s.To != "")
	case OpCastColumnToNumeric, OpEstimateProbability:
		return required("column", s.Column != "")
	case OpStandardize:
		return required("exclude", s.Exclude != "")
	case OpFilterRows:
		if err := required("column", s.Column != ""); err != nil {
			return err
		}
		if _, err := geoprep.ParseComparison(s.Operator); err != nil {
			return err
		}
		return required("threshold", s.Threshold != "")
	case OpJoinTable:
		if err := required("key", s.Key != ""); err != nil {
			return err
		}
		_, err := geoprep.ParseJoinMode(s.Mode)
		return err
	case OpSpatialJoin:
		mode, err := geoprep.ParseJoinMode(s.Mode)
		if err != nil {
			return err
		}
		if mode == geoprep.OuterJoin {
			return fmt.Errorf("spatial joins do not support outer mode")
		}
		_, err = geoprep.ParseSpatialPredicate(s.Predicate)
		return err
	case OpJoinByGeoID:
		return nil
	case OpMakePoints:
		if err := required("latitude", s.Latitude != ""); err != nil {
			return err
		}
		return required("longitude", s.Longitude != "")
	case OpSetCRS:
		return nil
	case OpTransform:
		if err := required("column", s.Column != ""); err != nil {
			return err
		}
		_, err := geoprep.ParseTransformKind(s.Kind)
		return err
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}
}

// ParsedCRS returns the canonical form of the step's crs
func (s *Step) ParsedCRS() geoprep.CRS {
	return geoprep.ParseCRS(s.CRS)
}
