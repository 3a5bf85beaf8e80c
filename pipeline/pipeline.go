// Package pipeline executes a configured sequence of operations against a collection
// and saves the results.
package pipeline

import (
	"context"
	"fmt"

	"github.com/go-sif/geoprep"
	"github.com/go-sif/geoprep/collection"
	"github.com/go-sif/geoprep/config"
	"github.com/go-sif/geoprep/datasource/file"
	"github.com/go-sif/geoprep/datasource/httpsource"
	"github.com/go-sif/geoprep/datasource/local"
	"github.com/go-sif/geoprep/datasource/parser/dsv"
	"github.com/go-sif/geoprep/internal/stats"
	"github.com/go-sif/geoprep/logging"
)

// StorageConf translates the storage settings of p into local collaborator settings
func StorageConf(p *config.Pipeline, log *logging.Logger) *local.Conf {
	timeout, _ := p.Storage.Timeout()
	return &local.Conf{
		File: file.Conf{
			DSV: dsv.ParserConf{
				HeaderLines: p.Storage.HeaderLines,
				Delimiter:   config.Rune(p.Storage.Delimiter),
				Comment:     config.Rune(p.Storage.Comment),
				NilValue:    p.Storage.NilValue,
			},
		},
		HTTP: httpsource.Config{
			Timeout:  timeout,
			RetryMax: p.Storage.HTTPRetries,
			NilValue: p.Storage.NilValue,
		},
		TextColumns: p.Storage.TextColumns,
		Logger:      log,
	}
}

// NewCollection creates an empty Collection reading and writing through local storage
// configured by p. s may be nil.
func NewCollection(p *config.Pipeline, log *logging.Logger, s *stats.OperationStatistics) *collection.Collection {
	opts := []collection.Option{
		collection.WithLogger(log),
		collection.WithStrictCoordinates(p.Storage.StrictCoordinates),
	}
	if s != nil {
		opts = append(opts, collection.WithStats(s))
	}
	return collection.New(local.NewStorage(StorageConf(p, log)), opts...)
}

// Run applies every step of p to c in order, stopping at the first failure, then saves
// the configured outputs. A MakePoints step which only reports invalid coordinates
// does not stop the run.
func Run(ctx context.Context, p *config.Pipeline, c *collection.Collection, log *logging.Logger) error {
	for i := range p.Steps {
		step := &p.Steps[i]
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Infof("step %d: %s", i, step.Op)
		if err := apply(ctx, step, c, log); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}
	}
	if p.Outputs.Table != "" {
		if err := c.SaveTable(ctx, p.Outputs.Table); err != nil {
			return err
		}
	}
	if p.Outputs.Spatial != "" {
		if err := c.SaveSpatial(ctx, p.Outputs.Spatial); err != nil {
			return err
		}
	}
	return nil
}

func apply(ctx context.Context, s *config.Step, c *collection.Collection, log *logging.Logger) error {
	switch s.Op {
	case config.OpAddTable:
		_, err := c.AddTable(ctx, collection.TableSource{Paths: s.Paths, Sheet: s.Sheet, Raw: s.Raw})
		return err
	case config.OpAddTableFromURL:
		_, err := c.AddTableFromURL(ctx, s.URL)
		return err
	case config.OpAddSpatial:
		_, err := c.AddSpatial(ctx, s.Path)
		return err
	case config.OpRemoveColumns:
		return c.RemoveColumns(s.Index, s.Columns...)
	case config.OpRemoveColumnsAt:
		return c.RemoveColumnsAt(s.Index, s.Positions...)
	case config.OpRemoveLastColumn:
		return c.RemoveLastColumn(s.Index)
	case config.OpRemoveSpatialColumns:
		return c.RemoveSpatialColumns(s.Index, s.Columns...)
	case config.OpRenameColumn:
		return c.RenameColumn(s.Index, s.From, s.To)
	case config.OpCastToString:
		return c.CastToString(s.Index)
	case config.OpCastAllToFloat:
		return c.CastAllToFloat(s.Index)
	case config.OpCastColumnToNumeric:
		return c.CastColumnToNumeric(s.Index, s.Column)
	case config.OpStandardize:
		return c.Standardize(s.Index, s.Exclude)
	case config.OpFilterRows:
		cmp, err := geoprep.ParseComparison(s.Operator)
		if err != nil {
			return err
		}
		_, err = c.FilterRows(s.Index, s.Column, cmp, s.Threshold)
		return err
	case config.OpJoinTable:
		mode, err := geoprep.ParseJoinMode(s.Mode)
		if err != nil {
			return err
		}
		other, err := c.Table(s.Other)
		if err != nil {
			return err
		}
		return c.JoinTable(s.Index, other, s.Key, mode)
	case config.OpSpatialJoin:
		mode, err := geoprep.ParseJoinMode(s.Mode)
		if err != nil {
			return err
		}
		predicate, err := geoprep.ParseSpatialPredicate(s.Predicate)
		if err != nil {
			return err
		}
		other, err := c.Spatial(s.Other)
		if err != nil {
			return err
		}
		return c.SpatialJoin(s.Index, other, mode, predicate)
	case config.OpJoinByGeoID:
		other, err := c.Table(s.Other)
		if err != nil {
			return err
		}
		return c.JoinSpatialToTableByGeoID(s.Index, other)
	case config.OpMakePoints:
		idx, err := c.MakePoints(s.Index, s.Latitude, s.Longitude, s.ParsedCRS())
		if err != nil && idx >= 0 {
			log.Warnf("points made as spatial[%d] with invalid coordinates: %v", idx, err)
			return nil
		}
		return err
	case config.OpSetCRS:
		return c.SetCRS(s.Index, s.ParsedCRS())
	case config.OpEstimateProbability:
		return c.EstimateProbability(s.Index, s.Column)
	case config.OpTransform:
		kind, err := geoprep.ParseTransformKind(s.Kind)
		if err != nil {
			return err
		}
		return c.Transform(s.Index, s.Column, kind)
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}
}
