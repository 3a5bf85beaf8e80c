package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-sif/geoprep/collection"
	"github.com/go-sif/geoprep/config"
	"github.com/go-sif/geoprep/datasource/local"
	"github.com/go-sif/geoprep/internal/stats"
	"github.com/go-sif/geoprep/logging"
	"github.com/go-sif/geoprep/pipeline"
	"github.com/go-sif/geoprep/table"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "geoprep",
		Short:         "Prepare tabular and spatial datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCommand(), newInspectCommand())
	return root
}

func newRunCommand() *cobra.Command {
	var pipelinePath, metricsOut, logLevel string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the steps of a pipeline file and save its outputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.Load(pipelinePath)
			if err != nil {
				return err
			}
			level := p.Level()
			if logLevel != "" {
				if level, err = logging.ParseLevel(logLevel); err != nil {
					return err
				}
			}
			log := logging.New(cmd.ErrOrStderr(), level)
			s, err := stats.NewOperationStatistics()
			if err != nil {
				return err
			}
			c := pipeline.NewCollection(p, log, s)
			runErr := pipeline.Run(cmd.Context(), p, c, log)
			log.Infof("ran %d steps in %s", len(p.Steps), s.GetRuntime())
			if metricsOut != "" {
				if err := s.WriteToTextfile(metricsOut); err != nil {
					log.Errorf("couldn't write metrics to %s: %v", metricsOut, err)
				}
			}
			return runErr
		},
	}
	cmd.Flags().StringVarP(&pipelinePath, "pipeline", "p", "", "pipeline YAML file")
	cmd.Flags().StringVar(&metricsOut, "metrics-out", "", "write operation metrics in the prometheus text format to this file")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "override the pipeline log level")
	cmd.MarkFlagRequired("pipeline")
	return cmd
}

func newInspectCommand() *cobra.Command {
	var sheet string
	var textColumns []string
	cmd := &cobra.Command{
		Use:   "inspect PATH",
		Short: "Print the schema and size of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			c := collection.New(local.NewStorage(&local.Conf{TextColumns: textColumns}))
			if isSpatial(path) {
				idx, err := c.AddSpatial(cmd.Context(), path)
				if err != nil {
					return err
				}
				s, _ := c.Spatial(idx)
				fmt.Fprintf(cmd.OutOrStdout(), "crs: %s\ngeometry: %s\n", s.CRS(), s.GeometryColumn())
				describe(cmd.OutOrStdout(), s.Table)
				return nil
			}
			idx, err := c.AddTable(cmd.Context(), collection.TableSource{Paths: []string{path}, Sheet: sheet})
			if err != nil {
				return err
			}
			t, _ := c.Table(idx)
			describe(cmd.OutOrStdout(), t)
			return nil
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "spreadsheet sheet to read")
	cmd.Flags().StringSliceVar(&textColumns, "text", []string{"GEOID"}, "columns always read as strings")
	return cmd
}

func isSpatial(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp", ".geojson":
		return true
	default:
		return false
	}
}

func describe(w io.Writer, t *table.Table) {
	fmt.Fprintf(w, "rows: %d\ncolumns: %d\n", t.NumRows(), t.NumColumns())
	types := t.ColumnTypes()
	for i, name := range t.ColumnNames() {
		fmt.Fprintf(w, "  %d\t%s\t%s\n", i, name, types[i].Name())
	}
}

