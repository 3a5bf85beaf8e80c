// Package config defines the YAML description of a batch preparation run: where data
// comes from, the ordered operations applied to it, and where results are written.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-sif/geoprep/logging"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v2"
)

// Pipeline is a complete batch run
type Pipeline struct {
	LogLevel string  `yaml:"log_level"`
	Storage  Storage `yaml:"storage"`
	Steps    []Step  `yaml:"steps"`
	Outputs  Outputs `yaml:"outputs"`
}

// Storage configures how datasets are read
type Storage struct {
	Delimiter         string   `yaml:"delimiter"`    // single character, default ","
	Comment           string   `yaml:"comment"`      // single character; lines starting with it are skipped
	NilValue          string   `yaml:"nil_value"`    // cell text read as a missing value
	HeaderLines       int      `yaml:"header_lines"` // lines skipped before the header
	TextColumns       []string `yaml:"text_columns"` // always read as strings
	HTTPTimeout       string   `yaml:"http_timeout"` // e.g. "30s"
	HTTPRetries       int      `yaml:"http_retries"`
	StrictCoordinates bool     `yaml:"strict_coordinates"`
}

// Outputs names the files the first table and first spatial dataset are saved to.
// Empty paths are skipped.
type Outputs struct {
	Table   string `yaml:"table"`
	Spatial string `yaml:"spatial"`
}

// Load reads and validates a Pipeline from a YAML file
func Load(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a Pipeline. Unknown fields are rejected.
func Parse(data []byte) (*Pipeline, error) {
	p := &Pipeline{}
	if err := yaml.UnmarshalStrict(data, p); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks every setting and step, reporting all problems at once
func (p *Pipeline) Validate() error {
	var errs *multierror.Error
	if _, err := logging.ParseLevel(p.LogLevel); err != nil {
		errs = multierror.Append(errs, err)
	}
	if _, err := p.Storage.Timeout(); err != nil {
		errs = multierror.Append(errs, err)
	}
	for name, v := range map[string]string{"delimiter": p.Storage.Delimiter, "comment": p.Storage.Comment} {
		if len([]rune(v)) > 1 {
			errs = multierror.Append(errs, fmt.Errorf("storage.%s must be a single character, was %q", name, v))
		}
	}
	if p.Storage.HeaderLines < 0 {
		errs = multierror.Append(errs, fmt.Errorf("storage.header_lines must not be negative"))
	}
	for i := range p.Steps {
		if err := p.Steps[i].Validate(); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("step %d (%s): %w", i, p.Steps[i].Op, err))
		}
	}
	return errs.ErrorOrNil()
}

// Level returns the parsed log level
func (p *Pipeline) Level() int {
	level, _ := logging.ParseLevel(p.LogLevel)
	return level
}

// Timeout returns the parsed HTTP timeout, or zero for the default
func (s Storage) Timeout() (time.Duration, error) {
	if s.HTTPTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.HTTPTimeout)
	if err != nil {
		return 0, fmt.Errorf("storage.http_timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("storage.http_timeout must not be negative")
	}
	return d, nil
}

// Rune returns the first character of s, or 0
func Rune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
