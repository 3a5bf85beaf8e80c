// Package httpsource fetches tab-separated Tables from remote endpoints, retrying
// transient failures.
package httpsource

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-sif/geoprep/datasource/parser/dsv"
	"github.com/go-sif/geoprep/logging"
	"github.com/go-sif/geoprep/table"
	"github.com/hashicorp/go-retryablehttp"
)

// GeoIDColumn is always fetched as text, so that leading zeros survive
const GeoIDColumn = "GEOID"

// Config configures a Client. Zero values select defaults.
type Config struct {
	Timeout      time.Duration // per attempt, default 30s
	RetryMax     int           // default 3. Negative disables retries.
	RetryWaitMin time.Duration // default 1s
	RetryWaitMax time.Duration // default 30s
	NilValue     string        // cell text read as a missing value
	TextColumns  []string      // read as strings in addition to GEOID
	Logger       *logging.Logger
}

// Client fetches Tables over HTTP
type Client struct {
	http   *retryablehttp.Client
	parser *dsv.Parser
}

// NewClient is a factory for Clients
func NewClient(conf *Config) *Client {
	if conf.Timeout == 0 {
		conf.Timeout = 30 * time.Second
	}
	if conf.RetryMax == 0 {
		conf.RetryMax = 3
	} else if conf.RetryMax < 0 {
		conf.RetryMax = 0
	}
	if conf.RetryWaitMin == 0 {
		conf.RetryWaitMin = time.Second
	}
	if conf.RetryWaitMax == 0 {
		conf.RetryWaitMax = 30 * time.Second
	}
	if conf.Logger == nil {
		conf.Logger = logging.Discard()
	}
	c := retryablehttp.NewClient()
	c.HTTPClient.Timeout = conf.Timeout
	c.RetryMax = conf.RetryMax
	c.RetryWaitMin = conf.RetryWaitMin
	c.RetryWaitMax = conf.RetryWaitMax
	c.Logger = leveled{conf.Logger}
	return &Client{
		http: c,
		parser: dsv.CreateParser(&dsv.ParserConf{
			Delimiter:   '\t',
			NilValue:    conf.NilValue,
			TextColumns: append([]string{GeoIDColumn}, conf.TextColumns...),
		}),
	}
}

// FetchTable retrieves url and parses the body as tab-separated values with a header line
func (c *Client) FetchTable(ctx context.Context, url string) (*table.Table, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	return c.parser.Parse(resp.Body)
}
