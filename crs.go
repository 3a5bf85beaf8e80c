package geoprep

import (
	"strconv"
	"strings"
)

// CRS identifies a coordinate reference system, canonically as "EPSG:<code>".
// The empty CRS is undefined.
type CRS string

const (
	// DefaultPointCRS is the CRS assigned to synthesized point datasets when none is given (NAD83)
	DefaultPointCRS CRS = "EPSG:4269"
	// DefaultRelabelCRS is the CRS assigned by a relabel when none is given (WGS 84)
	DefaultRelabelCRS CRS = "EPSG:4326"
)

// ParseCRS canonicalizes a CRS identifier. "epsg:4326", "EPSG:4326" and "4326" all
// produce "EPSG:4326". Identifiers from other authorities are upper-cased and kept.
func ParseCRS(s string) CRS {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	if _, err := strconv.Atoi(s); err == nil {
		return CRS("EPSG:" + s)
	}
	s = strings.TrimPrefix(s, "+INIT=")
	return CRS(s)
}

// IsDefined returns true iff this CRS has been set
func (c CRS) IsDefined() bool {
	return c != ""
}

// EPSG returns the numeric EPSG code of this CRS, if it has one
func (c CRS) EPSG() (int, bool) {
	code, ok := strings.CutPrefix(string(c), "EPSG:")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return 0, false
	}
	return n, true
}

// String returns the identifier, or "undefined"
func (c CRS) String() string {
	if c == "" {
		return "undefined"
	}
	return string(c)
}
