package shapefile

import (
	"os"
	"regexp"
	"strings"

	"github.com/go-sif/geoprep"
)

// well-known text for the coordinate systems this package can label
var prjByEPSG = map[int]string{
	4326: `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]]`,
	4269: `GEOGCS["GCS_North_American_1983",DATUM["D_North_American_1983",SPHEROID["GRS_1980",6378137.0,298.257222101]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]]`,
}

var authorityPattern = regexp.MustCompile(`AUTHORITY\["EPSG",\s*"?(\d+)"?\]\]\s*$`)

func prjPath(shpPath string) string {
	return strings.TrimSuffix(shpPath, ".shp") + ".prj"
}

// readPRJ identifies the CRS described by the .prj file next to shpPath. A missing
// or unrecognized file produces an undefined CRS.
func readPRJ(shpPath string) geoprep.CRS {
	raw, err := os.ReadFile(prjPath(shpPath))
	if err != nil {
		return ""
	}
	wkt := strings.TrimSpace(string(raw))
	if m := authorityPattern.FindStringSubmatch(wkt); m != nil {
		return geoprep.ParseCRS(m[1])
	}
	upper := strings.ToUpper(wkt)
	switch {
	case strings.HasPrefix(upper, "PROJCS"):
		return ""
	case strings.Contains(upper, "WGS_1984") || strings.Contains(upper, "WGS 84"):
		return geoprep.ParseCRS("4326")
	case strings.Contains(upper, "NORTH_AMERICAN_1983") || strings.Contains(upper, "NAD83"):
		return geoprep.ParseCRS("4269")
	}
	return ""
}

// writePRJ writes a .prj file for crs if its well-known text is known, and removes any
// stale one otherwise
func writePRJ(shpPath string, crs geoprep.CRS) error {
	path := prjPath(shpPath)
	code, ok := crs.EPSG()
	wkt, known := prjByEPSG[code]
	if !ok || !known {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	return os.WriteFile(path, []byte(wkt), 0644)
}
