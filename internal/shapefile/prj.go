package shapefile

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	authorityRe = regexp.MustCompile(`(?i)^(?:AUTHORITY|ID)\[\s*"EPSG"\s*,\s*"?(\d+)"?\s*\]`)
	rootNameRe  = regexp.MustCompile(`^\s*(?:PROJCS|GEOGCS|PROJCRS|GEOGCRS|GEODCRS)\[\s*"([^"]+)"`)
	utmRe       = regexp.MustCompile(`(?i)WGS[_ ]?(?:19)?84[_ /]+UTM[_ ]Zone[_ ](\d{1,2})([NS])`)
)

// Well-known ESRI CRS names written by desktop GIS tools without an AUTHORITY clause.
var esriNames = map[string]int{
	"GCS_WGS_1984":                           4326,
	"WGS 84":                                 4326,
	"WGS_1984_Web_Mercator_Auxiliary_Sphere": 3857,
	"WGS_84_Pseudo_Mercator":                 3857,
	"WGS 84 / Pseudo-Mercator":               3857,
	"GCS_North_American_1983":                4269,
	"GCS_ETRS_1989":                          4258,
	"GCS_Arc_1960":                           4210,
}

// SRIDFromPRJ extracts the EPSG code of the CRS described by a .prj file.
// Only an AUTHORITY or ID clause directly under the root node counts; the codes
// on nested DATUM, SPHEROID or UNIT nodes describe those parts, not the CRS.
// Without one, common ESRI names and WGS84 UTM zone names are recognised.
func SRIDFromPRJ(wkt string) (int, bool) {
	if code, ok := rootAuthority(wkt); ok {
		return code, true
	}

	root := rootNameRe.FindStringSubmatch(wkt)
	if root == nil {
		return 0, false
	}
	name := root[1]
	if code, ok := esriNames[name]; ok {
		return code, true
	}
	if m := utmRe.FindStringSubmatch(name); m != nil {
		zone, _ := strconv.Atoi(m[1])
		if zone < 1 || zone > 60 {
			return 0, false
		}
		if strings.EqualFold(m[2], "S") {
			return 32700 + zone, true
		}
		return 32600 + zone, true
	}
	return 0, false
}

// rootAuthority scans the WKT for an EPSG clause at bracket depth one.
func rootAuthority(wkt string) (int, bool) {
	depth := 0
	quoted := false
	for i := 0; i < len(wkt); i++ {
		switch ch := wkt[i]; {
		case ch == '"':
			quoted = !quoted
		case quoted:
		case ch == '[' || ch == '(':
			if depth == 1 {
				start := i
				for start > 0 && isKeywordByte(wkt[start-1]) {
					start--
				}
				if m := authorityRe.FindStringSubmatch(wkt[start:]); m != nil {
					if code, err := strconv.Atoi(m[1]); err == nil {
						return code, true
					}
				}
			}
			depth++
		case ch == ']' || ch == ')':
			depth--
		}
	}
	return 0, false
}

func isKeywordByte(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' || b == '_'
}
