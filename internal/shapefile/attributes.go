package shapefile

import (
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
)

// typedValue converts a raw dBASE cell into a JSON value according to the field type.
// Blank cells become nil; cells that do not parse as their declared type are kept as text.
func typedValue(f shp.Field, raw string) any {
	v := strings.Trim(raw, " \x00")
	if v == "" {
		return nil
	}

	switch f.Fieldtype {
	case 'N':
		if f.Precision == 0 {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				return n
			}
		}
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	case 'F':
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	case 'L':
		switch v {
		case "T", "t", "Y", "y":
			return true
		case "F", "f", "N", "n":
			return false
		case "?":
			return nil
		}
	case 'D':
		if len(v) == 8 {
			if _, err := strconv.Atoi(v); err == nil {
				return v[0:4] + "-" + v[4:6] + "-" + v[6:8]
			}
		}
	}
	return v
}
