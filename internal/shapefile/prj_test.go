package shapefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSRIDFromPRJ(t *testing.T) {
	cases := []struct {
		name string
		wkt  string
		want int
		ok   bool
	}{
		{
			name: "root authority wins over nested ones",
			wkt:  `PROJCS["WGS 84 / UTM zone 36S",GEOGCS["WGS 84",DATUM["WGS_1984",AUTHORITY["EPSG","6326"]],AUTHORITY["EPSG","4326"]],UNIT["metre",1],AUTHORITY["EPSG","32736"]]`,
			want: 32736,
			ok:   true,
		},
		{
			name: "ogc geographic with authorities only on child nodes",
			wkt:  `GEOGCS["WGS 84",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563,AUTHORITY["EPSG","7030"]],AUTHORITY["EPSG","6326"]],PRIMEM["Greenwich",0,AUTHORITY["EPSG","8901"]],UNIT["degree",0.0174532925199433,AUTHORITY["EPSG","9122"]]]`,
			want: 4326,
			ok:   true,
		},
		{
			name: "projected without root authority falls back to name",
			wkt:  `PROJCS["WGS 84 / UTM zone 36S",GEOGCS["WGS 84",DATUM["WGS_1984",AUTHORITY["EPSG","6326"]],AUTHORITY["EPSG","4326"]],UNIT["metre",1,AUTHORITY["EPSG","9001"]]]`,
			want: 32736,
			ok:   true,
		},
		{
			name: "nested codes on an unknown crs are ignored",
			wkt:  `GEOGCS["Local",DATUM["Local",AUTHORITY["EPSG","6326"]],UNIT["degree",0.0174532925199433,AUTHORITY["EPSG","9122"]]]`,
			ok:   false,
		},
		{
			name: "wkt2 id",
			wkt:  `GEOGCRS["WGS 84",DATUM["World Geodetic System 1984"],ID["EPSG",4326]]`,
			want: 4326,
			ok:   true,
		},
		{
			name: "esri geographic",
			wkt:  wgs84PRJ,
			want: 4326,
			ok:   true,
		},
		{
			name: "esri web mercator",
			wkt:  `PROJCS["WGS_1984_Web_Mercator_Auxiliary_Sphere",GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984"]]]`,
			want: 3857,
			ok:   true,
		},
		{
			name: "esri utm north",
			wkt:  `PROJCS["WGS_1984_UTM_Zone_37N",GEOGCS["GCS_WGS_1984"]]`,
			want: 32637,
			ok:   true,
		},
		{
			name: "esri utm south",
			wkt:  `PROJCS["WGS_1984_UTM_Zone_36S",GEOGCS["GCS_WGS_1984"]]`,
			want: 32736,
			ok:   true,
		},
		{
			name: "unknown local grid",
			wkt:  `PROJCS["Local_Grid",GEOGCS["GCS_Unknown"]]`,
			ok:   false,
		},
		{
			name: "garbage",
			wkt:  "hello",
			ok:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := SRIDFromPRJ(tc.wkt)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}
