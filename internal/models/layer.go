package models

import (
	"path"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Geometry types a Layer can declare.
const (
	GeometryPoint           = "Point"
	GeometryLineString      = "LineString"
	GeometryPolygon         = "Polygon"
	GeometryMultiPoint      = "MultiPoint"
	GeometryMultiLineString = "MultiLineString"
	GeometryMultiPolygon    = "MultiPolygon"
)

// ValidGeometryType reports whether t is one of the declared layer geometry types.
func ValidGeometryType(t string) bool {
	switch t {
	case GeometryPoint, GeometryLineString, GeometryPolygon,
		GeometryMultiPoint, GeometryMultiLineString, GeometryMultiPolygon:
		return true
	}
	return false
}

// Layer is a named dataset ingested from an uploaded shapefile bundle. The file
// columns hold storage keys; GeoJSONData, FeatureCount, Bounds, GeometryType and
// SRID are derived from the main file and only written by the decoder path.
type Layer struct {
	ID           uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string                       `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description  *string                      `gorm:"type:text" json:"description"`
	GeometryType string                       `gorm:"size:50" json:"geometry_type"`
	Shapefile    string                       `gorm:"column:shapefile;size:512;not null" json:"shapefile"`
	ShxFile      *string                      `gorm:"column:shx_file;size:512" json:"shx_file"`
	DbfFile      *string                      `gorm:"column:dbf_file;size:512" json:"dbf_file"`
	PrjFile      *string                      `gorm:"column:prj_file;size:512" json:"prj_file"`
	GeoJSONData  datatypes.JSON               `gorm:"column:geojson_data;type:jsonb" json:"geojson_data"`
	FeatureCount int                          `gorm:"not null;default:0" json:"feature_count"`
	SRID         int                          `gorm:"column:srid;not null;default:4326" json:"srid"`
	Bounds       datatypes.JSONSlice[float64] `gorm:"type:jsonb" json:"bounds"`
	UploadedByID *uint                        `json:"uploaded_by"`
	UploadedBy   *User                        `gorm:"foreignKey:UploadedByID;constraint:OnDelete:SET NULL" json:"-"`
	IsActive     bool                         `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time                    `gorm:"index:idx_layer_created_at,sort:desc" json:"created_at"`
	UpdatedAt    time.Time                    `json:"updated_at"`
}

func (Layer) TableName() string {
	return "shapefile_layers"
}

// FileKeys returns every storage key the layer references.
func (l *Layer) FileKeys() []string {
	keys := []string{}
	if l.Shapefile != "" {
		keys = append(keys, l.Shapefile)
	}
	for _, k := range []*string{l.ShxFile, l.DbfFile, l.PrjFile} {
		if k != nil && *k != "" {
			keys = append(keys, *k)
		}
	}
	return keys
}

// FileKey returns the storage key for one bundle component ("shp", "shx", "dbf", "prj").
func (l *Layer) FileKey(component string) (string, bool) {
	var k *string
	switch component {
	case "shp":
		if l.Shapefile == "" {
			return "", false
		}
		return l.Shapefile, true
	case "shx":
		k = l.ShxFile
	case "dbf":
		k = l.DbfFile
	case "prj":
		k = l.PrjFile
	}
	if k == nil || *k == "" {
		return "", false
	}
	return *k, true
}

// LayerFileKey builds the storage key for an uploaded component of a layer.
// Every ingestion writes under its own revision so the files a committed row
// references are never overwritten in place.
func LayerFileKey(layerID, revision uuid.UUID, filename string) string {
	return path.Join("shapefiles", layerID.String(), revision.String(), path.Base(filename))
}

// TrashKey is where a component is parked while its layer's deletion commits.
func TrashKey(key string) string {
	return path.Join("trash", key)
}
