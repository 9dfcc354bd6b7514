// Package conversion maps models onto the JSON payloads served by the API.
package conversion

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"geodata-service/internal/models"
)

// LayerResponse is the full representation of a shapefile layer. File fields
// carry storage keys.
type LayerResponse struct {
	ID                 uuid.UUID      `json:"id"`
	Name               string         `json:"name"`
	Description        *string        `json:"description"`
	GeometryType       string         `json:"geometry_type"`
	Shapefile          string         `json:"shapefile"`
	ShxFile            *string        `json:"shx_file"`
	DbfFile            *string        `json:"dbf_file"`
	PrjFile            *string        `json:"prj_file"`
	GeoJSONData        datatypes.JSON `json:"geojson_data" swaggertype:"object"`
	FeatureCount       int            `json:"feature_count"`
	SRID               int            `json:"srid"`
	Bounds             []float64      `json:"bounds"`
	UploadedBy         *uint          `json:"uploaded_by"`
	UploadedByUsername *string        `json:"uploaded_by_username"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	IsActive           bool           `json:"is_active"`
}

// LayerMetadata is the decoded summary of a layer.
type LayerMetadata struct {
	Name         string    `json:"name"`
	GeometryType string    `json:"geometry_type"`
	FeatureCount int       `json:"feature_count"`
	SRID         int       `json:"srid"`
	Bounds       []float64 `json:"bounds"`
}

func ToLayerResponse(l *models.Layer) LayerResponse {
	resp := LayerResponse{
		ID:           l.ID,
		Name:         l.Name,
		Description:  l.Description,
		GeometryType: l.GeometryType,
		Shapefile:    l.Shapefile,
		ShxFile:      l.ShxFile,
		DbfFile:      l.DbfFile,
		PrjFile:      l.PrjFile,
		GeoJSONData:  l.GeoJSONData,
		FeatureCount: l.FeatureCount,
		SRID:         l.SRID,
		Bounds:       l.Bounds,
		UploadedBy:   l.UploadedByID,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
		IsActive:     l.IsActive,
	}
	if l.UploadedBy != nil {
		resp.UploadedByUsername = &l.UploadedBy.Username
	}
	return resp
}

func ToLayerResponses(layers []models.Layer) []LayerResponse {
	out := make([]LayerResponse, 0, len(layers))
	for i := range layers {
		out = append(out, ToLayerResponse(&layers[i]))
	}
	return out
}

func ToLayerMetadata(l *models.Layer) LayerMetadata {
	return LayerMetadata{
		Name:         l.Name,
		GeometryType: l.GeometryType,
		FeatureCount: l.FeatureCount,
		SRID:         l.SRID,
		Bounds:       l.Bounds,
	}
}
