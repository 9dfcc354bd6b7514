package handlers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"geodata-service/internal/conversion"
	"geodata-service/internal/logger"
	"geodata-service/internal/metrics"
	"geodata-service/internal/services"
	"geodata-service/internal/storage"
)

var emptyFeatureCollection = []byte(`{"type":"FeatureCollection","features":[]}`)

// LayerHandler defines handlers for managing shapefile layers.
type LayerHandler struct {
	Service *services.LayerService
}

// NewLayerHandler creates a new LayerHandler with the given LayerService.
func NewLayerHandler(service *services.LayerService) *LayerHandler {
	return &LayerHandler{Service: service}
}

func layerID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

// formValue returns the named form field, or nil when the request does not carry it.
func formValue(c *fiber.Ctx, key string) *string {
	if form, err := c.MultipartForm(); err == nil {
		if v, ok := form.Value[key]; ok && len(v) > 0 {
			return &v[0]
		}
		return nil
	}
	if c.Request().PostArgs().Has(key) {
		v := c.FormValue(key)
		return &v
	}
	return nil
}

// openedFiles closes the multipart parts opened for one request.
type openedFiles []multipart.File

func (o *openedFiles) open(c *fiber.Ctx, fields ...string) (*services.UploadedFile, error) {
	for _, field := range fields {
		fh, err := c.FormFile(field)
		if err != nil {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		*o = append(*o, f)
		return &services.UploadedFile{Field: field, Filename: fh.Filename, Content: f}, nil
	}
	return nil, nil
}

func (o openedFiles) Close() {
	for _, f := range o {
		f.Close()
	}
}

// bundleFromForm reads the main file from "shapefile" or "shp_file" and the
// optional companions. mainField names the main file in errors when it is missing.
func bundleFromForm(c *fiber.Ctx, files *openedFiles, mainField string) (services.Bundle, error) {
	b := services.Bundle{MainField: mainField}
	var err error
	if b.Shp, err = files.open(c, "shapefile", "shp_file"); err != nil {
		return b, err
	}
	if b.Shx, err = files.open(c, "shx_file"); err != nil {
		return b, err
	}
	if b.Dbf, err = files.open(c, "dbf_file"); err != nil {
		return b, err
	}
	b.Prj, err = files.open(c, "prj_file")
	return b, err
}

func setTimingHeaders(c *fiber.Ctx, t *metrics.IngestTimings) {
	for k, v := range t.GetHeaders() {
		c.Set(k, v)
	}
}

func layerInput(c *fiber.Ctx) services.LayerInput {
	in := services.LayerInput{
		Description: formValue(c, "description"),
		UploadedBy:  CurrentUser(c),
	}
	if v := formValue(c, "name"); v != nil {
		in.Name = *v
	}
	if v := formValue(c, "geometry_type"); v != nil {
		in.GeometryType = *v
	}
	return in
}

// ListLayers handles GET /shapefiles.
// @Summary List shapefile layers
// @Description Gets all layers, newest first
// @Tags shapefiles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} conversion.LayerResponse
// @Failure 401 {object} map[string]interface{} "Not authenticated"
// @Failure 403 {object} map[string]interface{} "Not a staff user"
// @Router /shapefiles [get]
func (h *LayerHandler) ListLayers(c *fiber.Ctx) error {
	layers, err := h.Service.List(c.UserContext(), false)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(conversion.ToLayerResponses(layers))
}

// ActiveLayers handles GET /shapefiles/active.
// @Summary List active shapefile layers
// @Tags shapefiles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} conversion.LayerResponse
// @Router /shapefiles/active [get]
func (h *LayerHandler) ActiveLayers(c *fiber.Ctx) error {
	layers, err := h.Service.List(c.UserContext(), true)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(conversion.ToLayerResponses(layers))
}

// GetLayer handles GET /shapefiles/:id.
// @Summary Get a shapefile layer by ID
// @Tags shapefiles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Layer ID"
// @Success 200 {object} conversion.LayerResponse
// @Failure 404 {object} map[string]interface{} "Layer not found"
// @Router /shapefiles/{id} [get]
func (h *LayerHandler) GetLayer(c *fiber.Ctx) error {
	id, ok := layerID(c)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, NotFoundError)
	}
	layer, err := h.Service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(conversion.ToLayerResponse(layer))
}

// CreateLayer handles POST /shapefiles.
// @Summary Upload a shapefile layer
// @Description Creates a layer from a .shp file and optional .shx, .dbf and .prj companions
// @Tags shapefiles
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Layer name"
// @Param description formData string false "Layer description"
// @Param geometry_type formData string false "Declared geometry type"
// @Param shapefile formData file true "Main .shp file"
// @Param shx_file formData file false "Index .shx file"
// @Param dbf_file formData file false "Attribute .dbf file"
// @Param prj_file formData file false "Projection .prj file"
// @Success 201 {object} conversion.LayerResponse
// @Failure 400 {object} map[string]interface{} "Validation or decode error"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /shapefiles [post]
func (h *LayerHandler) CreateLayer(c *fiber.Ctx) error {
	return h.create(c, "shapefile")
}

// UploadComplete handles POST /shapefiles/upload-complete.
// @Summary Upload a complete shapefile bundle
// @Description Same as creating a layer; the main file is sent as shp_file
// @Tags shapefiles
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Layer name"
// @Param description formData string false "Layer description"
// @Param shp_file formData file true "Main .shp file"
// @Param shx_file formData file false "Index .shx file"
// @Param dbf_file formData file false "Attribute .dbf file"
// @Param prj_file formData file false "Projection .prj file"
// @Success 201 {object} conversion.LayerResponse
// @Failure 400 {object} map[string]interface{} "Validation or decode error"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /shapefiles/upload-complete [post]
func (h *LayerHandler) UploadComplete(c *fiber.Ctx) error {
	return h.create(c, "shp_file")
}

func (h *LayerHandler) create(c *fiber.Ctx, mainField string) error {
	var files openedFiles
	defer files.Close()

	in := layerInput(c)
	bundle, err := bundleFromForm(c, &files, mainField)
	if err != nil {
		return respondError(c, err)
	}
	in.Bundle = bundle

	layer, timings, err := h.Service.Create(c.UserContext(), in)
	setTimingHeaders(c, timings)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(conversion.ToLayerResponse(layer))
}

// UploadArchive handles POST /shapefiles/upload-archive.
// @Summary Upload a zipped shapefile bundle
// @Description The archive must contain exactly one .shp file; companions are matched by extension
// @Tags shapefiles
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Layer name"
// @Param description formData string false "Layer description"
// @Param archive formData file true "Zip archive"
// @Success 201 {object} conversion.LayerResponse
// @Failure 400 {object} map[string]interface{} "Validation or decode error"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /shapefiles/upload-archive [post]
func (h *LayerHandler) UploadArchive(c *fiber.Ctx) error {
	fh, err := c.FormFile("archive")
	if err != nil {
		return validationJSON(c, &services.ValidationError{Field: "archive", Message: "No file was submitted."})
	}

	dir, err := os.MkdirTemp("", "layer-archive-*")
	if err != nil {
		return respondError(c, err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "upload"+filepath.Ext(fh.Filename))
	if err := c.SaveFile(fh, path); err != nil {
		return respondError(c, err)
	}
	logger.FromContext(c.UserContext()).Info().
		Str("filename", fh.Filename).
		Int64("size", fh.Size).
		Msg("processing layer archive")

	layer, timings, err := h.Service.CreateFromArchive(c.UserContext(), layerInput(c), fh.Filename, path)
	setTimingHeaders(c, timings)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(conversion.ToLayerResponse(layer))
}

// PatchLayer handles PATCH /shapefiles/:id.
// @Summary Partially update a shapefile layer
// @Description Edits metadata; a new .shp file re-ingests the layer
// @Tags shapefiles
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Layer ID"
// @Param name formData string false "Layer name"
// @Param description formData string false "Layer description"
// @Param is_active formData boolean false "Active flag"
// @Param shapefile formData file false "Replacement .shp file"
// @Success 200 {object} conversion.LayerResponse
// @Failure 400 {object} map[string]interface{} "Validation or decode error"
// @Failure 404 {object} map[string]interface{} "Layer not found"
// @Router /shapefiles/{id} [patch]
func (h *LayerHandler) PatchLayer(c *fiber.Ctx) error {
	return h.update(c, false)
}

// PutLayer handles PUT /shapefiles/:id. Same as PATCH but the name is required.
// @Summary Update a shapefile layer
// @Tags shapefiles
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Layer ID"
// @Param name formData string true "Layer name"
// @Param description formData string false "Layer description"
// @Param is_active formData boolean false "Active flag"
// @Param shapefile formData file false "Replacement .shp file"
// @Success 200 {object} conversion.LayerResponse
// @Failure 400 {object} map[string]interface{} "Validation or decode error"
// @Failure 404 {object} map[string]interface{} "Layer not found"
// @Router /shapefiles/{id} [put]
func (h *LayerHandler) PutLayer(c *fiber.Ctx) error {
	return h.update(c, true)
}

func (h *LayerHandler) update(c *fiber.Ctx, full bool) error {
	id, ok := layerID(c)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, NotFoundError)
	}

	in := services.LayerUpdate{
		Name:         formValue(c, "name"),
		Description:  formValue(c, "description"),
		GeometryType: formValue(c, "geometry_type"),
	}
	if full && in.Name == nil {
		return validationJSON(c, &services.ValidationError{Field: "name", Message: "This field is required."})
	}
	if v := formValue(c, "is_active"); v != nil {
		active, err := strconv.ParseBool(*v)
		if err != nil {
			return validationJSON(c, &services.ValidationError{Field: "is_active", Message: "Must be a valid boolean."})
		}
		in.IsActive = &active
	}

	var files openedFiles
	defer files.Close()
	bundle, err := bundleFromForm(c, &files, "shapefile")
	if err != nil {
		return respondError(c, err)
	}
	in.Bundle = bundle

	layer, timings, err := h.Service.Update(c.UserContext(), id, in)
	setTimingHeaders(c, timings)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(conversion.ToLayerResponse(layer))
}

// DeleteLayer handles DELETE /shapefiles/:id.
// @Summary Delete a shapefile layer
// @Description Removes the layer and its stored files
// @Tags shapefiles
// @Security BearerAuth
// @Param id path string true "Layer ID"
// @Success 204 "Layer deleted"
// @Failure 404 {object} map[string]interface{} "Layer not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /shapefiles/{id} [delete]
func (h *LayerHandler) DeleteLayer(c *fiber.Ctx) error {
	id, ok := layerID(c)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, NotFoundError)
	}
	if err := h.Service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetMetadata handles GET /shapefiles/:id/metadata.
// @Summary Get decoded layer metadata
// @Tags shapefiles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Layer ID"
// @Success 200 {object} conversion.LayerMetadata
// @Failure 404 {object} map[string]interface{} "Layer not found"
// @Router /shapefiles/{id}/metadata [get]
func (h *LayerHandler) GetMetadata(c *fiber.Ctx) error {
	id, ok := layerID(c)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, NotFoundError)
	}
	layer, err := h.Service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(conversion.ToLayerMetadata(layer))
}

// ToggleActive handles POST /shapefiles/:id/toggle-active.
// @Summary Toggle a layer's active flag
// @Tags shapefiles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Layer ID"
// @Success 200 {object} conversion.LayerResponse
// @Failure 404 {object} map[string]interface{} "Layer not found"
// @Router /shapefiles/{id}/toggle-active [post]
func (h *LayerHandler) ToggleActive(c *fiber.Ctx) error {
	id, ok := layerID(c)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, NotFoundError)
	}
	layer, err := h.Service.ToggleActive(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(conversion.ToLayerResponse(layer))
}

// GetGeoJSON handles GET /shapefiles/:id/geojson.
// @Summary Get a layer's features
// @Description Returns the FeatureCollection decoded at upload time
// @Tags shapefiles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Layer ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "Layer not found"
// @Router /shapefiles/{id}/geojson [get]
func (h *LayerHandler) GetGeoJSON(c *fiber.Ctx) error {
	id, ok := layerID(c)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, NotFoundError)
	}
	layer, err := h.Service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if len(layer.GeoJSONData) == 0 {
		return c.Send(emptyFeatureCollection)
	}
	return c.Send(layer.GeoJSONData)
}

// DownloadComponent handles GET /shapefiles/:id/download/:component.
// @Summary Download a stored shapefile component
// @Tags shapefiles
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Layer ID"
// @Param component path string true "shp, shx, dbf or prj"
// @Success 200 {file} file "Component content"
// @Failure 404 {object} map[string]interface{} "Layer or component not found"
// @Router /shapefiles/{id}/download/{component} [get]
func (h *LayerHandler) DownloadComponent(c *fiber.Ctx) error {
	id, ok := layerID(c)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, NotFoundError)
	}
	file, err := h.Service.Download(c.UserContext(), id, c.Params("component"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, storage.ContentType(filepath.Ext(file.Filename)))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.SendStream(file.Body, int(file.Size))
}
