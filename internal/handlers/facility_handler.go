package handlers

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"geodata-service/internal/conversion"
	"geodata-service/internal/models"
	"geodata-service/internal/repository"
	"geodata-service/internal/services"
)

// FacilityHandler serves the public, read-only facility endpoints.
type FacilityHandler struct {
	Service *services.FacilityService
}

func NewFacilityHandler(service *services.FacilityService) *FacilityHandler {
	return &FacilityHandler{Service: service}
}

// paramError is a malformed numeric query parameter.
type paramError struct {
	name, value string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("could not convert %s to a number: %q", e.name, e.value)
}

func invalidParams(c *fiber.Ctx, err error) error {
	return errorJSON(c, fiber.StatusBadRequest, "Invalid parameters: "+err.Error())
}

func floatQuery(c *fiber.Ctx, name string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, &paramError{name: name, value: raw}
	}
	return &v, nil
}

func intQuery(c *fiber.Ctx, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{name: name, value: raw}
	}
	return v, nil
}

// facilityFilter reads the shared list/geojson filters. Distance mode applies
// only when both lat and lng are present; max_distance is in kilometres.
func facilityFilter(c *fiber.Ctx) (repository.FacilityFilter, error) {
	f := repository.FacilityFilter{
		Name:       c.Query("name"),
		District:   c.Query("district"),
		Region:     c.Query("region"),
		Amenity:    c.Query("amenity"),
		Emergency:  c.Query("emergency"),
		Wheelchair: c.Query("wheelchair"),
	}
	lat, err := floatQuery(c, "lat")
	if err != nil {
		return f, err
	}
	lng, err := floatQuery(c, "lng")
	if err != nil {
		return f, err
	}
	if lat == nil || lng == nil {
		return f, nil
	}
	origin := models.NewGeoPoint(*lng, *lat)
	f.Origin = &origin

	maxKm, err := floatQuery(c, "max_distance")
	if err != nil {
		return f, err
	}
	if maxKm != nil {
		meters := *maxKm * 1000
		f.MaxDistanceMeters = &meters
	}
	return f, nil
}

// requiredOrigin reads the mandatory lat/lng pair.
func requiredOrigin(c *fiber.Ctx) (lat, lng float64, missing bool, err error) {
	if c.Query("lat") == "" || c.Query("lng") == "" {
		return 0, 0, true, nil
	}
	latp, err := floatQuery(c, "lat")
	if err != nil {
		return 0, 0, false, err
	}
	lngp, err := floatQuery(c, "lng")
	if err != nil {
		return 0, 0, false, err
	}
	return *latp, *lngp, false, nil
}

func facilityID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 0)
	return uint(id), err == nil
}

// pageURL returns the request URL with its page parameter replaced. Page 1
// drops the parameter.
func pageURL(c *fiber.Ctx, page int) *string {
	u, err := url.Parse(c.BaseURL() + c.OriginalURL())
	if err != nil {
		return nil
	}
	q := u.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}

// ListFacilities handles GET /facilities.
// @Summary List health facilities
// @Description Paginated listing with optional filters; lat and lng add a distance and sort nearest first
// @Tags facilities
// @Produce json
// @Param name query string false "Name contains (case-insensitive)"
// @Param district query string false "District (case-insensitive)"
// @Param region query string false "Region (case-insensitive)"
// @Param amenity query string false "Amenity type"
// @Param emergency query string false "Emergency services (yes/no)"
// @Param wheelchair query string false "Wheelchair access (yes/no)"
// @Param lat query number false "Latitude of the caller"
// @Param lng query number false "Longitude of the caller"
// @Param max_distance query number false "Maximum distance in kilometres"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} conversion.PaginatedFacilities
// @Failure 400 {object} map[string]interface{} "Invalid parameters"
// @Failure 404 {object} map[string]interface{} "Invalid page"
// @Router /facilities [get]
func (h *FacilityHandler) ListFacilities(c *fiber.Ctx) error {
	filter, err := facilityFilter(c)
	if err != nil {
		return invalidParams(c, err)
	}
	pageSize, err := intQuery(c, "page_size")
	if err != nil {
		return invalidParams(c, err)
	}
	page := 1
	if raw := c.Query("page"); raw != "" {
		if page, err = strconv.Atoi(raw); err != nil {
			return errorJSON(c, fiber.StatusNotFound, InvalidPageError)
		}
	}

	result, err := h.Service.List(c.UserContext(), filter, page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	resp := conversion.PaginatedFacilities{
		Count:   result.Count,
		Results: conversion.ToFacilityListItems(result.Results),
	}
	if result.HasNext {
		resp.Next = pageURL(c, result.Page+1)
	}
	if result.HasPrev {
		resp.Previous = pageURL(c, result.Page-1)
	}
	return c.JSON(resp)
}

// GetFacility handles GET /facilities/:id.
// @Summary Get a health facility
// @Tags facilities
// @Produce json
// @Param id path int true "Facility ID"
// @Param lat query number false "Latitude of the caller"
// @Param lng query number false "Longitude of the caller"
// @Success 200 {object} conversion.FacilityDetail
// @Failure 404 {object} map[string]interface{} "Facility not found"
// @Router /facilities/{id} [get]
func (h *FacilityHandler) GetFacility(c *fiber.Ctx) error {
	id, ok := facilityID(c)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, NotFoundError)
	}
	filter, err := facilityFilter(c)
	if err != nil {
		return invalidParams(c, err)
	}
	f, err := h.Service.Get(c.UserContext(), id, filter.Origin)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(conversion.ToFacilityDetail(f))
}

// Nearby handles GET /facilities/nearby.
// @Summary Find facilities near a location
// @Tags facilities
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Param radius query number false "Search radius in kilometres (default 50)"
// @Param amenity query string false "Amenity type"
// @Param limit query int false "Maximum results (default 20)"
// @Success 200 {object} conversion.NearbyResponse
// @Failure 400 {object} map[string]interface{} "Missing or invalid parameters"
// @Router /facilities/nearby [get]
func (h *FacilityHandler) Nearby(c *fiber.Ctx) error {
	lat, lng, missing, err := requiredOrigin(c)
	if missing {
		return errorJSON(c, fiber.StatusBadRequest, LatLngRequired)
	}
	if err != nil {
		return invalidParams(c, err)
	}
	radius := services.DefaultNearbyRadius
	r, err := floatQuery(c, "radius")
	if err != nil {
		return invalidParams(c, err)
	}
	if r != nil && *r > 0 {
		radius = *r
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		return invalidParams(c, err)
	}

	facilities, err := h.Service.Nearby(c.UserContext(), services.NearbyQuery{
		Lat:      lat,
		Lng:      lng,
		RadiusKm: radius,
		Amenity:  c.Query("amenity"),
		Limit:    limit,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(conversion.ToNearbyResponse(facilities, lat, lng, radius))
}

// GeoJSON handles GET /facilities/geojson.
// @Summary Facilities as a GeoJSON FeatureCollection
// @Description Accepts the listing filters plus limit (default 1000)
// @Tags facilities
// @Produce json
// @Param limit query int false "Maximum features"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Invalid parameters"
// @Router /facilities/geojson [get]
func (h *FacilityHandler) GeoJSON(c *fiber.Ctx) error {
	filter, err := facilityFilter(c)
	if err != nil {
		return invalidParams(c, err)
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		return invalidParams(c, err)
	}
	facilities, err := h.Service.GeoJSON(c.UserContext(), filter, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(conversion.ToFeatureCollection(facilities))
}

// Districts handles GET /facilities/districts.
// @Summary Districts with facility counts
// @Tags facilities
// @Produce json
// @Success 200 {object} conversion.DistrictsResponse
// @Router /facilities/districts [get]
func (h *FacilityHandler) Districts(c *fiber.Ctx) error {
	rows, err := h.Service.Districts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(conversion.ToDistrictsResponse(rows))
}

// Amenities handles GET /facilities/amenities.
// @Summary Amenity types with facility counts
// @Tags facilities
// @Produce json
// @Success 200 {object} conversion.AmenitiesResponse
// @Router /facilities/amenities [get]
func (h *FacilityHandler) Amenities(c *fiber.Ctx) error {
	rows, err := h.Service.Amenities(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(conversion.ToAmenitiesResponse(rows))
}

// Stats handles GET /facilities/stats.
// @Summary Facility statistics
// @Tags facilities
// @Produce json
// @Success 200 {object} conversion.StatsResponse
// @Router /facilities/stats [get]
func (h *FacilityHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.Service.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(conversion.ToStatsResponse(stats))
}

// Directions handles GET /facilities/:id/directions.
// @Summary Straight-line directions to a facility
// @Tags facilities
// @Produce json
// @Param id path int true "Facility ID"
// @Param lat query number true "Starting latitude"
// @Param lng query number true "Starting longitude"
// @Success 200 {object} conversion.DirectionsResponse
// @Failure 400 {object} map[string]interface{} "Missing or invalid parameters"
// @Failure 404 {object} map[string]interface{} "Facility not found"
// @Router /facilities/{id}/directions [get]
func (h *FacilityHandler) Directions(c *fiber.Ctx) error {
	id, ok := facilityID(c)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, NotFoundError)
	}
	lat, lng, missing, err := requiredOrigin(c)
	if err != nil {
		return invalidParams(c, err)
	}
	if missing {
		// the facility lookup comes first so an unknown id is still a 404
		if _, err := h.Service.Get(c.UserContext(), id, nil); err != nil {
			return respondError(c, err)
		}
		return errorJSON(c, fiber.StatusBadRequest, LatLngRequired)
	}

	d, err := h.Service.Directions(c.UserContext(), id, lat, lng)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(conversion.ToDirectionsResponse(d, lat, lng, c.Query("lat"), c.Query("lng")))
}
