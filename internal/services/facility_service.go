package services

import (
	"context"

	"geodata-service/internal/metrics"
	"geodata-service/internal/models"
	"geodata-service/internal/repository"
	"geodata-service/internal/utils"
)

// Defaults for facility queries.
const (
	DefaultPageSize     = 20
	MaxPageSize         = 100
	DefaultNearbyRadius = 50.0
	DefaultNearbyLimit  = 20
	DefaultGeoJSONLimit = 1000
)

// FacilityPage is one page of a paginated facility listing.
type FacilityPage struct {
	Count    int64
	Page     int
	PageSize int
	HasNext  bool
	HasPrev  bool
	Results  []models.Facility
}

// NearbyQuery locates facilities around an origin.
type NearbyQuery struct {
	Lat, Lng float64
	RadiusKm float64
	Amenity  string
	Limit    int
}

// Directions is the straight-line route from an origin to a facility.
type Directions struct {
	Facility   *models.Facility
	Meters     float64
	Kilometers float64
	Bearing    float64
}

// FacilityService answers the read-only facility queries.
type FacilityService struct {
	Repo    repository.FacilityRepository
	Metrics *metrics.Metrics
}

func NewFacilityService(repo repository.FacilityRepository, m *metrics.Metrics) *FacilityService {
	return &FacilityService{Repo: repo, Metrics: m}
}

// List returns one page of facilities. Page numbers start at 1; a page beyond
// the last one is ErrInvalidPage, except that page 1 of an empty result is valid.
func (s *FacilityService) List(ctx context.Context, f repository.FacilityFilter, page, pageSize int) (*FacilityPage, error) {
	s.Metrics.RecordFacilityQuery("list")
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	count, err := s.Repo.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	pages := int((count + int64(pageSize) - 1) / int64(pageSize))
	if pages == 0 {
		pages = 1
	}
	if page < 1 || page > pages {
		return nil, ErrInvalidPage
	}

	results, err := s.Repo.Find(ctx, f, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return &FacilityPage{
		Count:    count,
		Page:     page,
		PageSize: pageSize,
		HasNext:  page < pages,
		HasPrev:  page > 1,
		Results:  results,
	}, nil
}

// Get returns one facility, annotated with its distance from origin when given.
func (s *FacilityService) Get(ctx context.Context, id uint, origin *models.GeoPoint) (*models.Facility, error) {
	s.Metrics.RecordFacilityQuery("retrieve")
	f, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if origin != nil {
		d := utils.HaversineDistance(origin.Lat(), origin.Lng(), f.Latitude(), f.Longitude())
		f.Distance = &d
	}
	return f, nil
}

// Nearby returns facilities within q.RadiusKm of the origin, nearest first.
func (s *FacilityService) Nearby(ctx context.Context, q NearbyQuery) ([]models.Facility, error) {
	s.Metrics.RecordFacilityQuery("nearby")
	if q.RadiusKm <= 0 {
		q.RadiusKm = DefaultNearbyRadius
	}
	if q.Limit <= 0 {
		q.Limit = DefaultNearbyLimit
	}
	origin := models.NewGeoPoint(q.Lng, q.Lat)
	maxMeters := q.RadiusKm * 1000
	return s.Repo.Find(ctx, repository.FacilityFilter{
		Amenity:           q.Amenity,
		Origin:            &origin,
		MaxDistanceMeters: &maxMeters,
	}, 0, q.Limit)
}

// GeoJSON returns at most limit facilities matching f for a FeatureCollection.
func (s *FacilityService) GeoJSON(ctx context.Context, f repository.FacilityFilter, limit int) ([]models.Facility, error) {
	s.Metrics.RecordFacilityQuery("geojson")
	if limit <= 0 {
		limit = DefaultGeoJSONLimit
	}
	return s.Repo.Find(ctx, f, 0, limit)
}

// Directions computes the planar degree distance and initial bearing from
// (lat, lng) to the facility. No routing service is consulted.
func (s *FacilityService) Directions(ctx context.Context, id uint, lat, lng float64) (*Directions, error) {
	s.Metrics.RecordFacilityQuery("directions")
	f, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	meters := utils.DegreeDistanceMeters(lat, lng, f.Latitude(), f.Longitude())
	return &Directions{
		Facility:   f,
		Meters:     utils.Round2(meters),
		Kilometers: utils.Round2(meters / 1000),
		Bearing:    utils.RoundedBearing(lat, lng, f.Latitude(), f.Longitude()),
	}, nil
}

func (s *FacilityService) Districts(ctx context.Context) ([]repository.ValueCount, error) {
	s.Metrics.RecordFacilityQuery("districts")
	return s.Repo.CountBy(ctx, "district")
}

func (s *FacilityService) Amenities(ctx context.Context) ([]repository.ValueCount, error) {
	s.Metrics.RecordFacilityQuery("amenities")
	return s.Repo.CountBy(ctx, "amenity")
}

func (s *FacilityService) Stats(ctx context.Context) (*repository.FacilityStats, error) {
	s.Metrics.RecordFacilityQuery("stats")
	return s.Repo.Stats(ctx)
}
