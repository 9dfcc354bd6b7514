package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geodata-service/internal/models"
	"geodata-service/internal/repository"
)

func strPtr(s string) *string { return &s }

func seededFacilities() *fakeFacilityRepo {
	repo := newFakeFacilityRepo()
	for _, f := range []models.Facility{
		{OSMID: 1, Name: "Area 18 Clinic", District: strPtr("Lilongwe"), Amenity: strPtr("clinic"), Location: models.NewGeoPoint(33.78, -13.96)},
		{OSMID: 2, Name: "Kamuzu Central Hospital", District: strPtr("Lilongwe"), Amenity: strPtr("hospital"), Location: models.NewGeoPoint(33.79, -13.98)},
		{OSMID: 3, Name: "Queen Elizabeth", District: strPtr("Blantyre"), Amenity: strPtr("hospital"), Location: models.NewGeoPoint(35.01, -15.79)},
		{OSMID: 4, Name: "Unnamed pharmacy 4", Location: models.NewGeoPoint(34.0, -11.4)},
	} {
		_, _ = repo.Upsert(context.Background(), &f)
	}
	return repo
}

func TestFacilityServiceListPagination(t *testing.T) {
	ctx := context.Background()
	repo := seededFacilities()
	svc := NewFacilityService(repo, nil)

	tests := []struct {
		name       string
		count      int64
		page, size int
		wantErr    error
		wantOffset int
		wantLimit  int
		hasNext    bool
		hasPrev    bool
	}{
		{name: "first page", count: 45, page: 1, size: 0, wantOffset: 0, wantLimit: 20, hasNext: true},
		{name: "last page", count: 45, page: 3, size: 20, wantOffset: 40, wantLimit: 20, hasPrev: true},
		{name: "past the end", count: 45, page: 4, size: 20, wantErr: ErrInvalidPage},
		{name: "zero page", count: 45, page: 0, size: 20, wantErr: ErrInvalidPage},
		{name: "empty result first page", count: 0, page: 1, size: 20, wantLimit: 20},
		{name: "page size capped", count: 450, page: 2, size: 500, wantOffset: 100, wantLimit: 100, hasNext: true, hasPrev: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo.count = tt.count
			page, err := svc.List(ctx, repository.FacilityFilter{District: "lilongwe"}, tt.page, tt.size)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.count, page.Count)
			assert.Equal(t, tt.wantOffset, repo.lastOff)
			assert.Equal(t, tt.wantLimit, repo.lastLimit)
			assert.Equal(t, "lilongwe", repo.lastFind.District)
			assert.Equal(t, tt.hasNext, page.HasNext)
			assert.Equal(t, tt.hasPrev, page.HasPrev)
		})
	}
}

func TestFacilityServiceNearbyDefaults(t *testing.T) {
	repo := seededFacilities()
	svc := NewFacilityService(repo, nil)

	_, err := svc.Nearby(context.Background(), NearbyQuery{Lat: -13.96, Lng: 33.78, Amenity: "clinic"})
	require.NoError(t, err)

	f := repo.lastFind
	require.NotNil(t, f.Origin)
	assert.Equal(t, 33.78, f.Origin.Lng())
	assert.Equal(t, -13.96, f.Origin.Lat())
	require.NotNil(t, f.MaxDistanceMeters)
	assert.Equal(t, 50000.0, *f.MaxDistanceMeters)
	assert.Equal(t, "clinic", f.Amenity)
	assert.Equal(t, DefaultNearbyLimit, repo.lastLimit)

	_, err = svc.Nearby(context.Background(), NearbyQuery{Lat: 1, Lng: 2, RadiusKm: 2.5, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 2500.0, *repo.lastFind.MaxDistanceMeters)
	assert.Equal(t, 5, repo.lastLimit)
}

func TestFacilityServiceGeoJSONLimit(t *testing.T) {
	repo := seededFacilities()
	svc := NewFacilityService(repo, nil)

	got, err := svc.GeoJSON(context.Background(), repository.FacilityFilter{}, 0)
	require.NoError(t, err)
	assert.Len(t, got, 4)
	assert.Equal(t, DefaultGeoJSONLimit, repo.lastLimit)
}

func TestFacilityServiceDirections(t *testing.T) {
	svc := NewFacilityService(seededFacilities(), nil)

	d, err := svc.Directions(context.Background(), 1, -13.98, 33.80)
	require.NoError(t, err)
	assert.Equal(t, "Area 18 Clinic", d.Facility.Name)
	assert.InDelta(t, 3148.6, d.Meters, 0.1)
	assert.InDelta(t, 3.15, d.Kilometers, 1e-9)
	assert.Greater(t, d.Bearing, 270.0)
	assert.Less(t, d.Bearing, 360.0)

	_, err = svc.Directions(context.Background(), 99, 0, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFacilityServiceDirectionsBearingWrapsToZero(t *testing.T) {
	repo := newFakeFacilityRepo()
	target := models.Facility{OSMID: 7, Name: "Due north", Location: models.NewGeoPoint(-0.0005, 10)}
	_, _ = repo.Upsert(context.Background(), &target)
	svc := NewFacilityService(repo, nil)

	d, err := svc.Directions(context.Background(), target.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d.Bearing)
}
