package repository

import (
	"context"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"geodata-service/internal/models"
	"geodata-service/internal/utils"
)

// FacilityFilter holds the conjunctive predicates of a facility query. Empty
// strings are ignored. When Origin is set the query runs in distance mode:
// rows carry Distance in meters and are ordered nearest first.
type FacilityFilter struct {
	Name       string
	District   string
	Region     string
	Amenity    string
	Emergency  string
	Wheelchair string

	Origin            *models.GeoPoint
	MaxDistanceMeters *float64
}

// ValueCount is one row of a grouped count.
type ValueCount struct {
	Value         string `gorm:"column:value"`
	FacilityCount int64  `gorm:"column:facility_count"`
}

type FacilityStats struct {
	Total        int64
	Districts    int64
	AmenityTypes int64
	ByAmenity    []ValueCount
	Emergency    int64
}

type FacilityRepository interface {
	Find(ctx context.Context, f FacilityFilter, offset, limit int) ([]models.Facility, error)
	Count(ctx context.Context, f FacilityFilter) (int64, error)
	GetByID(ctx context.Context, id uint) (*models.Facility, error)
	CountBy(ctx context.Context, column string) ([]ValueCount, error)
	Stats(ctx context.Context) (*FacilityStats, error)
	Upsert(ctx context.Context, f *models.Facility) (created bool, err error)
	DeleteAll(ctx context.Context) (int64, error)
}

// groupable lists the columns CountBy accepts.
var groupable = map[string]bool{"district": true, "amenity": true}

// maxPrefilterMeters bounds the radius for which an envelope prefilter is added.
// Beyond it the degree approximation of the envelope is too coarse.
const maxPrefilterMeters = 1_000_000

type FacilityRepositoryImpl struct {
	db *gorm.DB
}

func NewFacilityRepository(db *gorm.DB) *FacilityRepositoryImpl {
	return &FacilityRepositoryImpl{db: db}
}

const geographyPoint = "ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography"

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *FacilityRepositoryImpl) filtered(ctx context.Context, f FacilityFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Facility{})
	if f.Name != "" {
		q = q.Where("name ILIKE ?", "%"+escapeLike(f.Name)+"%")
	}
	exact := []struct{ column, value string }{
		{"district", f.District},
		{"region", f.Region},
		{"amenity", f.Amenity},
		{"emergency", f.Emergency},
		{"wheelchair", f.Wheelchair},
	}
	for _, e := range exact {
		if e.value != "" {
			q = q.Where(fmt.Sprintf("UPPER(%s) = UPPER(?)", e.column), e.value)
		}
	}

	if f.Origin != nil && f.MaxDistanceMeters != nil {
		lng, lat, max := f.Origin.Lng(), f.Origin.Lat(), *f.MaxDistanceMeters
		if max < maxPrefilterMeters && math.Abs(lat) < 80 {
			// 2% margin covers the gap between the equatorial degree length and the spheroid
			minLat, maxLat, minLng, maxLng := utils.CalculateBoundingBox(lat, lng, max*1.02)
			// an envelope cannot wrap the antimeridian, so ST_DWithin alone decides there
			if minLng >= -180 && maxLng <= 180 {
				q = q.Where("location && ST_MakeEnvelope(?, ?, ?, ?, 4326)", minLng, minLat, maxLng, maxLat)
			}
		}
		q = q.Where("ST_DWithin(location::geography, "+geographyPoint+", ?)", lng, lat, max)
	}
	return q
}

// Find returns one window of matching facilities. A non-positive limit means no limit.
func (r *FacilityRepositoryImpl) Find(ctx context.Context, f FacilityFilter, offset, limit int) ([]models.Facility, error) {
	q := r.filtered(ctx, f)
	if f.Origin != nil {
		q = q.Select("health_facilities.*, ST_Distance(location::geography, "+geographyPoint+") AS distance",
			f.Origin.Lng(), f.Origin.Lat()).
			Order("distance ASC").Order("id ASC")
	} else {
		q = q.Order("name ASC").Order("id ASC")
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []models.Facility
	if err := q.Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *FacilityRepositoryImpl) Count(ctx context.Context, f FacilityFilter) (int64, error) {
	var n int64
	err := r.filtered(ctx, f).Count(&n).Error
	return n, translate(err)
}

func (r *FacilityRepositoryImpl) GetByID(ctx context.Context, id uint) (*models.Facility, error) {
	var f models.Facility
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

// CountBy returns the distinct non-empty values of column with their facility
// counts in a single grouped query, ordered by value.
func (r *FacilityRepositoryImpl) CountBy(ctx context.Context, column string) ([]ValueCount, error) {
	if !groupable[column] {
		return nil, fmt.Errorf("cannot group facilities by %q", column)
	}
	var rows []ValueCount
	err := r.db.WithContext(ctx).Model(&models.Facility{}).
		Select(column+" AS value, COUNT(*) AS facility_count").
		Where(column + " IS NOT NULL AND " + column + " <> ''").
		Group(column).
		Order(column).
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

func (r *FacilityRepositoryImpl) Stats(ctx context.Context) (*FacilityStats, error) {
	stats := &FacilityStats{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Facility{}).Count(&stats.Total).Error; err != nil {
		return nil, translate(err)
	}
	if err := db.Model(&models.Facility{}).Distinct("district").Where("district IS NOT NULL").Count(&stats.Districts).Error; err != nil {
		return nil, translate(err)
	}
	if err := db.Model(&models.Facility{}).Distinct("amenity").Where("amenity IS NOT NULL").Count(&stats.AmenityTypes).Error; err != nil {
		return nil, translate(err)
	}
	if err := db.Model(&models.Facility{}).Where("UPPER(emergency) = UPPER(?)", "yes").Count(&stats.Emergency).Error; err != nil {
		return nil, translate(err)
	}
	byAmenity, err := r.CountBy(ctx, "amenity")
	if err != nil {
		return nil, err
	}
	stats.ByAmenity = byAmenity
	return stats, nil
}

// upsertColumns are overwritten when an import row matches an existing osm_id.
var upsertColumns = []string{
	"osm_type", "name", "uuid", "location", "district", "region", "area", "perimeter",
	"amenity", "healthcare", "speciality", "health_amenity", "operator", "operator_type",
	"operational_status", "beds", "staff_doctors", "staff_nurses", "dispensing", "wheelchair",
	"emergency", "insurance", "water_source", "electricity", "url", "opening_hours",
	"addr_housenumber", "addr_street", "addr_postcode", "addr_city", "source", "completeness",
	"changeset_id", "changeset_version", "changeset_timestamp", "is_in_health_system",
	"is_in_health_system_1", "updated_at",
}

// Upsert inserts f or overwrites the row sharing its osm_id.
func (r *FacilityRepositoryImpl) Upsert(ctx context.Context, f *models.Facility) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Facility{}).Where("osm_id = ?", f.OSMID).Count(&existing).Error; err != nil {
			return err
		}
		created = existing == 0
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "osm_id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).Create(f).Error
	})
	return created, translate(err)
}

func (r *FacilityRepositoryImpl) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Facility{})
	return res.RowsAffected, translate(res.Error)
}
