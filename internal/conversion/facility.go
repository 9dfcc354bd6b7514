package conversion

import (
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geodata-service/internal/models"
	"geodata-service/internal/repository"
	"geodata-service/internal/services"
	"geodata-service/internal/utils"
)

// FacilityListItem is one facility in a paginated listing.
type FacilityListItem struct {
	ID                 uint     `json:"id"`
	OSMID              int64    `json:"osm_id"`
	OSMType            *string  `json:"osm_type"`
	Name               string   `json:"name"`
	Amenity            *string  `json:"amenity"`
	District           *string  `json:"district"`
	Region             *string  `json:"region"`
	Latitude           float64  `json:"latitude"`
	Longitude          float64  `json:"longitude"`
	Distance           *float64 `json:"distance"`
	Healthcare         *string  `json:"healthcare"`
	Operator           *string  `json:"operator"`
	Beds               *int     `json:"beds"`
	Emergency          *string  `json:"emergency"`
	Wheelchair         *string  `json:"wheelchair"`
	Completeness       *float64 `json:"completeness"`
	Source             *string  `json:"source"`
	Speciality         *string  `json:"speciality"`
	OperatorType       *string  `json:"operator_type"`
	OperationalStatus  *string  `json:"operational_status"`
	OpeningHours       *string  `json:"opening_hours"`
	StaffDoctors       *int     `json:"staff_doctors"`
	StaffNurses        *int     `json:"staff_nurses"`
	HealthAmenity      *string  `json:"health_amenity"`
	Dispensing         *string  `json:"dispensing"`
	Insurance          *string  `json:"insurance"`
	WaterSource        *string  `json:"water_source"`
	Electricity        *string  `json:"electricity"`
	IsInHealthSystem   *string  `json:"is_in_health_system"`
	IsInHealthSystem1  *string  `json:"is_in_health_system_1"`
	URL                *string  `json:"url"`
	AddrHousenumber    *string  `json:"addr_housenumber"`
	AddrStreet         *string  `json:"addr_street"`
	AddrPostcode       *string  `json:"addr_postcode"`
	AddrCity           *string  `json:"addr_city"`
	ChangesetID        *int64   `json:"changeset_id"`
	ChangesetVersion   *int     `json:"changeset_version"`
	ChangesetTimestamp *string  `json:"changeset_timestamp"`
	UUID               *string  `json:"uuid"`
	Area               *float64 `json:"area"`
	Perimeter          *float64 `json:"perimeter"`
}

// FacilityDetail adds the stored location and timestamps to the listing fields.
type FacilityDetail struct {
	FacilityListItem
	Location    *geojson.Geometry `json:"location" swaggertype:"object"`
	Coordinates [2]float64        `json:"coordinates"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NearbyFacility is a facility annotated with its distance from the caller.
type NearbyFacility struct {
	ID                uint     `json:"id"`
	OSMID             int64    `json:"osm_id"`
	OSMType           *string  `json:"osm_type"`
	Name              string   `json:"name"`
	Amenity           *string  `json:"amenity"`
	District          *string  `json:"district"`
	Region            *string  `json:"region"`
	Latitude          float64  `json:"latitude"`
	Longitude         float64  `json:"longitude"`
	DistanceKm        *float64 `json:"distance_km"`
	DistanceM         *float64 `json:"distance_m"`
	Healthcare        *string  `json:"healthcare"`
	Emergency         *string  `json:"emergency"`
	Beds              *int     `json:"beds"`
	OpeningHours      *string  `json:"opening_hours"`
	Operator          *string  `json:"operator"`
	Wheelchair        *string  `json:"wheelchair"`
	StaffDoctors      *int     `json:"staff_doctors"`
	StaffNurses       *int     `json:"staff_nurses"`
	Completeness      *float64 `json:"completeness"`
	Speciality        *string  `json:"speciality"`
	OperationalStatus *string  `json:"operational_status"`
	WaterSource       *string  `json:"water_source"`
	Electricity       *string  `json:"electricity"`
	URL               *string  `json:"url"`
	AddrStreet        *string  `json:"addr_street"`
	AddrCity          *string  `json:"addr_city"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type NearbyResponse struct {
	Count        int              `json:"count"`
	RadiusKm     float64          `json:"radius_km"`
	UserLocation Location         `json:"user_location"`
	Facilities   []NearbyFacility `json:"facilities"`
}

type PaginatedFacilities struct {
	Count    int64              `json:"count"`
	Next     *string            `json:"next"`
	Previous *string            `json:"previous"`
	Results  []FacilityListItem `json:"results"`
}

type DistrictCount struct {
	District      string `json:"district"`
	FacilityCount int64  `json:"facility_count"`
}

type DistrictsResponse struct {
	Count     int             `json:"count"`
	Districts []DistrictCount `json:"districts"`
}

type AmenityCount struct {
	Amenity       string `json:"amenity"`
	FacilityCount int64  `json:"facility_count"`
}

type AmenitiesResponse struct {
	Count     int            `json:"count"`
	Amenities []AmenityCount `json:"amenities"`
}

type StatsResponse struct {
	TotalFacilities     int64            `json:"total_facilities"`
	TotalDistricts      int64            `json:"total_districts"`
	TotalAmenityTypes   int64            `json:"total_amenity_types"`
	FacilitiesByAmenity map[string]int64 `json:"facilities_by_amenity"`
	EmergencyFacilities int64            `json:"emergency_facilities"`
}

type DirectionsFacility struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	District  *string `json:"district"`
	Amenity   *string `json:"amenity"`
}

type DirectionsDistance struct {
	Meters     float64 `json:"meters"`
	Kilometers float64 `json:"kilometers"`
}

type NavigationURLs struct {
	GoogleMaps    string `json:"google_maps"`
	OpenStreetMap string `json:"openstreetmap"`
}

type DirectionsResponse struct {
	Facility       DirectionsFacility `json:"facility"`
	From           Location           `json:"from"`
	Distance       DirectionsDistance `json:"distance"`
	Bearing        float64            `json:"bearing"`
	NavigationURLs NavigationURLs     `json:"navigation_urls"`
}

func roundedDistance(f *models.Facility) *float64 {
	if f.Distance == nil {
		return nil
	}
	d := utils.Round2(*f.Distance)
	return &d
}

func ToFacilityListItem(f *models.Facility) FacilityListItem {
	return FacilityListItem{
		ID:                 f.ID,
		OSMID:              f.OSMID,
		OSMType:            f.OSMType,
		Name:               f.Name,
		Amenity:            f.Amenity,
		District:           f.District,
		Region:             f.Region,
		Latitude:           f.Latitude(),
		Longitude:          f.Longitude(),
		Distance:           roundedDistance(f),
		Healthcare:         f.Healthcare,
		Operator:           f.Operator,
		Beds:               f.Beds,
		Emergency:          f.Emergency,
		Wheelchair:         f.Wheelchair,
		Completeness:       f.Completeness,
		Source:             f.Source,
		Speciality:         f.Speciality,
		OperatorType:       f.OperatorType,
		OperationalStatus:  f.OperationalStatus,
		OpeningHours:       f.OpeningHours,
		StaffDoctors:       f.StaffDoctors,
		StaffNurses:        f.StaffNurses,
		HealthAmenity:      f.HealthAmenity,
		Dispensing:         f.Dispensing,
		Insurance:          f.Insurance,
		WaterSource:        f.WaterSource,
		Electricity:        f.Electricity,
		IsInHealthSystem:   f.IsInHealthSystem,
		IsInHealthSystem1:  f.IsInHealthSystem1,
		URL:                f.URL,
		AddrHousenumber:    f.AddrHousenumber,
		AddrStreet:         f.AddrStreet,
		AddrPostcode:       f.AddrPostcode,
		AddrCity:           f.AddrCity,
		ChangesetID:        f.ChangesetID,
		ChangesetVersion:   f.ChangesetVersion,
		ChangesetTimestamp: f.ChangesetTimestamp,
		UUID:               f.UUID,
		Area:               f.Area,
		Perimeter:          f.Perimeter,
	}
}

func ToFacilityListItems(fs []models.Facility) []FacilityListItem {
	out := make([]FacilityListItem, 0, len(fs))
	for i := range fs {
		out = append(out, ToFacilityListItem(&fs[i]))
	}
	return out
}

func ToFacilityDetail(f *models.Facility) FacilityDetail {
	return FacilityDetail{
		FacilityListItem: ToFacilityListItem(f),
		Location:         geojson.NewGeometry(orb.Point(f.Location)),
		Coordinates:      [2]float64{f.Longitude(), f.Latitude()},
		CreatedAt:        f.CreatedAt,
		UpdatedAt:        f.UpdatedAt,
	}
}

func ToNearbyFacility(f *models.Facility) NearbyFacility {
	n := NearbyFacility{
		ID:                f.ID,
		OSMID:             f.OSMID,
		OSMType:           f.OSMType,
		Name:              f.Name,
		Amenity:           f.Amenity,
		District:          f.District,
		Region:            f.Region,
		Latitude:          f.Latitude(),
		Longitude:         f.Longitude(),
		Healthcare:        f.Healthcare,
		Emergency:         f.Emergency,
		Beds:              f.Beds,
		OpeningHours:      f.OpeningHours,
		Operator:          f.Operator,
		Wheelchair:        f.Wheelchair,
		StaffDoctors:      f.StaffDoctors,
		StaffNurses:       f.StaffNurses,
		Completeness:      f.Completeness,
		Speciality:        f.Speciality,
		OperationalStatus: f.OperationalStatus,
		WaterSource:       f.WaterSource,
		Electricity:       f.Electricity,
		URL:               f.URL,
		AddrStreet:        f.AddrStreet,
		AddrCity:          f.AddrCity,
	}
	if f.Distance != nil {
		km, m := utils.Round2(*f.Distance/1000), utils.Round2(*f.Distance)
		n.DistanceKm, n.DistanceM = &km, &m
	}
	return n
}

func ToNearbyResponse(fs []models.Facility, lat, lng, radiusKm float64) NearbyResponse {
	out := make([]NearbyFacility, 0, len(fs))
	for i := range fs {
		out = append(out, ToNearbyFacility(&fs[i]))
	}
	return NearbyResponse{
		Count:        len(out),
		RadiusKm:     radiusKm,
		UserLocation: Location{Latitude: lat, Longitude: lng},
		Facilities:   out,
	}
}

// ToFeature renders a facility as a GeoJSON Point feature.
func ToFeature(f *models.Facility) *geojson.Feature {
	feature := geojson.NewFeature(orb.Point(f.Location))
	feature.ID = f.ID
	feature.Properties = geojson.Properties{
		"id":                    f.ID,
		"osm_id":                f.OSMID,
		"osm_type":              f.OSMType,
		"name":                  f.Name,
		"amenity":               f.Amenity,
		"district":              f.District,
		"region":                f.Region,
		"healthcare":            f.Healthcare,
		"operator":              f.Operator,
		"beds":                  f.Beds,
		"emergency":             f.Emergency,
		"wheelchair":            f.Wheelchair,
		"staff_doctors":         f.StaffDoctors,
		"staff_nurses":          f.StaffNurses,
		"opening_hours":         f.OpeningHours,
		"url":                   f.URL,
		"water_source":          f.WaterSource,
		"electricity":           f.Electricity,
		"dispensing":            f.Dispensing,
		"insurance":             f.Insurance,
		"completeness":          f.Completeness,
		"source":                f.Source,
		"speciality":            f.Speciality,
		"operator_type":         f.OperatorType,
		"operational_status":    f.OperationalStatus,
		"health_amenity":        f.HealthAmenity,
		"is_in_health_system":   f.IsInHealthSystem,
		"is_in_health_system_1": f.IsInHealthSystem1,
		"addr_housenumber":      f.AddrHousenumber,
		"addr_street":           f.AddrStreet,
		"addr_postcode":         f.AddrPostcode,
		"addr_city":             f.AddrCity,
		"uuid":                  f.UUID,
		"area":                  f.Area,
		"perimeter":             f.Perimeter,
		"distance":              roundedDistance(f),
	}
	return feature
}

// ToFeatureCollection renders facilities as a FeatureCollection carrying a
// top-level count member.
func ToFeatureCollection(fs []models.Facility) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := range fs {
		fc.Append(ToFeature(&fs[i]))
	}
	fc.ExtraMembers = geojson.Properties{"count": len(fs)}
	return fc
}

func ToDistrictsResponse(rows []repository.ValueCount) DistrictsResponse {
	out := make([]DistrictCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, DistrictCount{District: r.Value, FacilityCount: r.FacilityCount})
	}
	return DistrictsResponse{Count: len(out), Districts: out}
}

func ToAmenitiesResponse(rows []repository.ValueCount) AmenitiesResponse {
	out := make([]AmenityCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, AmenityCount{Amenity: r.Value, FacilityCount: r.FacilityCount})
	}
	return AmenitiesResponse{Count: len(out), Amenities: out}
}

func ToStatsResponse(s *repository.FacilityStats) StatsResponse {
	byAmenity := make(map[string]int64, len(s.ByAmenity))
	for _, r := range s.ByAmenity {
		byAmenity[r.Value] = r.FacilityCount
	}
	return StatsResponse{
		TotalFacilities:     s.Total,
		TotalDistricts:      s.Districts,
		TotalAmenityTypes:   s.AmenityTypes,
		FacilitiesByAmenity: byAmenity,
		EmergencyFacilities: s.Emergency,
	}
}

// ToDirectionsResponse renders directions. rawLat and rawLng are the origin
// exactly as the client sent it and are interpolated into the navigation URLs.
func ToDirectionsResponse(d *services.Directions, lat, lng float64, rawLat, rawLng string) DirectionsResponse {
	f := d.Facility
	flat, flng := f.Latitude(), f.Longitude()
	return DirectionsResponse{
		Facility: DirectionsFacility{
			ID:        f.ID,
			Name:      f.Name,
			Latitude:  flat,
			Longitude: flng,
			District:  f.District,
			Amenity:   f.Amenity,
		},
		From:     Location{Latitude: lat, Longitude: lng},
		Distance: DirectionsDistance{Meters: d.Meters, Kilometers: d.Kilometers},
		Bearing:  d.Bearing,
		NavigationURLs: NavigationURLs{
			GoogleMaps: fmt.Sprintf("https://www.google.com/maps/dir/?api=1&origin=%s,%s&destination=%v,%v",
				rawLat, rawLng, flat, flng),
			OpenStreetMap: fmt.Sprintf("https://www.openstreetmap.org/directions?engine=fossgis_osrm_car&route=%s%%2C%s%%3B%v%%2C%v",
				rawLat, rawLng, flat, flng),
		},
	}
}
