package models

import "time"

// Facility is a health facility point of interest sourced from OpenStreetMap.
// Latitude and longitude are read from Location and never stored separately.
type Facility struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	OSMID    int64    `gorm:"column:osm_id;uniqueIndex;not null" json:"osm_id"`
	OSMType  *string  `gorm:"column:osm_type;size:20" json:"osm_type"`
	Name     string   `gorm:"size:255;not null;index" json:"name"`
	UUID     *string  `gorm:"column:uuid;size:100;uniqueIndex" json:"uuid"`
	Location GeoPoint `gorm:"type:geometry(Point,4326);not null;index:idx_facility_location,type:gist" json:"-"`

	District  *string  `gorm:"size:100;index:idx_facility_district_amenity,priority:1;index:idx_facility_region_district,priority:2" json:"district"`
	Region    *string  `gorm:"size:100;index:idx_facility_region_district,priority:1" json:"region"`
	Area      *float64 `json:"area"`
	Perimeter *float64 `json:"perimeter"`

	Amenity       *string `gorm:"size:100;index:idx_facility_district_amenity,priority:2" json:"amenity"`
	Healthcare    *string `gorm:"size:100" json:"healthcare"`
	Speciality    *string `gorm:"size:255" json:"speciality"`
	HealthAmenity *string `gorm:"column:health_amenity;size:100" json:"health_amenity"`

	Operator          *string `gorm:"size:255" json:"operator"`
	OperatorType      *string `gorm:"column:operator_type;size:100" json:"operator_type"`
	OperationalStatus *string `gorm:"column:operational_status;size:100" json:"operational_status"`

	Beds         *int `json:"beds"`
	StaffDoctors *int `gorm:"column:staff_doctors" json:"staff_doctors"`
	StaffNurses  *int `gorm:"column:staff_nurses" json:"staff_nurses"`

	Dispensing  *string `gorm:"size:50" json:"dispensing"`
	Wheelchair  *string `gorm:"size:50" json:"wheelchair"`
	Emergency   *string `gorm:"size:50" json:"emergency"`
	Insurance   *string `gorm:"size:255" json:"insurance"`
	WaterSource *string `gorm:"column:water_source;size:100" json:"water_source"`
	Electricity *string `gorm:"size:100" json:"electricity"`

	URL             *string `gorm:"column:url;size:500" json:"url"`
	OpeningHours    *string `gorm:"column:opening_hours;size:255" json:"opening_hours"`
	AddrHousenumber *string `gorm:"column:addr_housenumber;size:50" json:"addr_housenumber"`
	AddrStreet      *string `gorm:"column:addr_street;size:255" json:"addr_street"`
	AddrPostcode    *string `gorm:"column:addr_postcode;size:20" json:"addr_postcode"`
	AddrCity        *string `gorm:"column:addr_city;size:100" json:"addr_city"`

	Source             *string  `gorm:"size:255" json:"source"`
	Completeness       *float64 `json:"completeness"`
	ChangesetID        *int64   `gorm:"column:changeset_id" json:"changeset_id"`
	ChangesetVersion   *int     `gorm:"column:changeset_version" json:"changeset_version"`
	ChangesetTimestamp *string  `gorm:"column:changeset_timestamp;size:50" json:"changeset_timestamp"`

	IsInHealthSystem  *string `gorm:"column:is_in_health_system;size:100" json:"is_in_health_system"`
	IsInHealthSystem1 *string `gorm:"column:is_in_health_system_1;size:100" json:"is_in_health_system_1"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Distance is populated in meters by distance-mode queries only.
	Distance *float64 `gorm:"column:distance;->;-:migration" json:"-"`
}

func (Facility) TableName() string {
	return "health_facilities"
}

func (f *Facility) Latitude() float64  { return f.Location.Lat() }
func (f *Facility) Longitude() float64 { return f.Location.Lng() }
