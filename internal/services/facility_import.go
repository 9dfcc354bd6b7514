package services

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"

	"geodata-service/internal/logger"
	"geodata-service/internal/models"
	"geodata-service/internal/repository"
)

const importProgressEvery = 100

// ImportSummary counts the outcome of one facility import.
type ImportSummary struct {
	Total   int
	Created int
	Updated int
	Skipped int
	Cleared int64
}

// FacilityImporter loads facilities from an OpenStreetMap GeoJSON export whose
// property names were truncated to ten characters by a shapefile round trip.
type FacilityImporter struct {
	Repo repository.FacilityRepository
}

func NewFacilityImporter(repo repository.FacilityRepository) *FacilityImporter {
	return &FacilityImporter{Repo: repo}
}

// Import upserts every usable feature of the FeatureCollection read from r,
// keyed on osm_id. Features without point coordinates or an osm_id are skipped.
// With clear set, existing facilities are deleted first.
func (s *FacilityImporter) Import(ctx context.Context, r io.Reader, clear bool) (*ImportSummary, error) {
	log := logger.FromContext(ctx)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read facility file")
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse facility file")
	}

	summary := &ImportSummary{Total: len(fc.Features)}
	if clear {
		n, err := s.Repo.DeleteAll(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to clear facilities")
		}
		summary.Cleared = n
		log.Info().Int64("deleted", n).Msg("cleared existing facilities")
	}
	log.Info().Int("features", summary.Total).Msg("importing facilities")

	for i, feature := range fc.Features {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		index := i + 1

		facility, reason := facilityFromFeature(feature)
		if facility == nil {
			log.Warn().Int("feature", index).Msgf("skipping feature: %s", reason)
			summary.Skipped++
			continue
		}

		created, err := s.Repo.Upsert(ctx, facility)
		if err != nil {
			log.Warn().Err(err).Int("feature", index).Int64("osm_id", facility.OSMID).Msg("error processing feature")
			summary.Skipped++
			continue
		}
		if created {
			summary.Created++
		} else {
			summary.Updated++
		}

		if index%importProgressEvery == 0 {
			log.Info().
				Int("processed", index).
				Int("total", summary.Total).
				Int("created", summary.Created).
				Int("updated", summary.Updated).
				Int("skipped", summary.Skipped).
				Msg("import progress")
		}
	}

	log.Info().
		Int("created", summary.Created).
		Int("updated", summary.Updated).
		Int("skipped", summary.Skipped).
		Msg("facility import completed")
	return summary, nil
}

// facilityFromFeature maps one feature onto a Facility, or returns why it cannot.
func facilityFromFeature(f *geojson.Feature) (*models.Facility, string) {
	if f == nil {
		return nil, "empty feature"
	}
	pt, ok := f.Geometry.(orb.Point)
	if !ok {
		return nil, "no valid coordinates"
	}
	props := f.Properties
	osmID := parseInt64(props["osm_id"])
	if osmID == nil || *osmID == 0 {
		return nil, "no OSM ID"
	}

	name := stringProp(props, "name")
	if name == nil || strings.TrimSpace(*name) == "" {
		amenity := "Facility"
		if a := stringProp(props, "amenity"); a != nil {
			amenity = *a
		}
		generated := fmt.Sprintf("Unnamed %s %d", amenity, *osmID)
		name = &generated
	}

	return &models.Facility{
		OSMID:              *osmID,
		OSMType:            stringProp(props, "osm_type"),
		Name:               *name,
		UUID:               stringProp(props, "uuid"),
		Location:           models.NewGeoPoint(pt.Lon(), pt.Lat()),
		District:           stringProp(props, "district"),
		Region:             stringProp(props, "region"),
		Area:               parseFloat(props["area"]),
		Perimeter:          parseFloat(props["perimeter"]),
		Amenity:            stringProp(props, "amenity"),
		Healthcare:         stringProp(props, "healthcare"),
		Speciality:         stringProp(props, "speciality"),
		HealthAmenity:      stringProp(props, "health_ame"),
		Operator:           stringProp(props, "operator"),
		OperatorType:       stringProp(props, "operator_t"),
		OperationalStatus:  stringProp(props, "operationa"),
		Beds:               parseInt(props["beds"]),
		StaffDoctors:       parseInt(props["staff_doct"]),
		StaffNurses:        parseInt(props["staff_nurs"]),
		Dispensing:         stringProp(props, "dispensing"),
		Wheelchair:         stringProp(props, "wheelchair"),
		Emergency:          stringProp(props, "emergency"),
		Insurance:          stringProp(props, "insurance"),
		WaterSource:        stringProp(props, "water_sour"),
		Electricity:        stringProp(props, "electricit"),
		URL:                stringProp(props, "url"),
		OpeningHours:       stringProp(props, "opening_ho"),
		AddrHousenumber:    stringProp(props, "addr_house"),
		AddrStreet:         stringProp(props, "addr_stree"),
		AddrPostcode:       stringProp(props, "addr_postc"),
		AddrCity:           stringProp(props, "addr_city"),
		Source:             stringProp(props, "source"),
		Completeness:       parseFloat(props["completene"]),
		ChangesetID:        parseInt64(props["changeset_"]),
		ChangesetVersion:   parseInt(props["changese_1"]),
		ChangesetTimestamp: stringProp(props, "changese_2"),
		IsInHealthSystem:   stringProp(props, "is_in_heal"),
		IsInHealthSystem1:  stringProp(props, "is_in_he_1"),
	}, ""
}

// stringProp returns the property as text; numbers are formatted, null is nil.
func stringProp(props geojson.Properties, key string) *string {
	var s string
	switch v := props[key].(type) {
	case nil:
		return nil
	case string:
		s = v
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(v)
	default:
		s = fmt.Sprint(v)
	}
	return &s
}

func parseFloat(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// parseInt64 truncates any numeric value toward zero, so "12.7" becomes 12.
func parseInt64(v any) *int64 {
	f := parseFloat(v)
	if f == nil || math.Abs(*f) > math.MaxInt64 {
		return nil
	}
	n := int64(*f)
	return &n
}

func parseInt(v any) *int {
	n := parseInt64(v)
	if n == nil || *n > math.MaxInt32 || *n < math.MinInt32 {
		return nil
	}
	i := int(*n)
	return &i
}
