package handlers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"geodata-service/internal/models"
	"geodata-service/internal/repository"
)

type memLayers struct {
	mu     sync.Mutex
	layers map[uuid.UUID]models.Layer
}

func newMemLayers() *memLayers {
	return &memLayers{layers: make(map[uuid.UUID]models.Layer)}
}

func (r *memLayers) Create(_ context.Context, layer *models.Layer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.layers {
		if l.Name == layer.Name {
			return repository.ErrDuplicate
		}
	}
	layer.CreatedAt = time.Now()
	layer.UpdatedAt = layer.CreatedAt
	r.layers[layer.ID] = *layer
	return nil
}

func (r *memLayers) GetByID(_ context.Context, id uuid.UUID) (*models.Layer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.layers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &l, nil
}

func (r *memLayers) List(_ context.Context, activeOnly bool) ([]models.Layer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Layer{}
	for _, l := range r.layers {
		if !activeOnly || l.IsActive {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memLayers) Update(_ context.Context, layer *models.Layer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.layers[layer.ID]; !ok {
		return repository.ErrNotFound
	}
	r.layers[layer.ID] = *layer
	return nil
}

func (r *memLayers) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.layers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.layers, id)
	return nil
}

func (r *memLayers) Transaction(_ context.Context, fn func(tx repository.LayerRepository) error) error {
	return fn(r)
}

// memFacilities ignores filters except amenity and applies offset/limit in id order.
type memFacilities struct {
	facilities []models.Facility
}

func (r *memFacilities) matching(f repository.FacilityFilter) []models.Facility {
	out := []models.Facility{}
	for _, fac := range r.facilities {
		if f.Amenity != "" && (fac.Amenity == nil || !strings.EqualFold(*fac.Amenity, f.Amenity)) {
			continue
		}
		out = append(out, fac)
	}
	return out
}

func (r *memFacilities) Find(_ context.Context, f repository.FacilityFilter, offset, limit int) ([]models.Facility, error) {
	all := r.matching(f)
	if offset > len(all) {
		return []models.Facility{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *memFacilities) Count(_ context.Context, f repository.FacilityFilter) (int64, error) {
	return int64(len(r.matching(f))), nil
}

func (r *memFacilities) GetByID(_ context.Context, id uint) (*models.Facility, error) {
	for _, f := range r.facilities {
		if f.ID == id {
			return &f, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memFacilities) CountBy(_ context.Context, column string) ([]repository.ValueCount, error) {
	counts := map[string]int64{}
	for _, f := range r.facilities {
		v := f.Amenity
		if column == "district" {
			v = f.District
		}
		if v != nil {
			counts[*v]++
		}
	}
	out := []repository.ValueCount{}
	for k, n := range counts {
		out = append(out, repository.ValueCount{Value: k, FacilityCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out, nil
}

func (r *memFacilities) Stats(ctx context.Context) (*repository.FacilityStats, error) {
	byAmenity, _ := r.CountBy(ctx, "amenity")
	districts, _ := r.CountBy(ctx, "district")
	return &repository.FacilityStats{
		Total:        int64(len(r.facilities)),
		Districts:    int64(len(districts)),
		AmenityTypes: int64(len(byAmenity)),
		ByAmenity:    byAmenity,
	}, nil
}

func (r *memFacilities) Upsert(context.Context, *models.Facility) (bool, error) {
	return false, nil
}

func (r *memFacilities) DeleteAll(context.Context) (int64, error) {
	return 0, nil
}

type memUsers struct {
	users []*models.User
}

func (r *memUsers) Create(_ context.Context, user *models.User) error {
	user.ID = uint(len(r.users) + 1)
	r.users = append(r.users, user)
	return nil
}

func (r *memUsers) GetByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUsers) TouchLastLogin(context.Context, uint, time.Time) error {
	return nil
}
