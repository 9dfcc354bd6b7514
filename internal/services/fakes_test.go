package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"geodata-service/internal/models"
	"geodata-service/internal/repository"
	"geodata-service/internal/storage"
)

type fakeLayerRepo struct {
	mu         sync.Mutex
	layers     map[uuid.UUID]models.Layer
	failCommit error
}

func newFakeLayerRepo() *fakeLayerRepo {
	return &fakeLayerRepo{layers: make(map[uuid.UUID]models.Layer)}
}

func (r *fakeLayerRepo) nameTaken(name string, except uuid.UUID) bool {
	for id, l := range r.layers {
		if id != except && l.Name == name {
			return true
		}
	}
	return false
}

func (r *fakeLayerRepo) Create(_ context.Context, layer *models.Layer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTaken(layer.Name, layer.ID) {
		return repository.ErrDuplicate
	}
	layer.CreatedAt = time.Now()
	layer.UpdatedAt = layer.CreatedAt
	r.layers[layer.ID] = *layer
	return nil
}

func (r *fakeLayerRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Layer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.layers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &l, nil
}

func (r *fakeLayerRepo) List(_ context.Context, activeOnly bool) ([]models.Layer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Layer{}
	for _, l := range r.layers {
		if activeOnly && !l.IsActive {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeLayerRepo) Update(_ context.Context, layer *models.Layer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.layers[layer.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.nameTaken(layer.Name, layer.ID) {
		return repository.ErrDuplicate
	}
	layer.UpdatedAt = time.Now()
	r.layers[layer.ID] = *layer
	return nil
}

func (r *fakeLayerRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.layers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.layers, id)
	return nil
}

func (r *fakeLayerRepo) Transaction(_ context.Context, fn func(tx repository.LayerRepository) error) error {
	r.mu.Lock()
	snapshot := make(map[uuid.UUID]models.Layer, len(r.layers))
	for k, v := range r.layers {
		snapshot[k] = v
	}
	r.mu.Unlock()

	err := fn(r)
	if err == nil {
		err = r.failCommit
	}
	if err != nil {
		r.mu.Lock()
		r.layers = snapshot
		r.mu.Unlock()
	}
	return err
}

func (r *fakeLayerRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.layers)
}

// flakyMoveStore fails the failAt-th Move call.
type flakyMoveStore struct {
	storage.FileStore
	calls  int
	failAt int
}

func (s *flakyMoveStore) Move(ctx context.Context, src, dst string) error {
	s.calls++
	if s.calls == s.failAt {
		return errors.New("store unavailable")
	}
	return s.FileStore.Move(ctx, src, dst)
}

type fakeFacilityRepo struct {
	facilities map[int64]models.Facility
	nextID     uint

	count     int64
	lastFind  repository.FacilityFilter
	lastOff   int
	lastLimit int
	cleared   bool
}

func newFakeFacilityRepo() *fakeFacilityRepo {
	return &fakeFacilityRepo{facilities: make(map[int64]models.Facility)}
}

func (r *fakeFacilityRepo) Find(_ context.Context, f repository.FacilityFilter, offset, limit int) ([]models.Facility, error) {
	r.lastFind, r.lastOff, r.lastLimit = f, offset, limit
	out := []models.Facility{}
	for _, fac := range r.facilities {
		out = append(out, fac)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeFacilityRepo) Count(_ context.Context, _ repository.FacilityFilter) (int64, error) {
	return r.count, nil
}

func (r *fakeFacilityRepo) GetByID(_ context.Context, id uint) (*models.Facility, error) {
	for _, f := range r.facilities {
		if f.ID == id {
			return &f, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeFacilityRepo) CountBy(_ context.Context, column string) ([]repository.ValueCount, error) {
	counts := map[string]int64{}
	for _, f := range r.facilities {
		var v *string
		if column == "district" {
			v = f.District
		} else {
			v = f.Amenity
		}
		if v != nil && *v != "" {
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

func (r *fakeFacilityRepo) Stats(context.Context) (*repository.FacilityStats, error) {
	return &repository.FacilityStats{Total: int64(len(r.facilities))}, nil
}

func (r *fakeFacilityRepo) Upsert(_ context.Context, f *models.Facility) (bool, error) {
	existing, ok := r.facilities[f.OSMID]
	if ok {
		f.ID = existing.ID
	} else {
		r.nextID++
		f.ID = r.nextID
	}
	r.facilities[f.OSMID] = *f
	return !ok, nil
}

func (r *fakeFacilityRepo) DeleteAll(context.Context) (int64, error) {
	n := int64(len(r.facilities))
	r.facilities = make(map[int64]models.Facility)
	r.cleared = true
	return n, nil
}

type fakeUserRepo struct {
	users  map[string]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.Username]; ok {
		return repository.ErrDuplicate
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.Username] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) TouchLastLogin(_ context.Context, id uint, at time.Time) error {
	u, err := r.GetByID(context.Background(), id)
	if err != nil {
		return err
	}
	u.LastLogin = &at
	return nil
}

func readAll(t interface{ Fatal(...any) }, rc io.ReadCloser) string {
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}
