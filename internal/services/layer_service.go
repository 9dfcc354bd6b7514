package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"geodata-service/internal/extraction"
	"geodata-service/internal/logger"
	"geodata-service/internal/metrics"
	"geodata-service/internal/models"
	"geodata-service/internal/repository"
	"geodata-service/internal/shapefile"
	"geodata-service/internal/storage"
)

const duplicateLayerName = "shapefile layer with this name already exists."

// UploadedFile is one client-supplied bundle component. Field is the form
// field it arrived in and keys validation errors about it.
type UploadedFile struct {
	Field    string
	Filename string
	Content  io.Reader
}

// Bundle groups the components of one shapefile upload. Shp is the main file.
// MainField keys errors about a missing or undecodable main file when Shp
// carries no Field of its own; it defaults to "shapefile".
type Bundle struct {
	Shp *UploadedFile
	Shx *UploadedFile
	Dbf *UploadedFile
	Prj *UploadedFile

	MainField string
}

type bundleRole struct {
	field   string
	ext     string
	message string
}

var bundleRoles = [4]bundleRole{
	{"shapefile", ".shp", "Main file must be a .shp file"},
	{"shx_file", ".shx", "Index file must be a .shx file"},
	{"dbf_file", ".dbf", "Attribute file must be a .dbf file"},
	{"prj_file", ".prj", "Projection file must be a .prj file"},
}

func (b *Bundle) components() [4]*UploadedFile {
	return [4]*UploadedFile{b.Shp, b.Shx, b.Dbf, b.Prj}
}

// Empty reports whether no component was supplied.
func (b *Bundle) Empty() bool {
	for _, f := range b.components() {
		if f != nil {
			return false
		}
	}
	return true
}

func (b *Bundle) mainField() string {
	switch {
	case b.Shp != nil && b.Shp.Field != "":
		return b.Shp.Field
	case b.MainField != "":
		return b.MainField
	}
	return bundleRoles[0].field
}

// Validate checks every supplied component against its role by extension only.
func (b *Bundle) Validate() error {
	if b.Shp == nil {
		return invalid(b.mainField(), "No file was submitted.")
	}
	for i, f := range b.components() {
		if f == nil {
			continue
		}
		role := bundleRoles[i]
		if !strings.EqualFold(filepath.Ext(f.Filename), role.ext) {
			field := role.field
			if f.Field != "" {
				field = f.Field
			}
			return invalid(field, role.message)
		}
	}
	return nil
}

// LayerInput carries the fields of a layer create request.
type LayerInput struct {
	Name         string
	Description  *string
	GeometryType string
	Bundle       Bundle
	UploadedBy   *models.User
}

// LayerUpdate carries a layer edit. Nil fields are left unchanged. A non-empty
// Bundle replaces the stored files and re-derives every decoded field.
type LayerUpdate struct {
	Name         *string
	Description  *string
	GeometryType *string
	IsActive     *bool
	Bundle       Bundle
}

// LayerService ingests shapefile bundles and manages the stored layers.
type LayerService struct {
	Repo    repository.LayerRepository
	Store   storage.FileStore
	Metrics *metrics.Metrics

	decode func(shpPath string) (*shapefile.Result, error)
}

// NewLayerService creates a new LayerService with the given repository and file store.
func NewLayerService(repo repository.LayerRepository, store storage.FileStore, m *metrics.Metrics) *LayerService {
	return &LayerService{
		Repo:    repo,
		Store:   store,
		Metrics: m,
		decode:  shapefile.Decode,
	}
}

func validateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return invalid("name", "This field may not be blank.")
	case len(name) > 255:
		return invalid("name", "Ensure this field has no more than 255 characters.")
	}
	return nil
}

func validateGeometryType(t string) error {
	if t != "" && !models.ValidGeometryType(t) {
		return invalid("geometry_type", "\""+t+"\" is not a valid choice.")
	}
	return nil
}

// Create validates the bundle, decodes it and stores the new layer with its files.
func (s *LayerService) Create(ctx context.Context, in LayerInput) (*models.Layer, *metrics.IngestTimings, error) {
	timings := metrics.NewIngestTimings()

	err := validateName(in.Name)
	if err == nil {
		err = validateGeometryType(in.GeometryType)
	}
	if err == nil {
		err = in.Bundle.Validate()
	}
	if err != nil {
		s.finish(ctx, timings, err)
		return nil, timings, err
	}

	layer := &models.Layer{
		ID:           uuid.New(),
		Name:         in.Name,
		Description:  in.Description,
		GeometryType: in.GeometryType,
		IsActive:     true,
	}
	if in.UploadedBy != nil {
		layer.UploadedByID = &in.UploadedBy.ID
		layer.UploadedBy = in.UploadedBy
	}

	err = s.ingest(ctx, layer, in.Bundle, timings, func(tx repository.LayerRepository) error {
		return tx.Create(ctx, layer)
	})
	s.finish(ctx, timings, err)
	if err != nil {
		return nil, timings, err
	}
	return layer, timings, nil
}

// CreateFromArchive extracts a zip bundle, routes its members to bundle roles by
// extension and creates the layer from them.
func (s *LayerService) CreateFromArchive(ctx context.Context, in LayerInput, archiveName, archivePath string) (*models.Layer, *metrics.IngestTimings, error) {
	if !strings.EqualFold(filepath.Ext(archiveName), ".zip") {
		err := invalid("archive", "Archive must be a .zip file")
		s.Metrics.RecordUpload("invalid")
		return nil, nil, err
	}

	files, dir, err := extraction.ExtractArchive(ctx, archivePath)
	if err != nil {
		s.Metrics.RecordUpload("invalid")
		return nil, nil, invalid("archive", "Error reading archive: "+err.Error())
	}
	defer os.RemoveAll(dir)

	var opened []*os.File
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for _, p := range files {
		var slot **UploadedFile
		switch strings.ToLower(filepath.Ext(p)) {
		case ".shp":
			if in.Bundle.Shp != nil {
				s.Metrics.RecordUpload("invalid")
				return nil, nil, invalid("archive", "Archive must contain exactly one .shp file")
			}
			slot = &in.Bundle.Shp
		case ".shx":
			slot = &in.Bundle.Shx
		case ".dbf":
			slot = &in.Bundle.Dbf
		case ".prj":
			slot = &in.Bundle.Prj
		default:
			continue
		}
		if *slot != nil {
			continue
		}
		f, err := os.Open(p)
		if err != nil {
			return nil, nil, errors.Wrap(err, "could not open extracted file")
		}
		opened = append(opened, f)
		*slot = &UploadedFile{Filename: filepath.Base(p), Content: f}
	}

	if in.Bundle.Shp == nil {
		s.Metrics.RecordUpload("invalid")
		return nil, nil, invalid("archive", "Archive must contain exactly one .shp file")
	}
	in.Bundle.MainField = "archive"
	return s.Create(ctx, in)
}

// Update applies a metadata edit and, when a new main file is supplied,
// re-ingests the bundle. Timings are nil for metadata-only edits.
func (s *LayerService) Update(ctx context.Context, id uuid.UUID, in LayerUpdate) (*models.Layer, *metrics.IngestTimings, error) {
	layer, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, notFound(err)
	}

	if in.Name != nil {
		if err := validateName(*in.Name); err != nil {
			return nil, nil, err
		}
		layer.Name = *in.Name
	}
	if in.GeometryType != nil {
		if err := validateGeometryType(*in.GeometryType); err != nil {
			return nil, nil, err
		}
		layer.GeometryType = *in.GeometryType
	}
	if in.Description != nil {
		layer.Description = in.Description
	}
	if in.IsActive != nil {
		layer.IsActive = *in.IsActive
	}

	if in.Bundle.Empty() {
		if err := s.Repo.Update(ctx, layer); err != nil {
			return nil, nil, duplicateName(err)
		}
		return layer, nil, nil
	}

	timings := metrics.NewIngestTimings()
	if in.Bundle.Shp == nil {
		err := invalid(in.Bundle.mainField(), "Companion files can only be replaced together with a new .shp file")
		s.finish(ctx, timings, err)
		return nil, timings, err
	}
	if err := in.Bundle.Validate(); err != nil {
		s.finish(ctx, timings, err)
		return nil, timings, err
	}

	err = s.ingest(ctx, layer, in.Bundle, timings, func(tx repository.LayerRepository) error {
		return tx.Update(ctx, layer)
	})
	s.finish(ctx, timings, err)
	if err != nil {
		return nil, timings, err
	}
	return layer, timings, nil
}

// ingest stages, decodes and promotes the bundle, then runs commit inside a
// transaction. Objects uploaded by this call are removed again if commit fails;
// objects the layer referenced before and no longer does are removed after it.
func (s *LayerService) ingest(ctx context.Context, layer *models.Layer, b Bundle, t *metrics.IngestTimings, commit func(tx repository.LayerRepository) error) error {
	log := logger.FromContext(ctx).With().Str("layer_id", layer.ID.String()).Logger()

	t.Start(metrics.PhaseStage)
	dir, err := os.MkdirTemp("", "layer-stage-*")
	if err != nil {
		return errors.Wrap(err, "could not create staging directory")
	}
	defer os.RemoveAll(dir)

	staged := [4]string{}
	for i, f := range b.components() {
		if f == nil {
			continue
		}
		p := filepath.Join(dir, "bundle"+bundleRoles[i].ext)
		n, err := writeStaged(p, f.Content)
		if err != nil {
			return errors.Wrap(err, "failed to stage uploaded file")
		}
		t.AddBytes(n)
		staged[i] = p
	}
	t.End(metrics.PhaseStage)

	t.Start(metrics.PhaseDecode)
	res, err := s.decode(staged[0])
	if err != nil {
		return invalid(b.mainField(), "Error processing shapefile: "+err.Error())
	}
	data, err := res.GeoJSON()
	if err != nil {
		return errors.Wrap(err, "failed to encode feature collection")
	}
	t.End(metrics.PhaseDecode)
	t.SetFeatureCount(res.FeatureCount())

	previous := layer.FileKeys()
	layer.GeometryType = res.GeometryType
	layer.SRID = res.SRID
	layer.Bounds = res.Bounds
	layer.FeatureCount = res.FeatureCount()
	layer.GeoJSONData = data

	t.Start(metrics.PhasePromote)
	revision := uuid.New()
	keys := [4]*string{}
	var uploaded []string
	for i, f := range b.components() {
		if f == nil {
			continue
		}
		key := models.LayerFileKey(layer.ID, revision, f.Filename)
		if err := s.putStaged(ctx, key, staged[i]); err != nil {
			s.removeAll(ctx, uploaded)
			return errors.Wrapf(err, "failed to store %s", f.Filename)
		}
		uploaded = append(uploaded, key)
		keys[i] = &key
	}
	layer.Shapefile = *keys[0]
	layer.ShxFile, layer.DbfFile, layer.PrjFile = keys[1], keys[2], keys[3]
	t.End(metrics.PhasePromote)

	t.Start(metrics.PhaseCommit)
	if err := s.Repo.Transaction(ctx, commit); err != nil {
		s.removeAll(ctx, uploaded)
		if errors.Is(err, repository.ErrDuplicate) {
			return invalid("name", duplicateLayerName)
		}
		return errors.Wrap(err, "failed to save layer to database")
	}
	t.End(metrics.PhaseCommit)

	for _, key := range previous {
		if err := s.Store.Remove(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to remove superseded layer file")
		}
	}

	log.Info().
		Str("name", layer.Name).
		Str("geometry_type", layer.GeometryType).
		Int("features", layer.FeatureCount).
		Int("srid", layer.SRID).
		Msg("layer ingested")
	return nil
}

func writeStaged(path string, r io.Reader) (int64, error) {
	out, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, r)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func (s *LayerService) putStaged(ctx context.Context, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	stat, err := f.Stat()
	if err != nil {
		return err
	}
	return s.Store.Put(ctx, key, f, stat.Size(), storage.ContentType(filepath.Ext(key)))
}

// removeAll deletes the keys uploaded by a failed ingestion.
func (s *LayerService) removeAll(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.Store.Remove(ctx, key); err != nil {
			logger.FromContext(ctx).Error().Err(err).Str("key", key).Msg("failed to remove orphaned layer file")
		}
	}
}

func (s *LayerService) finish(ctx context.Context, t *metrics.IngestTimings, err error) {
	t.Finalize()
	switch {
	case err == nil:
		s.Metrics.RecordUpload("success")
		s.Metrics.RecordIngest(t)
	case IsValidation(err):
		s.Metrics.RecordUpload("invalid")
	default:
		s.Metrics.RecordUpload("error")
		logger.FromContext(ctx).Error().Err(err).Msg("layer ingestion failed")
	}
}

func duplicateName(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return invalid("name", duplicateLayerName)
	}
	return notFound(err)
}

// Get returns one layer.
func (s *LayerService) Get(ctx context.Context, id uuid.UUID) (*models.Layer, error) {
	layer, err := s.Repo.GetByID(ctx, id)
	return layer, notFound(err)
}

// List returns layers newest first, optionally only the active ones.
func (s *LayerService) List(ctx context.Context, activeOnly bool) ([]models.Layer, error) {
	return s.Repo.List(ctx, activeOnly)
}

// ToggleActive flips the active flag and returns the updated layer.
func (s *LayerService) ToggleActive(ctx context.Context, id uuid.UUID) (*models.Layer, error) {
	layer, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	layer.IsActive = !layer.IsActive
	if err := s.Repo.Update(ctx, layer); err != nil {
		return nil, err
	}
	return layer, nil
}

// Delete removes the layer row and its stored files. The files are parked
// under the trash prefix inside the row deletion; a failed move or commit puts
// every parked file back, and the trash is purged only after commit.
func (s *LayerService) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx).With().Str("layer_id", id.String()).Logger()

	var parked []string
	err := s.Repo.Transaction(ctx, func(tx repository.LayerRepository) error {
		layer, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(ctx, id); err != nil {
			return err
		}
		for _, key := range layer.FileKeys() {
			err := s.Store.Move(ctx, key, models.TrashKey(key))
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			if err != nil {
				return errors.Wrapf(err, "failed to remove %s", key)
			}
			parked = append(parked, key)
		}
		return nil
	})
	if err != nil {
		for _, key := range parked {
			if rerr := s.Store.Move(ctx, models.TrashKey(key), key); rerr != nil {
				log.Error().Err(rerr).Str("key", key).Msg("failed to restore layer file")
			}
		}
		return notFound(err)
	}

	for _, key := range parked {
		if err := s.Store.Remove(ctx, models.TrashKey(key)); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to purge deleted layer file")
		}
	}
	log.Info().Msg("layer deleted")
	return nil
}

// LayerFile is an open stored component ready to be streamed.
type LayerFile struct {
	Filename string
	Size     int64
	Body     io.ReadCloser
}

// Download opens one stored component ("shp", "shx", "dbf" or "prj") of a layer.
func (s *LayerService) Download(ctx context.Context, id uuid.UUID, component string) (*LayerFile, error) {
	layer, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	key, ok := layer.FileKey(component)
	if !ok {
		return nil, ErrNotFound
	}
	body, size, err := s.Store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to open layer file")
	}
	return &LayerFile{Filename: filepath.Base(key), Size: size, Body: body}, nil
}
