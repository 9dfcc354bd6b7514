package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geodata-service/internal/models"
	"geodata-service/internal/storage"
)

const utm36SPRJ = `PROJCS["WGS_1984_UTM_Zone_36S",GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]],PROJECTION["Transverse_Mercator"],UNIT["Meter",1.0]]`

// bundleFiles holds the raw bytes of a shapefile written by go-shp.
type bundleFiles struct {
	shp, shx, dbf []byte
}

type fixturePoint struct {
	x, y float64
	name string
}

func writeFixture(t *testing.T) bundleFiles {
	return writePoints(t,
		fixturePoint{33.78, -13.96, "Area 18"},
		fixturePoint{35.01, -15.79, "Queen Elizabeth"},
	)
}

func writePoints(t *testing.T, points ...fixturePoint) bundleFiles {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "clinics.shp")
	w, err := shp.Create(path, shp.POINT)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{shp.StringField("NAME", 30)}))
	for i, p := range points {
		w.Write(&shp.Point{X: p.x, Y: p.y})
		require.NoError(t, w.WriteAttribute(i, 0, p.name))
	}
	w.Close()

	read := func(ext string) []byte {
		b, err := os.ReadFile(filepath.Join(dir, "clinics"+ext))
		require.NoError(t, err)
		return b
	}
	return bundleFiles{shp: read(".shp"), shx: read(".shx"), dbf: read(".dbf")}
}

func file(name string, content []byte) *UploadedFile {
	return &UploadedFile{Filename: name, Content: bytes.NewReader(content)}
}

func fullBundle(f bundleFiles, base string) Bundle {
	return Bundle{
		Shp: file(base+".shp", f.shp),
		Shx: file(base+".shx", f.shx),
		Dbf: file(base+".dbf", f.dbf),
		Prj: file(base+".prj", []byte(utm36SPRJ)),
	}
}

func newLayerService(t *testing.T) (*LayerService, *fakeLayerRepo, *storage.DiskStore) {
	t.Helper()
	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	repo := newFakeLayerRepo()
	return NewLayerService(repo, store, nil), repo, store
}

func exists(t *testing.T, store storage.FileStore, key string) bool {
	t.Helper()
	ok, err := store.Exists(context.Background(), key)
	require.NoError(t, err)
	return ok
}

// assertStoredAs checks key is a revisioned component key of layer ending in filename.
func assertStoredAs(t *testing.T, layer *models.Layer, key, filename string) {
	t.Helper()
	assert.True(t, strings.HasPrefix(key, "shapefiles/"+layer.ID.String()+"/"), key)
	assert.Equal(t, filename, path.Base(key))
}

func storedBytes(t *testing.T, store storage.FileStore, key string) []byte {
	t.Helper()
	rc, _, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	return []byte(readAll(t, rc))
}

func TestLayerServiceCreate(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newLayerService(t)
	fixture := writeFixture(t)
	admin := &models.User{ID: 1, Username: "admin"}

	layer, timings, err := svc.Create(ctx, LayerInput{
		Name:       "Clinics",
		Bundle:     fullBundle(fixture, "clinics"),
		UploadedBy: admin,
	})
	require.NoError(t, err)

	assert.Equal(t, models.GeometryPoint, layer.GeometryType)
	assert.Equal(t, 32736, layer.SRID)
	assert.Equal(t, 2, layer.FeatureCount)
	assert.True(t, layer.IsActive)
	require.Len(t, layer.Bounds, 4)
	assert.InDelta(t, 33.78, layer.Bounds[0], 1e-9)
	assert.Equal(t, uint(1), *layer.UploadedByID)

	var fc map[string]any
	require.NoError(t, json.Unmarshal(layer.GeoJSONData, &fc))
	assert.Equal(t, "FeatureCollection", fc["type"])
	assert.Len(t, fc["features"], 2)

	assertStoredAs(t, layer, layer.Shapefile, "clinics.shp")
	for _, key := range layer.FileKeys() {
		assert.True(t, exists(t, store, key), key)
	}
	assert.Len(t, layer.FileKeys(), 4)
	assert.Equal(t, 1, repo.count())

	headers := timings.GetHeaders()
	for _, h := range []string{"X-Latency-Stage-Ms", "X-Latency-Decode-Ms", "X-Latency-Promote-Ms", "X-Latency-Commit-Ms"} {
		assert.Contains(t, headers, h)
	}
	assert.Equal(t, "2", headers["X-Ingest-Features"])
}

func TestLayerServiceCreateValidation(t *testing.T) {
	fixture := writeFixture(t)

	tests := []struct {
		name    string
		input   LayerInput
		field   string
		message string
	}{
		{
			name:    "wrong main extension",
			input:   LayerInput{Name: "x", Bundle: Bundle{Shp: file("clinics.txt", fixture.shp)}},
			field:   "shapefile",
			message: "Main file must be a .shp file",
		},
		{
			name: "wrong index extension",
			input: LayerInput{Name: "x", Bundle: Bundle{
				Shp: file("clinics.shp", fixture.shp),
				Shx: file("clinics.dbf", fixture.dbf),
			}},
			field:   "shx_file",
			message: "Index file must be a .shx file",
		},
		{
			name: "wrong projection extension",
			input: LayerInput{Name: "x", Bundle: Bundle{
				Shp: file("clinics.SHP", fixture.shp),
				Prj: file("clinics.txt", []byte(utm36SPRJ)),
			}},
			field:   "prj_file",
			message: "Projection file must be a .prj file",
		},
		{
			name:  "missing main file",
			input: LayerInput{Name: "x"},
			field: "shapefile",
		},
		{
			name:  "blank name",
			input: LayerInput{Name: "  ", Bundle: Bundle{Shp: file("clinics.shp", fixture.shp)}},
			field: "name",
		},
		{
			name:  "unknown geometry type",
			input: LayerInput{Name: "x", GeometryType: "Circle", Bundle: Bundle{Shp: file("clinics.shp", fixture.shp)}},
			field: "geometry_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, store := newLayerService(t)
			_, _, err := svc.Create(context.Background(), tt.input)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			if tt.message != "" {
				assert.Equal(t, tt.message, ve.Message)
			}
			assert.Equal(t, 0, repo.count())
			entries, _ := os.ReadDir(filepath.Join(store.Root(), "shapefiles"))
			assert.Empty(t, entries)
		})
	}
}

func TestLayerServiceCreateDecodeFailure(t *testing.T) {
	svc, repo, store := newLayerService(t)

	_, _, err := svc.Create(context.Background(), LayerInput{
		Name:   "Broken",
		Bundle: Bundle{Shp: file("broken.shp", []byte("definitely not a shapefile"))},
	})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "shapefile", ve.Field)
	assert.Contains(t, ve.Message, "Error processing shapefile: ")
	assert.Equal(t, 0, repo.count())
	_, statErr := os.Stat(filepath.Join(store.Root(), "shapefiles"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLayerServiceDuplicateNameRemovesUploadedFiles(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newLayerService(t)
	fixture := writeFixture(t)

	_, _, err := svc.Create(ctx, LayerInput{Name: "Clinics", Bundle: fullBundle(fixture, "clinics")})
	require.NoError(t, err)

	_, _, err = svc.Create(ctx, LayerInput{Name: "Clinics", Bundle: fullBundle(fixture, "clinics")})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)
	assert.Equal(t, "shapefile layer with this name already exists.", ve.Message)

	assert.Equal(t, 1, repo.count())
	entries, err := os.ReadDir(filepath.Join(store.Root(), "shapefiles"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLayerServiceCommitFailureRemovesUploadedFiles(t *testing.T) {
	svc, repo, store := newLayerService(t)
	repo.failCommit = errors.New("connection reset")

	_, _, err := svc.Create(context.Background(), LayerInput{Name: "Clinics", Bundle: fullBundle(writeFixture(t), "clinics")})
	require.Error(t, err)
	assert.False(t, IsValidation(err))

	assert.Equal(t, 0, repo.count())
	entries, _ := os.ReadDir(filepath.Join(store.Root(), "shapefiles"))
	assert.Empty(t, entries)
}

func TestLayerServiceReuploadDropsCompanions(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newLayerService(t)
	fixture := writeFixture(t)

	layer, _, err := svc.Create(ctx, LayerInput{Name: "Clinics", Bundle: fullBundle(fixture, "clinics")})
	require.NoError(t, err)
	oldKeys := layer.FileKeys()

	updated, timings, err := svc.Update(ctx, layer.ID, LayerUpdate{
		Bundle: Bundle{
			Shp: file("clinics_v2.shp", fixture.shp),
			Shx: file("clinics_v2.shx", fixture.shx),
		},
	})
	require.NoError(t, err)
	require.NotNil(t, timings)

	assertStoredAs(t, updated, updated.Shapefile, "clinics_v2.shp")
	assert.Nil(t, updated.DbfFile)
	assert.Nil(t, updated.PrjFile)
	assert.Equal(t, 4326, updated.SRID)
	assert.Equal(t, 2, updated.FeatureCount)

	for _, key := range oldKeys {
		assert.False(t, exists(t, store, key), key)
	}
	for _, key := range updated.FileKeys() {
		assert.True(t, exists(t, store, key), key)
	}
}

func TestLayerServiceUpdateMetadataOnly(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLayerService(t)
	layer, _, err := svc.Create(ctx, LayerInput{Name: "Clinics", Bundle: fullBundle(writeFixture(t), "clinics")})
	require.NoError(t, err)

	name, desc, active := "Health clinics", "Malawi clinics", false
	updated, timings, err := svc.Update(ctx, layer.ID, LayerUpdate{Name: &name, Description: &desc, IsActive: &active})
	require.NoError(t, err)
	assert.Nil(t, timings)
	assert.Equal(t, "Health clinics", updated.Name)
	assert.Equal(t, "Malawi clinics", *updated.Description)
	assert.False(t, updated.IsActive)
	assert.Equal(t, layer.Shapefile, updated.Shapefile)
	assert.Equal(t, layer.FeatureCount, updated.FeatureCount)

	_, _, err = svc.Update(ctx, layer.ID, LayerUpdate{Bundle: Bundle{Prj: file("new.prj", []byte(utm36SPRJ))}})
	assert.True(t, IsValidation(err))
}

func TestLayerServiceUpdateMissing(t *testing.T) {
	svc, _, _ := newLayerService(t)
	name := "x"
	_, _, err := svc.Update(context.Background(), uuid.New(), LayerUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLayerServiceToggleActive(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLayerService(t)
	layer, _, err := svc.Create(ctx, LayerInput{Name: "Clinics", Bundle: fullBundle(writeFixture(t), "clinics")})
	require.NoError(t, err)

	toggled, err := svc.ToggleActive(ctx, layer.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	toggled, err = svc.ToggleActive(ctx, layer.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)
}

func TestLayerServiceDelete(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newLayerService(t)
	layer, _, err := svc.Create(ctx, LayerInput{Name: "Clinics", Bundle: fullBundle(writeFixture(t), "clinics")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, layer.ID))
	assert.Equal(t, 0, repo.count())
	for _, key := range layer.FileKeys() {
		assert.False(t, exists(t, store, key), key)
	}

	assert.ErrorIs(t, svc.Delete(ctx, layer.ID), ErrNotFound)
}

func TestLayerServiceDeleteRestoresFilesWhenAMoveFails(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newLayerService(t)
	layer, _, err := svc.Create(ctx, LayerInput{Name: "Clinics", Bundle: fullBundle(writeFixture(t), "clinics")})
	require.NoError(t, err)
	shpBytes := storedBytes(t, store, layer.Shapefile)

	svc.Store = &flakyMoveStore{FileStore: store, failAt: 2}
	require.Error(t, svc.Delete(ctx, layer.ID))

	assert.Equal(t, 1, repo.count())
	for _, key := range layer.FileKeys() {
		assert.True(t, exists(t, store, key), key)
		assert.False(t, exists(t, store, models.TrashKey(key)), key)
	}
	assert.Equal(t, shpBytes, storedBytes(t, store, layer.Shapefile))

	svc.Store = store
	require.NoError(t, svc.Delete(ctx, layer.ID))
	_, statErr := os.Stat(filepath.Join(store.Root(), "trash"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLayerServiceDeleteCommitFailureRestoresFiles(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newLayerService(t)
	layer, _, err := svc.Create(ctx, LayerInput{Name: "Clinics", Bundle: fullBundle(writeFixture(t), "clinics")})
	require.NoError(t, err)

	repo.failCommit = errors.New("connection reset")
	require.Error(t, svc.Delete(ctx, layer.ID))
	assert.Equal(t, 1, repo.count())
	for _, key := range layer.FileKeys() {
		assert.True(t, exists(t, store, key), key)
	}
}

func TestLayerServiceFailedReuploadKeepsStoredFiles(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newLayerService(t)
	original := writeFixture(t)
	replacement := writePoints(t,
		fixturePoint{33.70, -13.90, "A"},
		fixturePoint{33.71, -13.91, "B"},
		fixturePoint{33.72, -13.92, "C"},
		fixturePoint{33.73, -13.93, "D"},
		fixturePoint{33.74, -13.94, "E"},
	)

	roads, _, err := svc.Create(ctx, LayerInput{Name: "Roads", Bundle: Bundle{Shp: file("roads.shp", original.shp)}})
	require.NoError(t, err)
	_, _, err = svc.Create(ctx, LayerInput{Name: "Other", Bundle: Bundle{Shp: file("other.shp", original.shp)}})
	require.NoError(t, err)

	other := "Other"
	_, _, err = svc.Update(ctx, roads.ID, LayerUpdate{Name: &other, Bundle: Bundle{Shp: file("roads.shp", replacement.shp)}})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)

	row, err := svc.Get(ctx, roads.ID)
	require.NoError(t, err)
	assert.Equal(t, "Roads", row.Name)
	assert.Equal(t, roads.Shapefile, row.Shapefile)
	assert.Equal(t, 2, row.FeatureCount)
	assert.Equal(t, original.shp, storedBytes(t, store, row.Shapefile))

	entries, err := os.ReadDir(filepath.Join(store.Root(), "shapefiles", roads.ID.String()))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	updated, _, err := svc.Update(ctx, roads.ID, LayerUpdate{Bundle: Bundle{Shp: file("roads.shp", replacement.shp)}})
	require.NoError(t, err)
	assert.NotEqual(t, roads.Shapefile, updated.Shapefile)
	assert.Equal(t, 5, updated.FeatureCount)
	assert.Equal(t, replacement.shp, storedBytes(t, store, updated.Shapefile))
	assert.False(t, exists(t, store, roads.Shapefile))
}

func TestLayerServiceDownload(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLayerService(t)
	fixture := writeFixture(t)
	layer, _, err := svc.Create(ctx, LayerInput{Name: "Clinics", Bundle: Bundle{
		Shp: file("clinics.shp", fixture.shp),
		Prj: file("clinics.prj", []byte(utm36SPRJ)),
	}})
	require.NoError(t, err)

	f, err := svc.Download(ctx, layer.ID, "prj")
	require.NoError(t, err)
	assert.Equal(t, "clinics.prj", f.Filename)
	assert.Equal(t, int64(len(utm36SPRJ)), f.Size)
	assert.Equal(t, utm36SPRJ, readAll(t, f.Body))

	_, err = svc.Download(ctx, layer.ID, "dbf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func writeZip(t *testing.T, members map[string][]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundle.zip")
	out, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(out)
	for name, content := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())
	return path
}

func TestLayerServiceCreateFromArchive(t *testing.T) {
	ctx := context.Background()
	fixture := writeFixture(t)

	t.Run("routes members by extension", func(t *testing.T) {
		svc, _, store := newLayerService(t)
		archive := writeZip(t, map[string][]byte{
			"clinics/clinics.shp":            fixture.shp,
			"clinics/clinics.shx":            fixture.shx,
			"clinics/clinics.dbf":            fixture.dbf,
			"clinics/clinics.cpg":            []byte("UTF-8"),
			"__MACOSX/clinics/._clinics.shp": []byte("fork"),
		})

		layer, _, err := svc.CreateFromArchive(ctx, LayerInput{Name: "Zipped"}, "clinics.zip", archive)
		require.NoError(t, err)
		assertStoredAs(t, layer, layer.Shapefile, "clinics.shp")
		assert.NotNil(t, layer.ShxFile)
		assert.NotNil(t, layer.DbfFile)
		assert.Nil(t, layer.PrjFile)
		assert.Equal(t, 2, layer.FeatureCount)
		assert.True(t, exists(t, store, *layer.DbfFile))
	})

	t.Run("rejects two main files", func(t *testing.T) {
		svc, repo, _ := newLayerService(t)
		archive := writeZip(t, map[string][]byte{
			"a.shp": fixture.shp,
			"b.shp": fixture.shp,
		})
		_, _, err := svc.CreateFromArchive(ctx, LayerInput{Name: "Zipped"}, "bundle.zip", archive)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "archive", ve.Field)
		assert.Equal(t, 0, repo.count())
	})

	t.Run("rejects archives without a main file", func(t *testing.T) {
		svc, _, _ := newLayerService(t)
		archive := writeZip(t, map[string][]byte{"readme.txt": []byte("hi")})
		_, _, err := svc.CreateFromArchive(ctx, LayerInput{Name: "Zipped"}, "bundle.zip", archive)
		assert.True(t, IsValidation(err))
	})

	t.Run("rejects non zip uploads", func(t *testing.T) {
		svc, _, _ := newLayerService(t)
		_, _, err := svc.CreateFromArchive(ctx, LayerInput{Name: "Zipped"}, "bundle.rar", "unused")
		assert.True(t, IsValidation(err))
	})
}
