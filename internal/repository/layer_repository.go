package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"geodata-service/internal/models"
)

// LayerRepository defines persistence operations for shapefile layers.
type LayerRepository interface {
	Create(ctx context.Context, layer *models.Layer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Layer, error)
	List(ctx context.Context, activeOnly bool) ([]models.Layer, error)
	Update(ctx context.Context, layer *models.Layer) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Transaction runs fn against a repository bound to one database transaction.
	// Returning an error from fn rolls the transaction back.
	Transaction(ctx context.Context, fn func(tx LayerRepository) error) error
}

// LayerRepositoryImpl provides methods to interact with the Layer model in the database.
type LayerRepositoryImpl struct {
	db *gorm.DB
}

// NewLayerRepository creates a new LayerRepositoryImpl with the provided GORM database connection.
func NewLayerRepository(db *gorm.DB) *LayerRepositoryImpl {
	return &LayerRepositoryImpl{db: db}
}

func (r *LayerRepositoryImpl) Create(ctx context.Context, layer *models.Layer) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(layer).Error)
}

func (r *LayerRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Layer, error) {
	var layer models.Layer
	err := r.db.WithContext(ctx).Preload("UploadedBy").First(&layer, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &layer, nil
}

// List returns layers newest first.
func (r *LayerRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]models.Layer, error) {
	var layers []models.Layer
	q := r.db.WithContext(ctx).Preload("UploadedBy")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("created_at DESC").Find(&layers).Error
	return layers, translate(err)
}

func (r *LayerRepositoryImpl) Update(ctx context.Context, layer *models.Layer) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(layer).Error)
}

func (r *LayerRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Layer{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *LayerRepositoryImpl) Transaction(ctx context.Context, fn func(tx LayerRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&LayerRepositoryImpl{db: tx})
	})
}
