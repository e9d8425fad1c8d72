package repository

import (
	"github.com/buildseason/roadmap-api/internal/models"
	"gorm.io/gorm"
)

// GormCheckpointRepository is a GORM implementation of CheckpointRepository
type GormCheckpointRepository struct {
	db *gorm.DB
}

// NewCheckpointRepository creates a new CheckpointRepository
func NewCheckpointRepository(db *gorm.DB) CheckpointRepository {
	return &GormCheckpointRepository{db: db}
}

// Count returns the number of catalog entries
func (r *GormCheckpointRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Checkpoint{}).Count(&count).Error
	return count, err
}

// CreateAll inserts catalog entries
func (r *GormCheckpointRepository) CreateAll(checkpoints []models.Checkpoint) error {
	if len(checkpoints) == 0 {
		return nil
	}
	return r.db.Create(&checkpoints).Error
}

// ListOrdered returns every entry sorted ascending by order index
func (r *GormCheckpointRepository) ListOrdered() ([]models.Checkpoint, error) {
	var checkpoints []models.Checkpoint
	if err := r.db.Order("order_index ASC").Find(&checkpoints).Error; err != nil {
		return nil, err
	}
	return checkpoints, nil
}

// FindByID finds a checkpoint by ID
func (r *GormCheckpointRepository) FindByID(id string) (*models.Checkpoint, error) {
	var checkpoint models.Checkpoint
	if err := r.db.First(&checkpoint, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &checkpoint, nil
}
