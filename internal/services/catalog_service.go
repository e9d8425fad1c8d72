package services

import (
	"errors"
	"fmt"

	"github.com/buildseason/roadmap-api/internal/models"
	"github.com/buildseason/roadmap-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrCheckpointNotFound = errors.New("checkpoint not found")
)

// CatalogService seeds and serves the master checkpoint list.
type CatalogService struct {
	checkpointRepo repository.CheckpointRepository
	logger         *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(checkpointRepo repository.CheckpointRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		checkpointRepo: checkpointRepo,
		logger:         logger,
	}
}

// Seed writes the master list to the catalog, assigning order index by list
// position. It only runs against an empty catalog: once any entry exists,
// later calls are no-ops even if the static list has since grown. A length
// mismatch against an already-seeded catalog is logged but not reconciled.
func (s *CatalogService) Seed(masterList []models.Checkpoint) error {
	count, err := s.checkpointRepo.Count()
	if err != nil {
		return fmt.Errorf("failed to count catalog entries: %w", err)
	}

	if count > 0 {
		if count != int64(len(masterList)) {
			s.logger.Warn("catalog already seeded; static list has drifted",
				zap.Int64("stored", count),
				zap.Int("static", len(masterList)),
			)
		}
		return nil
	}

	checkpoints := make([]models.Checkpoint, len(masterList))
	for i, entry := range masterList {
		entry.ID = uuid.NewString()
		entry.OrderIndex = i
		checkpoints[i] = entry
	}

	if err := s.checkpointRepo.CreateAll(checkpoints); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	s.logger.Info("seeded master checkpoint catalog", zap.Int("count", len(checkpoints)))
	return nil
}

// GetAll returns every catalog entry sorted ascending by order index. Storage
// failures are returned to the caller, not swallowed.
func (s *CatalogService) GetAll() ([]models.Checkpoint, error) {
	checkpoints, err := s.checkpointRepo.ListOrdered()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return checkpoints, nil
}

// Get returns one checkpoint by id.
func (s *CatalogService) Get(id string) (*models.Checkpoint, error) {
	checkpoint, err := s.checkpointRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCheckpointNotFound
		}
		return nil, fmt.Errorf("failed to find checkpoint: %w", err)
	}
	return checkpoint, nil
}
