package repository

import (
	"github.com/buildseason/roadmap-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProgressRepository is a GORM implementation of ProgressRepository
type GormProgressRepository struct {
	db *gorm.DB
}

// NewProgressRepository creates a new ProgressRepository
func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &GormProgressRepository{db: db}
}

// FindByID finds a record by its "<teamID>_<checkpointID>" key
func (r *GormProgressRepository) FindByID(id string) (*models.ProgressRecord, error) {
	var record models.ProgressRecord
	if err := r.db.First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Save upserts the full record under its key. The caller is responsible for
// having merged the patch into a loaded record first; at this layer the write
// is a whole-document replace, which is what makes concurrent saves
// last-writer-wins.
func (r *GormProgressRepository) Save(record *models.ProgressRecord) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(record).Error
}

// ListByTeam returns every record whose team field matches. This is a query
// on the indexed team column, so cost scales with the checkpoints the team
// has touched rather than with the catalog.
func (r *GormProgressRepository) ListByTeam(teamID string) ([]models.ProgressRecord, error) {
	var records []models.ProgressRecord
	if err := r.db.Where("team_id = ?", teamID).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
