package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/buildseason/roadmap-api/internal/constants"
	"github.com/buildseason/roadmap-api/internal/metrics"
	"github.com/buildseason/roadmap-api/internal/models"
	"github.com/buildseason/roadmap-api/internal/repository"
	"gorm.io/gorm"
)

// ProgressPatch carries the fields of a save. Nil fields are absent and leave
// the stored value untouched; a non-nil map replaces its stored map wholesale.
// ClearDueDate distinguishes "due_date": null from an absent due_date.
type ProgressPatch struct {
	Status       *string
	DueDate      *string
	ClearDueDate bool
	Assignments  models.AssigneeSets
	Completions  models.CompletionFlags
	Roles        models.RoleAssignments
}

// ProgressService owns the per-(team, checkpoint) merge model.
type ProgressService struct {
	progressRepo repository.ProgressRepository
}

// NewProgressService creates a new ProgressService.
func NewProgressService(progressRepo repository.ProgressRepository) *ProgressService {
	return &ProgressService{
		progressRepo: progressRepo,
	}
}

// Save merge-writes the patch into the record keyed by (team, checkpoint),
// creating it on first save, and stamps a new last-updated time. Fields the
// patch does not carry keep their stored values.
func (s *ProgressService) Save(teamID, checkpointID string, patch ProgressPatch) (*models.ProgressRecord, error) {
	id := models.ProgressRecordID(teamID, checkpointID)

	record, err := s.progressRepo.FindByID(id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.ObserveProgressOp("save", err)
			return nil, fmt.Errorf("failed to load progress record: %w", err)
		}
		record = &models.ProgressRecord{
			ID:           id,
			TeamID:       teamID,
			CheckpointID: checkpointID,
			Status:       constants.StatusNotStarted,
		}
	}

	if patch.Status != nil {
		record.Status = *patch.Status
	}
	if patch.ClearDueDate {
		record.DueDate = nil
	} else if patch.DueDate != nil {
		record.DueDate = patch.DueDate
	}
	if patch.Assignments != nil {
		record.Assignments = patch.Assignments.Normalized()
	}
	if patch.Completions != nil {
		record.Completions = patch.Completions
	}
	if patch.Roles != nil {
		record.Roles = patch.Roles
	}
	record.LastUpdated = time.Now()

	err = s.progressRepo.Save(record)
	metrics.ObserveProgressOp("save", err)
	if err != nil {
		return nil, fmt.Errorf("failed to save progress record: %w", err)
	}
	return record, nil
}

// LoadForTeam returns the team's progress as a checkpoint-id keyed map, by
// querying records on the team field.
func (s *ProgressService) LoadForTeam(teamID string) (map[string]models.ProgressRecord, error) {
	records, err := s.progressRepo.ListByTeam(teamID)
	metrics.ObserveProgressOp("load", err)
	if err != nil {
		return nil, fmt.Errorf("failed to load team progress: %w", err)
	}

	progress := make(map[string]models.ProgressRecord, len(records))
	for _, record := range records {
		progress[record.CheckpointID] = record
	}
	return progress, nil
}

// Get returns the record for one (team, checkpoint) pair, or nil when the
// pair has never been saved.
func (s *ProgressService) Get(teamID, checkpointID string) (*models.ProgressRecord, error) {
	record, err := s.progressRepo.FindByID(models.ProgressRecordID(teamID, checkpointID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load progress record: %w", err)
	}
	return record, nil
}
