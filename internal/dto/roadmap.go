package dto

import (
	"time"

	"github.com/buildseason/roadmap-api/internal/constants"
	"github.com/buildseason/roadmap-api/internal/models"
)

// CheckpointDTO represents a catalog entry in API responses
type CheckpointDTO struct {
	ID          string            `json:"id"`
	OrderIndex  int               `json:"order_index"`
	Title       string            `json:"title"`
	Subtitle    string            `json:"subtitle"`
	Description string            `json:"description"`
	Color       string            `json:"color"`
	SubTasks    []string          `json:"sub_tasks"`
	Resources   []models.Resource `json:"resources"`
	HasRoles    bool              `json:"has_roles"`
}

// ProgressDTO represents the stored progress for one checkpoint. A checkpoint
// with no record yet renders as "Not Started" with empty maps.
type ProgressDTO struct {
	Status      string                 `json:"status"`
	DueDate     *string                `json:"due_date"`
	Assignments models.AssigneeSets    `json:"task_assignments"`
	Completions models.CompletionFlags `json:"task_completions"`
	Roles       models.RoleAssignments `json:"roles"`
	LastUpdated *time.Time             `json:"last_updated,omitempty"`
}

// TimelineItemDTO is one roadmap entry merged with its team progress.
type TimelineItemDTO struct {
	Checkpoint CheckpointDTO `json:"checkpoint"`
	Progress   ProgressDTO   `json:"progress"`
}

// TimelineDTO is the timeline page payload.
type TimelineDTO struct {
	TeamID *string           `json:"team_id"`
	Items  []TimelineItemDTO `json:"items"`
}

// CheckpointDetailDTO is the modal-open payload: the checkpoint, its
// progress, and the team members available to the assignment editor. CanEdit
// is false for users without a team and when membership could not be loaded;
// the modal then renders read-only.
type CheckpointDetailDTO struct {
	Checkpoint CheckpointDTO   `json:"checkpoint"`
	Progress   ProgressDTO     `json:"progress"`
	Members    []TeamMemberDTO `json:"members"`
	CanEdit    bool            `json:"can_edit"`
}

// ToCheckpointDTO converts a Checkpoint model to CheckpointDTO
func ToCheckpointDTO(checkpoint models.Checkpoint) CheckpointDTO {
	return CheckpointDTO{
		ID:          checkpoint.ID,
		OrderIndex:  checkpoint.OrderIndex,
		Title:       checkpoint.Title,
		Subtitle:    checkpoint.Subtitle,
		Description: checkpoint.Description,
		Color:       checkpoint.Color,
		SubTasks:    checkpoint.SubTasks,
		Resources:   checkpoint.Resources,
		HasRoles:    checkpoint.HasRoles,
	}
}

// ToProgressDTO converts a ProgressRecord to ProgressDTO; nil yields the
// "Not Started" default.
func ToProgressDTO(record *models.ProgressRecord) ProgressDTO {
	if record == nil {
		return ProgressDTO{
			Status:      constants.StatusNotStarted,
			Assignments: models.AssigneeSets{},
			Completions: models.CompletionFlags{},
			Roles:       models.RoleAssignments{},
		}
	}

	dto := ProgressDTO{
		Status:      record.Status,
		DueDate:     record.DueDate,
		Assignments: record.Assignments,
		Completions: record.Completions,
		Roles:       record.Roles,
	}
	if dto.Assignments == nil {
		dto.Assignments = models.AssigneeSets{}
	}
	if dto.Completions == nil {
		dto.Completions = models.CompletionFlags{}
	}
	if dto.Roles == nil {
		dto.Roles = models.RoleAssignments{}
	}
	if !record.LastUpdated.IsZero() {
		t := record.LastUpdated
		dto.LastUpdated = &t
	}
	return dto
}
