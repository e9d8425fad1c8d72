package models

import (
	"time"
)

// ProgressRecord is the per-(team, checkpoint) mutable state. Exactly one row
// exists per pair; the primary key is the concatenated pair so a save is a
// single-document merge-write.
//
// The three map fields are written at whole-field granularity: a save that
// includes task_assignments replaces the entire map. Two clients editing the
// same checkpoint concurrently race last-writer-wins on those fields; that is
// an accepted limit of the single-team classroom scale this serves.
type ProgressRecord struct {
	ID           string          `gorm:"type:varchar(110);primarykey" json:"id"`
	TeamID       string          `gorm:"type:varchar(36);not null;index" json:"team_id"`
	CheckpointID string          `gorm:"type:varchar(36);not null" json:"checkpoint_id"`
	Status       string          `gorm:"type:varchar(50);not null;default:'Not Started'" json:"status"`
	// DueDate holds the date-input literal ("2006-01-02"). Stored as text,
	// not DATE: drivers scan DATE columns into time.Time and the string
	// form would not survive the round trip.
	DueDate      *string         `gorm:"type:varchar(10)" json:"due_date"`
	Assignments  AssigneeSets    `gorm:"type:jsonb" json:"task_assignments"`
	Completions  CompletionFlags `gorm:"type:jsonb" json:"task_completions"`
	Roles        RoleAssignments `gorm:"type:jsonb" json:"roles"`
	LastUpdated  time.Time       `json:"last_updated"`
}

// ProgressRecordID builds the unique key for a (team, checkpoint) pair.
func ProgressRecordID(teamID, checkpointID string) string {
	return teamID + "_" + checkpointID
}
