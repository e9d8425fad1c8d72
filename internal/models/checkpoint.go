package models

import (
	"time"

	"gorm.io/datatypes"
)

// Resource is a labeled link attached to a checkpoint (build guide pages,
// videos, repos).
type Resource struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Checkpoint is one stage in the master task catalog. Rows are written once
// by seeding and read-only afterwards; rendering order is OrderIndex order.
type Checkpoint struct {
	ID          string                        `gorm:"type:varchar(36);primarykey" json:"id"`
	OrderIndex  int                           `gorm:"uniqueIndex;not null" json:"order_index"`
	Title       string                        `gorm:"type:varchar(255);not null" json:"title"`
	Subtitle    string                        `gorm:"type:varchar(255)" json:"subtitle"`
	Description string                        `gorm:"type:text" json:"description"`
	Color       string                        `gorm:"type:varchar(20)" json:"color"`
	SubTasks    datatypes.JSONSlice[string]   `json:"sub_tasks"`
	Resources   datatypes.JSONSlice[Resource] `json:"resources"`
	// HasRoles marks the build stages that carry named role assignments
	// (lead/support builder and cutter).
	HasRoles  bool      `json:"has_roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
