package models

import (
	"time"
)

// Team names are intentionally not unique; the admin console allows
// duplicates.
type Team struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Members []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

// TeamMember is the denormalized {email, uid} stub cached per team for quick
// display in the admin console and the assignment dropdowns. The user row
// remains the source of truth for team membership.
type TeamMember struct {
	TeamID    string    `gorm:"type:varchar(36);primarykey" json:"team_id"`
	UserID    string    `gorm:"type:varchar(64);primarykey" json:"uid"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email"`
	CreatedAt time.Time `json:"-"`
}
