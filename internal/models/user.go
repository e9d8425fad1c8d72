package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
)

// User is keyed by the identity provider's stable subject id, not by a
// generated value. Created on first login; role defaults to student and is
// never changed by the login path.
type User struct {
	ID          string    `gorm:"type:varchar(64);primarykey" json:"id"`
	DisplayName string    `gorm:"type:varchar(255)" json:"display_name"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PhotoURL    string    `gorm:"type:varchar(512)" json:"photo_url"`
	Role        UserRole  `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	TeamID      *string   `gorm:"type:varchar(36);index" json:"team_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
