package dto

import (
	"github.com/buildseason/roadmap-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          string          `json:"id"`
	DisplayName string          `json:"display_name"`
	Email       string          `json:"email"`
	PhotoURL    string          `json:"photo_url,omitempty"`
	Role        models.UserRole `json:"role"`
	TeamID      *string         `json:"team_id"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		PhotoURL:    user.PhotoURL,
		Role:        user.Role,
		TeamID:      user.TeamID,
	}
}
