package dto

import (
	"github.com/buildseason/roadmap-api/internal/models"
)

// TeamMemberDTO is the denormalized member stub shown in the admin console
// and in assignment dropdowns.
type TeamMemberDTO struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Members []TeamMemberDTO `json:"members"`
}

// ToTeamMemberDTO converts a member stub to DTO
func ToTeamMemberDTO(stub models.TeamMember) TeamMemberDTO {
	return TeamMemberDTO{
		UID:   stub.UserID,
		Email: stub.Email,
	}
}

// ToTeamDTO converts a Team model to TeamDTO
func ToTeamDTO(team models.Team) TeamDTO {
	members := make([]TeamMemberDTO, len(team.Members))
	for i, stub := range team.Members {
		members[i] = ToTeamMemberDTO(stub)
	}
	return TeamDTO{
		ID:      team.ID,
		Name:    team.Name,
		Members: members,
	}
}
