package repository

import (
	"github.com/buildseason/roadmap-api/internal/models"
	"github.com/buildseason/roadmap-api/internal/utils"
)

// CheckpointRepository defines the interface for master catalog data access
type CheckpointRepository interface {
	// Count returns the number of catalog entries
	Count() (int64, error)

	// CreateAll inserts catalog entries
	CreateAll(checkpoints []models.Checkpoint) error

	// ListOrdered returns every entry sorted ascending by order index
	ListOrdered() ([]models.Checkpoint, error)

	// FindByID finds a checkpoint by ID
	FindByID(id string) (*models.Checkpoint, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by exact email match
	FindByEmail(email string) (*models.User, error)

	// SetTeam points a user at a team; nil clears the reference
	SetTeam(userID string, teamID *string) error
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// Create creates a new team
	Create(team *models.Team) error

	// FindByID finds a team by ID
	FindByID(id string) (*models.Team, error)

	// List returns all teams
	List() ([]models.Team, error)

	// ListPage returns one page of teams plus the total count
	ListPage(params utils.PaginationParams) ([]models.Team, int64, error)

	// Delete removes the team row and its member stubs
	Delete(id string) error

	// AddMemberStub appends a member stub to the team's set
	AddMemberStub(stub *models.TeamMember) error

	// RemoveMemberStub removes the exact member stub
	RemoveMemberStub(teamID, userID string) error

	// ListMemberStubs returns the team's member stubs, empty if team unknown
	ListMemberStubs(teamID string) ([]models.TeamMember, error)
}

// ProgressRepository defines the interface for team progress data access
type ProgressRepository interface {
	// FindByID finds a record by its "<teamID>_<checkpointID>" key
	FindByID(id string) (*models.ProgressRecord, error)

	// Save upserts the full record under its key
	Save(record *models.ProgressRecord) error

	// ListByTeam returns every record whose team field matches
	ListByTeam(teamID string) ([]models.ProgressRecord, error)
}
