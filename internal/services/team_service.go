package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/buildseason/roadmap-api/internal/models"
	"github.com/buildseason/roadmap-api/internal/repository"
	"github.com/buildseason/roadmap-api/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTeamNotFound    = errors.New("team not found")
	ErrInvalidTeamName = errors.New("team name cannot be empty")
	// ErrStudentNotFound means no user has ever logged in with the given
	// email. Students must sign in once before they can be assigned.
	ErrStudentNotFound = errors.New("student must log in at least once before being added")
)

// TeamService provides the team/user directory the admin console drives.
//
// Adding and removing members is deliberately two independent writes (user
// row, then member stub) with no surrounding transaction, mirroring the
// per-document writes of the store this replaces. A partial failure leaves
// one side stale; every read path tolerates that.
type TeamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
}

// NewTeamService creates a new TeamService.
func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
	}
}

// CreateTeam inserts a new team with an empty member set and returns it.
// Team names are not unique.
func (s *TeamService) CreateTeam(name string) (*models.Team, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidTeamName
	}

	team := &models.Team{
		ID:   uuid.NewString(),
		Name: name,
	}
	if err := s.teamRepo.Create(team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

// ListTeams returns all team records, unordered.
func (s *TeamService) ListTeams() ([]models.Team, error) {
	teams, err := s.teamRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// ListTeamsPage returns one page of teams plus the total count.
func (s *TeamService) ListTeamsPage(params utils.PaginationParams) ([]models.Team, int64, error) {
	teams, total, err := s.teamRepo.ListPage(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, total, nil
}

// AddMember looks up a user by exact email and attaches them to the team:
// first the user's team reference, then the team's member stub. Fails with
// ErrStudentNotFound before any write when the email has never logged in.
// Adding someone already on the team succeeds without changing anything.
func (s *TeamService) AddMember(teamID, email string) (*models.TeamMember, error) {
	if _, err := s.teamRepo.FindByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	if err := s.userRepo.SetTeam(user.ID, &teamID); err != nil {
		return nil, fmt.Errorf("failed to set user's team: %w", err)
	}

	stub := &models.TeamMember{
		TeamID: teamID,
		UserID: user.ID,
		Email:  user.Email,
	}
	if err := s.teamRepo.AddMemberStub(stub); err != nil {
		// The user already points at the team; the stub list is stale.
		return nil, fmt.Errorf("failed to add member stub: %w", err)
	}
	return stub, nil
}

// RemoveMember removes the exact member stub from the team and clears the
// user's team reference. Two independent writes, same caveat as AddMember.
func (s *TeamService) RemoveMember(teamID, userID string) error {
	if err := s.teamRepo.RemoveMemberStub(teamID, userID); err != nil {
		return fmt.Errorf("failed to remove member stub: %w", err)
	}
	if err := s.userRepo.SetTeam(userID, nil); err != nil {
		return fmt.Errorf("failed to clear user's team: %w", err)
	}
	return nil
}

// DeleteTeam clears every member's team reference, then deletes the team.
// Progress records for the team are not purged; they become unreachable.
// If clearing fails partway, some users keep a reference to a team that no
// longer resolves, which readers must treat as "no team".
func (s *TeamService) DeleteTeam(teamID string) error {
	if _, err := s.teamRepo.FindByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to find team: %w", err)
	}

	members, err := s.teamRepo.ListMemberStubs(teamID)
	if err != nil {
		return fmt.Errorf("failed to list team members: %w", err)
	}
	for _, m := range members {
		if err := s.userRepo.SetTeam(m.UserID, nil); err != nil {
			return fmt.Errorf("failed to unassign member %s: %w", m.UserID, err)
		}
	}

	if err := s.teamRepo.Delete(teamID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}

// GetMembers returns the team's member stubs, or an empty set when the team
// is unknown. Unknown teams are not an error here: users can hold a
// reference to a deleted team and the timeline still has to render.
func (s *TeamService) GetMembers(teamID string) ([]models.TeamMember, error) {
	stubs, err := s.teamRepo.ListMemberStubs(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return stubs, nil
}
