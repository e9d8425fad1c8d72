package repository

import (
	"github.com/buildseason/roadmap-api/internal/database"
	"github.com/buildseason/roadmap-api/internal/models"
	"github.com/buildseason/roadmap-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// Create creates a new team
func (r *GormTeamRepository) Create(team *models.Team) error {
	return r.db.Create(team).Error
}

// FindByID finds a team by ID
func (r *GormTeamRepository) FindByID(id string) (*models.Team, error) {
	var team models.Team
	if err := r.db.First(&team, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// List returns all teams
func (r *GormTeamRepository) List() ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.Preload("Members").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// ListPage returns one page of teams plus the total count
func (r *GormTeamRepository) ListPage(params utils.PaginationParams) ([]models.Team, int64, error) {
	var total int64
	if err := r.db.Model(&models.Team{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var teams []models.Team
	if err := r.db.Preload("Members").
		Scopes(database.Paginate(params)).
		Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

// Delete removes the team row and its member stubs. Progress records keyed by
// the team are intentionally left behind; they become unreachable but must not
// block future lookups.
func (r *GormTeamRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Team{}, "id = ?", id).Error
	})
}

// AddMemberStub appends a member stub to the team's set. Re-adding an
// existing (team, user) pair is a no-op, like a set insert.
func (r *GormTeamRepository) AddMemberStub(stub *models.TeamMember) error {
	return r.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(stub).Error
}

// RemoveMemberStub removes the exact member stub
func (r *GormTeamRepository) RemoveMemberStub(teamID, userID string) error {
	return r.db.Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&models.TeamMember{}).Error
}

// ListMemberStubs returns the team's member stubs, empty if team unknown
func (r *GormTeamRepository) ListMemberStubs(teamID string) ([]models.TeamMember, error) {
	var stubs []models.TeamMember
	if err := r.db.Where("team_id = ?", teamID).Find(&stubs).Error; err != nil {
		return nil, err
	}
	return stubs, nil
}
