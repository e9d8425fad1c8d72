package handlers

import (
	"errors"
	"net/http"

	"github.com/buildseason/roadmap-api/internal/dto"
	apierrors "github.com/buildseason/roadmap-api/internal/errors"
	"github.com/buildseason/roadmap-api/internal/services"
	"github.com/buildseason/roadmap-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves the teacher console: team and roster management plus
// catalog helpers.
type AdminHandler struct {
	teamService    *services.TeamService
	catalogService *services.CatalogService
	aiService      *services.AIService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(teamService *services.TeamService, catalogService *services.CatalogService, aiService *services.AIService) *AdminHandler {
	return &AdminHandler{
		teamService:    teamService,
		catalogService: catalogService,
		aiService:      aiService,
	}
}

// CreateTeam creates a team with an empty roster.
func (h *AdminHandler) CreateTeam(c *gin.Context) {
	type CreateTeamRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.CreateTeam(req.Name)
	if err != nil {
		respondDirectoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamDTO(*team))
}

// ListTeams returns a page of teams with their member stubs.
func (h *AdminHandler) ListTeams(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	teams, total, err := h.teamService.ListTeamsPage(params)
	if err != nil {
		respondDirectoryError(c, err)
		return
	}

	teamDTOs := make([]dto.TeamDTO, len(teams))
	for i, team := range teams {
		teamDTOs[i] = dto.ToTeamDTO(team)
	}

	c.JSON(http.StatusOK, gin.H{
		"teams": teamDTOs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// DeleteTeam unassigns every member and deletes the team.
func (h *AdminHandler) DeleteTeam(c *gin.Context) {
	if err := h.teamService.DeleteTeam(c.Param("id")); err != nil {
		respondDirectoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Team deleted successfully",
	})
}

// ListMembers returns a team's member stubs.
func (h *AdminHandler) ListMembers(c *gin.Context) {
	stubs, err := h.teamService.GetMembers(c.Param("id"))
	if err != nil {
		respondDirectoryError(c, err)
		return
	}

	members := make([]dto.TeamMemberDTO, len(stubs))
	for i, stub := range stubs {
		members[i] = dto.ToTeamMemberDTO(stub)
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// AddMember attaches a student, looked up by exact email, to a team. A
// student who has never logged in cannot be added.
func (h *AdminHandler) AddMember(c *gin.Context) {
	type AddMemberRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	stub, err := h.teamService.AddMember(c.Param("id"), req.Email)
	if err != nil {
		respondDirectoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamMemberDTO(*stub))
}

// RemoveMember detaches a student from a team.
func (h *AdminHandler) RemoveMember(c *gin.Context) {
	if err := h.teamService.RemoveMember(c.Param("id"), c.Param("user_id")); err != nil {
		respondDirectoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

// SuggestSubTasks drafts sub-task names for a checkpoint from its
// description.
func (h *AdminHandler) SuggestSubTasks(c *gin.Context) {
	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
		return
	}

	checkpoint, err := h.catalogService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrCheckpointNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.ServiceUnavailable(c, "Failed to load checkpoint")
		return
	}

	subTasks, err := h.aiService.SuggestSubTasks(c.Request.Context(), checkpoint.Title, checkpoint.Description)
	if err != nil {
		apierrors.InternalError(c, "Failed to generate suggestions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sub_tasks": subTasks})
}

// respondDirectoryError maps directory failures onto the API error taxonomy.
// Anything that is not a known business failure is treated as the store
// being unreachable.
func respondDirectoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidTeamName):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrStudentNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.ServiceUnavailable(c, err.Error())
	}
}
