package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/buildseason/roadmap-api/internal/dto"
	apierrors "github.com/buildseason/roadmap-api/internal/errors"
	"github.com/buildseason/roadmap-api/internal/middleware"
	"github.com/buildseason/roadmap-api/internal/models"
	"github.com/buildseason/roadmap-api/internal/services"
	"github.com/gin-gonic/gin"
)

// RoadmapHandler serves the student-facing timeline and the per-checkpoint
// modal: catalog merged with team progress, membership for the assignment
// editor, and the whole-draft save.
type RoadmapHandler struct {
	catalogService  *services.CatalogService
	progressService *services.ProgressService
	teamService     *services.TeamService
	authService     *services.AuthService
}

// NewRoadmapHandler creates a new RoadmapHandler.
func NewRoadmapHandler(
	catalogService *services.CatalogService,
	progressService *services.ProgressService,
	teamService *services.TeamService,
	authService *services.AuthService,
) *RoadmapHandler {
	return &RoadmapHandler{
		catalogService:  catalogService,
		progressService: progressService,
		teamService:     teamService,
		authService:     authService,
	}
}

// GetTimeline returns the full catalog in order index order, each entry
// merged with the caller's team progress. Users without a team still get the
// catalog, with every entry at its "Not Started" default.
func (h *RoadmapHandler) GetTimeline(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	checkpoints, err := h.catalogService.GetAll()
	if err != nil {
		apierrors.ServiceUnavailable(c, "Failed to load roadmap")
		return
	}

	progress := map[string]models.ProgressRecord{}
	if user.TeamID != nil {
		progress, err = h.progressService.LoadForTeam(*user.TeamID)
		if err != nil {
			apierrors.ServiceUnavailable(c, "Failed to load team progress")
			return
		}
	}

	items := make([]dto.TimelineItemDTO, len(checkpoints))
	for i, checkpoint := range checkpoints {
		var record *models.ProgressRecord
		if r, ok := progress[checkpoint.ID]; ok {
			record = &r
		}
		items[i] = dto.TimelineItemDTO{
			Checkpoint: dto.ToCheckpointDTO(checkpoint),
			Progress:   dto.ToProgressDTO(record),
		}
	}

	c.JSON(http.StatusOK, dto.TimelineDTO{
		TeamID: user.TeamID,
		Items:  items,
	})
}

// GetCheckpoint returns the modal-open payload. The member fetch failing does
// not fail the open: the modal comes back read-only with an empty member
// list, and the same happens for users without a team.
func (h *RoadmapHandler) GetCheckpoint(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
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

	detail := dto.CheckpointDetailDTO{
		Checkpoint: dto.ToCheckpointDTO(*checkpoint),
		Progress:   dto.ToProgressDTO(nil),
		Members:    []dto.TeamMemberDTO{},
	}

	if user.TeamID != nil {
		record, err := h.progressService.Get(*user.TeamID, checkpoint.ID)
		if err != nil {
			apierrors.ServiceUnavailable(c, "Failed to load progress")
			return
		}
		detail.Progress = dto.ToProgressDTO(record)

		stubs, err := h.teamService.GetMembers(*user.TeamID)
		if err == nil {
			detail.CanEdit = true
			detail.Members = make([]dto.TeamMemberDTO, len(stubs))
			for i, stub := range stubs {
				detail.Members[i] = dto.ToTeamMemberDTO(stub)
			}
		}
		// On member fetch failure the modal still opens, read-only.
	}

	c.JSON(http.StatusOK, detail)
}

// SaveProgress merge-writes the submitted draft into the caller's team
// record for this checkpoint. Only the fields present in the body are
// written; a failed save performs no partial write, so the client's draft
// stays valid for retry.
func (h *RoadmapHandler) SaveProgress(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	if user.TeamID == nil {
		apierrors.Forbidden(c, "No team assigned")
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

	patch, ok := bindProgressPatch(c)
	if !ok {
		return
	}

	record, err := h.progressService.Save(*user.TeamID, checkpoint.ID, patch)
	if err != nil {
		apierrors.ServiceUnavailable(c, "Failed to save progress")
		return
	}

	c.JSON(http.StatusOK, dto.ToProgressDTO(record))
}

// bindProgressPatch parses the draft body, distinguishing absent fields from
// explicit nulls so a save never erases what it did not mention.
func bindProgressPatch(c *gin.Context) (services.ProgressPatch, bool) {
	type saveRequest struct {
		Status      *string                `json:"status"`
		DueDate     json.RawMessage        `json:"due_date"`
		Assignments models.AssigneeSets    `json:"task_assignments"`
		Completions models.CompletionFlags `json:"task_completions"`
		Roles       models.RoleAssignments `json:"roles"`
	}

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return services.ProgressPatch{}, false
	}

	patch := services.ProgressPatch{
		Status:      req.Status,
		Assignments: req.Assignments,
		Completions: req.Completions,
		Roles:       req.Roles,
	}

	if len(req.DueDate) > 0 {
		if bytes.Equal(req.DueDate, []byte("null")) {
			patch.ClearDueDate = true
		} else {
			var dueDate string
			if err := json.Unmarshal(req.DueDate, &dueDate); err != nil {
				apierrors.BadRequest(c, "Invalid due_date")
				return services.ProgressPatch{}, false
			}
			if _, err := time.Parse("2006-01-02", dueDate); err != nil {
				apierrors.BadRequest(c, "due_date must be YYYY-MM-DD")
				return services.ProgressPatch{}, false
			}
			patch.DueDate = &dueDate
		}
	}

	return patch, true
}

// currentUser resolves the session user, responding on failure.
func (h *RoadmapHandler) currentUser(c *gin.Context) (*models.User, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.Unauthorized(c, "Unknown user")
			return nil, false
		}
		apierrors.ServiceUnavailable(c, "Failed to load user")
		return nil, false
	}
	return user, true
}
