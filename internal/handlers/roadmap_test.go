package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/buildseason/roadmap-api/internal/constants"
	"github.com/buildseason/roadmap-api/internal/database"
	"github.com/buildseason/roadmap-api/internal/dto"
	"github.com/buildseason/roadmap-api/internal/models"
	"github.com/buildseason/roadmap-api/internal/repository"
	"github.com/buildseason/roadmap-api/internal/seed"
	"github.com/buildseason/roadmap-api/internal/services"
)

type RoadmapHandlerTestSuite struct {
	suite.Suite
	db             *gorm.DB
	router         *gin.Engine
	catalogService *services.CatalogService
	teamService    *services.TeamService

	currentUID string
}

func (suite *RoadmapHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)
	suite.Require().NoError(db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Checkpoint{},
		&models.ProgressRecord{},
	))
	suite.db = db
	database.SetDB(db)

	checkpointRepo := repository.NewCheckpointRepository(db)
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	suite.catalogService = services.NewCatalogService(checkpointRepo, zap.NewNop())
	suite.Require().NoError(suite.catalogService.Seed(seed.Checkpoints))

	suite.teamService = services.NewTeamService(teamRepo, userRepo)
	progressService := services.NewProgressService(progressRepo)
	authService := services.NewAuthService(userRepo)

	handler := NewRoadmapHandler(suite.catalogService, progressService, suite.teamService, authService)

	router := gin.New()
	roadmap := router.Group("/api/roadmap")
	roadmap.Use(func(c *gin.Context) {
		if suite.currentUID != "" {
			c.Set(constants.ContextKeyUserID, suite.currentUID)
		}
	})
	{
		roadmap.GET("", handler.GetTimeline)
		roadmap.GET("/:id", handler.GetCheckpoint)
		roadmap.PUT("/:id/progress", handler.SaveProgress)
	}
	suite.router = router
}

func (suite *RoadmapHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *RoadmapHandlerTestSuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// createStudent inserts a user and makes them the authenticated caller. When
// teamID is non-empty the user is attached to that team via the directory.
func (suite *RoadmapHandlerTestSuite) createStudent(uid, email, teamID string) {
	suite.Require().NoError(suite.db.Create(&models.User{
		ID:    uid,
		Email: email,
		Role:  models.RoleStudent,
	}).Error)
	if teamID != "" {
		_, err := suite.teamService.AddMember(teamID, email)
		suite.Require().NoError(err)
	}
	suite.currentUID = uid
}

func (suite *RoadmapHandlerTestSuite) createTeam(name string) string {
	team, err := suite.teamService.CreateTeam(name)
	suite.Require().NoError(err)
	return team.ID
}

// firstCheckpointID returns the id of the lowest order index catalog entry.
func (suite *RoadmapHandlerTestSuite) firstCheckpointID() string {
	var checkpoint models.Checkpoint
	suite.Require().NoError(suite.db.Order("order_index asc").First(&checkpoint).Error)
	return checkpoint.ID
}

func (suite *RoadmapHandlerTestSuite) getTimeline() dto.TimelineDTO {
	w := suite.request(http.MethodGet, "/api/roadmap", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var timeline dto.TimelineDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &timeline))
	return timeline
}

func (suite *RoadmapHandlerTestSuite) saveProgress(checkpointID string, body any) *httptest.ResponseRecorder {
	return suite.request(http.MethodPut, fmt.Sprintf("/api/roadmap/%s/progress", checkpointID), body)
}

func (suite *RoadmapHandlerTestSuite) TestTimelineMatchesMasterList() {
	suite.createStudent("student-1", "s1@school.edu", "")

	timeline := suite.getTimeline()
	suite.Nil(timeline.TeamID)
	suite.Require().Len(timeline.Items, len(seed.Checkpoints))

	seen := make(map[int]bool)
	for i, item := range timeline.Items {
		suite.Equal(seed.Checkpoints[i].Title, item.Checkpoint.Title)
		suite.Equal(i, item.Checkpoint.OrderIndex)
		suite.False(seen[item.Checkpoint.OrderIndex], "order index must be unique")
		seen[item.Checkpoint.OrderIndex] = true
		suite.Equal(constants.StatusNotStarted, item.Progress.Status)
	}
}

func (suite *RoadmapHandlerTestSuite) TestReseedIsNoOp() {
	suite.Require().NoError(suite.catalogService.Seed(seed.Checkpoints))

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Checkpoint{}).Count(&count).Error)
	suite.EqualValues(len(seed.Checkpoints), count)
}

func (suite *RoadmapHandlerTestSuite) TestSaveMergesIndependentFields() {
	teamID := suite.createTeam("Alpha")
	suite.createStudent("student-1", "s1@school.edu", teamID)
	checkpointID := suite.firstCheckpointID()

	w := suite.saveProgress(checkpointID, gin.H{"status": constants.StatusComplete})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.saveProgress(checkpointID, gin.H{"due_date": "2025-05-01"})
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.ProgressDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(constants.StatusComplete, resp.Status, "earlier status survives the due date save")
	suite.Require().NotNil(resp.DueDate)
	suite.Equal("2025-05-01", *resp.DueDate)
}

func (suite *RoadmapHandlerTestSuite) TestSaveNullClearsDueDate() {
	teamID := suite.createTeam("Alpha")
	suite.createStudent("student-1", "s1@school.edu", teamID)
	checkpointID := suite.firstCheckpointID()

	w := suite.saveProgress(checkpointID, gin.H{
		"status":   constants.StatusInProgress,
		"due_date": "2025-05-01",
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.saveProgress(checkpointID, gin.H{"due_date": nil})
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.ProgressDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Nil(resp.DueDate)
	suite.Equal(constants.StatusInProgress, resp.Status, "absent status is left untouched")
}

func (suite *RoadmapHandlerTestSuite) TestAssignmentsAndCompletionsRoundTrip() {
	teamID := suite.createTeam("Alpha")
	suite.createStudent("uid-a", "a@school.edu", teamID)
	suite.createStudent("uid-b", "b@school.edu", teamID)
	suite.currentUID = "uid-a"
	checkpointID := suite.firstCheckpointID()

	w := suite.saveProgress(checkpointID, gin.H{
		"task_assignments": gin.H{"Install motors": []string{"uid-a", "uid-b"}},
		"task_completions": gin.H{"Install motors": true},
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	timeline := suite.getTimeline()
	suite.Require().NotNil(timeline.TeamID)
	suite.Equal(teamID, *timeline.TeamID)

	var progress *dto.ProgressDTO
	for _, item := range timeline.Items {
		if item.Checkpoint.ID == checkpointID {
			p := item.Progress
			progress = &p
		}
	}
	suite.Require().NotNil(progress)
	suite.ElementsMatch([]string{"uid-a", "uid-b"}, progress.Assignments["Install motors"])
	suite.True(progress.Completions["Install motors"])
}

func (suite *RoadmapHandlerTestSuite) TestSaveDedupesAssignees() {
	teamID := suite.createTeam("Alpha")
	suite.createStudent("uid-a", "a@school.edu", teamID)
	checkpointID := suite.firstCheckpointID()

	w := suite.saveProgress(checkpointID, gin.H{
		"task_assignments": gin.H{"Install motors": []string{"uid-a", "uid-a", "uid-b"}},
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.ProgressDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.ElementsMatch([]string{"uid-a", "uid-b"}, resp.Assignments["Install motors"])
}

func (suite *RoadmapHandlerTestSuite) TestInvalidDueDateRejectedWithoutWrite() {
	teamID := suite.createTeam("Alpha")
	suite.createStudent("uid-a", "a@school.edu", teamID)
	checkpointID := suite.firstCheckpointID()

	w := suite.saveProgress(checkpointID, gin.H{"due_date": "May 1st"})
	suite.Equal(http.StatusBadRequest, w.Code)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.ProgressRecord{}).Count(&count).Error)
	suite.EqualValues(0, count, "a rejected draft must not create a record")
}

func (suite *RoadmapHandlerTestSuite) TestTeamlessUserCannotSave() {
	suite.createStudent("uid-a", "a@school.edu", "")

	w := suite.saveProgress(suite.firstCheckpointID(), gin.H{"status": constants.StatusComplete})
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *RoadmapHandlerTestSuite) TestTeamlessModalOpensReadOnly() {
	suite.createStudent("uid-a", "a@school.edu", "")

	w := suite.request(http.MethodGet, "/api/roadmap/"+suite.firstCheckpointID(), nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var detail dto.CheckpointDetailDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &detail))
	suite.False(detail.CanEdit)
	suite.Empty(detail.Members)
	suite.Equal(constants.StatusNotStarted, detail.Progress.Status)
}

func (suite *RoadmapHandlerTestSuite) TestModalListsMembersForTeamUser() {
	teamID := suite.createTeam("Alpha")
	suite.createStudent("uid-a", "a@school.edu", teamID)
	suite.createStudent("uid-b", "b@school.edu", teamID)
	suite.currentUID = "uid-a"

	w := suite.request(http.MethodGet, "/api/roadmap/"+suite.firstCheckpointID(), nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var detail dto.CheckpointDetailDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &detail))
	suite.True(detail.CanEdit)
	suite.Require().Len(detail.Members, 2)
}

func (suite *RoadmapHandlerTestSuite) TestUnknownCheckpoint() {
	teamID := suite.createTeam("Alpha")
	suite.createStudent("uid-a", "a@school.edu", teamID)

	w := suite.request(http.MethodGet, "/api/roadmap/no-such-checkpoint", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.saveProgress("no-such-checkpoint", gin.H{"status": constants.StatusComplete})
	suite.Equal(http.StatusNotFound, w.Code)
}

func TestRoadmapHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RoadmapHandlerTestSuite))
}
