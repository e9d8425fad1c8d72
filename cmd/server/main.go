package main

import (
	"log"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/buildseason/roadmap-api/internal/config"
	"github.com/buildseason/roadmap-api/internal/constants"
	"github.com/buildseason/roadmap-api/internal/database"
	"github.com/buildseason/roadmap-api/internal/handlers"
	"github.com/buildseason/roadmap-api/internal/identity"
	"github.com/buildseason/roadmap-api/internal/metrics"
	"github.com/buildseason/roadmap-api/internal/middleware"
	"github.com/buildseason/roadmap-api/internal/repository"
	"github.com/buildseason/roadmap-api/internal/seed"
	"github.com/buildseason/roadmap-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	checkpointRepo := repository.NewCheckpointRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	// Services
	authService := services.NewAuthService(userRepo)
	teamService := services.NewTeamService(teamRepo, userRepo)
	catalogService := services.NewCatalogService(checkpointRepo, logger)
	progressService := services.NewProgressService(progressRepo)

	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Seed the master catalog if this deployment has never run before.
	if err := catalogService.Seed(seed.Checkpoints); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	// Session transitions feed the log and the login counter.
	authService.Subscribe(func(event services.SessionEvent) {
		logger.Info("session transition",
			zap.String("type", string(event.Type)),
			zap.String("user_id", event.UserID),
		)
		metrics.CountSessionEvent(string(event.Type))
	})

	// Identity verification for the login endpoint
	verifier := identity.NewJWTVerifier(cfg.IDTokenSecret, cfg.IDTokenIssuer)

	// Initialize Gin router
	r := gin.New()
	r.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger, true))
	r.Use(metrics.Middleware())

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(verifier, authService)
	adminHandler := handlers.NewAdminHandler(teamService, catalogService, aiService)
	roadmapHandler := handlers.NewRoadmapHandler(catalogService, progressService, teamService, authService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Roadmap API is running",
		})
	})
	r.GET("/metrics", metrics.Handler())

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Student-facing roadmap (protected)
		roadmap := api.Group("/roadmap")
		roadmap.Use(middleware.RequireAuth())
		{
			roadmap.GET("", roadmapHandler.GetTimeline)
			roadmap.GET("/:id", roadmapHandler.GetCheckpoint)
			roadmap.PUT("/:id/progress", roadmapHandler.SaveProgress)
		}

		// Teacher console (protected + role gated)
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(), middleware.RequireTeacher(cfg.TeacherEmails))
		{
			admin.POST("/teams", adminHandler.CreateTeam)
			admin.GET("/teams", adminHandler.ListTeams)
			admin.DELETE("/teams/:id", adminHandler.DeleteTeam)
			admin.GET("/teams/:id/members", adminHandler.ListMembers)
			admin.POST("/teams/:id/members", adminHandler.AddMember)
			admin.DELETE("/teams/:id/members/:user_id", adminHandler.RemoveMember)
			admin.POST("/checkpoints/:id/suggest-subtasks", adminHandler.SuggestSubTasks)
		}
	}

	// Start server
	logger.Info("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newLogger(levelStr string) *zap.Logger {
	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("Error initializing zap logger: %v", err)
	}
	return logger
}
