package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/ekastn/mamc-sub001/internal/config"
	"github.com/ekastn/mamc-sub001/internal/constants"
	"github.com/ekastn/mamc-sub001/internal/database"
	"github.com/ekastn/mamc-sub001/internal/handlers"
	"github.com/ekastn/mamc-sub001/internal/middleware"
	"github.com/ekastn/mamc-sub001/internal/repository"
	"github.com/ekastn/mamc-sub001/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

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

	// Initialize Gin router
	r := gin.Default()

	// CORS for the web client
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
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

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	trackRepo := repository.NewTrackRepository(db)
	checkpointRepo := repository.NewCheckpointRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	conflictRepo := repository.NewConflictRepository(db)

	// Initialize AI service only when a key is configured
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize services
	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo)
	trackService := services.NewTrackService(trackRepo)
	uploadService := services.NewUploadService()
	checkpointService := services.NewCheckpointService(checkpointRepo)
	commentService := services.NewCommentService(commentRepo, trackRepo)
	conflictService := services.NewConflictService(conflictRepo, commentRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	trackHandler := handlers.NewTrackHandler(trackService, uploadService)
	checkpointHandler := handlers.NewCheckpointHandler(checkpointService)
	commentHandler := handlers.NewCommentHandler(commentService, aiService)
	conflictHandler := handlers.NewConflictHandler(conflictService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Harmonic API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.POST("/join", projectHandler.JoinProject)

			project := projects.Group("/:id")
			project.Use(middleware.RequireProjectAccess())
			{
				project.GET("", projectHandler.GetProject)
				project.PUT("", middleware.RequireProjectOwner(), projectHandler.UpdateProject)
				project.POST("/regenerate-code", middleware.RequireProjectOwner(), projectHandler.RegenerateInviteCode)
				project.PATCH("/collaborators/:user_id", middleware.RequireProjectOwner(), projectHandler.ChangeCollaboratorRole)
				project.DELETE("/collaborators/:user_id", middleware.RequireProjectOwner(), projectHandler.RemoveCollaborator)

				// Tracks and versions
				project.POST("/tracks", trackHandler.CreateTrack)
				project.GET("/tracks", trackHandler.ListTracks)
				project.POST("/tracks/upload", trackHandler.UploadVersionForNewTrack)
				project.GET("/tracks/:track_id", trackHandler.GetTrack)
				project.POST("/tracks/:track_id/versions", trackHandler.UploadVersion)
				project.GET("/tracks/:track_id/versions", trackHandler.ListVersions)
				project.PUT("/tracks/:track_id/current-version", trackHandler.SetCurrentVersion)

				// Checkpoints
				project.POST("/checkpoints", middleware.RequireCheckpointRole(), checkpointHandler.CreateCheckpoint)
				project.GET("/checkpoints", checkpointHandler.ListCheckpoints)
				project.GET("/checkpoints/:checkpoint_id", checkpointHandler.GetCheckpoint)

				// Comments
				project.POST("/versions/:version_id/comments", commentHandler.AddComment)
				project.GET("/versions/:version_id/comments", commentHandler.ListComments)
				project.POST("/comments/suggest-feeling", commentHandler.SuggestFeeling)

				// Conflicts
				project.POST("/conflicts", conflictHandler.FileConflict)
				project.GET("/conflicts", conflictHandler.ListConflicts)
				project.GET("/conflicts/:conflict_id", conflictHandler.GetConflict)
				project.POST("/conflicts/:conflict_id/escalate", middleware.RequireModeratorRole(), conflictHandler.Escalate)
				project.POST("/conflicts/:conflict_id/resolve", middleware.RequireModeratorRole(), conflictHandler.Resolve)
				project.POST("/conflicts/:conflict_id/dismiss", middleware.RequireModeratorRole(), conflictHandler.Dismiss)
			}
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
