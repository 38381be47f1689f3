package main

import (
	"log"
	"time"

	"github.com/coachtui/crewcommand/internal/config"
	"github.com/coachtui/crewcommand/internal/database"
	"github.com/coachtui/crewcommand/internal/handlers"
	"github.com/coachtui/crewcommand/internal/middleware"
	"github.com/coachtui/crewcommand/internal/repository"
	"github.com/coachtui/crewcommand/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
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
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Redis backs the token store; a dead Redis fails fast at boot
	// rather than on the first login.
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisHost + ":" + cfg.RedisPort,
	})

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	siteRepo := repository.NewJobSiteRepository(db)
	workerRepo := repository.NewWorkerRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	assignRepo := repository.NewAssignmentRepository(db)
	requestRepo := repository.NewRequestRepository(db)

	// Services
	tokenStore := services.NewTokenStore(rdb)
	authService := services.NewAuthService(userRepo, tokenStore, cfg.JWTSecret)
	siteService := services.NewJobSiteService(siteRepo, userRepo)
	workerService := services.NewWorkerService(workerRepo, siteRepo)
	taskService := services.NewTaskService(taskRepo, siteRepo)
	scheduleService := services.NewScheduleService(assignRepo, taskRepo, workerRepo)
	requestService := services.NewRequestService(requestRepo, workerRepo, taskRepo)
	voiceService := services.NewVoiceService(workerRepo, taskRepo, siteRepo, scheduleService, taskService, requestService)
	interpreter := services.NewOpenAIInterpreter(cfg.OpenAIAPIKey, cfg.OpenAIModel, time.Duration(cfg.OpenAITimeoutSec)*time.Second)

	middleware.Init(authService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	siteHandler := handlers.NewJobSiteHandler(siteService)
	workerHandler := handlers.NewWorkerHandler(workerService)
	taskHandler := handlers.NewTaskHandler(taskService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	requestHandler := handlers.NewRequestHandler(requestService)
	voiceHandler := handlers.NewVoiceHandler(interpreter, voiceService)

	// Initialize Gin router
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Crew Command API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (only login is public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.RequireAuth(), authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.Me)
		}

		// User provisioning (admin only, enforced in the service)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.POST("", authHandler.CreateUser)
		}

		// Job site routes (protected)
		sites := api.Group("/job-sites")
		sites.Use(middleware.RequireAuth())
		{
			sites.POST("", siteHandler.CreateJobSite)
			sites.GET("", siteHandler.ListJobSites)
			sites.PATCH("/:id", siteHandler.UpdateJobSite)
			sites.POST("/:id/assignments", siteHandler.AssignUser)
			sites.GET("/:id/assignments", siteHandler.ListAssignments)
		}

		// Worker routes (protected)
		workers := api.Group("/workers")
		workers.Use(middleware.RequireAuth())
		{
			workers.POST("", workerHandler.CreateWorker)
			workers.GET("", workerHandler.ListWorkers)
			workers.PATCH("/:id", workerHandler.UpdateWorker)
			workers.POST("/:id/move", workerHandler.MoveWorker)
			workers.GET("/:id/schedule", scheduleHandler.GetWorkerDay)
			workers.GET("/:id/timesheet", scheduleHandler.ListTimesheet)
			workers.PATCH("/:id/timesheet", scheduleHandler.UpdateTimesheet)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
		}

		// Schedule routes (protected)
		schedule := api.Group("/schedule")
		schedule.Use(middleware.RequireAuth())
		{
			schedule.POST("/reassign", scheduleHandler.Reassign)
		}

		// Reassignment request routes (protected)
		requests := api.Group("/requests")
		requests.Use(middleware.RequireAuth())
		{
			requests.POST("", requestHandler.CreateRequest)
			requests.GET("/pending", requestHandler.ListPending)
			requests.POST("/:id/review", requestHandler.ReviewRequest)
		}

		// Voice routes (protected)
		voiceRoutes := api.Group("/voice")
		voiceRoutes.Use(middleware.RequireAuth())
		{
			voiceRoutes.POST("/parse", voiceHandler.Parse)
			voiceRoutes.POST("/execute", voiceHandler.Execute)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
