package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gatherhub/gatherhub-backend/internal/api/handlers"
	"github.com/gatherhub/gatherhub-backend/internal/api/middleware"
	"github.com/gatherhub/gatherhub-backend/internal/config"
	"github.com/gatherhub/gatherhub-backend/internal/cron"
	"github.com/gatherhub/gatherhub-backend/internal/db"
	"github.com/gatherhub/gatherhub-backend/internal/notification"
	"github.com/gatherhub/gatherhub-backend/internal/repository"
	"github.com/gatherhub/gatherhub-backend/internal/seed"
	"github.com/gatherhub/gatherhub-backend/internal/service"
	"github.com/gatherhub/gatherhub-backend/internal/socket"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if err := db.RunMigrations(cfg.DatabaseURL, "internal/db/migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	postgres, err := db.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer postgres.Close()

	var cache *db.RedisDB
	if cfg.RedisURL != "" {
		cache, err = db.NewRedisDB(cfg.RedisURL)
		if err != nil {
			log.Printf("Redis unavailable, running without cache: %v", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	repos := repository.NewRepositories(postgres.Pool)

	hub := socket.NewHub()
	go hub.Run()
	broadcaster := socket.NewBroadcaster(hub)
	wsHandler := socket.NewHandler(hub, cfg.JWTSecret)

	notifSvc := notification.NewService(repos.NotificationRepo)
	notifSvc.SetBroadcaster(broadcaster)

	services := service.NewServices(&service.ServiceDeps{
		Config:      cfg,
		Repos:       repos,
		Cache:       cache,
		NotifSvc:    notifSvc,
		Broadcaster: broadcaster,
	})

	scheduler := cron.NewScheduler(services.Lifecycle, time.Duration(cfg.SweepIntervalHours)*time.Hour)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	if cfg.Environment == "development" {
		if err := seed.Run(context.Background(), repos, services.Workspace); err != nil {
			log.Printf("Seeding failed: %v", err)
		}
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"clients": hub.GetConnectedClientsCount(),
		})
	})

	h := handlers.NewHandlers(services, scheduler)
	authRequired := middleware.AuthMiddleware(services.Auth)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		api.GET("/ws", wsHandler.HandleWebSocket)

		api.GET("/templates", h.Workspace.ListTemplates)

		events := api.Group("/events", authRequired)
		{
			events.POST("", h.Event.Create)
			events.GET("", h.Event.ListMine)
			events.GET("/:id", h.Event.GetByID)
			events.PATCH("/:id/status", h.Event.UpdateStatus)
			events.GET("/:id/lifecycle", h.Event.GetLifecycleStatus)
			events.POST("/:id/workspace", h.Workspace.Provision)
			events.GET("/:id/workspace", h.Workspace.GetByEventID)
		}

		workspaces := api.Group("/workspaces", authRequired)
		{
			workspaces.GET("/:id", h.Workspace.GetByID)
			workspaces.PUT("/:id/settings", h.Workspace.UpdateSettings)
			workspaces.POST("/:id/wind-down", h.Workspace.InitiateWindDown)
			workspaces.POST("/:id/dissolve", h.Workspace.Dissolve)
			workspaces.POST("/:id/revoke", h.Workspace.EmergencyRevoke)
			workspaces.POST("/:id/departures", h.Workspace.HandleEarlyDeparture)
			workspaces.POST("/:id/template", h.Workspace.ApplyTemplate)
			workspaces.GET("/:id/members", h.Workspace.ListMembers)
			workspaces.GET("/:id/channels", h.Workspace.ListChannels)
			workspaces.GET("/:id/tasks", h.Workspace.ListTasks)
			workspaces.POST("/:id/tasks", h.Workspace.CreateTask)
		}

		tasks := api.Group("/tasks", authRequired)
		{
			tasks.PATCH("/:id/status", h.Workspace.UpdateTaskStatus)
		}

		admin := api.Group("/admin", authRequired)
		{
			admin.GET("/scheduler", h.Scheduler.Status)
			admin.POST("/scheduler/trigger", h.Scheduler.Trigger)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
