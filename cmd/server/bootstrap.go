package main

import (
	"github.com/orquestra-app/orquestra/backend/internal/config"
	"github.com/orquestra-app/orquestra/backend/internal/handlers"
	"github.com/orquestra-app/orquestra/backend/internal/models"
	"github.com/orquestra-app/orquestra/backend/internal/services"
	"github.com/orquestra-app/orquestra/backend/internal/utils"
	"github.com/orquestra-app/orquestra/backend/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	authzService        *services.AuthzService
	memberService       *services.MemberService
	notificationService *services.NotificationService
	taskQueue           services.TaskQueue
	worker              *services.Worker
	authHandler         *handlers.AuthHandler
}

// bootstrap initializes all application dependencies: database, services,
// queue, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Notification queue: asynq when Redis is enabled, in-process otherwise.
	taskQueue := services.InitTaskQueue(cfg)
	notificationService := services.NewNotificationService(models.GetDB(), taskQueue)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(notificationService.Deliver)
	}

	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(notificationService.Deliver)
			worker.Start()
		}
	}

	services.StartRetentionScheduler(notificationService, cfg.Notification.RetentionDays)

	authHandler := handlers.NewAuthHandler(models.GetDB(), &cfg.JWT)
	if err := authHandler.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	return &appServices{
		authzService:        services.NewAuthzService(models.GetDB()),
		memberService:       services.NewMemberService(models.GetDB(), notificationService),
		notificationService: notificationService,
		taskQueue:           taskQueue,
		worker:              worker,
		authHandler:         authHandler,
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	services.StopRetentionScheduler()

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
	logger.Info().Msg("Shutdown complete")
}
