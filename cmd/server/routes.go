package main

import (
	"github.com/gin-gonic/gin"
	"github.com/orquestra-app/orquestra/backend/internal/handlers"
	"github.com/orquestra-app/orquestra/backend/internal/middleware"
	"github.com/orquestra-app/orquestra/backend/internal/models"
	"github.com/orquestra-app/orquestra/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(middleware.RequestID(), logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for credential endpoints
	authLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "orquestra"})
	})

	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/register", svc.authHandler.Register)
			auth.POST("/login", svc.authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.GET("/auth/me", svc.authHandler.Me)

			// Dashboard
			dashboardHandler := handlers.NewDashboardHandler(models.GetDB())
			protected.GET("/dashboard/stats", dashboardHandler.GetStats)

			// Notifications
			notificationHandler := handlers.NewNotificationHandler(svc.notificationService)
			protected.GET("/notifications", notificationHandler.List)
			protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
			protected.POST("/notifications/:id/read", notificationHandler.MarkRead)

			// Projects: create/list need authentication only
			projectHandler := handlers.NewProjectHandler(models.GetDB())
			protected.POST("/projects", projectHandler.Create)
			protected.GET("/projects", projectHandler.List)

			// Project routes gated on membership
			memberGated := protected.Group("/projects/:projectId")
			memberGated.Use(middleware.ProjectMemberRequired(svc.authzService))
			{
				memberGated.GET("", projectHandler.GetByID)
				memberGated.PUT("", projectHandler.Update)
				memberGated.GET("/stats", projectHandler.Stats)

				memberHandler := handlers.NewProjectMemberHandler(svc.memberService)
				memberGated.GET("/members", memberHandler.List)
				memberGated.POST("/members", memberHandler.Add)
				memberGated.DELETE("/members/:userId", memberHandler.Remove)

				taskHandler := handlers.NewTaskHandler(models.GetDB())
				memberGated.POST("/tasks", taskHandler.Create)
				memberGated.GET("/tasks", taskHandler.List)
				memberGated.PUT("/tasks/:taskId", taskHandler.UpdateStatus)
				memberGated.POST("/tasks/:taskId/comments", taskHandler.CreateComment)
				memberGated.GET("/tasks/:taskId/comments", taskHandler.ListComments)
				memberGated.POST("/tasks/:taskId/tags", taskHandler.AssignTag)
				memberGated.POST("/tags", taskHandler.CreateTag)
				memberGated.GET("/tags", taskHandler.ListTags)

				chatHandler := handlers.NewChatHandler(models.GetDB())
				memberGated.POST("/chat", chatHandler.Post)
				memberGated.GET("/chat", chatHandler.List)

				documentHandler := handlers.NewDocumentHandler(models.GetDB())
				memberGated.POST("/documents", documentHandler.Create)
				memberGated.GET("/documents", documentHandler.List)
				memberGated.POST("/documents/:documentId/versions", documentHandler.AddVersion)
				memberGated.GET("/documents/:documentId/versions", documentHandler.ListVersions)
			}

			// Deletion has its own policy: creator or global admin
			protected.DELETE("/projects/:projectId",
				middleware.ProjectDeleteAllowed(svc.authzService),
				projectHandler.Delete)

			// Force delete: global admins only, no membership required
			protected.DELETE("/projects/:projectId/force",
				middleware.AdminRequired(),
				projectHandler.Delete)
		}
	}
}
