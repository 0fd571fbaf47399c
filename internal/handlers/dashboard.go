package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/orquestra-app/orquestra/backend/internal/middleware"
	"github.com/orquestra-app/orquestra/backend/internal/services"
	"github.com/orquestra-app/orquestra/backend/pkg/response"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: services.NewDashboardService(db),
	}
}

// GetStats returns the caller's overview counters
// GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
