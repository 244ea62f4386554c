package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/falkeetsingh/Mini-Plant-Store/internal/application/admin"
)

// AdminHandler handles admin dashboard HTTP requests
type AdminHandler struct {
	BaseHandler
	dashboardService *admin.DashboardService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(dashboardService *admin.DashboardService) *AdminHandler {
	return &AdminHandler{dashboardService: dashboardService}
}

// Dashboard returns aggregate store metrics and recent orders
func (h *AdminHandler) Dashboard(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
