package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/payout-admin/internal/http/handlers/common"
	"github.com/ignatzorin/payout-admin/internal/service"
)

// maxRecentLimit - верхняя граница ?limit для последних заявок.
const maxRecentLimit = 50

// DashboardHandler handles dashboard cards and the recent withdrawals table.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler creates a new instance.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// GetSummary GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetRecentWithdrawals GET /api/dashboard/recent-withdrawals?limit=
func (h *DashboardHandler) GetRecentWithdrawals(c *gin.Context) {
	limit := common.ParseIntQuery(c, "limit", 0)
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	rows, err := h.dashboard.RecentWithdrawals(c.Request.Context(), limit)
	if err != nil {
		common.RespondListError(c, err)
		return
	}
	common.RespondList(c, rows)
}
