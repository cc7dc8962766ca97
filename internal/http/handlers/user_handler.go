package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/payout-admin/internal/dto"
	"github.com/ignatzorin/payout-admin/internal/http/handlers/common"
	"github.com/ignatzorin/payout-admin/internal/service"
	"github.com/ignatzorin/payout-admin/internal/validation"
)

// UserHandler отвечает за список пользователей и смену их статуса.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler создаёт экземпляр.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// ListUsers GET /api/users?status=&search=
func (h *UserHandler) ListUsers(c *gin.Context) {
	search := c.Query("search")
	if err := validation.ValidateSearch(search); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	users, err := h.users.List(c.Request.Context(), service.UserFilter{
		Status: c.Query("status"),
		Search: search,
	})
	if err != nil {
		common.RespondListError(c, err)
		return
	}
	common.RespondList(c, users)
}

// CountUsers GET /api/users/count
func (h *UserHandler) CountUsers(c *gin.Context) {
	n, err := h.users.Count(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: n})
}

// UpdateStatus PATCH /api/users/:id/status
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	var req dto.UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, validation.Message(err))
		return
	}

	u, err := h.users.UpdateStatus(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Status)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: u})
}
