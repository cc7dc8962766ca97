package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/payout-admin/internal/domain/valueobject"
	"github.com/ignatzorin/payout-admin/internal/dto"
	"github.com/ignatzorin/payout-admin/internal/http/handlers/common"
	"github.com/ignatzorin/payout-admin/internal/service"
	"github.com/ignatzorin/payout-admin/internal/validation"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WithdrawalHandler - список заявок, статистика, выгрузка и действия оператора.
type WithdrawalHandler struct {
	svc    *service.WithdrawalService
	export *service.ExportService
}

func NewWithdrawalHandler(s *service.WithdrawalService, export *service.ExportService) *WithdrawalHandler {
	return &WithdrawalHandler{svc: s, export: export}
}

// ListWithdrawals GET /api/withdrawals?status=
func (h *WithdrawalHandler) ListWithdrawals(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		common.RespondListError(c, err)
		return
	}
	common.RespondList(c, rows)
}

// GetStats GET /api/withdrawals/stats
func (h *WithdrawalHandler) GetStats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportXLSX GET /api/withdrawals/export.xlsx?status=
func (h *WithdrawalHandler) ExportXLSX(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.export.WithdrawalsXLSX(c.Request.Context(), c.Query("status"), &buf); err != nil {
		// ответ пишет ErrorHandler
		_ = c.Error(err)
		return
	}

	filename := fmt.Sprintf("withdrawals-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ApplyAction POST /api/withdrawals/:id/actions/:action
func (h *WithdrawalHandler) ApplyAction(c *gin.Context) {
	action, err := valueobject.ParseAction(c.Param("action"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	w, err := h.svc.ApplyAction(c.Request.Context(), strings.TrimSpace(c.Param("id")), action, common.CurrentOperator(c))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: w})
}

// UpdateStatus PATCH /api/withdrawals/:id/status
func (h *WithdrawalHandler) UpdateStatus(c *gin.Context) {
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, validation.Message(err))
		return
	}
	if err := validation.ValidateTransactionReference(req.TransactionReference); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidateNotes(req.Notes); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	w, err := h.svc.Transition(c.Request.Context(), strings.TrimSpace(c.Param("id")), service.TransitionInput{
		Status:               req.Status,
		ProcessedBy:          common.CurrentOperator(c),
		TransactionReference: strings.TrimSpace(req.TransactionReference),
		Notes:                req.Notes,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: w})
}
