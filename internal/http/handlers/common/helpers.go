package common

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/payout-admin/internal/dto"
	"github.com/ignatzorin/payout-admin/internal/http/middleware"
	"github.com/ignatzorin/payout-admin/internal/pkg/apperror"
)

// CurrentOperator возвращает идентификатор оператора, выставленный middleware.Operator.
func CurrentOperator(c *gin.Context) string {
	return c.GetString(middleware.ContextOperatorKey)
}

// RespondError sends a standardized error response
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// RespondAppError отвечает статусом и текстом из apperror и кладёт ошибку
// в c.Errors, откуда её вместе с причиной пишет в лог middleware.ErrorHandler.
func RespondAppError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(apperror.HTTPStatus(err), dto.ErrorResponse{
		Error: apperror.PublicMessage(err),
		Code:  errorCode(err),
	})
}

// RespondListError отвечает ошибкой чтения списка вместе с пустым "data".
func RespondListError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(apperror.HTTPStatus(err), dto.ListErrorResponse{
		Error: apperror.PublicMessage(err),
		Code:  errorCode(err),
		Data:  []any{},
	})
}

// RespondList отдаёт список и его длину.
func RespondList[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, dto.ListResponse{Data: items, Count: len(items)})
}

// RespondBadRequest sends a 400 Bad Request response
func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "некорректный запрос"
	}
	RespondError(c, http.StatusBadRequest, message)
}

// ParseIntQuery safely reads an integer query parameter with a fallback value
func ParseIntQuery(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func errorCode(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return string(appErr.Code)
	}
	return string(apperror.ErrCodeInternal)
}
