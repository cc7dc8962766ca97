package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/payout-admin/internal/pkg/apperror"
)

// ErrorHandler обрабатывает ошибки централизованно.
// Каждая ошибка из c.Errors попадает в лог вместе с исходной причиной,
// даже если хендлер уже ответил клиенту сам. Если ответа ещё нет,
// статус и текст берутся из apperror; внутренние подробности клиенту не отдаются.
func ErrorHandler(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperror.HTTPStatus(err)

		entry := log.WithFields(logrus.Fields{
			"error":      err.Error(),
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"status":     status,
			"request_id": c.GetString(ContextRequestIDKey),
		})
		if status >= http.StatusInternalServerError {
			entry.Error("Request error")
		} else {
			entry.Warn("Request error")
		}

		// Хендлер уже ответил сам
		if c.Writer.Written() {
			return
		}

		c.JSON(status, gin.H{"error": apperror.PublicMessage(err)})
	}
}
