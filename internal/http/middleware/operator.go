package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/payout-admin/internal/validation"
)

// HeaderOperatorID - заголовок с идентификатором оператора.
// Это подпись для processed_by, а не аутентификация.
const HeaderOperatorID = "X-Operator-ID"

// Operator кладёт в контекст идентификатор оператора из заголовка
// или значение по умолчанию.
func Operator(defaultID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderOperatorID))
		if id == "" {
			id = defaultID
		}
		if err := validation.ValidateOperatorID(id); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.Set(ContextOperatorKey, id)
		c.Next()
	}
}

// RequireParam проверяет, что параметр пути не пустой.
// Использование: router.PATCH("/users/:id/status", RequireParam("id"), handler.UpdateStatus)
func RequireParam(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(c.Param(paramName)) == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "параметр " + paramName + " обязателен",
			})
			return
		}
		c.Next()
	}
}
