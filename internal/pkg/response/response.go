package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"skillbridge/internal/pkg/apperr"
	"skillbridge/internal/pkg/logger"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, "VALIDATION_ERROR", message)
}

// Fail renders a domain error. Store failures are logged with their cause and
// shown to the client as a generic retry message.
func Fail(c *gin.Context, err error) {
	ae := apperr.From(err)
	if ae.Kind == apperr.KindStore {
		logger.Error("request failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int64("user_id", c.GetInt64("user_id")),
			zap.Error(ae.Err),
		)
		_ = c.Error(err)
	}
	if len(ae.Details) > 0 {
		ErrorWithDetails(c, ae.HTTPStatus(), ae.Code, ae.Message, ae.Details)
		return
	}
	Error(c, ae.HTTPStatus(), ae.Code, ae.Message)
}
