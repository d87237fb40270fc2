package response

import (
	"net/http"

	"floorcare/internal/pkg/apperror"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"message": message,
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

// HandleError translates a service failure into an HTTP response.
// Operational errors keep their message; everything else becomes a
// generic 500 so internals never leak.
func HandleError(c *gin.Context, err error) {
	if e, ok := apperror.As(err); ok {
		Error(c, e.Status(), string(e.Kind), e.Message)
		return
	}
	_ = c.Error(err)
	Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}
