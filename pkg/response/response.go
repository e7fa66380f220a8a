package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes data as the response body.
func JSON[T any](ctx *gin.Context, status int, data T) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, data)
}

// Error writes {"error": message} and aborts the handler chain.
func Error(ctx *gin.Context, status int, message string) ErrorBody {
	if status == 0 {
		status = http.StatusBadRequest
	}
	body := ErrorBody{Error: message}
	ctx.AbortWithStatusJSON(status, body)
	return body
}

// Empty writes a status without a body.
func Empty(ctx *gin.Context, status int) {
	ctx.Status(status)
}
