package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the JSON envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

// RespondData sends a success envelope with a payload.
func RespondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

// RespondDataMessage sends a success envelope with a payload and a message.
func RespondDataMessage(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Response{Success: true, Data: data, Message: message})
}

// RespondList sends a success envelope with a payload and its element count.
func RespondList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Count: &count})
}

// RespondMessage sends a success envelope carrying only a message.
func RespondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message})
}

// statusCoder is implemented by service errors that know their HTTP status.
type statusCoder interface {
	error
	StatusCode() int
}

// RespondError maps a service error onto the envelope. Errors that do not
// carry a status are reported as generic server errors without leaking the
// underlying cause to the client.
func RespondError(c *gin.Context, err error) {
	var sc statusCoder
	if errors.As(err, &sc) {
		c.JSON(sc.StatusCode(), Response{Success: false, Message: sc.Error()})
		return
	}
	GetLogger().Error("unhandled service error", zap.Error(err), zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, Response{Success: false, Message: "Internal server error"})
}

// RespondBadRequest reports a malformed request body or query.
func RespondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Message: message})
}
