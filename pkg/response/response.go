package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/election-result-api/pkg/errors"
)

// Envelope represents the common success contract.
type Envelope struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ErrorBody is the flattened error contract; only the human readable message is exposed.
type ErrorBody struct {
	Error string `json:"Error"`
}

// JSON sends a success response wrapping data with a message.
func JSON(c *gin.Context, status int, message string, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Message: message, Data: data})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusCreated, message, data)
}

// Error sends an error response and records the underlying cause for request logging.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	_ = c.Error(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, ErrorBody{Error: appErr.Message})
}
