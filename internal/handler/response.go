package handler

import (
	"github.com/gin-gonic/gin"
)

// OK writes the success envelope with any additional payload fields.
func OK(c *gin.Context, status int, message string, fields gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error hands the error to the error-handling middleware, which renders
// the failure envelope with the right status code.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
