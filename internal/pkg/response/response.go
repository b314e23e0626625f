// Package response writes the DRF-flavored payloads the client's error
// decoder understands: a "detail" string for plain rejections and
// field-keyed message arrays for validation.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Detail sends a rejection with a single human-readable explanation.
func Detail(c *gin.Context, status int, message string) {
	c.Abort()
	c.JSON(status, gin.H{"detail": message})
}

// FieldErrors sends a 400 with per-field validation messages.
func FieldErrors(c *gin.Context, fields map[string][]string) {
	c.Abort()
	body := gin.H{}
	for name, msgs := range fields {
		body[name] = msgs
	}
	c.JSON(http.StatusBadRequest, body)
}

// FieldError is the single-field convenience form.
func FieldError(c *gin.Context, field, message string) {
	FieldErrors(c, map[string][]string{field: {message}})
}

// Unauthorized sends a 401 with a detail line.
func Unauthorized(c *gin.Context, message string) {
	Detail(c, http.StatusUnauthorized, message)
}

// NotFound sends a 404 with a detail line.
func NotFound(c *gin.Context, message string) {
	Detail(c, http.StatusNotFound, message)
}
