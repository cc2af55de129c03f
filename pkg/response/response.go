// Package response holds the JSON error envelope shared by all endpoints.
// Success payloads are endpoint-specific and written by the handlers
// directly; errors always look like {"error": "...", "validation_errors": [...]}.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the standard API error shape.
type ErrorBody struct {
	Error            string   `json:"error"`
	ValidationErrors []string `json:"validation_errors,omitempty"`
}

// BadRequest sends 400 with an error message.
func BadRequest(c *gin.Context, err string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: err})
}

// BadRequestWithErrors sends 400 with an error message and the per-row
// validation messages that caused it.
func BadRequestWithErrors(c *gin.Context, err string, validationErrors []string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: err, ValidationErrors: validationErrors})
}

// Internal sends 500 with an error message.
func Internal(c *gin.Context, err string) {
	c.JSON(http.StatusInternalServerError, ErrorBody{Error: err})
}
