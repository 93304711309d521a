package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response.
type SuccessResponse struct {
	Message string `json:"message"`
}

const (
	codeValidation = "validation_error"
	codeNotFound   = "not_found"
	codeConflict   = "conflict"
	codeRateLimit  = "rate_limit_exceeded"
)

// --- Error Response Helpers ---

// respondValidationError sends a 422 Unprocessable Entity response with
// per-field messages.
func respondValidationError(c *gin.Context, details map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Code:    codeValidation,
		Details: details,
	})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: codeNotFound})
}

// respondConflict sends a 409 Conflict response.
func respondConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, ErrorResponse{Error: message, Code: codeConflict})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 422 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondValidationError(c, map[string]string{paramName: "must be a non-negative integer"})
		return 0, false
	}
	return uint(id), true
}

// parseOptionalIntQuery reads a non-negative integer query parameter.
// An absent or empty parameter yields nil. Responds with 422 on a bad value.
func parseOptionalIntQuery(c *gin.Context, paramName string) (*int, bool) {
	raw := c.Query(paramName)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		respondValidationError(c, map[string]string{paramName: "must be a non-negative integer"})
		return nil, false
	}
	return &n, true
}

// optionalStringQuery returns a pointer to the query parameter, or nil when
// it is absent or empty.
func optionalStringQuery(c *gin.Context, paramName string) *string {
	if v := c.Query(paramName); v != "" {
		return &v
	}
	return nil
}
