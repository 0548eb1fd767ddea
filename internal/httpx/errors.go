package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: not found
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func AbortError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, HTTPError{Error: msg})
}

// Internal logs err through the access log and answers with a generic 500.
func Internal(c *gin.Context, err error) {
	_ = c.Error(err)
	AbortError(c, http.StatusInternalServerError, "internal error")
}

// BindError answers 400 for a failed ShouldBind*, listing failing fields.
func BindError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		details := make(map[string]string, len(ve))
		for _, fe := range ve {
			details[strings.ToLower(fe.Field())] = fe.Tag()
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, HTTPError{Error: "validation failed", Details: details})
		return
	}
	AbortError(c, http.StatusBadRequest, "invalid json")
}
