package utils

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success   bool        `json:"success"`
	Code      int         `json:"code"`
	Message   string      `json:"message,omitempty"`
	TraceID   string      `json:"trace_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	traceID := c.GetString("trace_id")
	c.JSON(http.StatusOK, APIResponse{
		Success:   true,
		Code:      http.StatusOK,
		Message:   message,
		TraceID:   traceID,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func RespondError(c *gin.Context, code int, message string) {
	traceID := c.GetString("trace_id")
	c.JSON(code, APIResponse{
		Success:   false,
		Code:      code,
		Message:   message,
		TraceID:   traceID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleServiceError maps service sentinel errors onto HTTP status codes.
// Persistence failures are logged with context and surfaced as a plain 500.
func HandleServiceError(c *gin.Context, err error) {
	var incomplete *IncompleteSessionError
	if errors.As(err, &incomplete) {
		RespondError(c, http.StatusConflict,
			fmt.Sprintf("Session incomplete: %d mandatory questions unanswered", incomplete.Missing))
		return
	}

	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrValueOutOfRange),
		errors.Is(err, ErrTypeMismatch),
		errors.Is(err, ErrInvalidQuestionKind),
		errors.Is(err, ErrInvalidAreaWeight):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDiagnosticTypeNotFound),
		errors.Is(err, ErrAreaNotFound),
		errors.Is(err, ErrQuestionNotFound),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrProfileNotFound),
		errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrRuleNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotSessionOwner),
		errors.Is(err, ErrNotProfileOwner):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrSessionNotInProgress),
		errors.Is(err, ErrSessionNotCompleted),
		errors.Is(err, ErrSessionAlreadyFinished),
		errors.Is(err, ErrTypeInactive),
		errors.Is(err, ErrTypeInUse):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
