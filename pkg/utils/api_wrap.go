package utils

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorPrefix marks user-visible failure text so it cannot be mistaken for a
// normal recommendation document.
const ErrorPrefix = "❌ "

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// UserMessage converts a service error into the text shown to the user.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrLLMCredentialMissing):
		return ErrorPrefix + "Text generation API key not found. Set OPENAI_API_KEY (or GEMINI_API_KEY with LLM_PROVIDER=gemini) in your .env file and restart."
	case errors.Is(err, ErrMapsCredentialMissing):
		return ErrorPrefix + "Google Maps API key not found. Set GOOGLE_MAPS_API_KEY in your .env file and restart."
	case errors.Is(err, ErrCredentialMalformed):
		return ErrorPrefix + "An API key is incorrectly formatted. Make sure it is on a single line without spaces or line breaks."
	case errors.Is(err, ErrInvalidInput):
		return ErrorPrefix + strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": ")
	case errors.Is(err, ErrSessionNotFound):
		return ErrorPrefix + "Session expired or not found. Start a new session."
	case errors.Is(err, ErrInvalidSessionToken):
		return ErrorPrefix + "Session token missing or invalid."
	case errors.Is(err, ErrNoRecommendations):
		return ErrorPrefix + "No recommendations yet. Ask for venue recommendations first."
	case errors.Is(err, ErrSuggestionFailed), errors.Is(err, ErrRecommendationFailed):
		return ErrorPrefix + "Error getting detailed recommendations: " + err.Error()
	default:
		return ErrorPrefix + "Internal server error"
	}
}

func HandleServiceError(c *gin.Context, log *zap.Logger, err error) {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, ErrLLMCredentialMissing), errors.Is(err, ErrMapsCredentialMissing), errors.Is(err, ErrCredentialMalformed):
		code = http.StatusServiceUnavailable
	case errors.Is(err, ErrInvalidInput):
		code = http.StatusBadRequest
	case errors.Is(err, ErrSessionNotFound):
		code = http.StatusNotFound
	case errors.Is(err, ErrInvalidSessionToken):
		code = http.StatusUnauthorized
	case errors.Is(err, ErrNoRecommendations):
		code = http.StatusConflict
	case errors.Is(err, ErrSuggestionFailed), errors.Is(err, ErrRecommendationFailed):
		code = http.StatusBadGateway
	}

	if code >= http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
	}

	RespondError(c, code, UserMessage(err))
}
