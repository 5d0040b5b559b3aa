package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err  error
		code int
	}{
		{ErrLLMCredentialMissing, http.StatusServiceUnavailable},
		{fmt.Errorf("OPENAI_API_KEY: %w", ErrCredentialMalformed), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: activity is required", ErrInvalidInput), http.StatusBadRequest},
		{ErrSessionNotFound, http.StatusNotFound},
		{ErrInvalidSessionToken, http.StatusUnauthorized},
		{ErrNoRecommendations, http.StatusConflict},
		{fmt.Errorf("%w: upstream", ErrSuggestionFailed), http.StatusBadGateway},
		{fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Set("trace_id", "trace-1")

			HandleServiceError(c, zap.NewNop(), tt.err)

			assert.Equal(t, tt.code, w.Code)
			var resp APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, "trace-1", resp.TraceID)
			assert.True(t, strings.HasPrefix(resp.Message, ErrorPrefix), resp.Message)
		})
	}
}

func TestUserMessage_InvalidInputCarriesDetail(t *testing.T) {
	msg := UserMessage(fmt.Errorf("%w: please fill in all starting locations", ErrInvalidInput))
	assert.Equal(t, "❌ please fill in all starting locations", msg)
}
