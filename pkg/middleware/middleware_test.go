package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"meetup/pkg/utils"
)

type stubResolver map[string]error

func (s stubResolver) Resolve(token string) (string, error) {
	if err, ok := s[token]; ok {
		return "", err
	}
	return "sid-" + token, nil
}

func newTestRouter(resolver SessionResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware(), CORSMiddleware([]string{"*"}))
	r.GET("/open", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("trace_id"))
	})
	r.GET("/private", SessionMiddleware(resolver), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(SessionIDKey))
	})
	return r
}

func TestTraceIDMiddleware(t *testing.T) {
	r := newTestRouter(stubResolver{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	assert.NotEmpty(t, w.Header().Get(TraceIDHeader))
	assert.Equal(t, w.Header().Get(TraceIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set(TraceIDHeader, "caller-trace")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "caller-trace", w.Body.String())
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := newTestRouter(stubResolver{})

	req := httptest.NewRequest(http.MethodOptions, "/open", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSessionMiddleware(t *testing.T) {
	r := newTestRouter(stubResolver{
		"expired": utils.ErrInvalidSessionToken,
		"ended":   utils.ErrSessionNotFound,
		"wrapped": errors.Join(errors.New("lookup"), utils.ErrSessionNotFound),
	})

	tests := []struct {
		name   string
		header string
		value  string
		code   int
		body   string
	}{
		{name: "bearer", header: "Authorization", value: "Bearer abc", code: http.StatusOK, body: "sid-abc"},
		{name: "session header", header: SessionTokenHeader, value: "xyz", code: http.StatusOK, body: "sid-xyz"},
		{name: "missing", code: http.StatusUnauthorized},
		{name: "not bearer", header: "Authorization", value: "Basic abc", code: http.StatusUnauthorized},
		{name: "invalid", header: "Authorization", value: "Bearer expired", code: http.StatusUnauthorized},
		{name: "ended", header: "Authorization", value: "Bearer ended", code: http.StatusNotFound},
		{name: "wrapped not found", header: "Authorization", value: "Bearer wrapped", code: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}
