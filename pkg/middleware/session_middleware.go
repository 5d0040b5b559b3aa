package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"meetup/pkg/utils"
)

const (
	SessionIDKey       = "session_id"
	SessionTokenHeader = "X-Session-Token"
)

// SessionResolver turns a bearer token into a live session id.
type SessionResolver interface {
	Resolve(token string) (string, error)
}

func sessionToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.GetHeader(SessionTokenHeader)
}

func SessionMiddleware(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, utils.UserMessage(utils.ErrInvalidSessionToken))
			c.Abort()
			return
		}

		sessionID, err := sessions.Resolve(token)
		if err != nil {
			code := http.StatusUnauthorized
			if errors.Is(err, utils.ErrSessionNotFound) {
				code = http.StatusNotFound
			}
			utils.RespondError(c, code, utils.UserMessage(err))
			c.Abort()
			return
		}

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}
