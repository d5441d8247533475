package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"ppf-order-backend/internal/auth"
	"ppf-order-backend/internal/models"
)

const (
	UserIDKey  = "user_id"
	SessionKey = "session"
)

// SessionValidator resolves a bearer token to the admin session it belongs to.
type SessionValidator interface {
	Validate(accessToken string) (*auth.Session, error)
}

// RequireSession admits only requests carrying the current admin session's
// access token. Denials carry no detail.
func RequireSession(validator SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			deny(c)
			return
		}

		session, err := validator.Validate(token)
		if err != nil {
			deny(c)
			return
		}

		c.Set(SessionKey, session)
		c.Set(UserIDKey, session.UserID)
		c.Next()
	}
}

// SessionFrom returns the session stored by RequireSession.
func SessionFrom(c *gin.Context) (*auth.Session, bool) {
	v, exists := c.Get(SessionKey)
	if !exists {
		return nil, false
	}
	session, ok := v.(*auth.Session)
	return session, ok
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	// Some clients URL-encode the token.
	if decoded, err := url.QueryUnescape(token); err == nil {
		token = decoded
	}
	return token, true
}

func deny(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: models.ErrUnauthorized.Error()})
}
