package middleware

import (
	"context"
	"net/http"
	"strings"

	"irrigation-dashboard/internal/app/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	sessionKey = "session"
	emailKey   = "email"
	loginPath  = "/login"
)

// Sessions находит сессию по идентификатору из cookie
type Sessions interface {
	Get(ctx context.Context, id string) (*session.AuthSession, error)
}

// AuthMiddleware требует сессию и добавляет ее в контекст. Страницы
// перенаправляются на вход, JSON клиенты получают 401.
func AuthMiddleware(sessions Sessions, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := lookup(c, sessions, cookieName)
		if !ok {
			Unauthenticated(c)
			c.Abort()
			return
		}

		setSession(c, sess)
		logrus.Debugf("Session authenticated: %s", sess.Email)

		c.Next()
	}
}

// OptionalAuth добавляет сессию в контекст, если она есть, но не требует ее
func OptionalAuth(sessions Sessions, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess, ok := lookup(c, sessions, cookieName); ok {
			setSession(c, sess)
		}
		c.Next()
	}
}

func lookup(c *gin.Context, sessions Sessions, cookieName string) (*session.AuthSession, bool) {
	id, err := c.Cookie(cookieName)
	if err != nil || id == "" {
		return nil, false
	}
	sess, err := sessions.Get(c.Request.Context(), id)
	if err != nil {
		return nil, false
	}
	return sess, true
}

func setSession(c *gin.Context, sess *session.AuthSession) {
	c.Set(sessionKey, sess)
	c.Set(emailKey, sess.Email)
}

// IsAPI - запрос JSON клиента
func IsAPI(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

// Unauthenticated отвечает на запрос без сессии
func Unauthenticated(c *gin.Context) {
	if IsAPI(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	c.Redirect(http.StatusSeeOther, loginPath)
}
