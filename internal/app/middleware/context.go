package middleware

import (
	"irrigation-dashboard/internal/app/session"

	"github.com/gin-gonic/gin"
)

// GetSession возвращает сессию из контекста
func GetSession(c *gin.Context) (*session.AuthSession, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := value.(*session.AuthSession)
	return sess, ok
}

// GetEmail возвращает e-mail пользователя из контекста
func GetEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(emailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}
