package utils

import (
	"time"

	"irrigation-dashboard/internal/app/ds"

	"github.com/golang-jwt/jwt"
)

// ParseClaims читает поля токена без проверки подписи: секрет знает только API
func ParseClaims(tokenString string) (*ds.JWTClaims, error) {
	claims := &ds.JWTClaims{}
	if _, _, err := (&jwt.Parser{}).ParseUnverified(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// TokenExpiry возвращает срок действия токена, если он в нем указан
func TokenExpiry(tokenString string) (time.Time, bool) {
	claims, err := ParseClaims(tokenString)
	if err != nil || claims.ExpiresAt == 0 {
		return time.Time{}, false
	}
	return time.Unix(claims.ExpiresAt, 0).UTC(), true
}
