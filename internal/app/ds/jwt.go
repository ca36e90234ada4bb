package ds

import (
	"github.com/golang-jwt/jwt"
)

// JWTClaims - поля токена, выданного удаленным API. Подпись проверяет API,
// дашборд читает только срок действия и пользователя.
type JWTClaims struct {
	jwt.StandardClaims
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
