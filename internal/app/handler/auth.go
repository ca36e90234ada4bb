package handler

import (
	"errors"
	"net/http"

	"irrigation-dashboard/internal/app/ds"
	"irrigation-dashboard/internal/app/middleware"
	"irrigation-dashboard/internal/app/screens"
	"irrigation-dashboard/internal/app/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const invalidCredentials = "Credenciais inválidas"

type AuthHandler struct {
	sessions *session.Manager
	cookie   string
	secure   bool
	maxAge   int
	home     string
}

func NewAuthHandler(deps Deps) *AuthHandler {
	home := "/"
	if all := deps.Catalog.All(); len(all) > 0 {
		home = screenURL(all[0].Name)
	}
	return &AuthHandler{
		sessions: deps.Sessions,
		cookie:   deps.Config.SessionCookie,
		secure:   deps.Config.CookieSecure,
		maxAge:   int(deps.Config.SessionTTL.Seconds()),
		home:     home,
	}
}

type loginPage struct {
	Email string
	Error string
}

// LoginPage показывает форму входа
func (h *AuthHandler) LoginPage(ctx *gin.Context) {
	if _, ok := middleware.GetSession(ctx); ok {
		ctx.Redirect(http.StatusSeeOther, h.home)
		return
	}
	ctx.HTML(http.StatusOK, "login.html", loginPage{})
}

// Login обменивает учетные данные на токен API и открывает сессию
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req ds.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.HTML(http.StatusBadRequest, "login.html", loginPage{Email: req.Email, Error: invalidCredentials})
		return
	}

	sess, err := h.sessions.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			ctx.HTML(http.StatusUnauthorized, "login.html", loginPage{Email: req.Email, Error: invalidCredentials})
			return
		}
		logrus.Error("Failed to login: ", err)
		ctx.HTML(http.StatusBadGateway, "login.html", loginPage{Email: req.Email, Error: screens.Message(err)})
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(h.cookie, sess.ID, h.maxAge, "/", "", h.secure, true)
	ctx.Redirect(http.StatusSeeOther, h.home)
}

// Logout завершает сессию и все состояния экранов
func (h *AuthHandler) Logout(ctx *gin.Context) {
	if sess, ok := middleware.GetSession(ctx); ok {
		if err := h.sessions.Logout(ctx.Request.Context(), sess.ID); err != nil {
			logrus.Error("Failed to delete session: ", err)
		}
	}
	ctx.SetCookie(h.cookie, "", -1, "/", "", h.secure, true)
	ctx.Redirect(http.StatusSeeOther, "/login")
}
