package handler

import (
	"context"

	"irrigation-dashboard/internal/app/config"
	"irrigation-dashboard/internal/app/gateway"
	"irrigation-dashboard/internal/app/middleware"
	"irrigation-dashboard/internal/app/repository"
	"irrigation-dashboard/internal/app/screens"
	"irrigation-dashboard/internal/app/session"

	"github.com/gin-gonic/gin"
)

// HealthChecker - индикатор доступности API
type HealthChecker interface {
	Check(ctx context.Context) gateway.Health
}

// Deps - зависимости обработчиков
type Deps struct {
	Config   *config.Config
	Sessions *session.Manager
	API      screens.API
	Catalog  *screens.Catalog
	Settings screens.Settings
	Health   HealthChecker
	Repo     *repository.Repository
}

// RegisterHandlers регистрирует все обработчики
func RegisterHandlers(router *gin.Engine, deps Deps) {
	cookie := deps.Config.SessionCookie

	// Создаем хендлеры
	authHandler := NewAuthHandler(deps)
	screenHandler := NewScreenHandler(deps)
	healthHandler := NewHealthHandler(deps.Health)
	var audits *repository.AuditRepository
	if deps.Repo != nil {
		audits = deps.Repo.Audit
	}
	auditHandler := NewAuditHandler(audits)

	// Public routes - доступны без аутентификации
	public := router.Group("")
	public.Use(middleware.OptionalAuth(deps.Sessions, cookie))
	{
		public.GET("/login", authHandler.LoginPage)
		public.POST("/login", authHandler.Login)
		public.GET("/health", healthHandler.GetHealth)
	}

	// Protected routes - требуют сессии
	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Sessions, cookie))
	{
		protected.GET("/", screenHandler.Index)
		protected.POST("/logout", authHandler.Logout)

		// Экраны
		protected.GET("/screens/:screen", screenHandler.Page)
		protected.POST("/screens/:screen/more", screenHandler.More)
		protected.POST("/screens/:screen/refresh", screenHandler.Refresh)

		// Действия над записями
		protected.POST("/screens/:screen/records", screenHandler.CreateRecord)
		protected.POST("/screens/:screen/records/:id", screenHandler.UpdateRecord)
		protected.POST("/screens/:screen/records/:id/delete", screenHandler.DeleteRecord)
		protected.POST("/screens/:screen/records/:id/photo", screenHandler.UploadPhoto)
		protected.GET("/stations/:id/photo", screenHandler.GetPhoto)
	}

	apiRouter := router.Group("/api")
	apiRouter.Use(middleware.AuthMiddleware(deps.Sessions, cookie))
	{
		apiRouter.GET("/screens", screenHandler.ListScreensJSON)
		apiRouter.GET("/screens/:screen", screenHandler.GetScreenJSON)
		apiRouter.POST("/screens/:screen/more", screenHandler.MoreJSON)
		apiRouter.POST("/screens/:screen/refresh", screenHandler.RefreshJSON)
		apiRouter.GET("/audit", auditHandler.GetAudit)
	}
}
