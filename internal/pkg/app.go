package pkg

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"irrigation-dashboard/internal/app/config"
	"irrigation-dashboard/internal/app/handler"
	"irrigation-dashboard/internal/app/metrics"
	"irrigation-dashboard/internal/app/middleware"
	"irrigation-dashboard/internal/app/web"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Config *config.Config
	Router *gin.Engine
	Deps   handler.Deps
}

func NewApp(c *config.Config, r *gin.Engine, deps handler.Deps) *App {
	deps.Config = c
	return &App{
		Config: c,
		Router: r,
		Deps:   deps,
	}
}

// Setup регистрирует шаблоны, служебные маршруты и обработчики
func (a *App) Setup() {
	metrics.Init()

	a.Router.Use(middleware.RequestLogger())
	a.Router.SetHTMLTemplate(web.Templates())

	// Swagger UI
	a.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	// Метрики Prometheus
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler.RegisterHandlers(a.Router, a.Deps)
}

// RunApp запускает HTTP сервер и останавливает его по SIGINT/SIGTERM
func (a *App) RunApp() {
	logrus.Info("Server start up")

	a.Setup()

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	server := &http.Server{
		Addr:              serverAddress,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.Infof("Listening on %s", serverAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Error("Failed to shut down server: ", err)
	}
	logrus.Info("Server down")
}
