package main

import (
	"irrigation-dashboard/internal/app/config"
	"irrigation-dashboard/internal/app/gateway"
	"irrigation-dashboard/internal/app/handler"
	"irrigation-dashboard/internal/app/redis"
	"irrigation-dashboard/internal/app/repository"
	"irrigation-dashboard/internal/app/screens"
	"irrigation-dashboard/internal/app/selector"
	"irrigation-dashboard/internal/app/session"
	"irrigation-dashboard/internal/pkg"

	_ "irrigation-dashboard/docs" // Важно: добавляем импорт docs

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// @title Irrigation Dashboard API
// @version 1.0
// @description JSON view of the irrigation operations dashboard screens. Authentication uses the session cookie issued by POST /login.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name irrigation_session

// @tag.name Screens
// @tag.description Paginated screen lists with filter-scoped reset
// @tag.name Health
// @tag.description Irrigation API availability
// @tag.name Audit
// @tag.description Actions issued through the dashboard
func main() {
	router := gin.Default()

	// Загружаем конфигурацию
	conf, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}

	// Клиент удаленного API
	api, err := gateway.NewClient(conf.APIBaseURL, conf.APITimeout)
	if err != nil {
		logrus.Fatalf("error creating API client: %v", err)
	}

	// Инициализируем репозиторий
	repo, err := repository.NewRepository(conf)
	if err != nil {
		logrus.Fatalf("error initializing repository: %v", err)
	}
	defer repo.Close()

	// Redis хранит сессии и общий кэш вариантов; без него все живет в памяти процесса
	var (
		sessionStore session.Store
		optionCache  selector.OptionCache = selector.NewMemoryCache()
	)
	redisClient, err := redis.NewClient(conf)
	if err != nil {
		logrus.Warnf("Failed to initialize Redis client: %v", err)
	} else {
		defer redisClient.Close()
		sessionStore = redis.NewSessionStore(redisClient)
		optionCache = redis.NewOptionCache(redisClient)
	}

	deps := handler.Deps{
		Sessions: session.NewManager(api, sessionStore, conf.SessionTTL),
		API:      api,
		Catalog:  screens.DefaultCatalog(),
		Settings: screens.Settings{
			PageSize:    conf.PageSize,
			OptionTTL:   conf.OptionsTTL,
			OptionCache: optionCache,
			Location:    conf.DisplayLocation(),
		},
		Health: gateway.NewHealthProbe(api, conf.HealthTTL),
		Repo:   repo,
	}

	// Создаем приложение с конфигурацией
	application := pkg.NewApp(conf, router, deps)

	// Запускаем приложение
	application.RunApp()
}
