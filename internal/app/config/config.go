package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int

	// Удаленный REST API платформы ирригации
	APIBaseURL string
	APITimeout time.Duration

	// Параметры экранов
	PageSize       int
	OptionsTTL     time.Duration
	HealthTTL      time.Duration
	DisplayTZName  string
	DisplayTZHours int

	// Сессии
	SessionTTL    time.Duration
	SessionCookie string
	CookieSecure  bool

	// Redis Configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Postgres для журнала действий (пустой DSN отключает журнал)
	DatabaseDSN string

	// MinIO для фотографий станций
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

const (
	defaultPageSize   = 15
	defaultAPITimeout = 15 * time.Second
	defaultOptionsTTL = 120 * time.Second
	defaultHealthTTL  = 10 * time.Second
	defaultSessionTTL = 12 * time.Hour
)

func NewConfig() (*Config, error) {
	// Загружаем .env файл
	_ = godotenv.Load()

	configName := "config"
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	return Load(configName, "config", ".")
}

// Load читает TOML конфигурацию из первого найденного пути и дополняет ее
// значениями из окружения.
func Load(configName string, paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetDefault("ServiceHost", "0.0.0.0")
	v.SetDefault("ServicePort", 8080)
	v.SetDefault("APIBaseURL", "http://localhost:3000")
	v.SetDefault("APITimeout", defaultAPITimeout)
	v.SetDefault("PageSize", defaultPageSize)
	v.SetDefault("OptionsTTL", defaultOptionsTTL)
	v.SetDefault("HealthTTL", defaultHealthTTL)
	v.SetDefault("DisplayTZName", "America/Sao_Paulo")
	v.SetDefault("DisplayTZHours", -3)
	v.SetDefault("SessionTTL", defaultSessionTTL)
	v.SetDefault("SessionCookie", "irrigation_session")
	v.SetDefault("MinioBucket", "station-photos")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		log.Warn("config file not found, using defaults")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// Адрес API можно переопределить из .env
	cfg.APIBaseURL = strings.TrimRight(getEnv("API_BASE_URL", cfg.APIBaseURL), "/")
	if exp := os.Getenv("API_TIMEOUT"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			cfg.APITimeout = parsed
		}
	}
	if exp := os.Getenv("SESSION_TTL"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			cfg.SessionTTL = parsed
		}
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	cfg.CookieSecure = getEnv("COOKIE_SECURE", "") == "true" || cfg.CookieSecure

	// Redis конфигурация из .env
	cfg.RedisHost = getEnv("REDIS_HOST", defaultString(cfg.RedisHost, "localhost"))
	cfg.RedisPort = getEnv("REDIS_PORT", defaultString(cfg.RedisPort, "6379"))
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			cfg.RedisDB = db
		}
	}

	cfg.DatabaseDSN = getEnv("DATABASE_DSN", cfg.DatabaseDSN)

	cfg.MinioEndpoint = getEnv("MINIO_ENDPOINT", cfg.MinioEndpoint)
	cfg.MinioAccessKey = getEnv("MINIO_ACCESS_KEY", cfg.MinioAccessKey)
	cfg.MinioSecretKey = getEnv("MINIO_SECRET_KEY", cfg.MinioSecretKey)
	cfg.MinioBucket = getEnv("MINIO_BUCKET", cfg.MinioBucket)
	cfg.MinioUseSSL = getEnv("MINIO_USE_SSL", "") == "true" || cfg.MinioUseSSL

	log.Info("config parsed")

	return cfg, nil
}

// DisplayLocation возвращает фиксированную зону отображения (без летнего времени)
func (c *Config) DisplayLocation() *time.Location {
	return time.FixedZone(c.DisplayTZName, c.DisplayTZHours*3600)
}

// getEnv вспомогательная функция для получения environment variables
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
