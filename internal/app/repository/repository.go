package repository

import (
	"context"
	"fmt"

	"irrigation-dashboard/internal/app/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Repository - локальные хранилища дашборда. Данные платформы живут в
// удаленном API, здесь только журнал изменений и фотографии станций.
type Repository struct {
	db     *gorm.DB
	Audit  *AuditRepository
	Photos *PhotoRepository
}

func NewRepository(cfg *config.Config) (*Repository, error) {
	repo := &Repository{}

	// Инициализируем базу данных журнала
	if cfg.DatabaseDSN != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open audit database: %w", err)
		}
		repo.db = db
		logrus.Info("Audit database initialized successfully")
	} else {
		logrus.Warn("DATABASE_DSN is not set, audit log is disabled")
	}
	repo.Audit = NewAuditRepository(repo.db)

	// Инициализируем MinIO клиент
	if cfg.MinioEndpoint != "" {
		minioClient, err := InitMinIOClient(cfg)
		if err != nil {
			return nil, err
		}
		repo.Photos = NewPhotoRepository(minioClient, cfg.MinioBucket)
	} else {
		logrus.Warn("MINIO_ENDPOINT is not set, station photos are disabled")
		repo.Photos = NewPhotoRepository(nil, cfg.MinioBucket)
	}

	return repo, nil
}

// DB возвращает соединение журнала или nil
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// Close закрывает все соединения
func (r *Repository) Close() {
	if r.db == nil {
		return
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logrus.Errorf("Error closing audit database: %v", err)
	}
}

// InitMinIOClient подключается к MinIO и создает bucket, если его нет
func InitMinIOClient(cfg *config.Config) (*minio.Client, error) {
	minioClient, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %v", err)
	}

	ctx := context.Background()

	// Создаем bucket если не существует
	exists, err := minioClient.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %v", err)
	}

	if !exists {
		err = minioClient.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %v", err)
		}
	}

	logrus.Info("MinIO client initialized successfully")
	return minioClient, nil
}
