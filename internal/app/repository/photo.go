package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
)

const maxPhotoSize = 5 << 20

var (
	ErrPhotosDisabled = errors.New("repository: photo storage is not configured")
	ErrPhotoNotFound  = errors.New("repository: photo not found")
	ErrPhotoTooLarge  = errors.New("repository: photo is too large")
	ErrNotAnImage     = errors.New("repository: file is not an image")
)

// PhotoRepository хранит фотографии станций мониторинга в MinIO
type PhotoRepository struct {
	minioClient *minio.Client
	bucket      string
}

func NewPhotoRepository(minioClient *minio.Client, bucket string) *PhotoRepository {
	return &PhotoRepository{minioClient: minioClient, bucket: bucket}
}

func (r *PhotoRepository) Enabled() bool {
	return r != nil && r.minioClient != nil
}

// Photo - открытый объект фотографии
type Photo struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

func objectName(stationID string) string {
	return "station_" + stationID
}

// PutStationPhoto заменяет фотографию станции
func (r *PhotoRepository) PutStationPhoto(ctx context.Context, stationID string, fileHeader *multipart.FileHeader) error {
	if !r.Enabled() {
		return ErrPhotosDisabled
	}
	if fileHeader.Size > maxPhotoSize {
		return ErrPhotoTooLarge
	}
	contentType := ContentTypeOf(fileHeader.Filename)
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotAnImage
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = r.minioClient.PutObject(ctx, r.bucket, objectName(stationID), file, fileHeader.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload station photo: %w", err)
	}
	return nil
}

// GetStationPhoto открывает фотографию станции. Body закрывает вызывающий.
func (r *PhotoRepository) GetStationPhoto(ctx context.Context, stationID string) (*Photo, error) {
	if !r.Enabled() {
		return nil, ErrPhotosDisabled
	}

	info, err := r.minioClient.StatObject(ctx, r.bucket, objectName(stationID), minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).StatusCode == http.StatusNotFound {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}

	object, err := r.minioClient.GetObject(ctx, r.bucket, objectName(stationID), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return &Photo{Body: object, Size: info.Size, ContentType: info.ContentType}, nil
}

// DeleteStationPhoto удаляет фотографию; отсутствие фотографии не ошибка
func (r *PhotoRepository) DeleteStationPhoto(ctx context.Context, stationID string) error {
	if !r.Enabled() {
		return nil
	}
	err := r.minioClient.RemoveObject(ctx, r.bucket, objectName(stationID), minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object from MinIO: %v", err)
	}
	logrus.Infof("Deleted photo of station %s", stationID)
	return nil
}

// ContentTypeOf определяет тип изображения по расширению файла
func ContentTypeOf(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
