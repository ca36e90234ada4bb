package repository

import (
	"context"
	"time"

	"irrigation-dashboard/internal/app/ds"

	"gorm.io/gorm"
)

// AuditRepository пишет журнал изменений. Без базы все вызовы ничего не делают.
type AuditRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db, now: time.Now}
}

// Enabled сообщает, подключена ли база
func (r *AuditRepository) Enabled() bool {
	return r != nil && r.db != nil
}

// Log добавляет запись журнала
func (r *AuditRepository) Log(ctx context.Context, entry ds.ActionLog) error {
	if !r.Enabled() {
		return nil
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.now().UTC()
	}
	return r.db.WithContext(ctx).Create(&entry).Error
}

// Recent возвращает последние записи, при screen != "" только для экрана
func (r *AuditRepository) Recent(ctx context.Context, screen string, limit int) ([]ds.ActionLog, error) {
	if !r.Enabled() {
		return []ds.ActionLog{}, nil
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := r.db.WithContext(ctx).Model(&ds.ActionLog{})
	if screen != "" {
		query = query.Where("screen = ?", screen)
	}

	var entries []ds.ActionLog
	if err := query.Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
