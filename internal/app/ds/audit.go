package ds

import (
	"time"

	"gorm.io/gorm"
)

// ActionLog - запись журнала изменений, выполненных через дашборд
type ActionLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Actor      string    `gorm:"type:varchar(255) not null;index:idx_action_logs_actor" json:"actor"`
	Screen     string    `gorm:"type:varchar(64) not null" json:"screen"`
	Action     string    `gorm:"type:varchar(32) not null" json:"action"`
	ResourceID string    `gorm:"type:varchar(64)" json:"resource_id"`
	Outcome    string    `gorm:"type:varchar(64) not null" json:"outcome"`
	CreatedAt  time.Time `gorm:"not null;index:idx_action_logs_created_at" json:"created_at"`
}

// CreateActionLogIndexes создает составные индексы для выборок по экрану
func CreateActionLogIndexes(db *gorm.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_action_logs_screen_created
		 ON action_logs (screen, created_at DESC)`,
	}

	for _, sql := range indexes {
		if err := db.Exec(sql).Error; err != nil {
			return err
		}
	}

	return nil
}
