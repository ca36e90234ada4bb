package main

import (
	"fmt"
	"log"
	"time"

	"irrigation-dashboard/internal/app/config"
	"irrigation-dashboard/internal/app/ds"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Получаем параметры подключения из .env и конфига
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN is not set")
	}

	fmt.Println("=== Audit Log Migration ===")

	// Подключение к базе данных
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	startTime := time.Now()

	// 1. Проверяем подключение
	fmt.Println("1. Checking database connection...")
	var result int
	db.Raw("SELECT 1").Scan(&result)
	if result == 1 {
		fmt.Println("   ✓ Database connection successful")
	} else {
		log.Fatal("   ✗ Database connection failed")
	}

	// 2. Создаем таблицу action_logs
	fmt.Println("2. Creating action_logs table...")
	if err := db.AutoMigrate(&ds.ActionLog{}); err != nil {
		log.Fatal("Failed to migrate action_logs table:", err)
	}
	fmt.Println("   ✓ Table 'action_logs' created/verified")

	// 3. Создаем индексы для выборок по экрану
	fmt.Println("3. Creating indexes...")
	if err := ds.CreateActionLogIndexes(db); err != nil {
		log.Printf("   ⚠️  Indexes: %v", err)
	} else {
		fmt.Println("   ✓ Indexes created")
	}

	// 4. Проверяем данные
	fmt.Println("4. Checking data...")
	var total int64
	db.Model(&ds.ActionLog{}).Count(&total)
	fmt.Printf("   Total entries: %d\n", total)

	fmt.Println("\n=== Migration Completed ===")
	fmt.Printf("Total time: %v\n", time.Since(startTime))
}
