// Package database 提供 MySQL 连接、GORM 实例、表结构迁移与初始数据。
package database

import (
	"strings"
	"time"

	"github.com/NabievDev/NewPeople-sub000/internal/model"
	"github.com/NabievDev/NewPeople-sub000/pkg/log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"moul.io/zapgorm2"
)

// DB 全局 GORM 数据库实例，在 InitMySQL 成功后可用。
var DB *gorm.DB

// InitMySQL 根据 DSN 连接 MySQL 并初始化全局 DB。
// SQL 日志通过 zapgorm2 写入 pkg/log 的 zap logger；失败时调用 log.Fatal 退出进程。
func InitMySQL(dsn, logLevel string) {
	gormLogger := zapgorm2.New(log.GetLogger())
	gormLogger.SetAsDefault()
	gormLogger.LogLevel = parseGormLogLevel(logLevel)
	gormLogger.SlowThreshold = 200 * time.Millisecond
	gormLogger.IgnoreRecordNotFoundError = true

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		log.Fatal("Failed to connect to MySQL", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("Failed to get SQL DB", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("MySQL initialized successfully")
}

func parseGormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// RunMigrate 自动迁移所有业务表。
func RunMigrate(db *gorm.DB) error {
	log.Info("Running migrations...")

	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Tag{},
		&model.StatusConfig{},
		&model.Appeal{},
		&model.Comment{},
	); err != nil {
		log.Errorf("Failed to run migrations: %v", err)
		return err
	}

	log.Info("Migrations completed successfully")
	return nil
}
