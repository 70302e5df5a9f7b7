package db

import (
	"time"

	"github.com/tabletop-manager/api/internal/config"
	"github.com/tabletop-manager/api/internal/modules/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

func New(cfg *config.Config) (*gorm.DB, error) {
	d, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := d.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpen)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdle)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return d, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(d *gorm.DB) error {
	return d.AutoMigrate(model.All()...)
}

// RegisterOpenTelemetryPlugin must run after the global tracer provider is set.
func RegisterOpenTelemetryPlugin(d *gorm.DB) error {
	return d.Use(tracing.NewPlugin(tracing.WithoutMetrics()))
}
