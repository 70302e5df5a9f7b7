package bootstrap

import (
	"context"
	"time"

	"github.com/tabletop-manager/api/internal/config"
	"github.com/tabletop-manager/api/internal/infra/blob"
	"github.com/tabletop-manager/api/internal/infra/cache"
	"github.com/tabletop-manager/api/internal/infra/db"
	"github.com/tabletop-manager/api/internal/infra/logger"
	"github.com/tabletop-manager/api/internal/infra/queue"
	"github.com/tabletop-manager/api/internal/modules/handler"
	"github.com/tabletop-manager/api/internal/modules/repo"
	"github.com/tabletop-manager/api/internal/modules/service"
	"github.com/tabletop-manager/api/internal/realtime"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := db.Migrate(d); err != nil {
				return nil, err
			}
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		return cache.New(do.MustInvoke[*config.Config](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (realtime.Bus, error) {
		return realtime.NewRedisBus(do.MustInvoke[*redis.Client](i), do.MustInvoke[*zap.Logger](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (cache.ActiveSpaceStore, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.NewActiveSpaceStore(do.MustInvoke[*redis.Client](i), cfg.Redis.ActiveSpacePrefix), nil
	})

	// RabbitMQ. Without a URL recalculation requests are only logged.
	do.Provide(inj, func(i *do.Injector) (service.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.RabbitMQ.URL == "" {
			return nil, nil
		}
		conn, err := amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			return nil, err
		}
		return queue.NewPublisher(conn, cfg.RabbitMQ.RecalcQueue, do.MustInvoke[*zap.Logger](i))
	})

	// S3. Without a bucket exports are disabled.
	do.Provide(inj, func(i *do.Injector) (service.ObjectStore, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.S3.Bucket == "" {
			return nil, nil
		}
		return blob.NewS3(context.Background(), cfg)
	})
	// get presign expire duration
	do.Provide(inj, func(i *do.Injector) (func() time.Duration, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return func() time.Duration {
			if cfg.S3.PresignExpireSec <= 0 {
				return 15 * time.Minute
			}
			return time.Duration(cfg.S3.PresignExpireSec) * time.Second
		}, nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.GameSpaceRepo, error) {
		return repo.NewGameSpaceRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ContentRepos, error) {
		d := do.MustInvoke[*gorm.DB](i)
		return service.ContentRepos{
			TextSections: repo.NewTextSectionRepo(d),
			Skills:       repo.NewSkillRepo(d),
			Classes:      repo.NewCharacterClassRepo(d),
			Attributes:   repo.NewDynamicAttributeRepo(d),
			Calculations: repo.NewAttributeCalculationRepo(d),
			Dependencies: repo.NewFormulaDependencyRepo(d),
			Sections:     repo.NewCustomSectionRepo(d),
			Values:       repo.NewCalculatedValueRepo(d),
		}, nil
	})
	do.Provide(inj, func(i *do.Injector) (service.CharacterRepos, error) {
		d := do.MustInvoke[*gorm.DB](i)
		return service.CharacterRepos{
			Characters:  repo.NewCharacterRepo(d),
			Assignments: repo.NewClassAssignmentRepo(d),
			Values:      repo.NewCalculatedValueRepo(d),
			Classes:     repo.NewCharacterClassRepo(d),
			Templates:   repo.NewCreationTemplateRepo(d),
		}, nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.GameSpaceService, error) {
		return service.NewGameSpaceService(
			do.MustInvoke[repo.GameSpaceRepo](i),
			do.MustInvoke[cache.ActiveSpaceStore](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ContentService, error) {
		return service.NewContentService(do.MustInvoke[service.ContentRepos](i), do.MustInvoke[*zap.Logger](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.CharacterService, error) {
		return service.NewCharacterService(
			do.MustInvoke[service.CharacterRepos](i),
			do.MustInvoke[realtime.Bus](i),
			do.MustInvoke[service.Publisher](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TrackerService, error) {
		d := do.MustInvoke[*gorm.DB](i)
		return service.NewTrackerService(
			repo.NewGameSpaceOptionRepo(d),
			repo.NewGameSessionRepo(d),
			do.MustInvoke[realtime.Bus](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ExportService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewExportService(
			do.MustInvoke[service.GameSpaceService](i),
			do.MustInvoke[service.ContentService](i),
			do.MustInvoke[service.CharacterService](i),
			do.MustInvoke[service.ObjectStore](i),
			cfg.S3.ExportPrefix,
			do.MustInvoke[func() time.Duration](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.GameSpaceHandler, error) {
		return handler.NewGameSpaceHandler(do.MustInvoke[service.GameSpaceService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ContentHandler, error) {
		return handler.NewContentHandler(do.MustInvoke[service.ContentService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.CharacterHandler, error) {
		return handler.NewCharacterHandler(do.MustInvoke[service.CharacterService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TrackerHandler, error) {
		return handler.NewTrackerHandler(do.MustInvoke[service.TrackerService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ExportHandler, error) {
		return handler.NewExportHandler(do.MustInvoke[service.ExportService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.EventsHandler, error) {
		return handler.NewEventsHandler(
			do.MustInvoke[realtime.Bus](i),
			do.MustInvoke[service.CharacterService](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	return inj
}
