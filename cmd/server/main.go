package main

//	@title			Tabletop Manager API
//	@version		1.0
//	@description	Campaign management API for tabletop role-playing game spaces.
//	@schemes		http https
//	@BasePath		/api/v1

//  Bearer at user level
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				User access token (e.g., "Bearer eyJhbGciOi...")

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/tabletop-manager/api/internal/bootstrap"
	"github.com/tabletop-manager/api/internal/config"
	"github.com/tabletop-manager/api/internal/infra/cache"
	dbpkg "github.com/tabletop-manager/api/internal/infra/db"
	"github.com/tabletop-manager/api/internal/modules/handler"
	"github.com/tabletop-manager/api/internal/modules/service"
	"github.com/tabletop-manager/api/internal/router"
	"github.com/tabletop-manager/api/internal/telemetry"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// build dependency injection container
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	db := do.MustInvoke[*gorm.DB](inj)
	rdb := do.MustInvoke[*redis.Client](inj)

	if cfg.Auth.JWTSecret == "" {
		log.Sugar().Warn("auth.jwtSecret is empty, every /api/v1 request will be rejected")
	}

	tp, err := telemetry.SetupTracing(cfg)
	if err != nil {
		log.Sugar().Warnw("failed to setup tracing, continuing without tracing", "err", err)
	} else if tp != nil {
		log.Sugar().Infow("OpenTelemetry tracing enabled", "endpoint", cfg.Telemetry.OtlpEndpoint)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := telemetry.Shutdown(ctx); err != nil {
				log.Sugar().Errorw("failed to shutdown tracer", "err", err)
			}
		}()

		if err := dbpkg.RegisterOpenTelemetryPlugin(db); err != nil {
			log.Sugar().Warnw("failed to register GORM OpenTelemetry plugin, continuing without database tracing", "err", err)
		}
		if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
			log.Sugar().Warnw("failed to register Redis OpenTelemetry plugin, continuing without Redis tracing", "err", err)
		}
	}

	// init gin
	gin.SetMode(cfg.App.Env)

	engine := router.NewRouter(router.RouterDeps{
		Config:           cfg,
		Log:              log,
		Roles:            do.MustInvoke[service.GameSpaceService](inj),
		GameSpaceHandler: do.MustInvoke[*handler.GameSpaceHandler](inj),
		ContentHandler:   do.MustInvoke[*handler.ContentHandler](inj),
		CharacterHandler: do.MustInvoke[*handler.CharacterHandler](inj),
		TrackerHandler:   do.MustInvoke[*handler.TrackerHandler](inj),
		ExportHandler:    do.MustInvoke[*handler.ExportHandler](inj),
		EventsHandler:    do.MustInvoke[*handler.EventsHandler](inj),
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	// event streams end when their request context does
	streams, stopStreams := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:        addr,
		Handler:     engine,
		BaseContext: func(net.Listener) context.Context { return streams },
	}
	srv.RegisterOnShutdown(stopStreams)

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr)
		log.Sugar().Infow("swagger url", "url", addr+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}
	if err := inj.Shutdown(); err != nil {
		log.Sugar().Errorw("container shutdown", "err", err)
	}
	log.Sugar().Info("server exited")
}
