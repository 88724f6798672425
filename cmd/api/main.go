package main

import (
    "context"
    "errors"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/getsentry/sentry-go"
    "go.uber.org/zap"

    "github.com/shanikumar001/project-gallery-backend/config"
    "github.com/shanikumar001/project-gallery-backend/internal/api/handler"
    "github.com/shanikumar001/project-gallery-backend/internal/api/router"
    "github.com/shanikumar001/project-gallery-backend/internal/repository"
    "github.com/shanikumar001/project-gallery-backend/internal/service"
    "github.com/shanikumar001/project-gallery-backend/pkg/cache"
    "github.com/shanikumar001/project-gallery-backend/pkg/database"
    "github.com/shanikumar001/project-gallery-backend/pkg/logger"
    "github.com/shanikumar001/project-gallery-backend/pkg/otp"
    "github.com/shanikumar001/project-gallery-backend/pkg/telemetry"
)

// @title Project Gallery API
// @version 1.0
// @description Social project gallery backend: users, follows, connections, messages.
// @BasePath /api/v1
func main() {
    cfg, err := config.Load()
    if err != nil {
        panic(err)
    }
    if err := logger.Init(&cfg.Log); err != nil {
        panic(err)
    }
    defer logger.Sync()

    if cfg.Sentry.DSN != "" {
        if err := sentry.Init(sentry.ClientOptions{
            Dsn:              cfg.Sentry.DSN,
            Environment:      cfg.Sentry.Environment,
            TracesSampleRate: cfg.Sentry.SampleRate,
        }); err != nil {
            logger.Warn("sentry init failed", zap.Error(err))
        }
        defer sentry.Flush(2 * time.Second)
    }

    ctx := context.Background()
    shutdownTracing, err := telemetry.Init(ctx, &cfg.Telemetry)
    if err != nil {
        logger.Fatal("telemetry init failed", zap.Error(err))
    }

    db, err := database.InitDB(cfg)
    if err != nil {
        logger.Fatal("database init failed", zap.Error(err))
    }

    rdb, err := cache.InitRedis(&cfg.Redis)
    if err != nil {
        logger.Fatal("redis init failed", zap.Error(err))
    }

    // repositories
    userRepo := repository.NewUserRepository(db)
    followRepo := repository.NewFollowRepository(db)
    requestRepo := repository.NewFollowRequestRepository(db)
    connRepo := repository.NewConnectionRepository(db)
    msgRepo := repository.NewMessageRepository(db)
    projectRepo := repository.NewProjectRepository(db)

    // services
    sender := service.NewSMTPSender(&cfg.SMTP)
    mailQueue := service.NewMailQueue(sender, 1024)
    stopMail := mailQueue.Start(2)

    otpStore := otp.NewStore(rdb, cfg.OTP.TTL, cfg.OTP.Digits)
    unreadCache := service.NewUnreadCache(rdb, 5*time.Minute)

    authSvc := service.NewAuthService(userRepo, otpStore, mailQueue, &cfg.JWT)
    relSvc := service.NewRelationshipService(db, userRepo, followRepo, requestRepo, connRepo)
    msgSvc := service.NewMessageService(db, msgRepo, userRepo, unreadCache)
    convSvc := service.NewConversationService(msgRepo, userRepo, unreadCache)
    projectSvc := service.NewProjectService(projectRepo)

    h := handler.New(authSvc, relSvc, msgSvc, convSvc, projectSvc, userRepo, followRepo)
    engine := router.New(cfg, h)

    srv := &http.Server{Addr: cfg.Server.Addr(), Handler: engine}
    go func() {
        logger.Info("http server listening", zap.String("addr", cfg.Server.Addr()))
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            logger.Fatal("http server failed", zap.Error(err))
        }
    }()

    quit := make(chan os.Signal, 1)
    signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
    <-quit
    logger.Info("shutting down")

    shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
    defer cancel()
    _ = srv.Shutdown(shutdownCtx)
    _ = stopMail(shutdownCtx)
    _ = shutdownTracing(shutdownCtx)
}
