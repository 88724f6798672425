package main

import (
    "context"
    "os"
    "os/signal"
    "syscall"
    "time"

    "go.uber.org/zap"

    "github.com/shanikumar001/project-gallery-backend/config"
    "github.com/shanikumar001/project-gallery-backend/internal/service"
    "github.com/shanikumar001/project-gallery-backend/pkg/database"
    "github.com/shanikumar001/project-gallery-backend/pkg/logger"
)

// 通知投递 worker：消费通知外发盒并通过 SMTP 发信
func main() {
    cfg, err := config.Load()
    if err != nil {
        panic(err)
    }
    if err := logger.Init(&cfg.Log); err != nil {
        panic(err)
    }
    defer logger.Sync()

    db, err := database.InitDB(cfg)
    if err != nil {
        logger.Fatal("database init failed", zap.Error(err))
    }

    sender := service.NewSMTPSender(&cfg.SMTP)
    worker := service.NewNotifierWorker(
        db, sender,
        cfg.Notifier.Workers,
        cfg.Notifier.ClaimLimit,
        cfg.Notifier.MaxAttempts,
        cfg.Notifier.PollInterval,
    )
    stop := worker.Start()
    logger.Info("notifier worker started",
        zap.Int("workers", cfg.Notifier.Workers),
        zap.Duration("poll_interval", cfg.Notifier.PollInterval))

    quit := make(chan os.Signal, 1)
    signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
    <-quit

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    _ = stop(ctx)
}
