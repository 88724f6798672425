package service

import (
    "context"
    "time"

    "github.com/google/uuid"
    "go.uber.org/zap"
    "gorm.io/gorm"

    "github.com/shanikumar001/project-gallery-backend/internal/model"
    "github.com/shanikumar001/project-gallery-backend/pkg/logger"
)

// NotifierWorker 从通知外发盒拉取 pending 记录并投递邮件；
// 投递失败回退 pending 重试，超过 maxAttempts 标记 failed
type NotifierWorker struct {
    db           *gorm.DB
    sender       Sender
    claimLimit   int
    pollInterval time.Duration
    workers      int
    maxAttempts  int
}

func NewNotifierWorker(db *gorm.DB, sender Sender, workers, claimLimit, maxAttempts int, pollInterval time.Duration) *NotifierWorker {
    if workers <= 0 { workers = 4 }
    if claimLimit <= 0 { claimLimit = 64 }
    if maxAttempts <= 0 { maxAttempts = 5 }
    if pollInterval <= 0 { pollInterval = time.Second }
    return &NotifierWorker{db: db, sender: sender, workers: workers, claimLimit: claimLimit, maxAttempts: maxAttempts, pollInterval: pollInterval}
}

// Start 启动若干 worker 轮询处理外发盒；返回停止函数。
func (w *NotifierWorker) Start() func(context.Context) error {
    stop := make(chan struct{})
    for i := 0; i < w.workers; i++ {
        go w.loop(stop)
    }
    return func(ctx context.Context) error { close(stop); return nil }
}

func (w *NotifierWorker) loop(stop <-chan struct{}) {
    ticker := time.NewTicker(w.pollInterval)
    defer ticker.Stop()
    for {
        select {
        case <-stop:
            return
        case <-ticker.C:
            if err := w.ProcessOnce(context.Background()); err != nil {
                logger.Warn("notifier batch failed", zap.Error(err))
            }
        }
    }
}

// ProcessOnce claim 一批 pending 记录并逐条投递。
// 条件更新时盖上本批次的 claim 标记再按标记回读：
// 并发 worker 对同一批候选行各自只拿到真正抢到的部分，
// 被别的 worker 先更新掉的行不会重复投递
func (w *NotifierWorker) ProcessOnce(ctx context.Context) error {
    token := uuid.New().String()
    var batch []model.NotificationOutbox
    err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        var ids []string
        if err := tx.Model(&model.NotificationOutbox{}).
            Where("status = ?", model.OutboxPending).
            Order("created_at").
            Limit(w.claimLimit).
            Pluck("id", &ids).Error; err != nil {
            return err
        }
        if len(ids) == 0 {
            return nil
        }
        if err := tx.Model(&model.NotificationOutbox{}).
            Where("id IN ? AND status = ?", ids, model.OutboxPending).
            Updates(map[string]any{"status": model.OutboxProcessing, "claim_token": token}).Error; err != nil {
            return err
        }
        return tx.
            Where("claim_token = ? AND status = ?", token, model.OutboxProcessing).
            Order("created_at").
            Find(&batch).Error
    })
    if err != nil {
        return err
    }

    for i := range batch {
        w.deliver(ctx, &batch[i])
    }
    return nil
}

func (w *NotifierWorker) deliver(ctx context.Context, row *model.NotificationOutbox) {
    to, subject, body, err := renderNotification(row)
    if err != nil {
        // 无法渲染的记录不可恢复，直接置 failed
        logger.Error("drop unrenderable notification", zap.String("id", row.ID), zap.Error(err))
        w.finish(ctx, row, model.OutboxFailed, row.Attempts)
        return
    }

    sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
    err = w.sender.Send(sendCtx, to, subject, body)
    cancel()

    attempts := row.Attempts + 1
    switch {
    case err == nil:
        w.finish(ctx, row, model.OutboxSent, attempts)
    case attempts >= w.maxAttempts:
        logger.Error("notification exhausted retries", zap.String("id", row.ID), zap.Int("attempts", attempts), zap.Error(err))
        w.finish(ctx, row, model.OutboxFailed, attempts)
    default:
        logger.Warn("notification send failed, will retry", zap.String("id", row.ID), zap.Int("attempts", attempts), zap.Error(err))
        w.finish(ctx, row, model.OutboxPending, attempts)
    }
}

func (w *NotifierWorker) finish(ctx context.Context, row *model.NotificationOutbox, status string, attempts int) {
    updates := map[string]any{"status": status, "attempts": attempts}
    if status == model.OutboxSent || status == model.OutboxFailed {
        now := time.Now()
        updates["processed_at"] = now
    }
    _ = w.db.WithContext(ctx).Model(&model.NotificationOutbox{}).
        Where("id = ?", row.ID).
        Updates(updates).Error
}
