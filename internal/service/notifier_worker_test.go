package service

import (
    "context"
    "errors"
    "fmt"
    "sync"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "gorm.io/gorm"

    "github.com/shanikumar001/project-gallery-backend/internal/model"
)

type fakeSender struct {
    mu    sync.Mutex
    sent  []string // 收件地址
    fails int      // 前 N 次调用返回错误
}

func (f *fakeSender) Send(_ context.Context, to, _, _ string) error {
    f.mu.Lock()
    defer f.mu.Unlock()
    if f.fails > 0 {
        f.fails--
        return errors.New("smtp unavailable")
    }
    f.sent = append(f.sent, to)
    return nil
}

func enqueueTestNotification(t *testing.T, db *gorm.DB, kind string) string {
    t.Helper()
    var id string
    require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
        if err := enqueueNotification(tx, kind, "b", followRequestPayload{
            ToEmail: "bob@example.com", ToName: "bob", FromName: "alice",
        }); err != nil {
            return err
        }
        var row model.NotificationOutbox
        if err := tx.First(&row).Error; err != nil {
            return err
        }
        id = row.ID
        return nil
    }))
    return id
}

func TestNotifierDelivers(t *testing.T) {
    db := setupDB(t)
    sender := &fakeSender{}
    w := NewNotifierWorker(db, sender, 1, 10, 3, time.Second)

    id := enqueueTestNotification(t, db, model.NotifyKindFollowRequest)
    require.NoError(t, w.ProcessOnce(context.Background()))

    assert.Equal(t, []string{"bob@example.com"}, sender.sent)
    var row model.NotificationOutbox
    require.NoError(t, db.Where("id = ?", id).First(&row).Error)
    assert.Equal(t, model.OutboxSent, row.Status)
    assert.Equal(t, 1, row.Attempts)
    assert.NotNil(t, row.ProcessedAt)
}

func TestNotifierRetriesThenSends(t *testing.T) {
    db := setupDB(t)
    sender := &fakeSender{fails: 1}
    w := NewNotifierWorker(db, sender, 1, 10, 3, time.Second)

    id := enqueueTestNotification(t, db, model.NotifyKindFollowRequest)

    // 首次投递失败，回到 pending 等待重试
    require.NoError(t, w.ProcessOnce(context.Background()))
    var row model.NotificationOutbox
    require.NoError(t, db.Where("id = ?", id).First(&row).Error)
    assert.Equal(t, model.OutboxPending, row.Status)
    assert.Equal(t, 1, row.Attempts)

    require.NoError(t, w.ProcessOnce(context.Background()))
    require.NoError(t, db.Where("id = ?", id).First(&row).Error)
    assert.Equal(t, model.OutboxSent, row.Status)
    assert.Equal(t, 2, row.Attempts)
}

func TestNotifierExhaustsRetries(t *testing.T) {
    db := setupDB(t)
    sender := &fakeSender{fails: 100}
    w := NewNotifierWorker(db, sender, 1, 10, 2, time.Second)

    id := enqueueTestNotification(t, db, model.NotifyKindFollowRequest)

    for i := 0; i < 3; i++ {
        require.NoError(t, w.ProcessOnce(context.Background()))
    }
    var row model.NotificationOutbox
    require.NoError(t, db.Where("id = ?", id).First(&row).Error)
    assert.Equal(t, model.OutboxFailed, row.Status)
    assert.Equal(t, 2, row.Attempts)
    assert.Empty(t, sender.sent)
}

func TestNotifierSkipsRowsClaimedElsewhere(t *testing.T) {
    db := setupDB(t)
    sender := &fakeSender{}
    w := NewNotifierWorker(db, sender, 1, 10, 3, time.Second)

    enqueueTestNotification(t, db, model.NotifyKindFollowRequest)
    // 另一个 worker 已经抢走的行：status 已翻转且带了对方的批次标记
    foreign := &model.NotificationOutbox{
        ID: "claimed-elsewhere", Kind: model.NotifyKindFollowRequest, RecipientID: "c",
        Payload: `{"toEmail":"carol@example.com","toName":"carol","fromName":"alice"}`,
        Status:  model.OutboxProcessing, ClaimToken: "other-batch",
    }
    require.NoError(t, db.Create(foreign).Error)

    require.NoError(t, w.ProcessOnce(context.Background()))

    // 只投递自己抢到的行，别人的行原样留下
    assert.Equal(t, []string{"bob@example.com"}, sender.sent)
    var row model.NotificationOutbox
    require.NoError(t, db.Where("id = ?", foreign.ID).First(&row).Error)
    assert.Equal(t, model.OutboxProcessing, row.Status)
    assert.Equal(t, "other-batch", row.ClaimToken)
}

func TestNotifierConcurrentWorkersDeliverOnce(t *testing.T) {
    db := setupDB(t)
    // 内存 sqlite 多连接各自是独立库，并发场景收紧到单连接
    sqlDB, err := db.DB()
    require.NoError(t, err)
    sqlDB.SetMaxOpenConns(1)

    const total = 6
    for i := 0; i < total; i++ {
        out := &model.NotificationOutbox{
            ID: fmt.Sprintf("n-%d", i), Kind: model.NotifyKindFollowRequest, RecipientID: "b",
            Payload:   fmt.Sprintf(`{"toEmail":"u%d@example.com","toName":"u","fromName":"alice"}`, i),
            Status:    model.OutboxPending,
            CreatedAt: time.Date(2024, 3, 1, 9, 0, i, 0, time.UTC),
        }
        require.NoError(t, db.Create(out).Error)
    }

    sender := &fakeSender{}
    a := NewNotifierWorker(db, sender, 1, 4, 3, time.Second)
    b := NewNotifierWorker(db, sender, 1, 4, 3, time.Second)

    var wg sync.WaitGroup
    for _, w := range []*NotifierWorker{a, b} {
        wg.Add(1)
        go func(w *NotifierWorker) {
            defer wg.Done()
            assert.NoError(t, w.ProcessOnce(context.Background()))
        }(w)
    }
    wg.Wait()
    // 两个 worker 各 claim 4 条可能覆盖不完，补一轮清尾
    require.NoError(t, a.ProcessOnce(context.Background()))

    // 每封恰好投递一次
    assert.Len(t, sender.sent, total)
    seen := make(map[string]bool, total)
    for _, to := range sender.sent {
        assert.False(t, seen[to], "duplicate delivery to %s", to)
        seen[to] = true
    }
    var remaining int64
    require.NoError(t, db.Model(&model.NotificationOutbox{}).
        Where("status <> ?", model.OutboxSent).Count(&remaining).Error)
    assert.Zero(t, remaining)
}

func TestNotifierDropsUnrenderable(t *testing.T) {
    db := setupDB(t)
    sender := &fakeSender{}
    w := NewNotifierWorker(db, sender, 1, 10, 3, time.Second)

    id := enqueueTestNotification(t, db, "bogus-kind")
    require.NoError(t, w.ProcessOnce(context.Background()))

    var row model.NotificationOutbox
    require.NoError(t, db.Where("id = ?", id).First(&row).Error)
    assert.Equal(t, model.OutboxFailed, row.Status)
    assert.Empty(t, sender.sent)
}
