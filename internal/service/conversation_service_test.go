package service

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/shanikumar001/project-gallery-backend/internal/repository"
)

func TestConversationAggregation(t *testing.T) {
    db := setupDB(t)
    svc := NewConversationService(
        repository.NewMessageRepository(db),
        repository.NewUserRepository(db),
        NewUnreadCache(nil, 0),
    )
    ctx := context.Background()
    seedUser(t, db, "a", "alice")
    seedUser(t, db, "b", "bob")
    seedUser(t, db, "c", "carol")

    base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
    seedMessage(t, db, "m1", "a", "b", "hi", true, base)
    seedMessage(t, db, "m2", "b", "a", "yo", false, base.Add(time.Minute))
    seedMessage(t, db, "m3", "a", "b", "bye", false, base.Add(2*time.Minute))
    seedMessage(t, db, "m4", "c", "a", "hello", false, base.Add(3*time.Minute))

    convs, err := svc.Conversations(ctx, "a")
    require.NoError(t, err)
    require.Len(t, convs, 2)

    // 按最近消息倒序：carol 的消息最新
    assert.Equal(t, "c", convs[0].ID)
    assert.Equal(t, "carol", convs[0].Name)
    assert.EqualValues(t, 1, convs[0].UnreadCount)

    bob := convs[1]
    assert.Equal(t, "b", bob.ID)
    require.NotNil(t, bob.LastMessage)
    assert.Equal(t, "bye", bob.LastMessage.Text)
    assert.True(t, bob.LastMessage.IsMe)
    // 未读数统计整个集合里 b→a 的未读，不只保留的最近一条
    assert.EqualValues(t, 1, bob.UnreadCount)
}

func TestConversationDeletedCounterpart(t *testing.T) {
    db := setupDB(t)
    svc := NewConversationService(
        repository.NewMessageRepository(db),
        repository.NewUserRepository(db),
        NewUnreadCache(nil, 0),
    )
    ctx := context.Background()
    seedUser(t, db, "a", "alice")
    // 对端 "ghost" 无账号记录

    seedMessage(t, db, "m1", "ghost", "a", "hello?", false, time.Now())

    convs, err := svc.Conversations(ctx, "a")
    require.NoError(t, err)
    require.Len(t, convs, 1)
    assert.Equal(t, "ghost", convs[0].ID)
    assert.Equal(t, "Deleted user", convs[0].Name)
    assert.EqualValues(t, 1, convs[0].UnreadCount)
}

func TestMarkReadIdempotent(t *testing.T) {
    db := setupDB(t)
    msgRepo := repository.NewMessageRepository(db)
    svc := NewConversationService(msgRepo, repository.NewUserRepository(db), NewUnreadCache(nil, 0))
    ctx := context.Background()
    seedUser(t, db, "a", "alice")
    seedUser(t, db, "b", "bob")

    base := time.Now()
    seedMessage(t, db, "m1", "b", "a", "one", false, base)
    seedMessage(t, db, "m2", "b", "a", "two", false, base.Add(time.Second))
    seedMessage(t, db, "m3", "a", "b", "reply", false, base.Add(2*time.Second))

    require.NoError(t, svc.MarkRead(ctx, "a", "b"))
    n, err := svc.UnreadTotal(ctx, "a")
    require.NoError(t, err)
    assert.EqualValues(t, 0, n)

    // 再标一次不改变任何状态
    require.NoError(t, svc.MarkRead(ctx, "a", "b"))
    n, err = svc.UnreadTotal(ctx, "a")
    require.NoError(t, err)
    assert.EqualValues(t, 0, n)

    // 反向消息不受影响
    n, err = svc.UnreadTotal(ctx, "b")
    require.NoError(t, err)
    assert.EqualValues(t, 1, n)
}

func TestUnreadTotalCached(t *testing.T) {
    db := setupDB(t)
    rdb := setupRedis(t)
    cache := NewUnreadCache(rdb, time.Minute)
    msgRepo := repository.NewMessageRepository(db)
    svc := NewConversationService(msgRepo, repository.NewUserRepository(db), cache)
    ctx := context.Background()
    seedUser(t, db, "a", "alice")
    seedUser(t, db, "b", "bob")

    seedMessage(t, db, "m1", "b", "a", "one", false, time.Now())

    n, err := svc.UnreadTotal(ctx, "a")
    require.NoError(t, err)
    assert.EqualValues(t, 1, n)

    // 命中缓存
    cached, ok := cache.Get(ctx, "a")
    require.True(t, ok)
    assert.EqualValues(t, 1, cached)

    // 标记已读后缓存失效，重新计数为 0
    require.NoError(t, svc.MarkRead(ctx, "a", "b"))
    _, ok = cache.Get(ctx, "a")
    assert.False(t, ok)
    n, err = svc.UnreadTotal(ctx, "a")
    require.NoError(t, err)
    assert.EqualValues(t, 0, n)
}
