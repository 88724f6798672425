package service

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/shanikumar001/project-gallery-backend/internal/model"
)

func TestRequestFollowThenAccept(t *testing.T) {
    db := setupDB(t)
    svc := newRelService(t, db)
    ctx := context.Background()
    seedUser(t, db, "a", "alice")
    seedUser(t, db, "b", "bob")

    state, err := svc.RequestFollow(ctx, "a", "b")
    require.NoError(t, err)
    assert.True(t, state.Requested)
    assert.False(t, state.Following)

    // 通知与台账行同事务落库
    var outbox int64
    require.NoError(t, db.Model(&model.NotificationOutbox{}).
        Where("kind = ? AND recipient_id = ?", model.NotifyKindFollowRequest, "b").
        Count(&outbox).Error)
    assert.EqualValues(t, 1, outbox)

    pending, err := svc.ListPendingRequests(ctx, "b")
    require.NoError(t, err)
    require.Len(t, pending, 1)
    assert.Equal(t, "alice", pending[0].FromUser.Username)

    require.NoError(t, svc.AcceptRequest(ctx, pending[0].ID, "b"))

    state, err = svc.FollowStatus(ctx, "a", "b")
    require.NoError(t, err)
    assert.True(t, state.Following)
    assert.False(t, state.Requested)

    var fr model.FollowRequest
    require.NoError(t, db.Where("id = ?", pending[0].ID).First(&fr).Error)
    assert.Equal(t, model.FollowRequestAccepted, fr.Status)

    // 台账行已到终态，二次 accept 视同不存在
    err = svc.AcceptRequest(ctx, pending[0].ID, "b")
    assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestRequestFollowIdempotent(t *testing.T) {
    db := setupDB(t)
    svc := newRelService(t, db)
    ctx := context.Background()
    seedUser(t, db, "a", "alice")
    seedUser(t, db, "b", "bob")

    for i := 0; i < 3; i++ {
        state, err := svc.RequestFollow(ctx, "a", "b")
        require.NoError(t, err)
        assert.True(t, state.Requested)
    }

    var cnt int64
    require.NoError(t, db.Model(&model.FollowRequest{}).
        Where("from_user_id = ? AND to_user_id = ? AND status = ?", "a", "b", model.FollowRequestPending).
        Count(&cnt).Error)
    assert.EqualValues(t, 1, cnt)
}

func TestRequestFollowAlreadyFollowing(t *testing.T) {
    db := setupDB(t)
    svc := newRelService(t, db)
    ctx := context.Background()
    seedUser(t, db, "a", "alice")
    seedUser(t, db, "b", "bob")

    state, err := svc.RequestFollow(ctx, "a", "b")
    require.NoError(t, err)
    require.True(t, state.Requested)
    pending, err := svc.ListPendingRequests(ctx, "b")
    require.NoError(t, err)
    require.NoError(t, svc.AcceptRequest(ctx, pending[0].ID, "b"))

    // 已关注时再请求：不建新行，直接报 following
    state, err = svc.RequestFollow(ctx, "a", "b")
    require.NoError(t, err)
    assert.True(t, state.Following)
    assert.False(t, state.Requested)

    var cnt int64
    require.NoError(t, db.Model(&model.FollowRequest{}).
        Where("from_user_id = ? AND to_user_id = ? AND status = ?", "a", "b", model.FollowRequestPending).
        Count(&cnt).Error)
    assert.EqualValues(t, 0, cnt)
}

func TestRequestFollowSelf(t *testing.T) {
    db := setupDB(t)
    svc := newRelService(t, db)
    seedUser(t, db, "a", "alice")

    _, err := svc.RequestFollow(context.Background(), "a", "a")
    assert.ErrorIs(t, err, ErrSelfRelation)

    var cnt int64
    require.NoError(t, db.Model(&model.FollowRequest{}).Count(&cnt).Error)
    assert.EqualValues(t, 0, cnt)
}

func TestRequestFollowMissingTarget(t *testing.T) {
    db := setupDB(t)
    svc := newRelService(t, db)
    seedUser(t, db, "a", "alice")

    _, err := svc.RequestFollow(context.Background(), "a", "ghost")
    assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUnfollowIdempotent(t *testing.T) {
    db := setupDB(t)
    svc := newRelService(t, db)
    ctx := context.Background()
    seedUser(t, db, "a", "alice")
    seedUser(t, db, "b", "bob")

    _, err := svc.RequestFollow(ctx, "a", "b")
    require.NoError(t, err)
    pending, err := svc.ListPendingRequests(ctx, "b")
    require.NoError(t, err)
    require.NoError(t, svc.AcceptRequest(ctx, pending[0].ID, "b"))

    // 两次取关结果一致且不报错
    for i := 0; i < 2; i++ {
        require.NoError(t, svc.Unfollow(ctx, "a", "b"))
        state, err := svc.FollowStatus(ctx, "a", "b")
        require.NoError(t, err)
        assert.False(t, state.Following)
        assert.False(t, state.Requested)
    }
}

func TestUnfollowCancelsPendingRequest(t *testing.T) {
    db := setupDB(t)
    svc := newRelService(t, db)
    ctx := context.Background()
    seedUser(t, db, "a", "alice")
    seedUser(t, db, "b", "bob")

    _, err := svc.RequestFollow(ctx, "a", "b")
    require.NoError(t, err)
    require.NoError(t, svc.Unfollow(ctx, "a", "b"))

    state, err := svc.FollowStatus(ctx, "a", "b")
    require.NoError(t, err)
    assert.False(t, state.Requested)
}

func TestDeclineThenRerequest(t *testing.T) {
    db := setupDB(t)
    svc := newRelService(t, db)
    ctx := context.Background()
    seedUser(t, db, "a", "alice")
    seedUser(t, db, "b", "bob")

    _, err := svc.RequestFollow(ctx, "a", "b")
    require.NoError(t, err)
    pending, err := svc.ListPendingRequests(ctx, "b")
    require.NoError(t, err)
    require.NoError(t, svc.DeclineRequest(ctx, pending[0].ID, "b"))

    state, err := svc.FollowStatus(ctx, "a", "b")
    require.NoError(t, err)
    assert.False(t, state.Following)
    assert.False(t, state.Requested)

    // 拒绝是历史行的终态，不阻止再次请求
    state, err = svc.RequestFollow(ctx, "a", "b")
    require.NoError(t, err)
    assert.True(t, state.Requested)

    var rows []model.FollowRequest
    require.NoError(t, db.Where("from_user_id = ? AND to_user_id = ?", "a", "b").Find(&rows).Error)
    assert.Len(t, rows, 2)
}

func TestAcceptRequestWrongOwner(t *testing.T) {
    db := setupDB(t)
    svc := newRelService(t, db)
    ctx := context.Background()
    seedUser(t, db, "a", "alice")
    seedUser(t, db, "b", "bob")
    seedUser(t, db, "c", "carol")

    _, err := svc.RequestFollow(ctx, "a", "b")
    require.NoError(t, err)
    pending, err := svc.ListPendingRequests(ctx, "b")
    require.NoError(t, err)

    err = svc.AcceptRequest(ctx, pending[0].ID, "c")
    assert.ErrorIs(t, err, ErrRequestNotFound)

    err = svc.AcceptRequest(ctx, "no-such-id", "b")
    assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestConnectSymmetry(t *testing.T) {
    db := setupDB(t)
    svc := newRelService(t, db)
    ctx := context.Background()
    seedUser(t, db, "a", "alice")
    seedUser(t, db, "b", "bob")

    user, err := svc.Connect(ctx, "a", "b")
    require.NoError(t, err)
    assert.Equal(t, "b", user.ID)

    ok, err := svc.IsConnected(ctx, "a", "b")
    require.NoError(t, err)
    assert.True(t, ok)
    ok, err = svc.IsConnected(ctx, "b", "a")
    require.NoError(t, err)
    assert.True(t, ok)

    // 双向重复 connect 只留一行
    _, err = svc.Connect(ctx, "b", "a")
    require.NoError(t, err)
    var cnt int64
    require.NoError(t, db.Model(&model.Connection{}).Count(&cnt).Error)
    assert.EqualValues(t, 1, cnt)
}

func TestConnectSelfAndMissing(t *testing.T) {
    db := setupDB(t)
    svc := newRelService(t, db)
    ctx := context.Background()
    seedUser(t, db, "a", "alice")

    _, err := svc.Connect(ctx, "a", "a")
    assert.ErrorIs(t, err, ErrSelfRelation)

    _, err = svc.Connect(ctx, "a", "ghost")
    assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListFollowingAndFollowers(t *testing.T) {
    db := setupDB(t)
    svc := newRelService(t, db)
    ctx := context.Background()
    seedUser(t, db, "a", "alice")
    seedUser(t, db, "b", "bob")
    seedUser(t, db, "c", "carol")

    for _, from := range []string{"b", "c"} {
        _, err := svc.RequestFollow(ctx, from, "a")
        require.NoError(t, err)
    }
    pending, err := svc.ListPendingRequests(ctx, "a")
    require.NoError(t, err)
    for _, p := range pending {
        require.NoError(t, svc.AcceptRequest(ctx, p.ID, "a"))
    }

    followers, err := svc.ListFollowers(ctx, "a", 1, 10)
    require.NoError(t, err)
    assert.ElementsMatch(t, []string{"b", "c"}, followers)

    following, err := svc.ListFollowing(ctx, "b", 1, 10)
    require.NoError(t, err)
    assert.Equal(t, []string{"a"}, following)
}

func TestPendingRequestUniquePerPair(t *testing.T) {
    db := setupDB(t)
    seedUser(t, db, "a", "alice")
    seedUser(t, db, "b", "bob")

    first := &model.FollowRequest{ID: "r1", FromUserID: "a", ToUserID: "b", Status: model.FollowRequestPending}
    require.NoError(t, db.Create(first).Error)

    // 绕开业务层的事务内检查直接写库，部分唯一索引仍然拦下第二条 pending
    dup := &model.FollowRequest{ID: "r2", FromUserID: "a", ToUserID: "b", Status: model.FollowRequestPending}
    assert.Error(t, db.Create(dup).Error)

    // 历史行不受约束：首条转为 declined 后同一对可以再次 pending
    require.NoError(t, db.Model(first).Update("status", model.FollowRequestDeclined).Error)
    again := &model.FollowRequest{ID: "r3", FromUserID: "a", ToUserID: "b", Status: model.FollowRequestPending}
    assert.NoError(t, db.Create(again).Error)
}
