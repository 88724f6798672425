package service

import (
    "context"
    "errors"
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/shanikumar001/project-gallery-backend/internal/model"
    "github.com/shanikumar001/project-gallery-backend/internal/repository"
)

var (
    ErrSelfRelation    = errors.New("cannot perform this action on yourself")
    ErrUserNotFound    = errors.New("user not found")
    ErrRequestNotFound = errors.New("follow request not found")
)

// FollowState A 对 B 的关注态
type FollowState struct {
    Following bool `json:"following"`
    Requested bool `json:"requested"`
}

// PendingRequest 待处理请求（含发起者信息）
type PendingRequest struct {
    ID        string    `json:"id"`
    FromUser  *UserRef  `json:"fromUser"`
    CreatedAt time.Time `json:"createdAt"`
}

// UserRef 对外暴露的用户摘要
type UserRef struct {
    ID           string `json:"id"`
    Username     string `json:"username"`
    Name         string `json:"name"`
    ProfilePhoto string `json:"profilePhoto"`
}

// RelationshipService 关系链服务：关注请求台账 + 关注边 + 互通边
type RelationshipService interface {
    RequestFollow(ctx context.Context, fromUserID, toUserID string) (FollowState, error)
    Unfollow(ctx context.Context, fromUserID, toUserID string) error
    AcceptRequest(ctx context.Context, requestID, actorID string) error
    DeclineRequest(ctx context.Context, requestID, actorID string) error
    Connect(ctx context.Context, fromUserID, toUserID string) (*UserRef, error)
    FollowStatus(ctx context.Context, fromUserID, toUserID string) (FollowState, error)
    ListPendingRequests(ctx context.Context, userID string) ([]PendingRequest, error)
    ListFollowing(ctx context.Context, userID string, page, pageSize int) ([]string, error)
    ListFollowers(ctx context.Context, userID string, page, pageSize int) ([]string, error)
    IsConnected(ctx context.Context, userA, userB string) (bool, error)
}

type relationshipService struct {
    db          *gorm.DB
    userRepo    repository.UserRepository
    followRepo  repository.FollowRepository
    requestRepo repository.FollowRequestRepository
    connRepo    repository.ConnectionRepository
}

func NewRelationshipService(
    db *gorm.DB,
    userRepo repository.UserRepository,
    followRepo repository.FollowRepository,
    requestRepo repository.FollowRequestRepository,
    connRepo repository.ConnectionRepository,
) RelationshipService {
    return &relationshipService{
        db:          db,
        userRepo:    userRepo,
        followRepo:  followRepo,
        requestRepo: requestRepo,
        connRepo:    connRepo,
    }
}

// RequestFollow 发起关注请求：已关注/已有 pending 均幂等返回；
// 新建请求与通知外发行同一事务落库
func (s *relationshipService) RequestFollow(ctx context.Context, fromUserID, toUserID string) (FollowState, error) {
    if fromUserID == toUserID {
        return FollowState{}, ErrSelfRelation
    }
    to, err := s.userRepo.GetByID(ctx, toUserID)
    if err != nil {
        return FollowState{}, err
    }
    if to == nil {
        return FollowState{}, ErrUserNotFound
    }
    following, err := s.followRepo.Exists(ctx, fromUserID, toUserID)
    if err != nil {
        return FollowState{}, err
    }
    if following {
        return FollowState{Following: true}, nil
    }

    from, err := s.userRepo.GetByID(ctx, fromUserID)
    if err != nil {
        return FollowState{}, err
    }
    if from == nil {
        return FollowState{}, ErrUserNotFound
    }

    err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        // pending 唯一性在事务内检查，历史行不阻止再次请求
        var cnt int64
        if err := tx.Model(&model.FollowRequest{}).
            Where("from_user_id = ? AND to_user_id = ? AND status = ?", fromUserID, toUserID, model.FollowRequestPending).
            Count(&cnt).Error; err != nil {
            return err
        }
        if cnt > 0 {
            return nil
        }
        fr := &model.FollowRequest{
            ID:         uuid.New().String(),
            FromUserID: fromUserID,
            ToUserID:   toUserID,
            Status:     model.FollowRequestPending,
        }
        if err := tx.Create(fr).Error; err != nil {
            return err
        }
        return enqueueNotification(tx, model.NotifyKindFollowRequest, to.ID, followRequestPayload{
            ToEmail:  to.Email,
            ToName:   to.DisplayName(),
            FromName: from.DisplayName(),
        })
    })
    if err != nil {
        return FollowState{}, err
    }
    return FollowState{Requested: true}, nil
}

// Unfollow 撤回请求并删除关注边，无论是否存在都成功（幂等）
func (s *relationshipService) Unfollow(ctx context.Context, fromUserID, toUserID string) error {
    if err := s.requestRepo.DeletePending(ctx, fromUserID, toUserID); err != nil {
        return err
    }
    return s.followRepo.Delete(ctx, fromUserID, toUserID)
}

// AcceptRequest 接受请求：状态翻转是串行化点，台账行更新与建边同一事务
func (s *relationshipService) AcceptRequest(ctx context.Context, requestID, actorID string) error {
    return s.resolveRequest(ctx, requestID, actorID, model.FollowRequestAccepted, true)
}

// DeclineRequest 拒绝请求：终态，不建边
func (s *relationshipService) DeclineRequest(ctx context.Context, requestID, actorID string) error {
    return s.resolveRequest(ctx, requestID, actorID, model.FollowRequestDeclined, false)
}

func (s *relationshipService) resolveRequest(ctx context.Context, requestID, actorID, status string, createEdge bool) error {
    return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        var fr model.FollowRequest
        err := tx.Where("id = ?", requestID).First(&fr).Error
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return ErrRequestNotFound
        }
        if err != nil {
            return err
        }
        if fr.ToUserID != actorID || fr.Status != model.FollowRequestPending {
            return ErrRequestNotFound
        }
        // 条件更新：并发 accept/decline 只有先写者生效
        res := tx.Model(&model.FollowRequest{}).
            Where("id = ? AND status = ?", requestID, model.FollowRequestPending).
            Update("status", status)
        if res.Error != nil {
            return res.Error
        }
        if res.RowsAffected == 0 {
            return ErrRequestNotFound
        }
        if !createEdge {
            return nil
        }
        f := &model.Follow{ID: uuid.New().String(), FollowerID: fr.FromUserID, FolloweeID: fr.ToUserID}
        return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(f).Error
    })
}

// Connect 建立互通关系：单边发起、双向生效、幂等
func (s *relationshipService) Connect(ctx context.Context, fromUserID, toUserID string) (*UserRef, error) {
    if fromUserID == toUserID {
        return nil, ErrSelfRelation
    }
    to, err := s.userRepo.GetByID(ctx, toUserID)
    if err != nil {
        return nil, err
    }
    if to == nil {
        return nil, ErrUserNotFound
    }
    if err := s.connRepo.Create(ctx, fromUserID, toUserID); err != nil {
        return nil, err
    }
    return toUserRef(to), nil
}

func (s *relationshipService) FollowStatus(ctx context.Context, fromUserID, toUserID string) (FollowState, error) {
    following, err := s.followRepo.Exists(ctx, fromUserID, toUserID)
    if err != nil {
        return FollowState{}, err
    }
    if following {
        return FollowState{Following: true}, nil
    }
    pending, err := s.requestRepo.FindPending(ctx, fromUserID, toUserID)
    if err != nil {
        return FollowState{}, err
    }
    return FollowState{Requested: pending != nil}, nil
}

func (s *relationshipService) ListPendingRequests(ctx context.Context, userID string) ([]PendingRequest, error) {
    rows, err := s.requestRepo.ListPendingFor(ctx, userID)
    if err != nil {
        return nil, err
    }
    ids := make([]string, len(rows))
    for i, fr := range rows {
        ids[i] = fr.FromUserID
    }
    users, err := s.userRepo.GetMany(ctx, ids)
    if err != nil {
        return nil, err
    }
    res := make([]PendingRequest, 0, len(rows))
    for _, fr := range rows {
        pr := PendingRequest{ID: fr.ID, CreatedAt: fr.CreatedAt}
        if u, ok := users[fr.FromUserID]; ok {
            pr.FromUser = toUserRef(u)
        } else {
            pr.FromUser = &UserRef{ID: fr.FromUserID, Name: deletedUserName}
        }
        res = append(res, pr)
    }
    return res, nil
}

func (s *relationshipService) ListFollowing(ctx context.Context, userID string, page, pageSize int) ([]string, error) {
    offset, limit := pageBounds(page, pageSize)
    items, err := s.followRepo.ListFollowings(ctx, userID, offset, limit)
    if err != nil {
        return nil, err
    }
    res := make([]string, len(items))
    for i, it := range items {
        res[i] = it.FolloweeID
    }
    return res, nil
}

func (s *relationshipService) ListFollowers(ctx context.Context, userID string, page, pageSize int) ([]string, error) {
    offset, limit := pageBounds(page, pageSize)
    items, err := s.followRepo.ListFollowers(ctx, userID, offset, limit)
    if err != nil {
        return nil, err
    }
    res := make([]string, len(items))
    for i, it := range items {
        res[i] = it.FollowerID
    }
    return res, nil
}

func (s *relationshipService) IsConnected(ctx context.Context, userA, userB string) (bool, error) {
    return s.connRepo.Exists(ctx, userA, userB)
}

func pageBounds(page, pageSize int) (offset, limit int) {
    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 10
    }
    return (page - 1) * pageSize, pageSize
}

func toUserRef(u *model.User) *UserRef {
    return &UserRef{ID: u.ID, Username: u.Username, Name: u.DisplayName(), ProfilePhoto: u.ProfilePhoto}
}
