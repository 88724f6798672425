package repository

import (
    "context"
    "errors"

    "gorm.io/gorm"

    "github.com/shanikumar001/project-gallery-backend/internal/model"
)

type FollowRequestRepository interface {
    GetByID(ctx context.Context, id string) (*model.FollowRequest, error)
    FindPending(ctx context.Context, fromUserID, toUserID string) (*model.FollowRequest, error)
    ListPendingFor(ctx context.Context, toUserID string) ([]*model.FollowRequest, error)
    DeletePending(ctx context.Context, fromUserID, toUserID string) error
}

type followRequestRepository struct{ db *gorm.DB }

func NewFollowRequestRepository(db *gorm.DB) FollowRequestRepository {
    return &followRequestRepository{db: db}
}

func (r *followRequestRepository) GetByID(ctx context.Context, id string) (*model.FollowRequest, error) {
    var fr model.FollowRequest
    err := r.db.WithContext(ctx).Where("id = ?", id).First(&fr).Error
    if errors.Is(err, gorm.ErrRecordNotFound) {
        return nil, nil
    }
    if err != nil {
        return nil, err
    }
    return &fr, nil
}

func (r *followRequestRepository) FindPending(ctx context.Context, fromUserID, toUserID string) (*model.FollowRequest, error) {
    var fr model.FollowRequest
    err := r.db.WithContext(ctx).
        Where("from_user_id = ? AND to_user_id = ? AND status = ?", fromUserID, toUserID, model.FollowRequestPending).
        First(&fr).Error
    if errors.Is(err, gorm.ErrRecordNotFound) {
        return nil, nil
    }
    if err != nil {
        return nil, err
    }
    return &fr, nil
}

func (r *followRequestRepository) ListPendingFor(ctx context.Context, toUserID string) ([]*model.FollowRequest, error) {
    var res []*model.FollowRequest
    err := r.db.WithContext(ctx).
        Where("to_user_id = ? AND status = ?", toUserID, model.FollowRequestPending).
        Order("created_at DESC").
        Find(&res).Error
    return res, err
}

// DeletePending 撤回：只删 pending 行，历史行保留
func (r *followRequestRepository) DeletePending(ctx context.Context, fromUserID, toUserID string) error {
    return r.db.WithContext(ctx).
        Where("from_user_id = ? AND to_user_id = ? AND status = ?", fromUserID, toUserID, model.FollowRequestPending).
        Delete(&model.FollowRequest{}).Error
}
