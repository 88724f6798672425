package repository

import (
    "context"

    "github.com/google/uuid"
    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/shanikumar001/project-gallery-backend/internal/model"
)

type ConnectionRepository interface {
    Create(ctx context.Context, userA, userB string) error
    Delete(ctx context.Context, userA, userB string) error
    Exists(ctx context.Context, userA, userB string) (bool, error)
    ListConnections(ctx context.Context, userID string, offset, limit int) ([]string, error)
}

type connectionRepository struct{ db *gorm.DB }

func NewConnectionRepository(db *gorm.DB) ConnectionRepository { return &connectionRepository{db: db} }

// Create 建边前先规范化 (lo, hi)，单行即保证对称性
func (r *connectionRepository) Create(ctx context.Context, userA, userB string) error {
    lo, hi := model.NormalizePair(userA, userB)
    c := &model.Connection{ID: uuid.New().String(), UserLo: lo, UserHi: hi}
    return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(c).Error
}

func (r *connectionRepository) Delete(ctx context.Context, userA, userB string) error {
    lo, hi := model.NormalizePair(userA, userB)
    return r.db.WithContext(ctx).Where("user_lo = ? AND user_hi = ?", lo, hi).Delete(&model.Connection{}).Error
}

func (r *connectionRepository) Exists(ctx context.Context, userA, userB string) (bool, error) {
    lo, hi := model.NormalizePair(userA, userB)
    var cnt int64
    if err := r.db.WithContext(ctx).
        Model(&model.Connection{}).
        Where("user_lo = ? AND user_hi = ?", lo, hi).
        Count(&cnt).Error; err != nil {
        return false, err
    }
    return cnt > 0, nil
}

func (r *connectionRepository) ListConnections(ctx context.Context, userID string, offset, limit int) ([]string, error) {
    var rows []*model.Connection
    err := r.db.WithContext(ctx).
        Where("user_lo = ? OR user_hi = ?", userID, userID).
        Offset(offset).Limit(limit).
        Find(&rows).Error
    if err != nil {
        return nil, err
    }
    res := make([]string, 0, len(rows))
    for _, c := range rows {
        if c.UserLo == userID {
            res = append(res, c.UserHi)
        } else {
            res = append(res, c.UserLo)
        }
    }
    return res, nil
}
