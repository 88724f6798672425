package repository

import (
    "context"
    "errors"

    "gorm.io/gorm"

    "github.com/shanikumar001/project-gallery-backend/internal/model"
)

type UserRepository interface {
    Create(ctx context.Context, u *model.User) error
    GetByID(ctx context.Context, id string) (*model.User, error)
    GetByEmail(ctx context.Context, email string) (*model.User, error)
    GetByUsername(ctx context.Context, username string) (*model.User, error)
    GetByExternalID(ctx context.Context, externalID string) (*model.User, error)
    GetMany(ctx context.Context, ids []string) (map[string]*model.User, error)
    Update(ctx context.Context, u *model.User) error
    SetVerified(ctx context.Context, email string) error
    Exists(ctx context.Context, id string) (bool, error)
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
    return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
    return r.getBy(ctx, "id = ?", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
    return r.getBy(ctx, "email = ?", email)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
    return r.getBy(ctx, "username = ?", username)
}

func (r *userRepository) GetByExternalID(ctx context.Context, externalID string) (*model.User, error) {
    return r.getBy(ctx, "external_id = ?", externalID)
}

func (r *userRepository) getBy(ctx context.Context, query string, arg any) (*model.User, error) {
    var u model.User
    err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error
    if errors.Is(err, gorm.ErrRecordNotFound) {
        return nil, nil
    }
    if err != nil {
        return nil, err
    }
    return &u, nil
}

// GetMany 批量取用户，返回 id -> user 映射；缺失的 id 不出现在结果中
func (r *userRepository) GetMany(ctx context.Context, ids []string) (map[string]*model.User, error) {
    res := make(map[string]*model.User, len(ids))
    if len(ids) == 0 {
        return res, nil
    }
    var users []*model.User
    if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
        return nil, err
    }
    for _, u := range users {
        res[u.ID] = u
    }
    return res, nil
}

func (r *userRepository) Update(ctx context.Context, u *model.User) error {
    return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepository) SetVerified(ctx context.Context, email string) error {
    return r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Update("verified", true).Error
}

func (r *userRepository) Exists(ctx context.Context, id string) (bool, error) {
    var cnt int64
    if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
        return false, err
    }
    return cnt > 0, nil
}
