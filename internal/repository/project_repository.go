package repository

import (
    "context"
    "errors"

    "github.com/google/uuid"
    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/shanikumar001/project-gallery-backend/internal/model"
)

type ProjectRepository interface {
    Create(ctx context.Context, p *model.Project) error
    GetByID(ctx context.Context, id string) (*model.Project, error)
    ListRecent(ctx context.Context, offset, limit int) ([]*model.Project, error)
    ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*model.Project, error)
    Update(ctx context.Context, p *model.Project) error
    Delete(ctx context.Context, id string) error

    AddLike(ctx context.Context, projectID, userID string) error
    RemoveLike(ctx context.Context, projectID, userID string) error
    CountLikes(ctx context.Context, projectID string) (int64, error)
    AddSave(ctx context.Context, projectID, userID string) error
    RemoveSave(ctx context.Context, projectID, userID string) error
    ListSavedBy(ctx context.Context, userID string, offset, limit int) ([]*model.Project, error)

    AddComment(ctx context.Context, c *model.ProjectComment) error
    GetComment(ctx context.Context, id string) (*model.ProjectComment, error)
    ListComments(ctx context.Context, projectID string) ([]*model.ProjectComment, error)
    DeleteComment(ctx context.Context, id string) error
}

type projectRepository struct{ db *gorm.DB }

func NewProjectRepository(db *gorm.DB) ProjectRepository { return &projectRepository{db: db} }

func (r *projectRepository) Create(ctx context.Context, p *model.Project) error {
    return r.db.WithContext(ctx).Create(p).Error
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*model.Project, error) {
    var p model.Project
    err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
    if errors.Is(err, gorm.ErrRecordNotFound) {
        return nil, nil
    }
    if err != nil {
        return nil, err
    }
    return &p, nil
}

func (r *projectRepository) ListRecent(ctx context.Context, offset, limit int) ([]*model.Project, error) {
    var res []*model.Project
    err := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&res).Error
    return res, err
}

func (r *projectRepository) ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*model.Project, error) {
    var res []*model.Project
    err := r.db.WithContext(ctx).
        Where("owner_id = ?", ownerID).
        Order("created_at DESC").
        Offset(offset).Limit(limit).
        Find(&res).Error
    return res, err
}

func (r *projectRepository) Update(ctx context.Context, p *model.Project) error {
    return r.db.WithContext(ctx).Save(p).Error
}

// Delete 连带清理点赞/收藏/评论边
func (r *projectRepository) Delete(ctx context.Context, id string) error {
    return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        if err := tx.Where("project_id = ?", id).Delete(&model.ProjectLike{}).Error; err != nil {
            return err
        }
        if err := tx.Where("project_id = ?", id).Delete(&model.ProjectSave{}).Error; err != nil {
            return err
        }
        if err := tx.Where("project_id = ?", id).Delete(&model.ProjectComment{}).Error; err != nil {
            return err
        }
        return tx.Where("id = ?", id).Delete(&model.Project{}).Error
    })
}

func (r *projectRepository) AddLike(ctx context.Context, projectID, userID string) error {
    l := &model.ProjectLike{ID: uuid.New().String(), ProjectID: projectID, UserID: userID}
    return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(l).Error
}

func (r *projectRepository) RemoveLike(ctx context.Context, projectID, userID string) error {
    return r.db.WithContext(ctx).
        Where("project_id = ? AND user_id = ?", projectID, userID).
        Delete(&model.ProjectLike{}).Error
}

func (r *projectRepository) CountLikes(ctx context.Context, projectID string) (int64, error) {
    var cnt int64
    err := r.db.WithContext(ctx).Model(&model.ProjectLike{}).Where("project_id = ?", projectID).Count(&cnt).Error
    return cnt, err
}

func (r *projectRepository) AddSave(ctx context.Context, projectID, userID string) error {
    s := &model.ProjectSave{ID: uuid.New().String(), ProjectID: projectID, UserID: userID}
    return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(s).Error
}

func (r *projectRepository) RemoveSave(ctx context.Context, projectID, userID string) error {
    return r.db.WithContext(ctx).
        Where("project_id = ? AND user_id = ?", projectID, userID).
        Delete(&model.ProjectSave{}).Error
}

func (r *projectRepository) ListSavedBy(ctx context.Context, userID string, offset, limit int) ([]*model.Project, error) {
    var res []*model.Project
    err := r.db.WithContext(ctx).
        Joins("JOIN project_saves ON project_saves.project_id = projects.id").
        Where("project_saves.user_id = ?", userID).
        Order("project_saves.created_at DESC").
        Offset(offset).Limit(limit).
        Find(&res).Error
    return res, err
}

func (r *projectRepository) AddComment(ctx context.Context, c *model.ProjectComment) error {
    return r.db.WithContext(ctx).Create(c).Error
}

func (r *projectRepository) GetComment(ctx context.Context, id string) (*model.ProjectComment, error) {
    var c model.ProjectComment
    err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
    if errors.Is(err, gorm.ErrRecordNotFound) {
        return nil, nil
    }
    if err != nil {
        return nil, err
    }
    return &c, nil
}

func (r *projectRepository) ListComments(ctx context.Context, projectID string) ([]*model.ProjectComment, error) {
    var res []*model.ProjectComment
    err := r.db.WithContext(ctx).
        Where("project_id = ?", projectID).
        Order("created_at ASC").
        Find(&res).Error
    return res, err
}

func (r *projectRepository) DeleteComment(ctx context.Context, id string) error {
    return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProjectComment{}).Error
}
