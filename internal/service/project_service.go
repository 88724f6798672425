package service

import (
    "context"
    "errors"
    "strings"

    "github.com/google/uuid"

    "github.com/shanikumar001/project-gallery-backend/internal/model"
    "github.com/shanikumar001/project-gallery-backend/internal/repository"
)

var (
    ErrProjectNotFound = errors.New("project not found")
    ErrCommentNotFound = errors.New("comment not found")
    ErrNotOwner        = errors.New("not allowed to modify this resource")
    ErrEmptyTitle      = errors.New("project title cannot be empty")
)

// ProjectInput 创建/更新作品的入参
type ProjectInput struct {
    Title       string
    Description string
    MediaURL    string
    MediaType   string
    Tags        []string
}

// ProjectService 作品库：CRUD + 点赞/收藏/评论
type ProjectService interface {
    Create(ctx context.Context, ownerID string, in ProjectInput) (*model.Project, error)
    Get(ctx context.Context, id string) (*model.Project, error)
    ListRecent(ctx context.Context, page, pageSize int) ([]*model.Project, error)
    ListByOwner(ctx context.Context, ownerID string, page, pageSize int) ([]*model.Project, error)
    Update(ctx context.Context, id, actorID string, in ProjectInput) (*model.Project, error)
    Delete(ctx context.Context, id, actorID string) error

    Like(ctx context.Context, projectID, userID string) error
    Unlike(ctx context.Context, projectID, userID string) error
    Save(ctx context.Context, projectID, userID string) error
    Unsave(ctx context.Context, projectID, userID string) error
    ListSaved(ctx context.Context, userID string, page, pageSize int) ([]*model.Project, error)

    Comment(ctx context.Context, projectID, userID, text string) (*model.ProjectComment, error)
    ListComments(ctx context.Context, projectID string) ([]*model.ProjectComment, error)
    DeleteComment(ctx context.Context, projectID, commentID, actorID string) error
}

type projectService struct {
    repo repository.ProjectRepository
}

func NewProjectService(repo repository.ProjectRepository) ProjectService {
    return &projectService{repo: repo}
}

func (s *projectService) Create(ctx context.Context, ownerID string, in ProjectInput) (*model.Project, error) {
    title := strings.TrimSpace(in.Title)
    if title == "" {
        return nil, ErrEmptyTitle
    }
    p := &model.Project{
        ID:          uuid.New().String(),
        OwnerID:     ownerID,
        Title:       title,
        Description: in.Description,
        MediaURL:    in.MediaURL,
        MediaType:   in.MediaType,
        Tags:        strings.Join(in.Tags, ","),
    }
    if err := s.repo.Create(ctx, p); err != nil {
        return nil, err
    }
    return p, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*model.Project, error) {
    p, err := s.repo.GetByID(ctx, id)
    if err != nil {
        return nil, err
    }
    if p == nil {
        return nil, ErrProjectNotFound
    }
    return p, nil
}

func (s *projectService) ListRecent(ctx context.Context, page, pageSize int) ([]*model.Project, error) {
    offset, limit := pageBounds(page, pageSize)
    return s.repo.ListRecent(ctx, offset, limit)
}

func (s *projectService) ListByOwner(ctx context.Context, ownerID string, page, pageSize int) ([]*model.Project, error) {
    offset, limit := pageBounds(page, pageSize)
    return s.repo.ListByOwner(ctx, ownerID, offset, limit)
}

func (s *projectService) Update(ctx context.Context, id, actorID string, in ProjectInput) (*model.Project, error) {
    p, err := s.ownedProject(ctx, id, actorID)
    if err != nil {
        return nil, err
    }
    if title := strings.TrimSpace(in.Title); title != "" {
        p.Title = title
    }
    p.Description = in.Description
    if in.MediaURL != "" {
        p.MediaURL = in.MediaURL
        p.MediaType = in.MediaType
    }
    if in.Tags != nil {
        p.Tags = strings.Join(in.Tags, ",")
    }
    if err := s.repo.Update(ctx, p); err != nil {
        return nil, err
    }
    return p, nil
}

func (s *projectService) Delete(ctx context.Context, id, actorID string) error {
    if _, err := s.ownedProject(ctx, id, actorID); err != nil {
        return err
    }
    return s.repo.Delete(ctx, id)
}

func (s *projectService) Like(ctx context.Context, projectID, userID string) error {
    if _, err := s.Get(ctx, projectID); err != nil {
        return err
    }
    return s.repo.AddLike(ctx, projectID, userID)
}

func (s *projectService) Unlike(ctx context.Context, projectID, userID string) error {
    return s.repo.RemoveLike(ctx, projectID, userID)
}

func (s *projectService) Save(ctx context.Context, projectID, userID string) error {
    if _, err := s.Get(ctx, projectID); err != nil {
        return err
    }
    return s.repo.AddSave(ctx, projectID, userID)
}

func (s *projectService) Unsave(ctx context.Context, projectID, userID string) error {
    return s.repo.RemoveSave(ctx, projectID, userID)
}

func (s *projectService) ListSaved(ctx context.Context, userID string, page, pageSize int) ([]*model.Project, error) {
    offset, limit := pageBounds(page, pageSize)
    return s.repo.ListSavedBy(ctx, userID, offset, limit)
}

func (s *projectService) Comment(ctx context.Context, projectID, userID, text string) (*model.ProjectComment, error) {
    text = strings.TrimSpace(text)
    if text == "" {
        return nil, ErrEmptyMessage
    }
    if _, err := s.Get(ctx, projectID); err != nil {
        return nil, err
    }
    c := &model.ProjectComment{
        ID:        uuid.New().String(),
        ProjectID: projectID,
        UserID:    userID,
        Text:      text,
    }
    if err := s.repo.AddComment(ctx, c); err != nil {
        return nil, err
    }
    return c, nil
}

func (s *projectService) ListComments(ctx context.Context, projectID string) ([]*model.ProjectComment, error) {
    if _, err := s.Get(ctx, projectID); err != nil {
        return nil, err
    }
    return s.repo.ListComments(ctx, projectID)
}

// DeleteComment 评论作者或作品所有者可删
func (s *projectService) DeleteComment(ctx context.Context, projectID, commentID, actorID string) error {
    p, err := s.Get(ctx, projectID)
    if err != nil {
        return err
    }
    c, err := s.repo.GetComment(ctx, commentID)
    if err != nil {
        return err
    }
    if c == nil || c.ProjectID != projectID {
        return ErrCommentNotFound
    }
    if c.UserID != actorID && p.OwnerID != actorID {
        return ErrNotOwner
    }
    return s.repo.DeleteComment(ctx, commentID)
}

func (s *projectService) ownedProject(ctx context.Context, id, actorID string) (*model.Project, error) {
    p, err := s.Get(ctx, id)
    if err != nil {
        return nil, err
    }
    if p.OwnerID != actorID {
        return nil, ErrNotOwner
    }
    return p, nil
}
