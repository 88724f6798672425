package model

import "time"

// Project 作品主体
type Project struct {
    ID          string    `gorm:"primaryKey;type:varchar(36)"`
    OwnerID     string    `gorm:"type:varchar(36);index:idx_project_owner;not null"`
    Title       string    `gorm:"type:varchar(256);not null"`
    Description string    `gorm:"type:text"`
    MediaURL    string    `gorm:"type:varchar(512)"`
    MediaType   string    `gorm:"type:varchar(32)"` // image, video
    Tags        string    `gorm:"type:varchar(512)"` // 逗号分隔
    CreatedAt   time.Time `gorm:"index"`
    UpdatedAt   time.Time
}

func (Project) TableName() string { return "projects" }

// ProjectLike 点赞边
type ProjectLike struct {
    ID        string    `gorm:"primaryKey;type:varchar(36)"`
    ProjectID string    `gorm:"type:varchar(36);index:idx_like_pair,unique;not null"`
    UserID    string    `gorm:"type:varchar(36);index:idx_like_pair,unique;index:idx_like_user;not null"`
    CreatedAt time.Time
}

func (ProjectLike) TableName() string { return "project_likes" }

// ProjectSave 收藏边
type ProjectSave struct {
    ID        string    `gorm:"primaryKey;type:varchar(36)"`
    ProjectID string    `gorm:"type:varchar(36);index:idx_save_pair,unique;not null"`
    UserID    string    `gorm:"type:varchar(36);index:idx_save_pair,unique;index:idx_save_user;not null"`
    CreatedAt time.Time
}

func (ProjectSave) TableName() string { return "project_saves" }

// ProjectComment 评论
type ProjectComment struct {
    ID        string    `gorm:"primaryKey;type:varchar(36)"`
    ProjectID string    `gorm:"type:varchar(36);index:idx_comment_project;not null"`
    UserID    string    `gorm:"type:varchar(36);not null"`
    Text      string    `gorm:"type:text;not null"`
    CreatedAt time.Time
}

func (ProjectComment) TableName() string { return "project_comments" }
