package model

import "time"

// FollowRequest 关注请求台账
type FollowRequest struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)"`
	FromUserID string    `gorm:"type:varchar(36);index:idx_freq_pair;not null"`
	ToUserID   string    `gorm:"type:varchar(36);index:idx_freq_pair;index:idx_freq_to_status;not null"`
	Status     string    `gorm:"type:varchar(16);index:idx_freq_to_status;not null;default:'pending'"` // pending, accepted, declined
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time
}

// TableName 指定表名
func (FollowRequest) TableName() string {
	return "follow_requests"
}

// FollowRequest 状态常量
// pending 行的成对唯一性由部分唯一索引 uq_follow_requests_pending 兜底，
// 历史行（accepted/declined）允许同对重复出现
const (
	FollowRequestPending  = "pending"
	FollowRequestAccepted = "accepted"
	FollowRequestDeclined = "declined"
)
