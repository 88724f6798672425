package model

import "time"

// 通知类型
const (
    NotifyKindFollowRequest = "follow_request"
    NotifyKindNewMessage    = "new_message"
)

// 外发状态
const (
    OutboxPending    = "pending"
    OutboxProcessing = "processing"
    OutboxSent       = "sent"
    OutboxFailed     = "failed"
)

// NotificationOutbox 通知外发盒：与触发写入同事务落库，由 notifier worker 消费
type NotificationOutbox struct {
    ID          string    `gorm:"primaryKey;type:varchar(36)"`
    Kind        string    `gorm:"type:varchar(32);not null"`
    RecipientID string    `gorm:"type:varchar(36);index:idx_outbox_recipient;not null"`
    Payload     string    `gorm:"type:text"` // JSON，按 Kind 解释
    Status      string    `gorm:"type:varchar(16);index;not null;default:'pending'"`
    Attempts    int       `gorm:"not null;default:0"`
    ClaimToken  string    `gorm:"type:varchar(36);index"` // 最近一次 claim 本行的批次标记
    CreatedAt   time.Time `gorm:"index"`
    ProcessedAt *time.Time
}

func (NotificationOutbox) TableName() string { return "notification_outbox" }
