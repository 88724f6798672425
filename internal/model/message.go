package model

import "time"

// Message 私信（创建后不可变，read 仅允许 false→true）
type Message struct {
    ID         string    `gorm:"primaryKey;type:varchar(36)"`
    SenderID   string    `gorm:"type:varchar(36);index:idx_msg_pair;not null"`
    ReceiverID string    `gorm:"type:varchar(36);index:idx_msg_pair;index:idx_msg_receiver_read;not null"`
    Text       string    `gorm:"type:text;not null"`
    Read       bool      `gorm:"index:idx_msg_receiver_read;not null;default:false"`
    CreatedAt  time.Time `gorm:"index:idx_msg_created"`
}

func (Message) TableName() string { return "messages" }
