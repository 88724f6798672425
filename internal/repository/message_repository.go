package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/shanikumar001/project-gallery-backend/internal/model"
)

type MessageRepository interface {
    ListAllFor(ctx context.Context, userID string) ([]*model.Message, error)
    ListThread(ctx context.Context, userID, otherUserID string) ([]*model.Message, error)
    MarkRead(ctx context.Context, receiverID, senderID string) (int64, error)
    CountUnread(ctx context.Context, receiverID string) (int64, error)
}

type messageRepository struct{ db *gorm.DB }

func NewMessageRepository(db *gorm.DB) MessageRepository { return &messageRepository{db: db} }

// ListAllFor 用户参与的全部消息，按时间倒序（会话聚合的输入）
func (r *messageRepository) ListAllFor(ctx context.Context, userID string) ([]*model.Message, error) {
    var res []*model.Message
    err := r.db.WithContext(ctx).
        Where("sender_id = ? OR receiver_id = ?", userID, userID).
        Order("created_at DESC").
        Find(&res).Error
    return res, err
}

// ListThread 两人之间的消息，按时间正序
func (r *messageRepository) ListThread(ctx context.Context, userID, otherUserID string) ([]*model.Message, error) {
    var res []*model.Message
    err := r.db.WithContext(ctx).
        Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
            userID, otherUserID, otherUserID, userID).
        Order("created_at ASC").
        Find(&res).Error
    return res, err
}

// MarkRead 批量置已读（仅 false→true），天然幂等
func (r *messageRepository) MarkRead(ctx context.Context, receiverID, senderID string) (int64, error) {
    res := r.db.WithContext(ctx).
        Model(&model.Message{}).
        Where("receiver_id = ? AND sender_id = ? AND read = ?", receiverID, senderID, false).
        Update("read", true)
    return res.RowsAffected, res.Error
}

func (r *messageRepository) CountUnread(ctx context.Context, receiverID string) (int64, error) {
    var cnt int64
    err := r.db.WithContext(ctx).
        Model(&model.Message{}).
        Where("receiver_id = ? AND read = ?", receiverID, false).
        Count(&cnt).Error
    return cnt, err
}
