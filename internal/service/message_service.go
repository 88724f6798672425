package service

import (
    "context"
    "errors"
    "strings"
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/shanikumar001/project-gallery-backend/internal/model"
    "github.com/shanikumar001/project-gallery-backend/internal/repository"
)

var (
    ErrEmptyMessage = errors.New("message text cannot be empty")
    ErrSelfMessage  = errors.New("cannot message yourself")
)

// previewLimit 通知预览截断长度
const previewLimit = 100

// MessageView 对外暴露的消息
type MessageView struct {
    ID        string    `json:"id"`
    SenderID  string    `json:"senderId"`
    Text      string    `json:"text"`
    IsMe      bool      `json:"isMe"`
    Read      bool      `json:"read"`
    CreatedAt time.Time `json:"createdAt"`
}

// MessageService 私信发送与线程查询
type MessageService interface {
    Send(ctx context.Context, fromUserID, toUserID, text string) (*MessageView, error)
    Thread(ctx context.Context, userID, withUserID string) ([]MessageView, error)
}

type messageService struct {
    db       *gorm.DB
    msgRepo  repository.MessageRepository
    userRepo repository.UserRepository
    cache    *UnreadCache
}

func NewMessageService(db *gorm.DB, msgRepo repository.MessageRepository, userRepo repository.UserRepository, cache *UnreadCache) MessageService {
    return &messageService{db: db, msgRepo: msgRepo, userRepo: userRepo, cache: cache}
}

// Send 落一行不可变消息；消息与通知外发行同一事务
func (s *messageService) Send(ctx context.Context, fromUserID, toUserID, text string) (*MessageView, error) {
    text = strings.TrimSpace(text)
    if text == "" {
        return nil, ErrEmptyMessage
    }
    if fromUserID == toUserID {
        return nil, ErrSelfMessage
    }
    to, err := s.userRepo.GetByID(ctx, toUserID)
    if err != nil {
        return nil, err
    }
    if to == nil {
        return nil, ErrUserNotFound
    }
    from, err := s.userRepo.GetByID(ctx, fromUserID)
    if err != nil {
        return nil, err
    }
    if from == nil {
        return nil, ErrUserNotFound
    }

    msg := &model.Message{
        ID:         uuid.New().String(),
        SenderID:   fromUserID,
        ReceiverID: toUserID,
        Text:       text,
    }
    err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        if err := tx.Create(msg).Error; err != nil {
            return err
        }
        return enqueueNotification(tx, model.NotifyKindNewMessage, to.ID, newMessagePayload{
            ToEmail:  to.Email,
            ToName:   to.DisplayName(),
            FromName: from.DisplayName(),
            Preview:  truncatePreview(text, previewLimit),
        })
    })
    if err != nil {
        return nil, err
    }

    s.cache.Invalidate(ctx, toUserID)
    return toMessageView(msg, fromUserID), nil
}

func (s *messageService) Thread(ctx context.Context, userID, withUserID string) ([]MessageView, error) {
    msgs, err := s.msgRepo.ListThread(ctx, userID, withUserID)
    if err != nil {
        return nil, err
    }
    res := make([]MessageView, len(msgs))
    for i, m := range msgs {
        res[i] = *toMessageView(m, userID)
    }
    return res, nil
}

func toMessageView(m *model.Message, viewerID string) *MessageView {
    return &MessageView{
        ID:        m.ID,
        SenderID:  m.SenderID,
        Text:      m.Text,
        IsMe:      m.SenderID == viewerID,
        Read:      m.Read,
        CreatedAt: m.CreatedAt,
    }
}
