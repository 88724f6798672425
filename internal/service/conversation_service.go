package service

import (
    "context"
    "sort"
    "time"

    "github.com/shanikumar001/project-gallery-backend/internal/model"
    "github.com/shanikumar001/project-gallery-backend/internal/repository"
)

// LastMessage 会话行里的最近一条消息
type LastMessage struct {
    Text      string    `json:"text"`
    IsMe      bool      `json:"isMe"`
    CreatedAt time.Time `json:"createdAt"`
}

// Conversation 按对端聚合出的会话摘要（派生数据，不落库）
type Conversation struct {
    ID           string       `json:"id"` // 对端用户 id
    Name         string       `json:"name"`
    Username     string       `json:"username"`
    ProfilePhoto string       `json:"profilePhoto"`
    LastMessage  *LastMessage `json:"lastMessage"`
    UnreadCount  int64        `json:"unreadCount"`
}

// ConversationService 会话聚合 + 已读标记 + 未读总数
type ConversationService interface {
    Conversations(ctx context.Context, userID string) ([]Conversation, error)
    MarkRead(ctx context.Context, userID, withUserID string) error
    UnreadTotal(ctx context.Context, userID string) (int64, error)
}

type conversationService struct {
    msgRepo  repository.MessageRepository
    userRepo repository.UserRepository
    cache    *UnreadCache
}

func NewConversationService(msgRepo repository.MessageRepository, userRepo repository.UserRepository, cache *UnreadCache) ConversationService {
    return &conversationService{msgRepo: msgRepo, userRepo: userRepo, cache: cache}
}

// Conversations 对消息按对端单遍聚合：
// 消息已按时间倒序，首次遇到的对端消息即该会话的最近一条；
// 未读数统计全部 receiver=我 且未读的消息，不只统计保留的那条
func (s *conversationService) Conversations(ctx context.Context, userID string) ([]Conversation, error) {
    msgs, err := s.msgRepo.ListAllFor(ctx, userID)
    if err != nil {
        return nil, err
    }

    last := make(map[string]*model.Message)
    unread := make(map[string]int64)
    order := make([]string, 0)

    for _, m := range msgs {
        counterpart := m.SenderID
        if counterpart == userID {
            counterpart = m.ReceiverID
        }
        if _, seen := last[counterpart]; !seen {
            last[counterpart] = m
            order = append(order, counterpart)
        }
        if m.ReceiverID == userID && !m.Read {
            unread[counterpart]++
        }
    }

    users, err := s.userRepo.GetMany(ctx, order)
    if err != nil {
        return nil, err
    }

    res := make([]Conversation, 0, len(order))
    for _, id := range order {
        conv := Conversation{ID: id, UnreadCount: unread[id]}
        if u, ok := users[id]; ok {
            conv.Name = u.DisplayName()
            conv.Username = u.Username
            conv.ProfilePhoto = u.ProfilePhoto
        } else {
            // 对端账号已注销仍保留会话行
            conv.Name = deletedUserName
        }
        if m := last[id]; m != nil {
            conv.LastMessage = &LastMessage{Text: m.Text, IsMe: m.SenderID == userID, CreatedAt: m.CreatedAt}
        }
        res = append(res, conv)
    }

    // 按最近消息时间倒序；无最近消息的按零值时间排最后
    sort.SliceStable(res, func(i, j int) bool {
        return lastTime(res[i]).After(lastTime(res[j]))
    })
    return res, nil
}

func lastTime(c Conversation) time.Time {
    if c.LastMessage == nil {
        return time.Time{}
    }
    return c.LastMessage.CreatedAt
}

// MarkRead 批量置已读；与并发写入无互斥，幂等最终一致
func (s *conversationService) MarkRead(ctx context.Context, userID, withUserID string) error {
    if _, err := s.msgRepo.MarkRead(ctx, userID, withUserID); err != nil {
        return err
    }
    s.cache.Invalidate(ctx, userID)
    return nil
}

func (s *conversationService) UnreadTotal(ctx context.Context, userID string) (int64, error) {
    if n, ok := s.cache.Get(ctx, userID); ok {
        return n, nil
    }
    n, err := s.msgRepo.CountUnread(ctx, userID)
    if err != nil {
        return 0, err
    }
    s.cache.Set(ctx, userID, n)
    return n, nil
}
