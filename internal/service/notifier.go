package service

import (
    "context"
    "encoding/json"
    "fmt"
    "net/smtp"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/shanikumar001/project-gallery-backend/config"
    "github.com/shanikumar001/project-gallery-backend/internal/model"
)

// deletedUserName 账号已注销时的兜底展示名
const deletedUserName = "Deleted user"

type followRequestPayload struct {
    ToEmail  string `json:"toEmail"`
    ToName   string `json:"toName"`
    FromName string `json:"fromName"`
}

type newMessagePayload struct {
    ToEmail  string `json:"toEmail"`
    ToName   string `json:"toName"`
    FromName string `json:"fromName"`
    Preview  string `json:"preview"`
}

// enqueueNotification 在触发写入的事务内落一行外发盒记录
func enqueueNotification(tx *gorm.DB, kind, recipientID string, payload any) error {
    data, err := json.Marshal(payload)
    if err != nil {
        return err
    }
    out := &model.NotificationOutbox{
        ID:          uuid.New().String(),
        Kind:        kind,
        RecipientID: recipientID,
        Payload:     string(data),
        Status:      model.OutboxPending,
    }
    return tx.Create(out).Error
}

// Sender 邮件发送端
type Sender interface {
    Send(ctx context.Context, to, subject, body string) error
}

// SMTPSender 通过 SMTP 投递
type SMTPSender struct {
    cfg *config.SMTPConfig
}

func NewSMTPSender(cfg *config.SMTPConfig) *SMTPSender { return &SMTPSender{cfg: cfg} }

func (s *SMTPSender) Send(_ context.Context, to, subject, body string) error {
    addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
    var auth smtp.Auth
    if s.cfg.Username != "" {
        auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
    }
    msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
        s.cfg.From, to, subject, body)
    return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

// renderNotification 将外发盒记录渲染为 (to, subject, body)
func renderNotification(row *model.NotificationOutbox) (to, subject, body string, err error) {
    switch row.Kind {
    case model.NotifyKindFollowRequest:
        var p followRequestPayload
        if err = json.Unmarshal([]byte(row.Payload), &p); err != nil {
            return
        }
        to = p.ToEmail
        subject = fmt.Sprintf("%s wants to follow you", p.FromName)
        body = fmt.Sprintf("Hi %s,\n\n%s sent you a follow request. Open the app to accept or decline it.\n", p.ToName, p.FromName)
    case model.NotifyKindNewMessage:
        var p newMessagePayload
        if err = json.Unmarshal([]byte(row.Payload), &p); err != nil {
            return
        }
        to = p.ToEmail
        subject = fmt.Sprintf("New message from %s", p.FromName)
        body = fmt.Sprintf("Hi %s,\n\n%s sent you a message:\n\n%s\n", p.ToName, p.FromName, p.Preview)
    default:
        err = fmt.Errorf("unknown notification kind: %s", row.Kind)
    }
    return
}

// truncatePreview 通知里的正文预览，超长按字符截断并追加省略号。
// 按 rune 截断，避免把多字节字符切成无效 UTF-8
func truncatePreview(text string, max int) string {
    runes := []rune(text)
    if len(runes) <= max {
        return text
    }
    return string(runes[:max]) + "..."
}
